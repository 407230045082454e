package onbid

import (
	"encoding/xml"

	"onbid-goods-api/pkg/apierror"
)

// Parse decodes a raw Onbid XML document into its wire representation.
// A structurally invalid document or one without a <body> element aborts
// the fetch cycle with an XML_PARSE_ERROR.
func Parse(rawXML string) (*Response, error) {
	var resp Response
	if err := xml.Unmarshal([]byte(rawXML), &resp); err != nil {
		return nil, apierror.XMLParseError("failed to parse Onbid XML response: " + err.Error())
	}

	if resp.Body == nil {
		return nil, apierror.XMLParseError("Onbid XML response has no body element")
	}

	return &resp, nil
}
