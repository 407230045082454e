package apierror

import (
	"encoding/json"
	"net/http"
)

// APIError is a user-facing error with a stable machine-readable code.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return e.Message
}

// ToJSON serializes the error into the response envelope.
func (e *APIError) ToJSON() []byte {
	body := map[string]interface{}{
		"success": false,
		"code":    e.Code,
		"message": e.Message,
	}
	b, _ := json.Marshal(body)
	return b
}

// BadRequest returns a 400 INVALID_REQUEST error.
func BadRequest(message string) *APIError {
	return &APIError{Status: http.StatusBadRequest, Code: "INVALID_REQUEST", Message: message}
}

// GoodsNotFound returns a 404 GOODS_NOT_FOUND error.
func GoodsNotFound(message string) *APIError {
	return &APIError{Status: http.StatusNotFound, Code: "GOODS_NOT_FOUND", Message: message}
}

// DuplicatedPurchase returns a 409 DUPLICATED_PURCHASE error.
func DuplicatedPurchase(message string) *APIError {
	return &APIError{Status: http.StatusConflict, Code: "DUPLICATED_PURCHASE", Message: message}
}

// ExternalAPIError returns a 502 EXTERNAL_API_ERROR error.
func ExternalAPIError(message string) *APIError {
	return &APIError{Status: http.StatusBadGateway, Code: "EXTERNAL_API_ERROR", Message: message}
}

// XMLParseError returns a 500 XML_PARSE_ERROR error.
func XMLParseError(message string) *APIError {
	return &APIError{Status: http.StatusInternalServerError, Code: "XML_PARSE_ERROR", Message: message}
}

// DatabaseError returns a 500 DATABASE_ERROR error.
func DatabaseError(message string) *APIError {
	return &APIError{Status: http.StatusInternalServerError, Code: "DATABASE_ERROR", Message: message}
}

// InternalError returns a 500 UNKNOWN_ERROR error.
func InternalError(message string) *APIError {
	return &APIError{Status: http.StatusInternalServerError, Code: "UNKNOWN_ERROR", Message: message}
}
