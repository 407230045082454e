package domain

import "time"

// Purchase statuses. The sync pipeline only ever writes StatusCompleted;
// the other values exist for manual/legacy rows.
const (
	PurchaseStatusPending   = "PENDING"
	PurchaseStatusCompleted = "COMPLETED"
	PurchaseStatusCancelled = "CANCELLED"
)

// Purchase records one purchase of one auction round. At most one purchase
// may exist per historyNo; the store enforces this with a unique index.
type Purchase struct {
	ID             int64     `json:"id"`
	HistoryNo      int64     `json:"historyNo"`
	PurchasePrice  int64     `json:"purchasePrice"`
	PurchaseStatus string    `json:"purchaseStatus"`
	CreatedAt      time.Time `json:"createdAt"`
}
