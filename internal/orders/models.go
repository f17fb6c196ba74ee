package orders

import "time"

type Product struct {
	ID         string
	SKU        string
	Name       string
	Section    string
	PriceCents int
	Available  bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ArchivedOrder is a placed cart order as kept in Postgres.
type ArchivedOrder struct {
	OrderID       int64          `json:"order_id"`
	SessionID     string         `json:"session_id"`
	Customer      string         `json:"customer"`
	PaymentMethod string         `json:"payment_method"`
	Status        string         `json:"status"`
	Total         string         `json:"total"` // fixed 2 decimals
	Items         []ArchivedItem `json:"items"`
	OrderedAt     time.Time      `json:"ordered_at"`
	ArchivedAt    time.Time      `json:"archived_at"`
}

type ArchivedItem struct {
	Position int    `json:"position"`
	Name     string `json:"name"`
	Price    string `json:"price"`
}
