package domain

import (
	"fmt"
	"time"
)

// TransactionType distinguishes stock-affecting events.
type TransactionType string

const (
	TransactionSale     TransactionType = "sale"
	TransactionPurchase TransactionType = "purchase"
)

// ParseTransactionType validates a transaction type string.
func ParseTransactionType(s string) (TransactionType, error) {
	switch TransactionType(s) {
	case TransactionSale, TransactionPurchase:
		return TransactionType(s), nil
	default:
		return "", fmt.Errorf("invalid transaction type %q: must be sale or purchase", s)
	}
}

// Transaction is one append-only ledger entry. Entries are never mutated or
// deleted; deleting a product can orphan its historical transactions, and that
// inconsistency is accepted.
type Transaction struct {
	ID         int             `json:"id" db:"id"`
	ProductID  int             `json:"product_id" db:"product_id"`
	Type       TransactionType `json:"type" db:"type"`
	Quantity   int             `json:"quantity" db:"quantity"`
	TotalPrice float64         `json:"total_price" db:"total_price"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`
}

// TypeSummary aggregates the ledger for one transaction type.
type TypeSummary struct {
	TotalQuantity int     `json:"total_quantity"`
	TotalAmount   float64 `json:"total_amount"`
}
