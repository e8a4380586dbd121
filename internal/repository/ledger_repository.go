package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"stock-tracker/internal/domain"
)

var (
	ErrInsufficientStock = errors.New("insufficient stock for sale")
)

// LedgerRepository defines the interface for transaction ledger access.
// The ledger is append-only: entries are never mutated or deleted.
type LedgerRepository interface {
	Post(ctx context.Context, productID int, txType domain.TransactionType, quantity int) (*domain.Transaction, error)
	History(ctx context.Context, productID *int) ([]*domain.Transaction, error)
	Summarize(ctx context.Context) (map[domain.TransactionType]domain.TypeSummary, error)
}

type ledgerRepository struct {
	db *sql.DB
}

// NewLedgerRepository creates a new instance of LedgerRepository
func NewLedgerRepository(db *sql.DB) LedgerRepository {
	return &ledgerRepository{db: db}
}

// Post appends a ledger entry and adjusts the linked product's stock as one
// database transaction. A crash between the two writes can never leave stock
// and ledger inconsistent: either both commit or neither does.
//
// For a sale with quantity greater than current stock, nothing is written and
// ErrInsufficientStock is returned.
func (r *ledgerRepository) Post(ctx context.Context, productID int, txType domain.TransactionType, quantity int) (*domain.Transaction, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var price float64
	var stock int
	err = tx.QueryRowContext(ctx,
		`SELECT price, stock FROM products WHERE id = $1 FOR UPDATE`,
		productID,
	).Scan(&price, &stock)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to load product for posting: %w", err)
	}

	delta := quantity
	if txType == domain.TransactionSale {
		if stock < quantity {
			return nil, ErrInsufficientStock
		}
		delta = -quantity
	}

	entry := &domain.Transaction{
		ProductID:  productID,
		Type:       txType,
		Quantity:   quantity,
		TotalPrice: price * float64(quantity),
		CreatedAt:  time.Now().UTC(),
	}

	err = tx.QueryRowContext(ctx,
		`INSERT INTO transactions (product_id, type, quantity, total_price, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		entry.ProductID,
		entry.Type,
		entry.Quantity,
		entry.TotalPrice,
		entry.CreatedAt,
	).Scan(&entry.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to append transaction: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE products SET stock = stock + $2, updated_at = $3 WHERE id = $1`,
		productID, delta, entry.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to adjust product stock: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit posting: %w", err)
	}

	return entry, nil
}

// History retrieves ledger entries ordered by identifier, optionally filtered
// by product.
func (r *ledgerRepository) History(ctx context.Context, productID *int) ([]*domain.Transaction, error) {
	query := `
		SELECT id, product_id, type, quantity, total_price, created_at
		FROM transactions
	`
	args := []interface{}{}

	if productID != nil {
		query += " WHERE product_id = $1"
		args = append(args, *productID)
	}
	query += " ORDER BY id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	transactions := []*domain.Transaction{}
	for rows.Next() {
		entry := &domain.Transaction{}
		err := rows.Scan(
			&entry.ID,
			&entry.ProductID,
			&entry.Type,
			&entry.Quantity,
			&entry.TotalPrice,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return transactions, nil
}

// Summarize aggregates the full ledger by transaction type. Pure read; an
// empty ledger yields an empty map.
func (r *ledgerRepository) Summarize(ctx context.Context) (map[domain.TransactionType]domain.TypeSummary, error) {
	query := `
		SELECT type, SUM(quantity), SUM(total_price)
		FROM transactions
		GROUP BY type
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize ledger: %w", err)
	}
	defer rows.Close()

	summary := make(map[domain.TransactionType]domain.TypeSummary)
	for rows.Next() {
		var txType domain.TransactionType
		var s domain.TypeSummary
		if err := rows.Scan(&txType, &s.TotalQuantity, &s.TotalAmount); err != nil {
			return nil, fmt.Errorf("failed to scan summary row: %w", err)
		}
		summary[txType] = s
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating summary rows: %w", err)
	}

	return summary, nil
}
