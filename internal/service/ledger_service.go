package service

import (
	"context"
	"errors"
	"fmt"

	"stock-tracker/internal/domain"
	"stock-tracker/internal/repository"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
)

// LedgerService defines the interface for posting and reporting on the
// transaction ledger.
type LedgerService interface {
	Post(ctx context.Context, actor domain.Role, productID int, txType domain.TransactionType, quantity int) (*domain.Transaction, error)
	History(ctx context.Context, actor domain.Role, productID *int) ([]*domain.Transaction, error)
	Summarize(ctx context.Context, actor domain.Role) (map[domain.TransactionType]domain.TypeSummary, error)
}

type ledgerService struct {
	ledgerRepo repository.LedgerRepository
}

// NewLedgerService creates a new instance of LedgerService
func NewLedgerService(ledgerRepo repository.LedgerRepository) LedgerService {
	return &ledgerService{ledgerRepo: ledgerRepo}
}

// Post records a sale or purchase against a product. The ledger append and
// the stock adjustment commit together or not at all; on any failure the
// caller observes no partial effect.
func (s *ledgerService) Post(ctx context.Context, actor domain.Role, productID int, txType domain.TransactionType, quantity int) (*domain.Transaction, error) {
	if err := requireRole(actor, CapLedgerPost); err != nil {
		return nil, err
	}

	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if _, err := domain.ParseTransactionType(string(txType)); err != nil {
		return nil, err
	}

	return s.ledgerRepo.Post(ctx, productID, txType, quantity)
}

// History lists ledger entries, optionally restricted to one product.
func (s *ledgerService) History(ctx context.Context, actor domain.Role, productID *int) ([]*domain.Transaction, error) {
	if err := requireRole(actor, CapReportView); err != nil {
		return nil, err
	}

	entries, err := s.ledgerRepo.History(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transaction history: %w", err)
	}
	return entries, nil
}

// Summarize aggregates the full ledger by transaction type.
func (s *ledgerService) Summarize(ctx context.Context, actor domain.Role) (map[domain.TransactionType]domain.TypeSummary, error) {
	if err := requireRole(actor, CapReportView); err != nil {
		return nil, err
	}

	summary, err := s.ledgerRepo.Summarize(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build report: %w", err)
	}
	return summary, nil
}
