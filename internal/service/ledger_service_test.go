package service

import (
	"context"
	"testing"

	"stock-tracker/internal/domain"
	"stock-tracker/internal/repository"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLedgerFixture(t *testing.T, price float64, stock int) (LedgerService, *mockLedgerRepository, int) {
	t.Helper()

	productRepo := newMockProductRepository()
	ledgerRepo := newMockLedgerRepository(productRepo)

	catalog := NewCatalogService(productRepo)
	product, err := catalog.Add(context.Background(), domain.RoleAdmin, "Widget", "", price, stock, nil)
	require.NoError(t, err)

	return NewLedgerService(ledgerRepo), ledgerRepo, product.ID
}

func TestPost_SaleDeductsStockAndComputesTotal(t *testing.T) {
	svc, ledgerRepo, productID := newLedgerFixture(t, 2.50, 10)
	ctx := context.Background()

	entry, err := svc.Post(ctx, domain.RoleAdmin, productID, domain.TransactionSale, 4)
	require.NoError(t, err)

	assert.Equal(t, 4, entry.Quantity)
	assert.Equal(t, 10.00, entry.TotalPrice)
	assert.Equal(t, 6, ledgerRepo.products.products[productID].Stock)
}

func TestPost_PurchaseIncrementsStock(t *testing.T) {
	svc, ledgerRepo, productID := newLedgerFixture(t, 2.50, 10)

	_, err := svc.Post(context.Background(), domain.RoleAdmin, productID, domain.TransactionPurchase, 7)
	require.NoError(t, err)
	assert.Equal(t, 17, ledgerRepo.products.products[productID].Stock)
}

func TestPost_OversellLeavesStockAndLedgerUnchanged(t *testing.T) {
	svc, ledgerRepo, productID := newLedgerFixture(t, 2.50, 3)

	_, err := svc.Post(context.Background(), domain.RoleAdmin, productID, domain.TransactionSale, 4)
	assert.ErrorIs(t, err, repository.ErrInsufficientStock)
	assert.Equal(t, 3, ledgerRepo.products.products[productID].Stock)
	assert.Empty(t, ledgerRepo.entries)
}

func TestPost_UnknownProduct(t *testing.T) {
	svc, _, _ := newLedgerFixture(t, 1.00, 1)

	_, err := svc.Post(context.Background(), domain.RoleAdmin, 99, domain.TransactionSale, 1)
	assert.ErrorIs(t, err, repository.ErrProductNotFound)
}

func TestPost_NonPositiveQuantity(t *testing.T) {
	svc, ledgerRepo, productID := newLedgerFixture(t, 1.00, 5)
	ctx := context.Background()

	for _, quantity := range []int{0, -3} {
		_, err := svc.Post(ctx, domain.RoleAdmin, productID, domain.TransactionPurchase, quantity)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	}
	assert.Empty(t, ledgerRepo.entries)
}

func TestPost_StaffDenied(t *testing.T) {
	svc, _, productID := newLedgerFixture(t, 1.00, 5)

	_, err := svc.Post(context.Background(), domain.RoleStaff, productID, domain.TransactionSale, 1)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestSummarize_GroupsByType(t *testing.T) {
	svc, _, productID := newLedgerFixture(t, 2.00, 0)
	ctx := context.Background()

	_, err := svc.Post(ctx, domain.RoleAdmin, productID, domain.TransactionPurchase, 10)
	require.NoError(t, err)
	_, err = svc.Post(ctx, domain.RoleAdmin, productID, domain.TransactionSale, 3)
	require.NoError(t, err)

	summary, err := svc.Summarize(ctx, domain.RoleAdmin)
	require.NoError(t, err)

	assert.Equal(t, domain.TypeSummary{TotalQuantity: 10, TotalAmount: 20.00}, summary[domain.TransactionPurchase])
	assert.Equal(t, domain.TypeSummary{TotalQuantity: 3, TotalAmount: 6.00}, summary[domain.TransactionSale])
}

func TestSummarize_EmptyLedger(t *testing.T) {
	svc, _, _ := newLedgerFixture(t, 1.00, 0)

	summary, err := svc.Summarize(context.Background(), domain.RoleAdmin)
	require.NoError(t, err)
	assert.Empty(t, summary)
}

func TestProperty_StockArithmetic(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("purchases then a covered sale leave stock = initial + purchases - sale", prop.ForAll(
		func(initialStock int, purchases []int, saleQuantity int) bool {
			productRepo := newMockProductRepository()
			ledgerRepo := newMockLedgerRepository(productRepo)
			catalog := NewCatalogService(productRepo)
			ledger := NewLedgerService(ledgerRepo)
			ctx := context.Background()

			product, err := catalog.Add(ctx, domain.RoleAdmin, "Widget", "", 1.25, initialStock, nil)
			if err != nil {
				t.Logf("FAIL: Add failed: %v", err)
				return false
			}

			expected := initialStock
			for _, quantity := range purchases {
				if _, err := ledger.Post(ctx, domain.RoleAdmin, product.ID, domain.TransactionPurchase, quantity); err != nil {
					t.Logf("FAIL: Purchase posting failed: %v", err)
					return false
				}
				expected += quantity
			}

			// Cap the sale at current stock so it is always covered
			sale := saleQuantity
			if sale > expected {
				sale = expected
			}
			if sale > 0 {
				if _, err := ledger.Post(ctx, domain.RoleAdmin, product.ID, domain.TransactionSale, sale); err != nil {
					t.Logf("FAIL: Sale posting failed: %v", err)
					return false
				}
				expected -= sale
			}

			got, err := catalog.Get(ctx, product.ID)
			if err != nil {
				t.Logf("FAIL: Get failed: %v", err)
				return false
			}

			if got.Stock != expected {
				t.Logf("FAIL: Stock %d, expected %d", got.Stock, expected)
				return false
			}

			return true
		},
		gen.IntRange(0, 100),
		gen.SliceOf(gen.IntRange(1, 50)),
		gen.IntRange(1, 500),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
