package service

import (
	"context"
	"time"

	"stock-tracker/internal/domain"
	"stock-tracker/internal/repository"
)

// Mock repositories for testing

type mockAccountRepository struct {
	accounts map[string]*domain.Account
}

func newMockAccountRepository() *mockAccountRepository {
	return &mockAccountRepository{
		accounts: make(map[string]*domain.Account),
	}
}

func (m *mockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if _, exists := m.accounts[account.Username]; exists {
		return repository.ErrDuplicateUsername
	}
	m.accounts[account.Username] = account
	return nil
}

func (m *mockAccountRepository) FindByUsername(ctx context.Context, username string) (*domain.Account, error) {
	account, exists := m.accounts[username]
	if !exists {
		return nil, repository.ErrAccountNotFound
	}
	return account, nil
}

func (m *mockAccountRepository) List(ctx context.Context) ([]*domain.Account, error) {
	accounts := []*domain.Account{}
	for _, a := range m.accounts {
		accounts = append(accounts, a)
	}
	return accounts, nil
}

// mockProductRepository mirrors the real repository's identifier behavior:
// new rows get the smallest unused id, which is also what deleting rows leaves
// behind after the sequence reset.
type mockProductRepository struct {
	products map[int]*domain.Product
}

func newMockProductRepository() *mockProductRepository {
	return &mockProductRepository{
		products: make(map[int]*domain.Product),
	}
}

func (m *mockProductRepository) smallestUnusedID() int {
	id := 1
	for {
		if _, taken := m.products[id]; !taken {
			return id
		}
		id++
	}
}

func (m *mockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	product.ID = m.smallestUnusedID()
	clone := *product
	m.products[product.ID] = &clone
	return nil
}

func (m *mockProductRepository) Update(ctx context.Context, product *domain.Product) error {
	if _, exists := m.products[product.ID]; !exists {
		return repository.ErrProductNotFound
	}
	clone := *product
	m.products[product.ID] = &clone
	return nil
}

func (m *mockProductRepository) Delete(ctx context.Context, id int) error {
	if _, exists := m.products[id]; !exists {
		return repository.ErrProductNotFound
	}
	delete(m.products, id)
	return nil
}

func (m *mockProductRepository) FindByID(ctx context.Context, id int) (*domain.Product, error) {
	product, exists := m.products[id]
	if !exists {
		return nil, repository.ErrProductNotFound
	}
	clone := *product
	return &clone, nil
}

func (m *mockProductRepository) List(ctx context.Context) ([]*domain.Product, error) {
	products := []*domain.Product{}
	for id := 1; len(products) < len(m.products); id++ {
		if p, exists := m.products[id]; exists {
			clone := *p
			products = append(products, &clone)
		}
	}
	return products, nil
}

// mockLedgerRepository shares the product store with mockProductRepository so
// postings adjust the same stock the catalog sees, as in the real database.
type mockLedgerRepository struct {
	products *mockProductRepository
	entries  []*domain.Transaction
	nextID   int
}

func newMockLedgerRepository(products *mockProductRepository) *mockLedgerRepository {
	return &mockLedgerRepository{
		products: products,
		nextID:   1,
	}
}

func (m *mockLedgerRepository) Post(ctx context.Context, productID int, txType domain.TransactionType, quantity int) (*domain.Transaction, error) {
	product, exists := m.products.products[productID]
	if !exists {
		return nil, repository.ErrProductNotFound
	}

	delta := quantity
	if txType == domain.TransactionSale {
		if product.Stock < quantity {
			return nil, repository.ErrInsufficientStock
		}
		delta = -quantity
	}

	entry := &domain.Transaction{
		ID:         m.nextID,
		ProductID:  productID,
		Type:       txType,
		Quantity:   quantity,
		TotalPrice: product.Price * float64(quantity),
		CreatedAt:  time.Now().UTC(),
	}
	m.nextID++
	m.entries = append(m.entries, entry)
	product.Stock += delta

	return entry, nil
}

func (m *mockLedgerRepository) History(ctx context.Context, productID *int) ([]*domain.Transaction, error) {
	entries := []*domain.Transaction{}
	for _, e := range m.entries {
		if productID == nil || e.ProductID == *productID {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func (m *mockLedgerRepository) Summarize(ctx context.Context) (map[domain.TransactionType]domain.TypeSummary, error) {
	summary := make(map[domain.TransactionType]domain.TypeSummary)
	for _, e := range m.entries {
		s := summary[e.Type]
		s.TotalQuantity += e.Quantity
		s.TotalAmount += e.TotalPrice
		summary[e.Type] = s
	}
	return summary, nil
}
