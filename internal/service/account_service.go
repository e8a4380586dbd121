package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stock-tracker/internal/domain"
	"stock-tracker/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrInvalidRole       = errors.New("invalid role: must be admin or staff")
	ErrInvalidCredential = errors.New("invalid credential")
)

// Session identifies one console login. The ID exists only for log
// correlation; nothing is ever verified against it.
type Session struct {
	ID        uuid.UUID
	Username  string
	Role      domain.Role
	StartedAt time.Time
}

// AccountService defines the interface for account business logic
type AccountService interface {
	Register(ctx context.Context, username, credential, role string) (*domain.Account, error)
	Authenticate(ctx context.Context, username, credential string) (*Session, error)
	ListAccounts(ctx context.Context, actor domain.Role) ([]*domain.Account, error)
}

type accountService struct {
	accountRepo repository.AccountRepository
}

// NewAccountService creates a new instance of AccountService
func NewAccountService(accountRepo repository.AccountRepository) AccountService {
	return &accountService{accountRepo: accountRepo}
}

// Register creates a new account. The role must be admin or staff and the
// username must be free. Credentials are stored exactly as supplied; see the
// domain.Account doc for why.
func (s *accountService) Register(ctx context.Context, username, credential, role string) (*domain.Account, error) {
	parsedRole, err := domain.ParseRole(role)
	if err != nil {
		return nil, ErrInvalidRole
	}

	// Check uniqueness before insert; the primary key catches races anyway.
	existing, err := s.accountRepo.FindByUsername(ctx, username)
	if err != nil && err != repository.ErrAccountNotFound {
		return nil, fmt.Errorf("failed to check existing account: %w", err)
	}
	if existing != nil {
		return nil, repository.ErrDuplicateUsername
	}

	account := &domain.Account{
		Username:   username,
		Credential: credential,
		Role:       parsedRole,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// Authenticate verifies a credential by exact string match and opens a
// session carrying the stored role.
func (s *accountService) Authenticate(ctx context.Context, username, credential string) (*Session, error) {
	account, err := s.accountRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if account.Credential != credential {
		return nil, ErrInvalidCredential
	}

	return &Session{
		ID:        uuid.New(),
		Username:  account.Username,
		Role:      account.Role,
		StartedAt: time.Now().UTC(),
	}, nil
}

// ListAccounts returns every account. Admin only.
func (s *accountService) ListAccounts(ctx context.Context, actor domain.Role) ([]*domain.Account, error) {
	if err := requireRole(actor, CapAccountList); err != nil {
		return nil, err
	}

	accounts, err := s.accountRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}
