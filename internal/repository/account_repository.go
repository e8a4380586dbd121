package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"stock-tracker/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrAccountNotFound   = errors.New("account not found")
	ErrDuplicateUsername = errors.New("account with this username already exists")
)

// AccountRepository defines the interface for account data access
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	FindByUsername(ctx context.Context, username string) (*domain.Account, error)
	List(ctx context.Context) ([]*domain.Account, error)
}

type accountRepository struct {
	db *sql.DB
}

// NewAccountRepository creates a new instance of AccountRepository
func NewAccountRepository(db *sql.DB) AccountRepository {
	return &accountRepository{db: db}
}

// Create inserts a new account into the database using parameterized queries
func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	query := `
		INSERT INTO accounts (username, credential, role, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		account.Username,
		account.Credential,
		account.Role,
		account.CreatedAt,
	)

	if err != nil {
		// Unique constraint violation on the username primary key
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateUsername
		}
		return fmt.Errorf("failed to create account: %w", err)
	}

	return nil
}

// FindByUsername retrieves an account by username using parameterized queries
func (r *accountRepository) FindByUsername(ctx context.Context, username string) (*domain.Account, error) {
	query := `
		SELECT username, credential, role, created_at
		FROM accounts
		WHERE username = $1
	`

	account := &domain.Account{}
	err := r.db.QueryRowContext(ctx, query, username).Scan(
		&account.Username,
		&account.Credential,
		&account.Role,
		&account.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to find account by username: %w", err)
	}

	return account, nil
}

// List retrieves every account ordered by username
func (r *accountRepository) List(ctx context.Context) ([]*domain.Account, error) {
	query := `
		SELECT username, credential, role, created_at
		FROM accounts
		ORDER BY username
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	accounts := []*domain.Account{}
	for rows.Next() {
		account := &domain.Account{}
		err := rows.Scan(
			&account.Username,
			&account.Credential,
			&account.Role,
			&account.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, account)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating accounts: %w", err)
	}

	return accounts, nil
}
