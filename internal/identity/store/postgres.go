package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"kycgate/internal/identity/models"
	"kycgate/pkg/platform/sentinel"
)

const uniqueViolation = "23505"

// PostgresStore persists customers in PostgreSQL. Identities live in the
// customers.identity jsonb column.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, customer *models.Customer) error {
	if customer == nil || customer.Code == "" {
		return fmt.Errorf("customer code is required")
	}
	id := customer.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	createdAt := customer.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	identity, err := encodeIdentity(customer.Identity)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO customers (id, code, first_name, last_name, other_name, phone_number, email, identity, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err = s.db.ExecContext(ctx, query,
		id, customer.Code, customer.FirstName, customer.LastName, customer.OtherName,
		customer.PhoneNumber, customer.Email, identity, createdAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("customer %s: %w", customer.Code, sentinel.ErrConflict)
		}
		return fmt.Errorf("create customer: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByCode(ctx context.Context, code string) (*models.Customer, error) {
	query := `
		SELECT id, code, first_name, last_name, other_name, phone_number, email, identity, created_at
		FROM customers
		WHERE code = $1
	`
	var c models.Customer
	var identity []byte
	err := s.db.QueryRowContext(ctx, query, code).Scan(
		&c.ID, &c.Code, &c.FirstName, &c.LastName, &c.OtherName, &c.PhoneNumber, &c.Email, &identity, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("customer %s: %w", code, sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find customer: %w", err)
	}
	if c.Identity, err = decodeIdentity(identity); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *PostgresStore) FindIdentityByBVN(ctx context.Context, bvn string) (*models.Identity, error) {
	query := `SELECT code, identity FROM customers WHERE identity->>'bvn' = $1`

	var owner string
	var raw []byte
	if err := s.db.QueryRowContext(ctx, query, bvn).Scan(&owner, &raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("identity: %w", sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find identity by bvn: %w", err)
	}
	identity, err := decodeIdentity(raw)
	if err != nil {
		return nil, err
	}
	identity.OwnerCode = owner
	return identity, nil
}

// ConditionalAttachIdentity is a single guarded UPDATE. It does not report
// whether a row matched; callers re-read afterwards.
func (s *PostgresStore) ConditionalAttachIdentity(ctx context.Context, code, bvnGuard string, identity *models.Identity) error {
	payload, err := encodeIdentity(identity)
	if err != nil {
		return err
	}
	query := `
		UPDATE customers
		SET identity = $3
		WHERE code = $1
		  AND (identity IS NULL OR identity->>'bvn' IS DISTINCT FROM $2)
	`
	if _, err := s.db.ExecContext(ctx, query, code, bvnGuard, payload); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("identity bvn: %w", sentinel.ErrConflict)
		}
		return fmt.Errorf("attach identity: %w", err)
	}
	return nil
}

func encodeIdentity(identity *models.Identity) (any, error) {
	if identity == nil {
		return nil, nil
	}
	raw, err := json.Marshal(identity)
	if err != nil {
		return nil, fmt.Errorf("encode identity: %w", err)
	}
	return string(raw), nil
}

func decodeIdentity(raw []byte) (*models.Identity, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var identity models.Identity
	if err := json.Unmarshal(raw, &identity); err != nil {
		return nil, fmt.Errorf("decode identity: %w", err)
	}
	return &identity, nil
}

// isUniqueViolation recognizes unique-constraint errors from either driver.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolation
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == uniqueViolation
	}
	return false
}
