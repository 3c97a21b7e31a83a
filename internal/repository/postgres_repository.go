package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/safarhub/backoffice/internal/models"
)

// Repository interface defines the local back-office store: admin
// operator accounts and the audit trail. Travel entities never live
// here; they belong to the upstream platform.
type Repository interface {
	// Admin operator operations
	CreateAdminUser(ctx context.Context, user *models.AdminUser) error
	GetAdminUserByEmail(ctx context.Context, email string) (*models.AdminUser, error)
	GetAdminUserByID(ctx context.Context, id string) (*models.AdminUser, error)

	// Audit trail operations
	InsertAuditEvent(ctx context.Context, event *models.AuditEvent) error
	ListAuditEvents(ctx context.Context, limit int) ([]models.AuditEvent, error)
}

// PostgresRepository implements the Repository interface using PostgreSQL
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{
		db: db,
	}
}

// GetDB returns the underlying database connection
func (r *PostgresRepository) GetDB() *sqlx.DB {
	return r.db
}

// Admin operator repository methods
func (r *PostgresRepository) CreateAdminUser(ctx context.Context, user *models.AdminUser) error {
	query := `
		INSERT INTO admin_users (id, email, name, password, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	// Generate a new UUID if not provided
	if user.ID == "" {
		user.ID = uuid.New().String()
	}

	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Email, user.Name, user.Password, user.CreatedAt, user.UpdatedAt)

	return err
}

func (r *PostgresRepository) GetAdminUserByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	query := `SELECT * FROM admin_users WHERE email = $1`

	var user models.AdminUser
	err := r.db.GetContext(ctx, &user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // User not found
		}
		return nil, err
	}

	return &user, nil
}

func (r *PostgresRepository) GetAdminUserByID(ctx context.Context, id string) (*models.AdminUser, error) {
	query := `SELECT * FROM admin_users WHERE id = $1`

	var user models.AdminUser
	err := r.db.GetContext(ctx, &user, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // User not found
		}
		return nil, err
	}

	return &user, nil
}

// Audit trail repository methods
func (r *PostgresRepository) InsertAuditEvent(ctx context.Context, event *models.AuditEvent) error {
	query := `
		INSERT INTO audit_events (id, actor, action, resource, resource_id, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, query,
		event.ID, event.Actor, event.Action, event.Resource,
		event.ResourceID, event.Payload, event.CreatedAt)

	return err
}

func (r *PostgresRepository) ListAuditEvents(ctx context.Context, limit int) ([]models.AuditEvent, error) {
	if limit <= 0 {
		limit = 100
	}
	query := `SELECT * FROM audit_events ORDER BY created_at DESC LIMIT $1`

	events := []models.AuditEvent{}
	if err := r.db.SelectContext(ctx, &events, query, limit); err != nil {
		return nil, err
	}
	return events, nil
}
