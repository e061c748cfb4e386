package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"hireboard-api/internal/config"
	"hireboard-api/pkg/models"
)

// PostgresStore implements RecordStore on top of a pgx connection pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore opens a connection pool against the configured database
// and verifies it with a ping.
func NewPostgresStore(ctx context.Context, cfg *config.Config) (*PostgresStore, error) {
	if cfg.Database.URL == "" {
		return nil, fmt.Errorf("database URL is required")
	}

	poolConfig, err := pgxpool.ParseConfig(cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}
	poolConfig.MaxConns = int32(cfg.Database.MaxConns)
	poolConfig.ConnConfig.ConnectTimeout = cfg.Database.ConnectTimeout

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

var _ RecordStore = (*PostgresStore)(nil)

// Insert persists a new job description row. The id and created_at are
// assigned by the database.
func (s *PostgresStore) Insert(ctx context.Context, record *models.JobDescription) (*models.JobDescription, error) {
	const query = `
		INSERT INTO job_descriptions (title, company_name, description, document_url, created_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, title, company_name, description, document_url, created_by, created_at`

	row := s.pool.QueryRow(ctx, query,
		record.Title,
		nullableText(record.CompanyName),
		record.Description,
		nullableText(record.DocumentURL),
		record.CreatedBy,
	)

	inserted, err := scanJobDescription(row)
	if err != nil {
		return nil, fmt.Errorf("failed to insert job description: %w", err)
	}

	return inserted, nil
}

// ListByCreator returns all records owned by creatorID ordered newest first.
func (s *PostgresStore) ListByCreator(ctx context.Context, creatorID string) ([]*models.JobDescription, error) {
	const query = `
		SELECT id, title, company_name, description, document_url, created_by, created_at
		FROM job_descriptions
		WHERE created_by = $1
		ORDER BY created_at DESC`

	rows, err := s.pool.Query(ctx, query, creatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list job descriptions: %w", err)
	}
	defer rows.Close()

	records := make([]*models.JobDescription, 0)
	for rows.Next() {
		record, err := scanJobDescription(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job description: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read job descriptions: %w", err)
	}

	return records, nil
}

// CreatorStats aggregates the creator's records in a single query.
func (s *PostgresStore) CreatorStats(ctx context.Context, creatorID string) (*models.JobDescriptionStats, error) {
	const query = `
		SELECT count(*),
		       count(document_url),
		       max(created_at)
		FROM job_descriptions
		WHERE created_by = $1`

	stats := &models.JobDescriptionStats{}
	err := s.pool.QueryRow(ctx, query, creatorID).Scan(&stats.Total, &stats.WithDocuments, &stats.LatestCreated)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate job descriptions: %w", err)
	}

	return stats, nil
}

// Ping verifies database connectivity
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close releases the connection pool
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// scanJobDescription reads one row into a JobDescription, folding NULL
// optional columns into empty strings.
func scanJobDescription(row pgx.Row) (*models.JobDescription, error) {
	var record models.JobDescription
	var companyName, documentURL *string

	err := row.Scan(
		&record.ID,
		&record.Title,
		&companyName,
		&record.Description,
		&documentURL,
		&record.CreatedBy,
		&record.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if companyName != nil {
		record.CompanyName = *companyName
	}
	if documentURL != nil {
		record.DocumentURL = *documentURL
	}

	return &record, nil
}

// nullableText maps empty optional fields to NULL so the schema keeps
// "absent" distinct from "empty string".
func nullableText(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
