package archive

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Record is one archived report run.
type Record struct {
	ID        uuid.UUID `json:"id"`
	Topic     string    `json:"topic"`
	Provider  string    `json:"provider"`
	Model     string    `json:"model"`
	Report    string    `json:"report"`
	CreatedAt time.Time `json:"created_at"`
}

// Store persists report runs.
type Store struct {
	DB *PostgresDB
}

func NewStore(db *PostgresDB) *Store {
	return &Store{DB: db}
}

// Save inserts a finished report run and returns the stored record.
func (s *Store) Save(ctx context.Context, topic, provider, model, reportText string) (*Record, error) {
	id := uuid.New()
	query := `
		INSERT INTO reports (id, topic, provider, model, report)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, topic, provider, model, report, created_at
	`

	rec := &Record{}
	err := s.DB.Pool.QueryRow(ctx, query, id, topic, provider, model, reportText).Scan(
		&rec.ID, &rec.Topic, &rec.Provider, &rec.Model, &rec.Report, &rec.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to save report: %w", err)
	}
	return rec, nil
}

// List returns the most recent report runs, newest first.
func (s *Store) List(ctx context.Context) ([]Record, error) {
	query := `
		SELECT id, topic, provider, model, report, created_at
		FROM reports
		ORDER BY created_at DESC
		LIMIT 50
	`
	rows, err := s.DB.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.Topic, &rec.Provider, &rec.Model, &rec.Report, &rec.CreatedAt); err != nil {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// Get fetches one archived report by id.
func (s *Store) Get(ctx context.Context, id uuid.UUID) (*Record, error) {
	query := `
		SELECT id, topic, provider, model, report, created_at
		FROM reports
		WHERE id = $1
	`
	rec := &Record{}
	err := s.DB.Pool.QueryRow(ctx, query, id).Scan(
		&rec.ID, &rec.Topic, &rec.Provider, &rec.Model, &rec.Report, &rec.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}
	return rec, nil
}
