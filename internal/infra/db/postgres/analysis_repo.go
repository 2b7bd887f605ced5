package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	domain "github.com/bryanwahyu/llm-extracter/internal/domain/analysis"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS analysis (
  id BIGSERIAL PRIMARY KEY,
  input_text TEXT NOT NULL,
  summary TEXT NOT NULL,
  title VARCHAR(255),
  topics JSONB NOT NULL DEFAULT '[]',
  sentiment VARCHAR(16) NOT NULL,
  keywords JSONB NOT NULL DEFAULT '[]',
  confidence DOUBLE PRECISION NOT NULL DEFAULT 0.5,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	`CREATE INDEX IF NOT EXISTS idx_analysis_created_at ON analysis (created_at DESC);`,
}

type AnalysisRepository struct {
	db *sql.DB
}

func NewAnalysisRepository(db *sql.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

// EnsureSchema creates the analysis table and its index when missing
func (r *AnalysisRepository) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// Save inserts a record; id comes back through RETURNING
func (r *AnalysisRepository) Save(ctx context.Context, a *domain.Record) error {
	const q = `
INSERT INTO analysis
  (input_text, summary, title, topics, sentiment, keywords, confidence, created_at)
VALUES ($1,$2,$3,$4::jsonb,$5,$6::jsonb,$7,$8)
RETURNING id;
`
	topics, err := encodeList(a.Topics)
	if err != nil {
		return err
	}
	keywords, err := encodeList(a.Keywords)
	if err != nil {
		return err
	}
	createdAt := a.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	var id int64
	row := r.db.QueryRowContext(ctx, q,
		a.InputText, a.Summary, nullableTitle(a.Title), topics,
		string(a.Sentiment), keywords, a.Confidence, createdAt)
	if err := row.Scan(&id); err != nil {
		return err
	}
	a.ID = domain.RecordID(id)
	a.CreatedAt = createdAt
	return nil
}

// List returns every record ordered by created_at desc
func (r *AnalysisRepository) List(ctx context.Context) ([]*domain.Record, error) {
	const q = `
SELECT id, input_text, summary, title, topics, sentiment, keywords, confidence, created_at
FROM analysis
ORDER BY created_at DESC, id DESC;
`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*domain.Record{}
	for rows.Next() {
		var (
			a         domain.Record
			id        int64
			title     sql.NullString
			sentiment string
			topics    []byte
			keywords  []byte
		)
		if err := rows.Scan(&id, &a.InputText, &a.Summary, &title, &topics, &sentiment, &keywords, &a.Confidence, &a.CreatedAt); err != nil {
			return nil, err
		}
		a.ID = domain.RecordID(id)
		if title.Valid {
			a.Title = &title.String
		}
		a.Sentiment = domain.ParseSentiment(sentiment)
		if a.Topics, err = decodeList(topics); err != nil {
			return nil, fmt.Errorf("decode topics of %d: %w", id, err)
		}
		if a.Keywords, err = decodeList(keywords); err != nil {
			return nil, fmt.Errorf("decode keywords of %d: %w", id, err)
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}
