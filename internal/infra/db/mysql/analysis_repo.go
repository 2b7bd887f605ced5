package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	domain "github.com/bryanwahyu/llm-extracter/internal/domain/analysis"
)

var schema = []string{`
CREATE TABLE IF NOT EXISTS analysis (
  id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
  input_text LONGTEXT NOT NULL,
  summary LONGTEXT NOT NULL,
  title VARCHAR(255) NULL,
  topics JSON NOT NULL,
  sentiment VARCHAR(16) NOT NULL,
  keywords JSON NOT NULL,
  confidence DOUBLE NOT NULL DEFAULT 0.5,
  created_at DATETIME(6) NOT NULL,
  INDEX idx_analysis_created_at (created_at)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;`,
}

type AnalysisRepository struct {
	db *sql.DB
}

func NewAnalysisRepository(db *sql.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

// EnsureSchema creates the analysis table when missing
func (r *AnalysisRepository) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// Save inserts a record and sets its ID from the auto increment column
func (r *AnalysisRepository) Save(ctx context.Context, a *domain.Record) error {
	const q = `
INSERT INTO analysis
  (input_text, summary, title, topics, sentiment, keywords, confidence, created_at)
VALUES (?,?,?,?,?,?,?,?);
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

	res, err := r.db.ExecContext(ctx, q,
		a.InputText, a.Summary, nullableTitle(a.Title), topics,
		string(a.Sentiment), keywords, a.Confidence, createdAt)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
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
