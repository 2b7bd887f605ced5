package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bryanwahyu/llm-extracter/internal/application"
	"github.com/bryanwahyu/llm-extracter/internal/domain/ai"
	domain "github.com/bryanwahyu/llm-extracter/internal/domain/analysis"
)

const archiveTimeout = 10 * time.Second

// Outcome labels reported to the Recorder.
const (
	OutcomeSuccess     = "success"
	OutcomeFailed      = "failed"
	OutcomeStoreFailed = "store_failed"
)

// Recorder receives one outcome per Analyze call.
type Recorder interface {
	AnalysisCompleted(outcome string)
}

// Service implements use-cases untuk analysis.
// Archive, Recorder and Logger are optional.
type Service struct {
	Repo     domain.Repository
	AI       ai.Client
	Archive  domain.ResponseArchive
	Recorder Recorder
	Clock    application.Clock
	Logger   *zap.Logger

	KeywordLimit int
	Timeout      time.Duration
}

// Analyze runs keyword extraction and the completion call for text and
// persists the merged record. Any failure of the completion step is returned
// as *domain.AnalysisFailedError and nothing is persisted.
func (s *Service) Analyze(ctx context.Context, text string) (*domain.Record, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.ErrEmptyInput
	}

	keywords := domain.ExtractKeywords(text, s.keywordLimit())

	insight, err := s.complete(ctx, text)
	if err != nil {
		s.record(OutcomeFailed)
		s.logger().Warn("llm analysis failed", zap.Error(err))
		return nil, &domain.AnalysisFailedError{Cause: err, Timestamp: s.now()}
	}

	rec := &domain.Record{
		InputText:  text,
		Summary:    insight.Summary,
		Title:      insight.Title,
		Topics:     insight.Topics,
		Sentiment:  insight.Sentiment,
		Keywords:   keywords,
		Confidence: domain.SuccessConfidence,
		CreatedAt:  s.now(),
	}
	if err := s.Repo.Save(ctx, rec); err != nil {
		s.record(OutcomeStoreFailed)
		return nil, fmt.Errorf("save analysis: %w", err)
	}

	s.record(OutcomeSuccess)
	s.logger().Info("analysis stored",
		zap.Int64("id", int64(rec.ID)),
		zap.String("sentiment", string(rec.Sentiment)),
		zap.Int("topics", len(rec.Topics)),
		zap.Int("keywords", len(rec.Keywords)),
	)
	return rec, nil
}

// Search returns all records most recent first, or only those whose topics
// or keywords contain topic when it is not blank.
func (s *Service) Search(ctx context.Context, topic string) ([]*domain.Record, error) {
	rows, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list analyses: %w", err)
	}
	if rows == nil {
		rows = []*domain.Record{}
	}

	topic = strings.ToLower(strings.TrimSpace(topic))
	if topic == "" {
		return rows, nil
	}

	out := make([]*domain.Record, 0, len(rows))
	for _, r := range rows {
		if r.Matches(topic) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *Service) complete(ctx context.Context, text string) (domain.Insight, error) {
	if s.AI == nil {
		return domain.Insight{}, ai.ErrNotConfigured
	}
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	raw, err := s.AI.Analyze(ctx, text)
	if err != nil {
		return domain.Insight{}, err
	}

	insight, err := domain.Normalize(raw)
	if err != nil {
		var ue *domain.UnparsableResponseError
		if errors.As(err, &ue) {
			s.archive(ctx, ue.Raw)
		}
		return domain.Insight{}, err
	}
	return insight, nil
}

// archive is best effort; failures are only logged.
func (s *Service) archive(ctx context.Context, raw string) {
	if s.Archive == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), archiveTimeout)
	defer cancel()

	key := fmt.Sprintf("unparsable/%s/%s.txt", s.now().Format("2006/01/02"), uuid.NewString())
	url, err := s.Archive.Archive(ctx, key, raw)
	if err != nil {
		s.logger().Warn("archive unparsable response", zap.String("key", key), zap.Error(err))
		return
	}
	s.logger().Info("unparsable response archived", zap.String("url", url))
}

func (s *Service) keywordLimit() int {
	if s.KeywordLimit <= 0 {
		return domain.DefaultTopK
	}
	return s.KeywordLimit
}

func (s *Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now()
}

func (s *Service) record(outcome string) {
	if s.Recorder != nil {
		s.Recorder.AnalysisCompleted(outcome)
	}
}

func (s *Service) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}
