package recommendations

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/encontros-app/date-spots-api/app/observability/metrics"
	"github.com/encontros-app/date-spots-api/internal/api/completion"
	"github.com/encontros-app/date-spots-api/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// Service defines the business logic contract for recommendation searches.
type Service interface {
	SearchPlaces(ctx context.Context, filters types.PlaceFilters) (*types.RecommendationsResponse, error)
}

// ServiceImpl runs the pipeline: validate filters, build the prompt, call
// the completion provider, normalize the response. Each request is fully
// independent; there is no shared mutable state and no retry.
type ServiceImpl struct {
	logger *slog.Logger
	client completion.Client
	mode   PromptMode
}

// NewServiceImpl creates a new recommendation service instance. The
// completion client is injected so tests can substitute a double.
func NewServiceImpl(client completion.Client, mode PromptMode, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger: logger,
		client: client,
		mode:   mode,
	}
}

func (s *ServiceImpl) SearchPlaces(ctx context.Context, filters types.PlaceFilters) (*types.RecommendationsResponse, error) {
	ctx, span := otel.Tracer("RecommendationService").Start(ctx, "SearchPlaces", trace.WithAttributes(
		attribute.String("filters.budget", filters.Budget),
		attribute.String("filters.type", filters.Type),
		attribute.String("filters.period", filters.Period),
	))
	defer span.End()

	searchID := uuid.New()
	l := s.logger.With(slog.String("searchID", searchID.String()))

	if err := filters.Validate(); err != nil {
		l.WarnContext(ctx, "Rejecting search with incomplete filters", slog.Any("error", err))
		span.RecordError(err)
		return nil, err
	}

	l.InfoContext(ctx, "Processing recommendation search",
		slog.String("budget", filters.Budget),
		slog.String("type", filters.Type),
		slog.String("period", filters.Period),
		slog.String("ambiente", filters.Ambiente),
		slog.String("distancia", filters.Distancia),
		slog.Bool("temEstacionamento", filters.WantsParking()),
		slog.Bool("acessivel", filters.WantsAccessible()),
	)

	prompt := buildRecommendationsPrompt(filters, s.mode)

	m := metrics.Get()
	start := time.Now()
	raw, err := s.client.Complete(ctx, systemPrompt, prompt)
	m.CompletionDurationSeconds.Record(ctx, time.Since(start).Seconds())
	if err != nil {
		l.ErrorContext(ctx, "Completion call failed", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "completion call failed")
		m.CompletionErrorsTotal.Add(ctx, 1)
		return nil, fmt.Errorf("failed to get recommendations: %w", err)
	}

	places, err := normalizeRecommendations(raw, filters, time.Now())
	if err != nil {
		l.ErrorContext(ctx, "Failed to normalize completion response", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "normalization failed")
		return nil, err
	}

	span.SetAttributes(attribute.Int("places.count", len(places)))
	span.SetStatus(codes.Ok, "Recommendations generated")
	l.InfoContext(ctx, "Recommendation search completed", slog.Int("totalFound", len(places)))

	return &types.RecommendationsResponse{
		Places:     places,
		TotalFound: len(places),
		Source:     s.client.Source(),
	}, nil
}
