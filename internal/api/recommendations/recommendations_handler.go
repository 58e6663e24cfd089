package recommendations

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/encontros-app/date-spots-api/app/observability/metrics"
	"github.com/encontros-app/date-spots-api/internal/api"
	"github.com/encontros-app/date-spots-api/internal/types"
)

type Handler struct {
	service Service
	logger  *slog.Logger
}

func NewHandler(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// SearchRecommendations handles POST /api/v1/recommendations. It decodes the
// filter payload, runs the pipeline and writes either the success envelope
// or `{"error": ...}` with 400 (invalid filters) / 500 (pipeline failure).
func (h *Handler) SearchRecommendations(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("RecommendationsHandler").Start(r.Context(), "SearchRecommendations", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/recommendations"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "SearchRecommendations"))
	l.DebugContext(ctx, "Search recommendations handler invoked")

	m := metrics.Get()
	start := time.Now()

	var filters types.PlaceFilters
	if err := api.DecodeJSONBody(w, r, &filters); err != nil {
		l.ErrorContext(ctx, "Failed to decode request body", slog.Any("error", err))
		m.SearchRequestsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "bad_request")))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.service.SearchPlaces(ctx, filters)
	if err != nil {
		if errors.Is(err, types.ErrIncompleteFilters) {
			l.WarnContext(ctx, "Invalid filters", slog.Any("error", err))
			m.SearchRequestsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "invalid_filters")))
			api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}
		l.ErrorContext(ctx, "Recommendation search failed", slog.Any("error", err))
		span.RecordError(err)
		m.SearchRequestsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "error")))
		api.ErrorResponse(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	m.SearchRequestsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "success")))
	m.SearchDurationSeconds.Record(ctx, time.Since(start).Seconds())
	m.RecommendationsPerResponse.Record(ctx, int64(resp.TotalFound))

	span.SetAttributes(semconv.HTTPResponseStatusCodeKey.Int(http.StatusOK))
	l.InfoContext(ctx, "Recommendations returned", slog.Int("totalFound", resp.TotalFound))
	api.WriteJSONResponse(w, r, http.StatusOK, resp)
}
