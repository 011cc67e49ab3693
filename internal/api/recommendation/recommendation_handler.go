package recommendation

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/wanderseoul/daycourse/internal/api"
	"github.com/wanderseoul/daycourse/internal/api/geocoding"
	"github.com/wanderseoul/daycourse/internal/api/weather"
	"github.com/wanderseoul/daycourse/internal/types"
)

type Handler struct {
	recommendationService Service
	geocodingService      geocoding.Service
	weatherService        weather.Service
	logger                *slog.Logger
}

func NewHandler(recommendationService Service, geocodingService geocoding.Service, weatherService weather.Service, logger *slog.Logger) *Handler {
	return &Handler{
		recommendationService: recommendationService,
		geocodingService:      geocodingService,
		weatherService:        weatherService,
		logger:                logger,
	}
}

// Recommend handles POST /recommend. Geocoding failures are fatal to the
// request; weather failures degrade to an unknown condition; generation
// itself never fails, so the success path always answers 200 with an
// itinerary-shaped body.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("RecommendationHandler").Start(r.Context(), "Recommend", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/recommend"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "Recommend"))

	var req types.RecommendationRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Invalid request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := validateRequest(req); err != nil {
		l.WarnContext(ctx, "Invalid request fields", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	span.SetAttributes(attribute.String("app.location", req.Location))
	l = l.With(slog.String("location", req.Location), slog.String("date", req.Date))

	coords, err := h.geocodingService.Geocode(ctx, req.Location)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "geocoding failed")
		switch {
		case errors.Is(err, geocoding.ErrNoResult):
			l.WarnContext(ctx, "Address not found", slog.Any("error", err))
			api.ErrorResponse(w, r, http.StatusNotFound, "address not found")
		case errors.Is(err, geocoding.ErrAPIKeyMissing):
			l.ErrorContext(ctx, "Geocoding misconfigured", slog.Any("error", err))
			api.ErrorResponse(w, r, http.StatusInternalServerError, "geocoding is not configured")
		default:
			l.ErrorContext(ctx, "Geocoding upstream error", slog.Any("error", err))
			api.ErrorResponse(w, r, http.StatusBadGateway, "geocoding failed")
		}
		return
	}

	info, err := h.weatherService.GetWeather(ctx, coords.Latitude, coords.Longitude,
		strings.ReplaceAll(req.Date, "-", ""), req.Time)
	if err != nil {
		// Weather is context for the prompt, not a hard dependency.
		l.WarnContext(ctx, "Weather lookup failed, proceeding without it", slog.Any("error", err))
	}
	weatherText := weather.FormatWeatherText(info)
	l.DebugContext(ctx, "Resolved weather", slog.String("weather_text", weatherText))

	result := h.recommendationService.Generate(ctx, req, &weatherText)
	api.WriteJSONResponse(w, r, http.StatusOK, result)
}

func validateRequest(req types.RecommendationRequest) error {
	if strings.TrimSpace(req.Location) == "" {
		return errors.New("location must not be empty")
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return errors.New("date must be formatted as YYYY-MM-DD")
	}
	if _, err := time.Parse("15:04", req.Time); err != nil {
		return errors.New("time must be formatted as HH:MM")
	}
	return nil
}
