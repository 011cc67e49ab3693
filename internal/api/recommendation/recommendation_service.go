package recommendation

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/wanderseoul/daycourse/internal/api/llm"
	"github.com/wanderseoul/daycourse/internal/api/places"
	"github.com/wanderseoul/daycourse/internal/types"
)

const (
	maxAttempts    = 3
	llmCallTimeout = 30 * time.Second

	// Error text carried into the fallback stop description is bounded;
	// callers must not rely on its format.
	errTextLimit = 200

	enrichConcurrency = 4
)

// Fixed, increasing delays between attempts. Not configurable per call: the
// whole loop has to stay within a few seconds of overhead.
var backoffDelays = [maxAttempts - 1]time.Duration{
	800 * time.Millisecond,
	1600 * time.Millisecond,
}

// Generation walks Attempting(1..3) -> Succeeded | Exhausted.
type generationState int

const (
	stateAttempting generationState = iota
	stateSucceeded
	stateExhausted
)

// Ensure implementation satisfies the interface
var _ Service = (*ServiceImpl)(nil)

// Service produces a day-course itinerary for a location/date/time. Generate
// never fails: once retries are exhausted it returns the deterministic
// fallback itinerary, shape-compatible with a successful result.
type Service interface {
	Generate(ctx context.Context, req types.RecommendationRequest, weatherText *string) types.RecommendationResponse
}

// ServiceImpl drives the LLM attempt loop: prompt -> model -> parse ->
// normalize -> validate, with fixed backoff between failed attempts.
type ServiceImpl struct {
	logger      *slog.Logger
	llmClient   llm.Client
	photoFinder places.PhotoFinder
	recorder    InteractionRecorder

	// sleep is swapped out in tests so the retry path runs without
	// wall-clock waits.
	sleep func(ctx context.Context, d time.Duration)
}

func NewService(llmClient llm.Client, photoFinder places.PhotoFinder, recorder InteractionRecorder, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:      logger,
		llmClient:   llmClient,
		photoFinder: photoFinder,
		recorder:    recorder,
		sleep:       sleepWithContext,
	}
}

func (s *ServiceImpl) Generate(ctx context.Context, req types.RecommendationRequest, weatherText *string) types.RecommendationResponse {
	ctx, span := otel.Tracer("Recommendation").Start(ctx, "Generate", trace.WithAttributes(
		attribute.String("app.location", req.Location),
		attribute.String("app.date", req.Date),
	))
	defer span.End()

	promptWeather := ""
	if weatherText != nil {
		promptWeather = *weatherText
	}
	userPrompt := generateCoursePrompt(req.Location, req.Date, req.Time, promptWeather)

	state := stateAttempting
	lastError := ""
	var itinerary *types.Itinerary

	for attempt := 1; state == stateAttempting; attempt++ {
		result, errText := s.runAttempt(ctx, userPrompt, attempt)
		if result != nil {
			itinerary = result
			state = stateSucceeded
			break
		}
		lastError = errText
		s.logger.WarnContext(ctx, "Itinerary attempt failed",
			slog.Int("attempt", attempt), slog.String("error", lastError))
		if attempt >= maxAttempts {
			state = stateExhausted
			break
		}
		s.sleep(ctx, backoffDelays[attempt-1])
	}

	if state == stateExhausted {
		s.logger.ErrorContext(ctx, "Itinerary generation exhausted all attempts",
			slog.String("last_error", lastError))
		return types.RecommendationResponse{
			Courses:     fallbackCourses(lastError),
			WeatherText: weatherText,
		}
	}

	s.enrichStops(ctx, itinerary)
	return types.RecommendationResponse{
		Courses:     itinerary.Courses,
		WeatherText: weatherText,
	}
}

// runAttempt performs one model call and the full parse/normalize/validate
// pipeline. It returns either a decoded itinerary or the error text to carry
// into the next attempt.
func (s *ServiceImpl) runAttempt(ctx context.Context, userPrompt string, attempt int) (*types.Itinerary, string) {
	callCtx, cancel := context.WithTimeout(ctx, llmCallTimeout)
	defer cancel()

	start := time.Now()
	raw, err := s.llmClient.GenerateCompletion(callCtx, systemPrompt, userPrompt)
	latencyMs := int(time.Since(start).Milliseconds())
	if err != nil {
		return nil, truncateText(err.Error(), errTextLimit)
	}

	if _, err := s.recorder.SaveInteraction(ctx, types.LlmInteraction{
		Prompt:       userPrompt,
		ResponseText: raw,
		ModelUsed:    s.llmClient.Model(),
		LatencyMs:    latencyMs,
	}); err != nil {
		s.logger.WarnContext(ctx, "Failed to record LLM interaction",
			slog.Int("attempt", attempt), slog.Any("error", err))
	}

	candidate := ParseModelResponse(raw)
	if candidate == nil {
		return nil, "응답 파싱 실패: " + truncateText(raw, errTextLimit)
	}

	normalized, ok := NormalizeFieldNames(candidate).(map[string]any)
	if !ok || !ValidateItinerary(normalized) {
		return nil, "스키마 미스매치: " + truncateText(raw, errTextLimit)
	}

	itinerary, err := decodeItinerary(normalized)
	if err != nil {
		return nil, truncateText(err.Error(), errTextLimit)
	}
	return itinerary, ""
}

// decodeItinerary converts the validated dynamic value into typed structs.
// Validation already guaranteed the shape, so a failure here is a bug, not a
// model problem, but it still only costs one attempt.
func decodeItinerary(candidate map[string]any) (*types.Itinerary, error) {
	buf, err := json.Marshal(candidate)
	if err != nil {
		return nil, fmt.Errorf("re-encoding validated candidate: %w", err)
	}
	var itinerary types.Itinerary
	if err := json.Unmarshal(buf, &itinerary); err != nil {
		return nil, fmt.Errorf("decoding validated candidate: %w", err)
	}
	return &itinerary, nil
}

// enrichStops fills photo URLs for all stops. Lookups are independent, so
// they run concurrently; failures leave the URL empty and never fail the
// request.
func (s *ServiceImpl) enrichStops(ctx context.Context, itinerary *types.Itinerary) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(enrichConcurrency)
	for i := range itinerary.Courses {
		for j := range itinerary.Courses[i].Stops {
			stop := &itinerary.Courses[i].Stops[j]
			g.Go(func() error {
				stop.PhotoURL = s.photoFinder.FindPhotoURL(gctx, stop.Name)
				return nil
			})
		}
	}
	_ = g.Wait()
}

// fallbackCourses is the deterministic placeholder returned once retries are
// exhausted. Same shape as a real result, so consumers need no error branch.
func fallbackCourses(lastError string) []types.Course {
	return []types.Course{
		{
			Title:                 "생성 실패",
			TotalEstimatedMinutes: 0,
			Stops: []types.Stop{
				{
					Name:            "파싱 실패",
					Description:     lastError,
					DurationMinutes: 0,
					TimeOfDay:       "아침",
					Category:        "기타",
					PhotoURL:        "",
				},
			},
		},
	}
}

func sleepWithContext(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

func truncateText(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}
