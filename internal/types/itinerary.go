package types

import (
	"time"

	"github.com/google/uuid"
)

// Wire field names are Korean by contract: the LLM is instructed to answer
// with Korean keys and the mobile client consumes them as-is.
type Itinerary struct {
	Courses []Course `json:"courses"`
}

// Course is one complete day-plan variant.
type Course struct {
	Title                 string `json:"코스명"`
	TotalEstimatedMinutes int    `json:"총예상소요시간"`
	Stops                 []Stop `json:"스톱"`
}

// Stop is a single concrete venue within a course.
type Stop struct {
	Name            string `json:"장소명"`
	Description     string `json:"설명"`
	DurationMinutes int    `json:"권장체류시간"`
	TimeOfDay       string `json:"권장시간대"`
	Category        string `json:"카테고리"`
	PhotoURL        string `json:"photo_url"`
}

// RecommendationRequest is the body of POST /recommend.
type RecommendationRequest struct {
	Location string `json:"location"`
	Date     string `json:"date"` // YYYY-MM-DD
	Time     string `json:"time"` // HH:MM
}

// RecommendationResponse is always returned with status 200; a failed
// generation is communicated in-band via the "생성 실패" course.
type RecommendationResponse struct {
	Courses     []Course `json:"courses"`
	WeatherText *string  `json:"weather_text"`
}

// WeatherInfo is the condition/temperature pair resolved for the request.
// Temperature is nil when no provider could produce one.
type WeatherInfo struct {
	Temperature *float64 `json:"temperature"`
	Condition   string   `json:"condition"`
}

// Coordinates in WGS84.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// LlmInteraction is one recorded model attempt, kept for debugging and
// quality sampling.
type LlmInteraction struct {
	ID           uuid.UUID `json:"id"`
	Prompt       string    `json:"prompt"`
	ResponseText string    `json:"response_text"`
	ModelUsed    string    `json:"model_used"`
	LatencyMs    int       `json:"latency_ms"`
	CreatedAt    time.Time `json:"created_at"`
}
