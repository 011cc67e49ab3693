// Package weather resolves a condition/temperature pair for coordinates and
// a forecast slot, preferring the national grid forecast and falling back to
// the global open forecast service.
package weather

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/wanderseoul/daycourse/internal/types"
)

const conditionUnknown = "알수없음"

// Service resolves weather for a request.
type Service interface {
	// GetWeather takes the date as YYYYMMDD and the time as HH:MM or HHMM.
	GetWeather(ctx context.Context, lat, lon float64, date, timeStr string) (types.WeatherInfo, error)
}

var _ Service = (*ServiceImpl)(nil)

type ServiceImpl struct {
	logger    *slog.Logger
	kma       *KMAClient
	openMeteo *OpenMeteoClient
}

func NewService(kma *KMAClient, openMeteo *OpenMeteoClient, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:    logger,
		kma:       kma,
		openMeteo: openMeteo,
	}
}

func (s *ServiceImpl) GetWeather(ctx context.Context, lat, lon float64, date, timeStr string) (types.WeatherInfo, error) {
	if len(date) != 8 {
		return types.WeatherInfo{Condition: conditionUnknown}, fmt.Errorf("weather: bad date %q, want YYYYMMDD", date)
	}
	fcstTime := NearestForecastHour(timeStr)

	nx, ny := LatLonToGrid(lat, lon)
	bucket, err := s.kma.FetchForecast(ctx, nx, ny, date, fcstTime)
	if err == nil {
		return bucketToInfo(bucket), nil
	}
	s.logger.WarnContext(ctx, "KMA forecast failed, falling back to Open-Meteo",
		slog.Int("nx", nx), slog.Int("ny", ny), slog.Any("error", err))

	targetHour, _ := strconv.Atoi(fcstTime[:2])
	temperature, condition, err := s.openMeteo.FetchForecast(ctx, lat, lon, date, targetHour)
	if err != nil {
		return types.WeatherInfo{Condition: conditionUnknown}, err
	}
	return types.WeatherInfo{Temperature: temperature, Condition: condition}, nil
}

func bucketToInfo(bucket forecastBucket) types.WeatherInfo {
	info := types.WeatherInfo{Condition: mapCondition(bucket.Sky, bucket.Precip)}
	if bucket.Temperature != nil {
		if t, err := strconv.ParseFloat(*bucket.Temperature, 64); err == nil {
			info.Temperature = &t
		}
	}
	return info
}

// NearestForecastHour snaps HH:MM (or HHMM) to the nearest on-the-hour slot,
// rounding half up. Malformed input gets the midday slot.
func NearestForecastHour(timeStr string) string {
	hhmm := strings.ReplaceAll(timeStr, ":", "")
	if len(hhmm) != 4 {
		return "1200"
	}
	h, errH := strconv.Atoi(hhmm[:2])
	m, errM := strconv.Atoi(hhmm[2:])
	if errH != nil || errM != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return "1200"
	}
	if m >= 30 {
		h = (h + 1) % 24
	}
	return fmt.Sprintf("%02d00", h)
}

// FormatWeatherText renders the prompt-facing summary, e.g. "맑음, 27°C".
// Returns "날씨 정보 없음" when neither part is known.
func FormatWeatherText(info types.WeatherInfo) string {
	hasCondition := info.Condition != "" && info.Condition != conditionUnknown
	switch {
	case hasCondition && info.Temperature != nil:
		return fmt.Sprintf("%s, %.0f°C", info.Condition, *info.Temperature)
	case hasCondition:
		return info.Condition
	case info.Temperature != nil:
		return fmt.Sprintf("%.0f°C", *info.Temperature)
	default:
		return "날씨 정보 없음"
	}
}
