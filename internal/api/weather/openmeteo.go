package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const openMeteoBaseURL = "https://api.open-meteo.com/v1/forecast"

// WMO weather codes to the Korean condition text. Open-Meteo needs no key,
// which makes it the fallback when the KMA call fails.
var wmoConditions = map[int]string{
	0:  "맑음",
	1:  "대체로 맑음",
	2:  "부분적으로 흐림",
	3:  "흐림",
	45: "안개",
	48: "착빙 안개",
	51: "이슬비(약)",
	53: "이슬비(보통)",
	55: "이슬비(강)",
	56: "어는 이슬비(약)",
	57: "어는 이슬비(강)",
	61: "비(약)",
	63: "비(보통)",
	65: "비(강)",
	66: "어는 비(약)",
	67: "어는 비(강)",
	71: "눈(약)",
	73: "눈(보통)",
	75: "눈(강)",
	77: "눈송이",
	80: "소나기(약)",
	81: "소나기(보통)",
	82: "소나기(강)",
	85: "소낙눈(약)",
	86: "소낙눈(강)",
	95: "뇌우",
	96: "뇌우/우박(약)",
	99: "뇌우/우박(강)",
}

// OpenMeteoClient queries the global open forecast service.
type OpenMeteoClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewOpenMeteoClient() *OpenMeteoClient {
	return &OpenMeteoClient{
		baseURL:    openMeteoBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type openMeteoResponse struct {
	Hourly struct {
		Time          []string  `json:"time"`
		Temperature2M []float64 `json:"temperature_2m"`
		WeatherCode   []int     `json:"weathercode"`
	} `json:"hourly"`
}

// FetchForecast returns temperature and condition for the hour on date
// (YYYYMMDD) closest to targetHour. When the date is outside the returned
// range the first entry is used rather than failing.
func (c *OpenMeteoClient) FetchForecast(ctx context.Context, lat, lon float64, date string, targetHour int) (*float64, string, error) {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("hourly", "temperature_2m,weathercode")
	q.Set("timezone", "Asia/Seoul")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, "", fmt.Errorf("building Open-Meteo request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("calling Open-Meteo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, "", fmt.Errorf("Open-Meteo returned status %d: %s", resp.StatusCode, body)
	}

	var decoded openMeteoResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, "", fmt.Errorf("decoding Open-Meteo response: %w", err)
	}

	hours := decoded.Hourly.Time
	if len(hours) == 0 {
		return nil, "", fmt.Errorf("Open-Meteo response has no hourly data")
	}

	wantDate := fmt.Sprintf("%s-%s-%s", date[:4], date[4:6], date[6:])
	bestIdx := -1
	minGap := 999
	for i, t := range hours {
		// t looks like "2025-08-24T14:00".
		if len(t) < 13 || t[:10] != wantDate {
			continue
		}
		hh, err := strconv.Atoi(t[11:13])
		if err != nil {
			continue
		}
		gap := hh - targetHour
		if gap < 0 {
			gap = -gap
		}
		if gap < minGap {
			minGap = gap
			bestIdx = i
		}
	}
	if bestIdx < 0 {
		bestIdx = 0
	}

	var temperature *float64
	if bestIdx < len(decoded.Hourly.Temperature2M) {
		t := decoded.Hourly.Temperature2M[bestIdx]
		temperature = &t
	}
	condition := conditionUnknown
	if bestIdx < len(decoded.Hourly.WeatherCode) {
		if mapped, ok := wmoConditions[decoded.Hourly.WeatherCode[bestIdx]]; ok {
			condition = mapped
		}
	}
	return temperature, condition, nil
}
