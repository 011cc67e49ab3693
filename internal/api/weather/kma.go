package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const kmaBaseURL = "https://apis.data.go.kr/1360000/VilageFcstInfoService_2.0/getVilageFcst"

// ErrAPIKeyMissing is a configuration fault for the KMA provider.
var ErrAPIKeyMissing = errors.New("weather: KMA service key is not configured")

// Publication times of the village forecast, in HHMM.
var kmaBaseTimes = []string{"0200", "0500", "0800", "1100", "1400", "1700", "2000", "2300"}

// forecastBucket holds the three categories we read from a forecast slot.
// Values stay as KMA code strings until mapCondition interprets them.
type forecastBucket struct {
	Temperature *string // TMP, °C
	Sky         *string // SKY code
	Precip      *string // PTY code
}

// KMAClient queries the national village forecast service.
type KMAClient struct {
	serviceKey string
	baseURL    string
	httpClient *http.Client

	// now is injectable so base-time selection is testable.
	now func() time.Time
}

func NewKMAClient(serviceKey string) *KMAClient {
	return &KMAClient{
		serviceKey: serviceKey,
		baseURL:    kmaBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		now:        time.Now,
	}
}

// pickBaseDateTime selects the forecast publication to query. For today that
// is the latest publication at or before now; for past or future dates the
// 11:00 publication of that date, which is a simplification the upstream
// accepts.
func (c *KMAClient) pickBaseDateTime(target time.Time) (string, string) {
	now := c.now()
	if target.Year() == now.Year() && target.YearDay() == now.YearDay() {
		nowHHMM := now.Format("1504")
		baseTime := kmaBaseTimes[0]
		for _, bt := range kmaBaseTimes {
			if bt <= nowHHMM {
				baseTime = bt
			}
		}
		return now.Format("20060102"), baseTime
	}
	return target.Format("20060102"), "1100"
}

type kmaResponse struct {
	Response struct {
		Body struct {
			Items struct {
				Item []struct {
					Category  string `json:"category"`
					FcstDate  string `json:"fcstDate"`
					FcstTime  string `json:"fcstTime"`
					FcstValue string `json:"fcstValue"`
				} `json:"item"`
			} `json:"items"`
		} `json:"body"`
	} `json:"response"`
}

// FetchForecast returns the TMP/SKY/PTY values forecast for the given grid
// cell at fcstTime (on-the-hour HHMM) on date (YYYYMMDD).
func (c *KMAClient) FetchForecast(ctx context.Context, nx, ny int, date, fcstTime string) (forecastBucket, error) {
	var bucket forecastBucket
	if c.serviceKey == "" {
		return bucket, ErrAPIKeyMissing
	}
	target, err := time.Parse("20060102", date)
	if err != nil {
		return bucket, fmt.Errorf("weather: bad forecast date %q: %w", date, err)
	}
	baseDate, baseTime := c.pickBaseDateTime(target)

	q := url.Values{}
	q.Set("serviceKey", c.serviceKey)
	q.Set("pageNo", "1")
	q.Set("numOfRows", "300")
	q.Set("dataType", "JSON")
	q.Set("base_date", baseDate)
	q.Set("base_time", baseTime)
	q.Set("nx", fmt.Sprintf("%d", nx))
	q.Set("ny", fmt.Sprintf("%d", ny))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return bucket, fmt.Errorf("building KMA request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return bucket, fmt.Errorf("calling KMA: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return bucket, fmt.Errorf("KMA returned status %d: %s", resp.StatusCode, body)
	}

	var decoded kmaResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return bucket, fmt.Errorf("decoding KMA response: %w", err)
	}

	found := false
	for _, item := range decoded.Response.Body.Items.Item {
		if item.FcstDate != date || item.FcstTime != fcstTime {
			continue
		}
		value := item.FcstValue
		switch item.Category {
		case "TMP":
			bucket.Temperature = &value
		case "SKY":
			bucket.Sky = &value
		case "PTY":
			bucket.Precip = &value
		}
		found = true
	}
	if !found {
		return bucket, fmt.Errorf("KMA response has no forecast for %s %s", date, fcstTime)
	}
	return bucket, nil
}

// mapCondition translates SKY/PTY codes into the Korean condition text used
// in prompts. Precipitation wins over sky state.
func mapCondition(sky, pty *string) string {
	if pty != nil {
		switch *pty {
		case "1", "5":
			return "비"
		case "2", "6":
			return "비/눈"
		case "3", "7":
			return "눈"
		case "4":
			return "소나기"
		}
	}
	if sky != nil {
		switch *sky {
		case "1":
			return "맑음"
		case "3":
			return "구름많음"
		case "4":
			return "흐림"
		}
	}
	return conditionUnknown
}
