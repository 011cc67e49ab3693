// Package geocoding resolves a free-text address to WGS84 coordinates via
// the VWorld address API.
package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/wanderseoul/daycourse/internal/types"
)

const (
	vworldBaseURL = "https://api.vworld.kr/req/address"

	coordCacheTTL   = 30 * time.Minute
	coordCacheSweep = 10 * time.Minute
)

var (
	// ErrAPIKeyMissing is a configuration fault, surfaced immediately.
	ErrAPIKeyMissing = errors.New("geocoding: VWorld API key is not configured")
	// ErrNoResult means the address matched neither a road-level nor a
	// parcel-level entry.
	ErrNoResult = errors.New("geocoding: no result for address")
)

// Service resolves addresses to coordinates.
type Service interface {
	Geocode(ctx context.Context, address string) (types.Coordinates, error)
}

var _ Service = (*VWorldService)(nil)

// VWorldService queries the road-level address type first and falls back to
// parcel-level on any failure, the usual pattern for Korean addresses that
// predate the road-name system.
type VWorldService struct {
	logger     *slog.Logger
	apiKey     string
	baseURL    string
	httpClient *http.Client
	coords     *cache.Cache
}

func NewVWorldService(apiKey string, logger *slog.Logger) *VWorldService {
	return &VWorldService{
		logger:     logger,
		apiKey:     apiKey,
		baseURL:    vworldBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		coords:     cache.New(coordCacheTTL, coordCacheSweep),
	}
}

func (s *VWorldService) Geocode(ctx context.Context, address string) (types.Coordinates, error) {
	if s.apiKey == "" {
		return types.Coordinates{}, ErrAPIKeyMissing
	}
	if cached, ok := s.coords.Get(address); ok {
		return cached.(types.Coordinates), nil
	}

	point, err := s.lookup(ctx, address, "ROAD")
	if err != nil {
		s.logger.DebugContext(ctx, "Road-level geocoding failed, trying parcel",
			slog.String("address", address), slog.Any("error", err))
		point, err = s.lookup(ctx, address, "PARCEL")
	}
	if err != nil {
		return types.Coordinates{}, err
	}

	s.coords.Set(address, point, cache.DefaultExpiration)
	return point, nil
}

type vworldResponse struct {
	Response struct {
		Status string `json:"status"`
		Result struct {
			Point struct {
				X string `json:"x"` // longitude
				Y string `json:"y"` // latitude
			} `json:"point"`
		} `json:"result"`
	} `json:"response"`
}

func (s *VWorldService) lookup(ctx context.Context, address, addrType string) (types.Coordinates, error) {
	q := url.Values{}
	q.Set("service", "address")
	q.Set("request", "getCoord")
	q.Set("version", "2.0")
	q.Set("crs", "epsg:4326")
	q.Set("format", "json")
	q.Set("type", addrType)
	q.Set("address", address)
	q.Set("refine", "true")
	q.Set("simple", "false")
	q.Set("key", s.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return types.Coordinates{}, fmt.Errorf("building VWorld request: %w", err)
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return types.Coordinates{}, fmt.Errorf("calling VWorld: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return types.Coordinates{}, fmt.Errorf("VWorld returned status %d: %s", resp.StatusCode, body)
	}

	var decoded vworldResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return types.Coordinates{}, fmt.Errorf("decoding VWorld response: %w", err)
	}

	lon, lonErr := strconv.ParseFloat(decoded.Response.Result.Point.X, 64)
	lat, latErr := strconv.ParseFloat(decoded.Response.Result.Point.Y, 64)
	if lonErr != nil || latErr != nil {
		return types.Coordinates{}, fmt.Errorf("%w (%s): %s", ErrNoResult, addrType, address)
	}
	return types.Coordinates{Latitude: lat, Longitude: lon}, nil
}
