package geocoding

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func vworldPayload(x, y string) string {
	return fmt.Sprintf(`{"response":{"status":"OK","result":{"point":{"x":%q,"y":%q}}}}`, x, y)
}

func TestGeocode_RoadLevel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "getCoord", r.URL.Query().Get("request"))
		assert.Equal(t, "epsg:4326", r.URL.Query().Get("crs"))
		assert.Equal(t, "ROAD", r.URL.Query().Get("type"))
		fmt.Fprint(w, vworldPayload("127.027600", "37.497900"))
	}))
	defer srv.Close()

	s := NewVWorldService("test-key", testLogger())
	s.baseURL = srv.URL

	coords, err := s.Geocode(context.Background(), "서울 강남구 테헤란로 152")
	require.NoError(t, err)
	assert.InDelta(t, 37.4979, coords.Latitude, 1e-6)
	assert.InDelta(t, 127.0276, coords.Longitude, 1e-6)
}

func TestGeocode_ParcelFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Road-level lookup finds nothing for a parcel-style address.
		if r.URL.Query().Get("type") == "ROAD" {
			fmt.Fprint(w, `{"response":{"status":"NOT_FOUND"}}`)
			return
		}
		assert.Equal(t, "PARCEL", r.URL.Query().Get("type"))
		fmt.Fprint(w, vworldPayload("127.036400", "37.500700"))
	}))
	defer srv.Close()

	s := NewVWorldService("test-key", testLogger())
	s.baseURL = srv.URL

	coords, err := s.Geocode(context.Background(), "서울 강남구 역삼동 735")
	require.NoError(t, err)
	assert.InDelta(t, 37.5007, coords.Latitude, 1e-6)
	assert.InDelta(t, 127.0364, coords.Longitude, 1e-6)
}

func TestGeocode_NoResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"response":{"status":"NOT_FOUND"}}`)
	}))
	defer srv.Close()

	s := NewVWorldService("test-key", testLogger())
	s.baseURL = srv.URL

	_, err := s.Geocode(context.Background(), "존재하지 않는 주소")
	assert.ErrorIs(t, err, ErrNoResult)
}

func TestGeocode_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	s := NewVWorldService("test-key", testLogger())
	s.baseURL = srv.URL

	_, err := s.Geocode(context.Background(), "서울시청")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoResult)
}

func TestGeocode_MissingKey(t *testing.T) {
	s := NewVWorldService("", testLogger())
	_, err := s.Geocode(context.Background(), "서울시청")
	assert.ErrorIs(t, err, ErrAPIKeyMissing)
}

func TestGeocode_CachesResults(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		fmt.Fprint(w, vworldPayload("126.978000", "37.566500"))
	}))
	defer srv.Close()

	s := NewVWorldService("test-key", testLogger())
	s.baseURL = srv.URL

	first, err := s.Geocode(context.Background(), "서울시청")
	require.NoError(t, err)
	second, err := s.Geocode(context.Background(), "서울시청")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int64(1), calls.Load())
}
