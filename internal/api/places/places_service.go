// Package places enriches validated stops with a representative photo from
// the Google Places API. Enrichment is cosmetic: every failure degrades to an
// empty URL and is never surfaced to the caller.
package places

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/patrickmn/go-cache"
	"googlemaps.github.io/maps"
)

const (
	photoBaseURL  = "https://maps.googleapis.com/maps/api/place/photo"
	photoMaxWidth = 400

	photoCacheTTL = 6 * time.Hour
)

// PhotoFinder resolves a place name to a photo URL, or "" when none exists.
type PhotoFinder interface {
	FindPhotoURL(ctx context.Context, placeName string) string
}

// ServiceImpl implements PhotoFinder on top of the Places text search.
type ServiceImpl struct {
	logger *slog.Logger
	client *maps.Client
	apiKey string
	photos *cache.Cache
}

func NewService(apiKey string, logger *slog.Logger) (*ServiceImpl, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating maps client: %w", err)
	}
	return &ServiceImpl{
		logger: logger,
		client: client,
		apiKey: apiKey,
		photos: cache.New(photoCacheTTL, photoCacheTTL*2),
	}, nil
}

// FindPhotoURL looks up the first photo of the best text-search match.
// Place names repeat across requests for the same area, so results
// (including misses) are cached.
func (s *ServiceImpl) FindPhotoURL(ctx context.Context, placeName string) string {
	if placeName == "" {
		return ""
	}
	if cached, ok := s.photos.Get(placeName); ok {
		return cached.(string)
	}

	resp, err := s.client.FindPlaceFromText(ctx, &maps.FindPlaceFromTextRequest{
		Input:     placeName,
		InputType: maps.FindPlaceFromTextInputTypeTextQuery,
		Fields: []maps.PlaceSearchFieldMask{
			maps.PlaceSearchFieldMaskPhotos,
			maps.PlaceSearchFieldMaskPlaceID,
		},
	})
	if err != nil {
		s.logger.WarnContext(ctx, "Place photo lookup failed",
			slog.String("place_name", placeName), slog.Any("error", err))
		return ""
	}

	photoURL := ""
	if len(resp.Candidates) > 0 && len(resp.Candidates[0].Photos) > 0 {
		photoURL = s.buildPhotoURL(resp.Candidates[0].Photos[0].PhotoReference)
	}
	s.photos.Set(placeName, photoURL, cache.DefaultExpiration)
	return photoURL
}

func (s *ServiceImpl) buildPhotoURL(photoReference string) string {
	if photoReference == "" {
		return ""
	}
	q := url.Values{}
	q.Set("maxwidth", fmt.Sprintf("%d", photoMaxWidth))
	q.Set("photoreference", photoReference)
	q.Set("key", s.apiKey)
	return photoBaseURL + "?" + q.Encode()
}

var _ PhotoFinder = (*ServiceImpl)(nil)
