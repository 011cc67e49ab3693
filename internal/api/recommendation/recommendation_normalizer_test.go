package recommendation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeFieldNames_EnglishToCanonical(t *testing.T) {
	candidate := map[string]any{
		"courses": []any{
			map[string]any{
				"title":                   "강남 브런치 코스",
				"total_estimated_minutes": 300,
				"stops": []any{
					map[string]any{
						"name":                  "스타벅스 강남역점",
						"desc":                  "브런치 카페",
						"typical_duration_min":  60,
						"suggested_time_of_day": "아침",
						"category":              "카페",
					},
				},
			},
		},
	}

	want := map[string]any{
		"courses": []any{
			map[string]any{
				fieldCourseTitle:  "강남 브런치 코스",
				fieldTotalMinutes: 300,
				fieldStops: []any{
					map[string]any{
						fieldStopName:    "스타벅스 강남역점",
						fieldDescription: "브런치 카페",
						fieldDuration:    60,
						fieldTimeOfDay:   "아침",
						fieldCategory:    "카페",
					},
				},
			},
		},
	}

	assert.Equal(t, want, NormalizeFieldNames(candidate))
}

func TestNormalizeFieldNames_LongDescriptionAlias(t *testing.T) {
	got := NormalizeFieldNames(map[string]any{"description": "설명"})
	assert.Equal(t, map[string]any{fieldDescription: "설명"}, got)
}

func TestNormalizeFieldNames_Idempotent(t *testing.T) {
	canonical := testItinerary()
	once := NormalizeFieldNames(canonical)
	twice := NormalizeFieldNames(once)
	assert.Equal(t, canonical, once)
	assert.Equal(t, once, twice)
}

func TestNormalizeFieldNames_DropsChatterKeys(t *testing.T) {
	got := NormalizeFieldNames(map[string]any{
		"name":      "봉은사",
		"reasoning": "고즈넉한 분위기라서 선택",
	})
	assert.Equal(t, map[string]any{fieldStopName: "봉은사"}, got)
}

func TestNormalizeFieldNames_LeavesUnmappedValuesAlone(t *testing.T) {
	assert.Equal(t, "문자열", NormalizeFieldNames("문자열"))
	assert.Equal(t, 42, NormalizeFieldNames(42))
	assert.Nil(t, NormalizeFieldNames(nil))
	assert.Equal(t,
		map[string]any{"photo_url": "", "weather_text": "맑음"},
		NormalizeFieldNames(map[string]any{"photo_url": "", "weather_text": "맑음"}))
	assert.Equal(t, []any{1, "둘", nil}, NormalizeFieldNames([]any{1, "둘", nil}))
}
