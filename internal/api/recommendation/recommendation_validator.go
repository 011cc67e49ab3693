package recommendation

import (
	"strings"
)

const (
	fieldCourseTitle  = "코스명"
	fieldTotalMinutes = "총예상소요시간"
	fieldStops        = "스톱"
	fieldStopName     = "장소명"
	fieldDescription  = "설명"
	fieldDuration     = "권장체류시간"
	fieldTimeOfDay    = "권장시간대"
	fieldCategory     = "카테고리"
	fieldPhotoURL     = "photo_url"
)

const (
	courseCount = 3
	minStops    = 3
	maxStops    = 7

	minStopMinutes = 15
	maxStopMinutes = 240

	minCourseMinutes = 120
	maxCourseMinutes = 900

	// A course total must cover the stops plus 30-120 minutes of travel
	// and buffer time, otherwise the estimate is not plausible.
	minTravelSlackMinutes = 30
	maxTravelSlackMinutes = 120
)

// Name endings that indicate a generic area (neighbourhood, street, plaza)
// instead of a concrete venue. "강남동" is rejected, "스타벅스 강남역점" is not.
var forbiddenNameSuffixes = []string{"동", "읍", "면", "리", "거리", "타운", "스퀘어", "프라자"}

var validTimesOfDay = map[string]bool{
	"아침": true, "오후": true, "저녁": true, "밤": true,
}

var validCategories = map[string]bool{
	"카페": true, "식당": true, "박물관": true, "공원": true,
	"야경": true, "바": true, "액티비티": true, "기타": true,
}

// ValidateItinerary reports whether a parsed, normalized model response
// satisfies the itinerary schema and its business rules. The input is
// untrusted: any shape, including nils and wrongly typed fields, must yield
// false rather than a panic.
func ValidateItinerary(candidate map[string]any) bool {
	if candidate == nil {
		return false
	}
	courses, ok := candidate["courses"].([]any)
	if !ok || len(courses) != courseCount {
		return false
	}
	for _, c := range courses {
		course, ok := c.(map[string]any)
		if !ok {
			return false
		}
		if !validateCourse(course) {
			return false
		}
	}
	return true
}

func validateCourse(course map[string]any) bool {
	stopsRaw, ok := course[fieldStops].([]any)
	if !ok || len(stopsRaw) < minStops || len(stopsRaw) > maxStops {
		return false
	}

	categories := make(map[string]bool)
	totalStopMinutes := 0
	for _, s := range stopsRaw {
		stop, ok := s.(map[string]any)
		if !ok {
			return false
		}
		duration, ok := validateStop(stop)
		if !ok {
			return false
		}
		categories[stop[fieldCategory].(string)] = true
		totalStopMinutes += duration
	}
	if len(categories) < 2 {
		return false
	}

	estimate, ok := intField(course, fieldTotalMinutes)
	if !ok || estimate < minCourseMinutes || estimate > maxCourseMinutes {
		return false
	}
	if estimate < totalStopMinutes+minTravelSlackMinutes || estimate > totalStopMinutes+maxTravelSlackMinutes {
		return false
	}

	title, ok := course[fieldCourseTitle].(string)
	return ok && title != ""
}

// validateStop returns the stop duration so the caller can accumulate it.
func validateStop(stop map[string]any) (int, bool) {
	for _, key := range []string{fieldStopName, fieldDescription, fieldDuration, fieldTimeOfDay, fieldCategory} {
		if _, present := stop[key]; !present {
			return 0, false
		}
	}

	name, ok := stop[fieldStopName].(string)
	if !ok || name == "" {
		return 0, false
	}
	desc, ok := stop[fieldDescription].(string)
	if !ok || desc == "" {
		return 0, false
	}
	duration, ok := intField(stop, fieldDuration)
	if !ok || duration < minStopMinutes || duration > maxStopMinutes {
		return 0, false
	}
	timeOfDay, ok := stop[fieldTimeOfDay].(string)
	if !ok || !validTimesOfDay[timeOfDay] {
		return 0, false
	}
	category, ok := stop[fieldCategory].(string)
	if !ok || !validCategories[category] {
		return 0, false
	}
	trimmed := strings.TrimSpace(name)
	for _, suffix := range forbiddenNameSuffixes {
		if strings.HasSuffix(trimmed, suffix) {
			return 0, false
		}
	}
	return duration, true
}

// intField reads a whole-number field. encoding/json decodes numbers into
// float64, so 60.0 counts as an integer while 60.5 does not.
func intField(m map[string]any, key string) (int, bool) {
	switch v := m[key].(type) {
	case int:
		return v, true
	case float64:
		if v != float64(int(v)) {
			return 0, false
		}
		return int(v), true
	default:
		return 0, false
	}
}
