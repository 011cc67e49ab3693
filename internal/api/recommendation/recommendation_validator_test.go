package recommendation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testStop(name, category string, duration int) map[string]any {
	return map[string]any{
		fieldStopName:    name,
		fieldDescription: "설명 텍스트",
		fieldDuration:    duration,
		fieldTimeOfDay:   "오후",
		fieldCategory:    category,
	}
}

// testCourse builds a course whose stop durations sum to 240 with a 300
// minute estimate, comfortably inside the travel-slack window.
func testCourse(title string) map[string]any {
	return map[string]any{
		fieldCourseTitle:  title,
		fieldTotalMinutes: 300,
		fieldStops: []any{
			testStop("스타벅스 강남역점", "카페", 60),
			testStop("국립중앙박물관", "박물관", 90),
			testStop("한강공원 반포지구", "공원", 90),
		},
	}
}

func testItinerary() map[string]any {
	return map[string]any{
		"courses": []any{
			testCourse("오전 코스"),
			testCourse("오후 코스"),
			testCourse("저녁 코스"),
		},
	}
}

func TestValidateItinerary_Acceptance(t *testing.T) {
	assert.True(t, ValidateItinerary(testItinerary()))
}

func TestValidateItinerary_AcceptsFloatIntegers(t *testing.T) {
	// encoding/json decodes numbers as float64; whole values must pass.
	itinerary := testItinerary()
	course := itinerary["courses"].([]any)[0].(map[string]any)
	course[fieldTotalMinutes] = float64(300)
	course[fieldStops].([]any)[0].(map[string]any)[fieldDuration] = float64(60)
	assert.True(t, ValidateItinerary(itinerary))
}

func TestValidateItinerary_TotalityOnMalformedInput(t *testing.T) {
	mutate := func(fn func(map[string]any)) map[string]any {
		itinerary := testItinerary()
		fn(itinerary)
		return itinerary
	}
	firstCourse := func(itinerary map[string]any) map[string]any {
		return itinerary["courses"].([]any)[0].(map[string]any)
	}
	firstStop := func(itinerary map[string]any) map[string]any {
		return firstCourse(itinerary)[fieldStops].([]any)[0].(map[string]any)
	}

	tests := []struct {
		name      string
		candidate map[string]any
	}{
		{"nil input", nil},
		{"empty object", map[string]any{}},
		{"courses not a list", map[string]any{"courses": "셋"}},
		{"courses is an object", map[string]any{"courses": map[string]any{}}},
		{"two courses", mutate(func(m map[string]any) {
			m["courses"] = m["courses"].([]any)[:2]
		})},
		{"four courses", mutate(func(m map[string]any) {
			m["courses"] = append(m["courses"].([]any), testCourse("네번째"))
		})},
		{"course is a list", mutate(func(m map[string]any) {
			m["courses"].([]any)[0] = []any{}
		})},
		{"stops missing", mutate(func(m map[string]any) {
			delete(firstCourse(m), fieldStops)
		})},
		{"too few stops", mutate(func(m map[string]any) {
			firstCourse(m)[fieldStops] = firstCourse(m)[fieldStops].([]any)[:2]
		})},
		{"too many stops", mutate(func(m map[string]any) {
			stops := firstCourse(m)[fieldStops].([]any)
			for i := 0; i < 5; i++ {
				stops = append(stops, testStop("추가 장소", "기타", 30))
			}
			firstCourse(m)[fieldStops] = stops
		})},
		{"stop is a string", mutate(func(m map[string]any) {
			firstCourse(m)[fieldStops].([]any)[0] = "장소"
		})},
		{"empty stop name", mutate(func(m map[string]any) {
			firstStop(m)[fieldStopName] = ""
		})},
		{"numeric stop name", mutate(func(m map[string]any) {
			firstStop(m)[fieldStopName] = 42
		})},
		{"empty description", mutate(func(m map[string]any) {
			firstStop(m)[fieldDescription] = ""
		})},
		{"missing description", mutate(func(m map[string]any) {
			delete(firstStop(m), fieldDescription)
		})},
		{"duration below range", mutate(func(m map[string]any) {
			firstStop(m)[fieldDuration] = 10
		})},
		{"duration above range", mutate(func(m map[string]any) {
			firstStop(m)[fieldDuration] = 241
		})},
		{"fractional duration", mutate(func(m map[string]any) {
			firstStop(m)[fieldDuration] = 60.5
		})},
		{"duration as string", mutate(func(m map[string]any) {
			firstStop(m)[fieldDuration] = "60"
		})},
		{"time of day out of enum", mutate(func(m map[string]any) {
			firstStop(m)[fieldTimeOfDay] = "새벽"
		})},
		{"category out of enum", mutate(func(m map[string]any) {
			firstStop(m)[fieldCategory] = "쇼핑"
		})},
		{"estimate below range", mutate(func(m map[string]any) {
			firstCourse(m)[fieldTotalMinutes] = 100
		})},
		{"estimate above range", mutate(func(m map[string]any) {
			firstCourse(m)[fieldTotalMinutes] = 901
		})},
		{"estimate as string", mutate(func(m map[string]any) {
			firstCourse(m)[fieldTotalMinutes] = "300"
		})},
		{"empty course title", mutate(func(m map[string]any) {
			firstCourse(m)[fieldCourseTitle] = ""
		})},
		{"missing course title", mutate(func(m map[string]any) {
			delete(firstCourse(m), fieldCourseTitle)
		})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				assert.False(t, ValidateItinerary(tt.candidate))
			})
		})
	}
}

func TestValidateItinerary_ForbiddenSuffixes(t *testing.T) {
	for _, name := range []string{"역삼동", "서울역 앞 거리", "가로수길 타운", "타임스퀘어", "동대문 프라자", "  성수동  "} {
		itinerary := testItinerary()
		course := itinerary["courses"].([]any)[0].(map[string]any)
		course[fieldStops].([]any)[0].(map[string]any)[fieldStopName] = name
		assert.False(t, ValidateItinerary(itinerary), "name %q should be rejected", name)
	}
}

func TestValidateItinerary_CategoryDiversity(t *testing.T) {
	itinerary := testItinerary()
	course := itinerary["courses"].([]any)[0].(map[string]any)
	course[fieldStops] = []any{
		testStop("스타벅스 강남역점", "카페", 60),
		testStop("블루보틀 성수점", "카페", 60),
		testStop("커피한약방 혜화점", "카페", 60),
	}
	course[fieldTotalMinutes] = 240 // 180 + 60 slack, otherwise valid
	assert.False(t, ValidateItinerary(itinerary))
}

func TestValidateItinerary_TravelSlackWindow(t *testing.T) {
	// Stop durations sum to 240, so estimates must lie in [270, 360].
	tests := []struct {
		estimate int
		want     bool
	}{
		{269, false},
		{270, true},
		{360, true},
		{361, false},
	}
	for _, tt := range tests {
		itinerary := testItinerary()
		course := itinerary["courses"].([]any)[0].(map[string]any)
		course[fieldTotalMinutes] = tt.estimate
		assert.Equal(t, tt.want, ValidateItinerary(itinerary), "estimate %d", tt.estimate)
	}
}
