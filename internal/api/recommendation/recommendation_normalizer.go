package recommendation

// Models sometimes ignore the instruction to use Korean field names and fall
// back to the English names from the schema description. fieldNameMap renames
// those keys to the canonical Korean set the validator understands. A key
// mapped to the empty string is dropped entirely.
var fieldNameMap = map[string]string{
	"title":                   fieldCourseTitle,
	"total_estimated_minutes": fieldTotalMinutes,
	"stops":                   fieldStops,
	"name":                    fieldStopName,
	"desc":                    fieldDescription,
	"description":             fieldDescription,
	"typical_duration_min":    fieldDuration,
	"suggested_time_of_day":   fieldTimeOfDay,
	"category":                fieldCategory,

	// Chatter fields some models attach to every stop. Not part of the
	// schema, removed rather than passed through to clients.
	"reasoning": "",
}

// NormalizeFieldNames recursively renames object keys according to
// fieldNameMap, leaving unmapped keys, arrays and scalars untouched.
// Normalizing already-canonical input is a no-op, so the function is
// idempotent.
func NormalizeFieldNames(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, child := range val {
			key := k
			if mapped, ok := fieldNameMap[k]; ok {
				if mapped == "" {
					continue
				}
				key = mapped
			}
			out[key] = NormalizeFieldNames(child)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, child := range val {
			out[i] = NormalizeFieldNames(child)
		}
		return out
	default:
		return v
	}
}
