package recommendation

import (
	"encoding/json"
	"regexp"
	"strings"
)

var (
	codeFenceRe = regexp.MustCompile("(?s)```(?:json)?\\s*(.+?)```")
	objectRe    = regexp.MustCompile(`(?s)(\{.+\})`)
	arrayRe     = regexp.MustCompile(`(?s)(\[.+\])`)
)

// ParseModelResponse extracts a candidate itinerary object from raw model
// output. Models are asked for pure JSON but routinely wrap it in prose or
// markdown fences, or answer with a bare courses array, so each strategy is
// tried in turn. Returns nil when no strategy recovers an object.
func ParseModelResponse(raw string) map[string]any {
	if obj := decodeObject(raw); obj != nil {
		return obj
	}

	text := raw
	if m := codeFenceRe.FindStringSubmatch(text); m != nil {
		text = m[1]
		if obj := decodeObject(text); obj != nil {
			return obj
		}
	}

	if strings.HasPrefix(strings.TrimSpace(text), "[") {
		if arr := decodeArray(strings.TrimSpace(text)); arr != nil {
			return map[string]any{"courses": arr}
		}
	}

	// Last resort: greedy span search over the original text. The outermost
	// braces win, which is what we want for a single top-level object.
	if m := objectRe.FindStringSubmatch(text); m != nil {
		if obj := decodeObject(m[1]); obj != nil {
			return obj
		}
	}
	if m := arrayRe.FindStringSubmatch(text); m != nil {
		if arr := decodeArray(m[1]); arr != nil {
			return map[string]any{"courses": arr}
		}
	}
	return nil
}

func decodeObject(text string) map[string]any {
	var obj map[string]any
	if err := json.Unmarshal([]byte(text), &obj); err != nil {
		return nil
	}
	return obj
}

func decodeArray(text string) []any {
	var arr []any
	if err := json.Unmarshal([]byte(text), &arr); err != nil {
		return nil
	}
	return arr
}
