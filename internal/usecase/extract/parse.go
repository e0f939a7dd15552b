package extract

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/kailas-cloud/assessrec/internal/domain/constraint"
)

var errEmptyResponse = errors.New("empty model response")

// ParseResponse strips markdown fences and decodes the constraint object.
// Fields with unusable values are left absent rather than failing the parse.
func ParseResponse(raw string) (constraint.Constraints, error) {
	cleaned := stripFences(raw)
	if cleaned == "" {
		return constraint.Empty(), errEmptyResponse
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return constraint.Empty(), fmt.Errorf("parse model response: %w", err)
	}
	if data == nil {
		return constraint.Empty(), errors.New("model response is not a JSON object")
	}

	return constraint.Constraints{
		DurationMax:      coerceDuration(data["duration_max"]),
		Skills:           coerceSkills(data["skills"]),
		RemoteRequired:   coerceBool(data["remote_required"]),
		AdaptiveRequired: coerceBool(data["adaptive_required"]),
	}, nil
}

func stripFences(raw string) string {
	raw = strings.ReplaceAll(raw, "```json", "")
	raw = strings.ReplaceAll(raw, "```", "")
	return strings.TrimSpace(raw)
}

func coerceDuration(v any) *int {
	var f float64
	switch val := v.(type) {
	case float64:
		f = val
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return nil
		}
		f = parsed
	default:
		return nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 || f > math.MaxInt32 {
		return nil
	}
	n := int(f)
	return &n
}

func coerceSkills(v any) []string {
	switch val := v.(type) {
	case string:
		if s := strings.TrimSpace(val); s != "" {
			return []string{s}
		}
		return nil
	case []any:
		skills := make([]string, 0, len(val))
		for _, item := range val {
			s := strings.TrimSpace(coerceString(item))
			if s != "" {
				skills = append(skills, s)
			}
		}
		if len(skills) == 0 {
			return nil
		}
		return skills
	default:
		return nil
	}
}

func coerceBool(v any) *bool {
	var b bool
	switch val := v.(type) {
	case bool:
		b = val
	case string:
		lower := strings.ToLower(strings.TrimSpace(val))
		b = lower == "true" || lower == "yes" || lower == "1"
	case float64:
		b = val != 0
	default:
		return nil
	}
	return &b
}

func coerceString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprint(val)
	}
}
