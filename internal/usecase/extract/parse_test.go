package extract

import "testing"

func TestParseResponse_Fields(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		wantDuration *int
		wantSkills   []string
		wantRemote   *bool
		wantAdaptive *bool
	}{
		{
			name:       "plain object",
			raw:        `{"duration_max": 30, "skills": ["Python"], "remote_required": false, "adaptive_required": true}`,
			wantSkills: []string{"Python"}, wantDuration: ptr(30), wantRemote: ptr(false), wantAdaptive: ptr(true),
		},
		{
			name: "all null",
			raw:  `{"duration_max": null, "skills": null, "remote_required": null, "adaptive_required": null}`,
		},
		{
			name:         "fenced with prose-free padding",
			raw:          "  ```json\n{\"duration_max\": 45.9}\n```  ",
			wantDuration: ptr(45),
		},
		{
			name:         "numeric string duration",
			raw:          `{"duration_max": "60"}`,
			wantDuration: ptr(60),
		},
		{
			name: "negative or garbage duration",
			raw:  `{"duration_max": -5, "skills": []}`,
		},
		{
			name:       "single skill string",
			raw:        `{"skills": " Java "}`,
			wantSkills: []string{"Java"},
		},
		{
			name:       "mixed skills",
			raw:        `{"skills": ["Go", "", 42, null, true]}`,
			wantSkills: []string{"Go", "42", "true"},
		},
		{
			name:         "string and number booleans",
			raw:          `{"remote_required": "Yes", "adaptive_required": 0}`,
			wantRemote:   ptr(true),
			wantAdaptive: ptr(false),
		},
		{
			name:       "unrecognized bool string",
			raw:        `{"remote_required": "maybe"}`,
			wantRemote: ptr(false),
		},
		{
			name:         "negative bool strings are false",
			raw:          `{"remote_required": "false", "adaptive_required": "no"}`,
			wantRemote:   ptr(false),
			wantAdaptive: ptr(false),
		},
		{
			name: "missing keys",
			raw:  `{}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := ParseResponse(tt.raw)
			if err != nil {
				t.Fatalf("ParseResponse: %v", err)
			}
			if !eqPtr(c.DurationMax, tt.wantDuration) {
				t.Errorf("duration_max = %v, want %v", deref(c.DurationMax), deref(tt.wantDuration))
			}
			if !eqPtr(c.RemoteRequired, tt.wantRemote) {
				t.Errorf("remote_required = %v, want %v", deref(c.RemoteRequired), deref(tt.wantRemote))
			}
			if !eqPtr(c.AdaptiveRequired, tt.wantAdaptive) {
				t.Errorf("adaptive_required = %v, want %v", deref(c.AdaptiveRequired), deref(tt.wantAdaptive))
			}
			if len(c.Skills) != len(tt.wantSkills) {
				t.Fatalf("skills = %v, want %v", c.Skills, tt.wantSkills)
			}
			for i := range tt.wantSkills {
				if c.Skills[i] != tt.wantSkills[i] {
					t.Errorf("skills[%d] = %q, want %q", i, c.Skills[i], tt.wantSkills[i])
				}
			}
		})
	}
}

func TestParseResponse_Errors(t *testing.T) {
	for _, raw := range []string{"", "```", "not json", `{"skills": [`, "null", `"text"`, `[1,2]`} {
		c, err := ParseResponse(raw)
		if err == nil {
			t.Errorf("ParseResponse(%q): expected error", raw)
		}
		if !c.IsEmpty() {
			t.Errorf("ParseResponse(%q) must return empty constraints on error", raw)
		}
	}
}

func TestStripFences(t *testing.T) {
	in := "```json\n{\"a\":1}\n``` trailing ```"
	if got := stripFences(in); got != "{\"a\":1}\n trailing" {
		t.Errorf("stripFences = %q", got)
	}
}

func ptr[T any](v T) *T { return &v }

func eqPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func deref[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}
