// Package constraint holds structured requirements extracted from a job description.
package constraint

import "strings"

// Constraints is the per-request requirement set. Nil pointers mean "no constraint".
type Constraints struct {
	DurationMax      *int     `json:"duration_max"`
	Skills           []string `json:"skills"`
	RemoteRequired   *bool    `json:"remote_required"`
	AdaptiveRequired *bool    `json:"adaptive_required"`
}

// Empty returns a constraint set with every filter inactive.
func Empty() Constraints {
	return Constraints{}
}

// IsEmpty reports whether no field is set.
func (c Constraints) IsEmpty() bool {
	return c.DurationMax == nil && len(c.Skills) == 0 &&
		c.RemoteRequired == nil && c.AdaptiveRequired == nil
}

// HasSkills reports whether skill-based ranking applies.
func (c Constraints) HasSkills() bool {
	return len(c.Skills) > 0
}

// SkillsQuery joins skills into the single query string that gets embedded.
func (c Constraints) SkillsQuery() string {
	return strings.Join(c.Skills, " ")
}

// RequiresRemote is true only for an explicit true. False never filters.
func (c Constraints) RequiresRemote() bool {
	return c.RemoteRequired != nil && *c.RemoteRequired
}

// RequiresAdaptive is true only for an explicit true. False never filters.
func (c Constraints) RequiresAdaptive() bool {
	return c.AdaptiveRequired != nil && *c.AdaptiveRequired
}

// Clone returns a deep copy.
func (c Constraints) Clone() Constraints {
	out := Constraints{}
	if c.DurationMax != nil {
		v := *c.DurationMax
		out.DurationMax = &v
	}
	if c.Skills != nil {
		out.Skills = append([]string(nil), c.Skills...)
	}
	if c.RemoteRequired != nil {
		v := *c.RemoteRequired
		out.RemoteRequired = &v
	}
	if c.AdaptiveRequired != nil {
		v := *c.AdaptiveRequired
		out.AdaptiveRequired = &v
	}
	return out
}

// IntPtr is a helper for building constraints.
func IntPtr(v int) *int { return &v }

// BoolPtr is a helper for building constraints.
func BoolPtr(v bool) *bool { return &v }
