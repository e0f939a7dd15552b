// Package catalog holds the assessment catalog aggregate.
package catalog

import (
	"fmt"
	"strings"
)

// Support is a Yes/No/Unknown capability flag of an assessment.
type Support string

// Support values as they appear in the catalog data.
const (
	SupportYes     Support = "Yes"
	SupportNo      Support = "No"
	SupportUnknown Support = "Unknown"
)

// ParseSupport maps raw catalog text to a Support value.
// Matching is case-insensitive; blank input stays blank (missing value),
// anything else unrecognized is Unknown.
func ParseSupport(raw string) Support {
	s := strings.TrimSpace(raw)
	switch strings.ToLower(s) {
	case "":
		return ""
	case "yes":
		return SupportYes
	case "no":
		return SupportNo
	default:
		return SupportUnknown
	}
}

// IsYes reports whether the flag is an explicit Yes. Missing values never match.
func (s Support) IsYes() bool { return s == SupportYes }

// Record is one assessment product. Immutable after construction.
type Record struct {
	name            string
	url             string
	remoteSupport   Support
	adaptiveSupport Support
	duration        int
	testType        string
	combinedText    string
}

// New validates and creates a catalog record.
// duration must be non-negative and combinedText must not be blank.
func New(
	name, url string,
	remote, adaptive Support,
	duration int,
	testType, combinedText string,
) (Record, error) {
	if duration < 0 {
		return Record{}, fmt.Errorf("duration must be non-negative, got %d", duration)
	}
	if strings.TrimSpace(combinedText) == "" {
		return Record{}, fmt.Errorf("combined text is required")
	}
	return Record{
		name:            name,
		url:             url,
		remoteSupport:   remote,
		adaptiveSupport: adaptive,
		duration:        duration,
		testType:        testType,
		combinedText:    combinedText,
	}, nil
}

// CombineText derives the semantic matching text from the name index and test type.
func CombineText(nameIdx, testType string) string {
	return strings.TrimSpace(strings.TrimSpace(nameIdx) + " " + strings.TrimSpace(testType))
}

// Name returns the display name.
func (r Record) Name() string { return r.name }

// URL returns the canonical link.
func (r Record) URL() string { return r.url }

// RemoteSupport returns the remote testing flag.
func (r Record) RemoteSupport() Support { return r.remoteSupport }

// AdaptiveSupport returns the adaptive/IRT flag.
func (r Record) AdaptiveSupport() Support { return r.adaptiveSupport }

// Duration returns the assessment length in minutes.
func (r Record) Duration() int { return r.duration }

// TestType returns the mapped test type label.
func (r Record) TestType() string { return r.testType }

// CombinedText returns the text used for semantic matching.
func (r Record) CombinedText() string { return r.combinedText }
