// Package extract pulls individual signals (contact details, name,
// education, years of experience) out of plain résumé text. Every extractor
// has an empty fallback and never fails.
package extract

import (
	"regexp"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`\b[\w.-]+@[\w.-]+\.\w+\b`)
	phonePattern = regexp.MustCompile(`(\+?\d{1,3})?[\s\-.(]?\d{2,4}[\s\-.)]?\d{3,5}[\s\-.)]?\d{3,5}`)

	nameLabelPattern   = regexp.MustCompile(`(?i)name[:\s\-]{1,5}([A-Za-z ]{2,40})`)
	leadingNamePattern = regexp.MustCompile(`^\s*([A-Z][a-z]+(?:[ \t][A-Z][a-z]+){0,2})`)
)

// Email returns the first email-looking token or "".
func Email(text string) string {
	return emailPattern.FindString(text)
}

// Phone returns the first phone-looking digit run or "".
func Phone(text string) string {
	return strings.TrimSpace(phonePattern.FindString(text))
}

// NameHeuristic looks for a "Name: X" label first, then for a run of up to
// three capitalized words at the very start of the text.
func NameHeuristic(text string) string {
	if m := nameLabelPattern.FindStringSubmatch(text); m != nil {
		if name := strings.TrimSpace(m[1]); name != "" {
			return name
		}
	}

	if m := leadingNamePattern.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}

	return ""
}

// Education levels recognised in résumé text.
const (
	EducationNone     = ""
	EducationBachelor = "Bachelor"
	EducationMaster   = "Master"
	EducationPhD      = "PhD"
)

// Education returns the first level whose markers appear, checking
// Master, then Bachelor, then PhD.
func Education(text string) string {
	lower := strings.ToLower(text)
	switch {
	case containsAny(lower, "m.b.a", "mba", "master"):
		return EducationMaster
	case containsAny(lower, "b.tech", "bachelor", "b.sc"):
		return EducationBachelor
	case containsAny(lower, "phd", "doctorate"):
		return EducationPhD
	default:
		return EducationNone
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
