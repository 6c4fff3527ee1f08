package extract

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	totalExperiencePattern = regexp.MustCompile(`total(?:\s+work)?\s+experience[:\s\-]*([0-9]+)\s*(?:years|yrs)?(?:[,/\s]*(\d+)\s*(?:months|mos))?`)
	yearsMonthsPattern     = regexp.MustCompile(`(\d+)\s*(?:years|yrs)\s*(\d+)\s*(?:months|mos)`)
	yearsPattern           = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*\+?\s*(?:years|yrs)`)
	dateRangePattern       = regexp.MustCompile(`([A-Za-z]{3,9}\s*\d{4}|\d{4})\s*(?:to|-|–|—)\s*([A-Za-z]{3,9}\s*\d{4}|\d{4})`)
)

// DateParser turns a date fragment such as "Jan 2018" or "2019" into a
// calendar date.
type DateParser interface {
	Parse(value string) (time.Time, error)
}

// YearsExtractor estimates total experience from free text by trying a list
// of rules in order. The first rule that produces a value wins.
type YearsExtractor struct {
	rules []yearsRule
}

// yearsRule inspects the original text and its lowercase form.
type yearsRule func(text, lower string) (float64, bool)

// NewYearsExtractor builds the extractor. A nil parser selects
// ResumeDateParser.
func NewYearsExtractor(dates DateParser) *YearsExtractor {
	if dates == nil {
		dates = ResumeDateParser{}
	}

	return &YearsExtractor{rules: []yearsRule{
		totalExperience,
		yearsAndMonths,
		largestYears,
		dateRange(dates),
	}}
}

// Years returns the estimate rounded to the nearest half year, or 0.
func (e *YearsExtractor) Years(text string) float64 {
	if strings.TrimSpace(text) == "" {
		return 0
	}

	lower := strings.ToLower(text)
	for _, rule := range e.rules {
		if v, ok := rule(text, lower); ok {
			return roundToHalf(v)
		}
	}

	return 0
}

var defaultYears = NewYearsExtractor(nil)

// Years runs the default extractor.
func Years(text string) float64 {
	return defaultYears.Years(text)
}

func totalExperience(_, lower string) (float64, bool) {
	m := totalExperiencePattern.FindStringSubmatch(lower)
	if m == nil {
		return 0, false
	}
	years, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	months := 0
	if m[2] != "" {
		if months, err = strconv.Atoi(m[2]); err != nil {
			return 0, false
		}
	}
	return float64(years) + float64(months)/12, true
}

func yearsAndMonths(_, lower string) (float64, bool) {
	m := yearsMonthsPattern.FindStringSubmatch(lower)
	if m == nil {
		return 0, false
	}
	years, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	months, err := strconv.Atoi(m[2])
	if err != nil {
		return 0, false
	}
	return float64(years) + float64(months)/12, true
}

// largestYears treats the biggest single "N years" mention as the total,
// since per-job durations are usually listed next to it.
func largestYears(_, lower string) (float64, bool) {
	found := false
	largest := 0.0
	for _, m := range yearsPattern.FindAllStringSubmatch(lower, -1) {
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		if !found || v > largest {
			largest = v
			found = true
		}
	}
	return largest, found
}

func dateRange(dates DateParser) yearsRule {
	return func(text, _ string) (float64, bool) {
		for _, m := range dateRangePattern.FindAllStringSubmatch(text, -1) {
			start, err := dates.Parse(m[1])
			if err != nil {
				continue
			}
			end, err := dates.Parse(m[2])
			if err != nil {
				continue
			}
			if !end.After(start) {
				continue
			}
			days := math.Floor(end.Sub(start).Hours() / 24)
			return days / 365.0, true
		}
		return 0, false
	}
}

func roundToHalf(v float64) float64 {
	if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.RoundToEven(v*2) / 2
}
