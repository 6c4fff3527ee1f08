package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

var monthYearPattern = regexp.MustCompile(`^([A-Za-z]+)\.?\s*(\d{4})$`)

var monthNames = []string{
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
}

// ResumeDateParser understands "YYYY" and "Month YYYY" where the month is
// any prefix of at least three letters of an English month name ("Sep",
// "Sept", "September"). Other shapes such as "2018-03-15" or "03/2018" are
// handed to dateparse. Missing parts default to the first month/day in UTC.
type ResumeDateParser struct{}

// Parse implements DateParser.
func (ResumeDateParser) Parse(value string) (time.Time, error) {
	value = strings.TrimSpace(value)

	if len(value) == 4 {
		return time.Parse("2006", value)
	}

	if m := monthYearPattern.FindStringSubmatch(value); m != nil {
		month, ok := monthFromWord(m[1])
		if !ok {
			return time.Time{}, fmt.Errorf("unknown month in %q", value)
		}
		year, err := strconv.Atoi(m[2])
		if err != nil {
			return time.Time{}, fmt.Errorf("parse year in %q: %w", value, err)
		}
		return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC), nil
	}

	t, err := dateparse.ParseIn(value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("unsupported date %q: %w", value, err)
	}
	return t, nil
}

func monthFromWord(word string) (time.Month, bool) {
	word = strings.ToLower(word)
	if len(word) < 3 {
		return 0, false
	}
	for i, name := range monthNames {
		if strings.HasPrefix(name, word) {
			return time.Month(i + 1), true
		}
	}
	return 0, false
}
