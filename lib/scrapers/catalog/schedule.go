package catalog

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// ErrSchedule is returned when a date & time cell is neither the
// "TBA" sentinel nor a recognized meeting pattern.
var ErrSchedule = errors.New("invalid date & time format")

// day codes are fixed-width 2-letter tokens concatenated without a
// separator, e.g. "MoWeFr". read-only.
var dayOfWeek = map[string]time.Weekday{
	"Mo": time.Monday,
	"Tu": time.Tuesday,
	"We": time.Wednesday,
	"Th": time.Thursday,
	"Fr": time.Friday,
	"Sa": time.Saturday,
	"Su": time.Sunday,
}

var scheduleSeparator = regexp.MustCompile(`[\s-]+`)

const clockLayout = "03:04PM"
const dateLayout = "02-Jan-2006"

// ParseSchedule parses a section's date & time cell into one Schedule
// per weekday token. Two shapes are accepted:
//
//	WeFr 04:30PM - 05:50PM
//
// for meetings spanning the whole semester, and
//
//	17-JUN-2024 - 12-JUL-2024
//	MoWeFr 02:00PM - 05:50PM
//
// for meetings bounded to a date range. The literal "TBA" yields an
// empty schedule with no error.
func ParseSchedule(text string) ([]Schedule, error) {
	text = strings.TrimSpace(text)
	if text == "TBA" {
		return nil, nil
	}

	var fromDate, toDate *Date
	if strings.Contains(text, "\n") {
		lines := strings.SplitN(text, "\n", 2)
		var err error
		fromDate, toDate, err = parseDateRange(lines[0])
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrSchedule, text, err)
		}
		text = strings.TrimSpace(lines[1])
	}

	fields := scheduleSeparator.Split(text, -1)
	if len(fields) != 3 {
		return nil, fmt.Errorf("%w: %q", ErrSchedule, text)
	}

	days, err := parseDayCodes(fields[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrSchedule, text, err)
	}
	start, err := parseClock(fields[1])
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrSchedule, text, err)
	}
	end, err := parseClock(fields[2])
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrSchedule, text, err)
	}

	schedules := make([]Schedule, len(days))
	for i, day := range days {
		schedules[i] = Schedule{
			Day:      Weekday(day),
			Start:    start,
			End:      end,
			FromDate: fromDate,
			ToDate:   toDate,
		}
	}
	return schedules, nil
}

func parseDayCodes(s string) ([]time.Weekday, error) {
	if len(s) == 0 || len(s)%2 != 0 {
		return nil, fmt.Errorf("malformed day codes %q", s)
	}
	var days []time.Weekday
	for i := 0; i < len(s); i += 2 {
		day, ok := dayOfWeek[s[i:i+2]]
		if !ok {
			return nil, fmt.Errorf("unknown day code %q", s[i:i+2])
		}
		days = append(days, day)
	}
	return days, nil
}

func parseClock(s string) (TimeOfDay, error) {
	parsed, err := time.Parse(clockLayout, s)
	if err != nil {
		return TimeOfDay{}, err
	}
	return TimeOfDay{Hour: parsed.Hour(), Minute: parsed.Minute()}, nil
}

// dates come in as "17-JUN-2024"; the month abbreviation is matched
// case-insensitively by normalizing to title case first.
func parseDate(s string) (Date, error) {
	parsed, err := time.Parse(dateLayout, toTitleCase(strings.TrimSpace(s)))
	if err != nil {
		return Date{}, err
	}
	return Date{Year: parsed.Year(), Month: parsed.Month(), Day: parsed.Day()}, nil
}

func parseDateRange(s string) (*Date, *Date, error) {
	parts := strings.SplitN(s, " - ", 2)
	if len(parts) != 2 {
		return nil, nil, fmt.Errorf("malformed date range %q", s)
	}
	from, err := parseDate(parts[0])
	if err != nil {
		return nil, nil, err
	}
	to, err := parseDate(parts[1])
	if err != nil {
		return nil, nil, err
	}
	return &from, &to, nil
}

var wordRegex = regexp.MustCompile(`\w+`)

func toTitleCase(s string) string {
	return wordRegex.ReplaceAllStringFunc(s, func(word string) string {
		return strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	})
}
