package catalog

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Course is one catalog entry of a subject page.
type Course struct {
	Subject  string      `json:"subject"`
	Course   string      `json:"course"`
	Name     string      `json:"name"`
	Units    float64     `json:"units"`
	Info     Info        `json:"info"`
	Attrs    []Attribute `json:"attrs"`
	Sections []Section   `json:"sections"`
}

// Attribute is a badge shown next to the course info, e.g.
// "[CC22] Common Core (C-COMM) for students admitted from 2022".
type Attribute struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Section is one offered instance of a course, e.g. a lecture or lab.
// Code and Number identify it within the course, e.g. "L1" (1023).
type Section struct {
	Code        string               `json:"code"`
	Number      int                  `json:"number"`
	Venue       string               `json:"venue"`
	Instructors []string             `json:"instructors"`
	Assistants  []string             `json:"assistants"`
	Schedules   []Schedule           `json:"schedules"`
	Quota       int                  `json:"quota"`
	Enroll      int                  `json:"enroll"`
	Available   int                  `json:"available"`
	Waitlist    int                  `json:"waitlist"`
	QuotaDetail map[string]Occupancy `json:"quotaDetail,omitempty"`
	Remarks     []string             `json:"remarks"`
}

// Occupancy is one row of a quota breakdown. The per-category numbers
// describe overlapping eligibility pools, they are not required to sum
// to the section totals.
type Occupancy struct {
	Quota     int `json:"quota"`
	Enroll    int `json:"enroll"`
	Available int `json:"available"`
}

// Schedule is a single weekly meeting of a section. A multi-day row
// produces one Schedule per day, all sharing the same times and,
// for date-ranged sections, the same date bounds.
type Schedule struct {
	Day      Weekday   `json:"dayOfWeek"`
	Start    TimeOfDay `json:"startTime"`
	End      TimeOfDay `json:"endTime"`
	FromDate *Date     `json:"fromDate,omitempty"`
	ToDate   *Date     `json:"toDate,omitempty"`
}

// Weekday marshals as the uppercase day name ("WEDNESDAY") the way
// downstream consumers already expect.
type Weekday time.Weekday

func (w Weekday) String() string {
	return strings.ToUpper(time.Weekday(w).String())
}

func (w Weekday) MarshalJSON() ([]byte, error) {
	return json.Marshal(w.String())
}

func (w *Weekday) UnmarshalJSON(data []byte) error {
	var name string
	err := json.Unmarshal(data, &name)
	if err != nil {
		return err
	}
	for day := time.Sunday; day <= time.Saturday; day++ {
		if strings.EqualFold(day.String(), name) {
			*w = Weekday(day)
			return nil
		}
	}
	return fmt.Errorf("unknown day of week: %q", name)
}

// TimeOfDay is a local clock time without a date.
type TimeOfDay struct {
	Hour   int
	Minute int
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:00", t.Hour, t.Minute)
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	err := json.Unmarshal(data, &s)
	if err != nil {
		return err
	}
	parsed, err := time.Parse("15:04:05", s)
	if err != nil {
		return err
	}
	t.Hour = parsed.Hour()
	t.Minute = parsed.Minute()
	return nil
}

// Date is a local calendar date without a time.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	err := json.Unmarshal(data, &s)
	if err != nil {
		return err
	}
	parsed, err := time.Parse("2006-01-02", s)
	if err != nil {
		return err
	}
	d.Year = parsed.Year()
	d.Month = parsed.Month()
	d.Day = parsed.Day()
	return nil
}

// InfoEntry is one row of the COURSE INFO table.
type InfoEntry struct {
	Label string
	Value string
}

// Info holds the free-form course metadata rows. The set of labels
// varies per course so it is a mapping, but document order matters to
// consumers, so it is kept as an ordered list of entries that
// marshals as a JSON object.
type Info []InfoEntry

func (info Info) Get(label string) (string, bool) {
	for _, entry := range info {
		if entry.Label == label {
			return entry.Value, true
		}
	}
	return "", false
}

func (info Info) MarshalJSON() ([]byte, error) {
	out := strings.Builder{}
	out.WriteByte('{')
	for i, entry := range info {
		if i > 0 {
			out.WriteByte(',')
		}
		key, err := json.Marshal(entry.Label)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(entry.Value)
		if err != nil {
			return nil, err
		}
		out.Write(key)
		out.WriteByte(':')
		out.Write(value)
	}
	out.WriteByte('}')
	return []byte(out.String()), nil
}

func (info *Info) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(strings.NewReader(string(data)))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok != json.Delim('{') {
		return fmt.Errorf("expected object, got %v", tok)
	}

	var entries Info
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		label, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("expected string key, got %v", keyTok)
		}
		var value string
		err = dec.Decode(&value)
		if err != nil {
			return err
		}
		entries = append(entries, InfoEntry{Label: label, Value: value})
	}

	_, err = dec.Token()
	if err != nil {
		return err
	}

	*info = entries
	return nil
}
