package catalog

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// ErrHeading is returned when a course heading does not follow the
// "SUBJ 1234 - Name (3 units)" catalog format.
var ErrHeading = errors.New("invalid course heading format")

// ACCT 1010 - Accounting, Business and Society (3 units)
var headingRegex = regexp.MustCompile(`(\w+)\s+(\w+)\s+-\s+(.+)\s+\(([\d.]+)\s+units?\)`)

type Heading struct {
	Subject string
	Course  string
	Name    string
	Units   float64
}

// ParseHeading splits a course heading into its subject code, course
// code, name and credit units. Units may be fractional.
func ParseHeading(text string) (Heading, error) {
	match := headingRegex.FindStringSubmatch(text)
	if match == nil {
		return Heading{}, fmt.Errorf("%w: %q", ErrHeading, text)
	}
	units, err := strconv.ParseFloat(match[4], 64)
	if err != nil {
		return Heading{}, fmt.Errorf("%w: %q: %v", ErrHeading, text, err)
	}
	return Heading{
		Subject: match[1],
		Course:  match[2],
		Name:    match[3],
		Units:   units,
	}, nil
}
