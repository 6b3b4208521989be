package catalog

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func renderHeading(h Heading) string {
	units := fmt.Sprintf("%g", h.Units)
	suffix := "units"
	if h.Units == 1 {
		suffix = "unit"
	}
	return fmt.Sprintf("%s %s - %s (%s %s)", h.Subject, h.Course, h.Name, units, suffix)
}

func TestParseHeadingRoundTrip(t *testing.T) {
	testCases := []Heading{
		{Subject: "ACCT", Course: "1010", Name: "Accounting, Business and Society", Units: 3},
		{Subject: "COMP", Course: "4900", Name: "Academic and Professional Development", Units: 0},
		{Subject: "LANG", Course: "4030", Name: "Technical Communication I", Units: 1},
		{Subject: "PHYS", Course: "1112", Name: "General Physics I with Calculus", Units: 3},
		{Subject: "SBMT", Course: "5010", Name: "Business Fundamentals (for non-SBM students)", Units: 1.5},
	}

	for _, expected := range testCases {
		parsed, err := ParseHeading(renderHeading(expected))
		require.NoError(t, err)
		require.Equal(t, expected, parsed)
	}
}

func TestParseHeadingInvalid(t *testing.T) {
	for _, text := range []string{
		"",
		"garbage",
		"ACCT 1010 Accounting, Business and Society (3 units)",
		"ACCT 1010 - Accounting, Business and Society",
	} {
		_, err := ParseHeading(text)
		require.ErrorIs(t, err, ErrHeading, "input: %q", text)
		if text != "" {
			require.ErrorContains(t, err, text)
		}
	}
}
