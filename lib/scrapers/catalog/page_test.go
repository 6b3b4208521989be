package catalog

import (
	"context"
	"errors"
	"testing"
	"time"
	"ustcatalog/lib/telemetry"

	"github.com/stretchr/testify/require"

	_ "embed"
)

//go:embed testdata/acct.html
var acctPage string

//go:embed testdata/partial.html
var partialPage string

func TestParsePage(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:catalog")
	defer cleanup()

	courses, unitErrs, err := ParsePage(context.Background(), acctPage)
	require.NoError(t, err)
	require.Empty(t, unitErrs)
	require.Len(t, courses, 2)

	acct1010 := courses[0]
	require.Equal(t, "ACCT", acct1010.Subject)
	require.Equal(t, "1010", acct1010.Course)
	require.Equal(t, "Accounting, Business and Society", acct1010.Name)
	require.Equal(t, float64(3), acct1010.Units)

	require.Equal(t, []Attribute{
		{Title: "[CC22]", Description: "Common Core (SA) for students admitted in 2022-23 and after"},
		{Title: "[4Y]", Description: "Common Core (SA) for 4Y students admitted before 2022-23"},
	}, acct1010.Attrs)

	attributes, ok := acct1010.Info.Get("attributes")
	require.True(t, ok)
	require.Equal(t,
		"Common Core (SA) for 36-credit program\nCommon Core (SA) for 30-credit program",
		attributes,
	)

	exclusion, ok := acct1010.Info.Get("exclusion")
	require.True(t, ok)
	require.Equal(t, "ACCT 2010, CORE 1310", exclusion)

	outcomes, ok := acct1010.Info.Get("intended-learning-outcomes")
	require.True(t, ok)
	require.Equal(t,
		"On successful completion of the course, students will be able to:\n"+
			"1. Describe the use of accounting information for decision-making.\n"+
			"2. Explain the roles of directors and accountants in governance.",
		outcomes,
	)

	require.Len(t, acct1010.Sections, 3)

	acct5160 := courses[1]
	require.Equal(t, "5160", acct5160.Course)
	require.Equal(t, 1.5, acct5160.Units)
	require.Empty(t, acct5160.Sections)
	previous, ok := acct5160.Info.Get("previous-code")
	require.True(t, ok)
	require.Equal(t, "ACCT 601", previous)
}

func TestParsePageSections(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:catalog")
	defer cleanup()

	courses, unitErrs, err := ParsePage(context.Background(), acctPage)
	require.NoError(t, err)
	require.Empty(t, unitErrs)

	lecture1 := courses[0].Sections[0]
	require.Equal(t, "L1", lecture1.Code)
	require.Equal(t, 1023, lecture1.Number)
	require.Equal(t, "Lecture Theater A", lecture1.Venue)
	require.Equal(t, []string{"CHEUNG, Kwok Yip", "DAI, Ting"}, lecture1.Instructors)
	require.Equal(t, []string{"TBA"}, lecture1.Assistants)
	require.Equal(t, []Schedule{
		{
			Day:   Weekday(time.Wednesday),
			Start: TimeOfDay{Hour: 16, Minute: 30},
			End:   TimeOfDay{Hour: 17, Minute: 50},
		},
		{
			Day:   Weekday(time.Friday),
			Start: TimeOfDay{Hour: 16, Minute: 30},
			End:   TimeOfDay{Hour: 17, Minute: 50},
		},
	}, lecture1.Schedules)
	require.Equal(t, 80, lecture1.Quota)
	require.Equal(t, 53, lecture1.Enroll)
	require.Equal(t, 27, lecture1.Available)
	require.Equal(t, 0, lecture1.Waitlist)
	require.Equal(t, map[string]Occupancy{
		"ACCT": {Quota: 68, Enroll: 43, Available: 25},
		"SBM":  {Quota: 12, Enroll: 10, Available: 2},
	}, lecture1.QuotaDetail)
	require.Equal(t, []string{
		"For ACCT students only.",
		"Add/Drop Deadline : 08-Sep-2023",
	}, lecture1.Remarks)

	lecture2 := courses[0].Sections[1]
	require.Equal(t, "L2", lecture2.Code)
	require.Equal(t, []string{"Staff"}, lecture2.Instructors)
	require.Equal(t, []string{"LI, Ming"}, lecture2.Assistants)
	require.Equal(t, 100, lecture2.Quota)
	require.Nil(t, lecture2.QuotaDetail)
	require.Empty(t, lecture2.Remarks)
	require.Len(t, lecture2.Schedules, 2)
	for _, schedule := range lecture2.Schedules {
		require.Equal(t, &Date{Year: 2023, Month: time.September, Day: 4}, schedule.FromDate)
		require.Equal(t, &Date{Year: 2023, Month: time.November, Day: 29}, schedule.ToDate)
	}

	tutorial := courses[0].Sections[2]
	require.Equal(t, "T1", tutorial.Code)
	require.Empty(t, tutorial.Schedules)
	require.Equal(t, 30, tutorial.Quota)
}

func TestParsePageEmpty(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:catalog")
	defer cleanup()

	courses, unitErrs, err := ParsePage(context.Background(), "<html><body></body></html>")
	require.NoError(t, err)
	require.Empty(t, unitErrs)
	require.Empty(t, courses)
}

func TestParsePagePartialFailure(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:catalog")
	defer cleanup()

	courses, unitErrs, err := ParsePage(context.Background(), partialPage)
	require.NoError(t, err)

	// the malformed course heading and the malformed section row each
	// fail their own unit, nothing more
	require.Len(t, unitErrs, 2)
	require.Len(t, courses, 1)

	comp1021 := courses[0]
	require.Equal(t, "COMP", comp1021.Subject)
	require.Equal(t, "1021", comp1021.Course)
	require.Len(t, comp1021.Sections, 1)
	require.Equal(t, "L1", comp1021.Sections[0].Code)

	foundHeading := false
	foundSection := false
	for _, err := range unitErrs {
		if errors.Is(err, ErrHeading) {
			foundHeading = true
			require.ErrorContains(t, err, "COMP 9999 Malformed Heading")
		}
		if errors.Is(err, ErrSectionID) {
			foundSection = true
			require.ErrorContains(t, err, "cancelled")
		}
	}
	require.True(t, foundHeading)
	require.True(t, foundSection)
}

func TestParsePageIdempotent(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:catalog")
	defer cleanup()

	first, firstErrs, err := ParsePage(context.Background(), acctPage)
	require.NoError(t, err)
	second, secondErrs, err := ParsePage(context.Background(), acctPage)
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.Equal(t, len(firstErrs), len(secondErrs))
}
