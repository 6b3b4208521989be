package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSlim(t *testing.T) {
	course := Course{
		Subject: "COMP",
		Course:  "1021",
		Name:    "Introduction to Computer Science",
		Units:   3,
		Info:    Info{{Label: "description", Value: "An introduction."}},
		Attrs:   []Attribute{{Title: "[CC22]", Description: "Common Core"}},
		Sections: []Section{
			{
				Code:   "L1",
				Number: 2001,
				Venue:  "Room 4619",
				Schedules: []Schedule{{
					Day:   Weekday(time.Tuesday),
					Start: TimeOfDay{Hour: 13, Minute: 30},
					End:   TimeOfDay{Hour: 15, Minute: 20},
				}},
				Instructors: []string{"CHAN, Tai Man"},
				Assistants:  []string{"TBA"},
				Quota:       120,
				Enroll:      118,
				Available:   2,
				Waitlist:    15,
				QuotaDetail: map[string]Occupancy{
					"COMP": {Quota: 100, Enroll: 98, Available: 2},
				},
				Remarks: []string{"Instructor consent required"},
			},
		},
	}

	slim := Slim(course)

	require.Equal(t, "COMP", slim.Subject)
	require.Equal(t, "1021", slim.Course)
	require.Equal(t, "Introduction to Computer Science", slim.Name)
	require.Len(t, slim.Sections, 1)

	section := slim.Sections[0]
	require.Equal(t, "L1", section.Code)
	require.Equal(t, 2001, section.Number)
	require.Equal(t, "Room 4619", section.Venue)
	require.Equal(t, course.Sections[0].Schedules, section.Schedules)
	require.Equal(t, []string{"CHAN, Tai Man"}, section.Instructors)
	require.Equal(t, []string{"TBA"}, section.Assistants)
	require.Equal(t, [4]int{120, 118, 2, 15}, section.Quota)
}

func TestSlimNoSections(t *testing.T) {
	slim := Slim(Course{Subject: "ACCT", Course: "5160", Name: "Accounting Research Seminar"})
	require.Empty(t, slim.Sections)
	require.NotNil(t, slim.Sections)
}
