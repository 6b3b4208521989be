package catalog

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestInfoJSONRoundTrip(t *testing.T) {
	info := Info{
		{Label: "prerequisite", Value: "COMP 1021"},
		{Label: "description", Value: "An introduction."},
		{Label: "attributes", Value: "line one\nline two"},
	}

	data, err := json.Marshal(info)
	require.NoError(t, err)
	// document order survives marshaling
	require.Equal(t,
		`{"prerequisite":"COMP 1021","description":"An introduction.","attributes":"line one\nline two"}`,
		string(data),
	)

	var decoded Info
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, info, decoded)
}

func TestInfoGet(t *testing.T) {
	info := Info{{Label: "exclusion", Value: "ACCT 2010"}}

	value, ok := info.Get("exclusion")
	require.True(t, ok)
	require.Equal(t, "ACCT 2010", value)

	_, ok = info.Get("prerequisite")
	require.False(t, ok)
}

func TestScheduleJSON(t *testing.T) {
	schedule := Schedule{
		Day:      Weekday(time.Wednesday),
		Start:    TimeOfDay{Hour: 16, Minute: 30},
		End:      TimeOfDay{Hour: 17, Minute: 50},
		FromDate: &Date{Year: 2024, Month: time.June, Day: 17},
		ToDate:   &Date{Year: 2024, Month: time.August, Day: 9},
	}

	data, err := json.Marshal(schedule)
	require.NoError(t, err)
	require.JSONEq(t, `{
		"dayOfWeek": "WEDNESDAY",
		"startTime": "16:30:00",
		"endTime": "17:50:00",
		"fromDate": "2024-06-17",
		"toDate": "2024-08-09"
	}`, string(data))

	var decoded Schedule
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, schedule, decoded)
}

func TestScheduleJSONOmitsDates(t *testing.T) {
	schedule := Schedule{
		Day:   Weekday(time.Monday),
		Start: TimeOfDay{Hour: 9, Minute: 0},
		End:   TimeOfDay{Hour: 10, Minute: 20},
	}

	data, err := json.Marshal(schedule)
	require.NoError(t, err)
	require.JSONEq(t,
		`{"dayOfWeek":"MONDAY","startTime":"09:00:00","endTime":"10:20:00"}`,
		string(data),
	)
}
