package timezone

import "time"

var Location *time.Location

func init() {
	var err error
	Location, err = time.LoadLocation("Asia/Hong_Kong")
	if err != nil {
		panic(err)
	}
}

// force the timezone to Hong Kong because the catalog publishes
// local clock times and our machines are rarely in that zone,
// which will cause disturbances when manipulating dates based on
// <time.Time>.Year()/Month()/Day()/Hour()/...
func Now() time.Time {
	return time.Now().In(Location)
}
