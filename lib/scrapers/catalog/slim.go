package catalog

// SlimCourse is the reduced course shape written for compact
// consumers: no info, attrs or remarks, and the four occupancy
// numbers collapsed into one ordered tuple.
type SlimCourse struct {
	Subject  string        `json:"subject"`
	Course   string        `json:"course"`
	Name     string        `json:"name"`
	Sections []SlimSection `json:"sections"`
}

type SlimSection struct {
	Code        string     `json:"code"`
	Number      int        `json:"number"`
	Schedules   []Schedule `json:"schedules"`
	Instructors []string   `json:"instructors"`
	Assistants  []string   `json:"assistants"`
	Venue       string     `json:"venue"`
	// quota, enroll, available, waitlist
	Quota [4]int `json:"quota"`
}

// Slim projects a Course down to its SlimCourse shape. It is a pure
// reshape: no parsing, no failure modes.
func Slim(course Course) SlimCourse {
	sections := make([]SlimSection, len(course.Sections))
	for i, section := range course.Sections {
		sections[i] = SlimSection{
			Code:        section.Code,
			Number:      section.Number,
			Schedules:   section.Schedules,
			Instructors: section.Instructors,
			Assistants:  section.Assistants,
			Venue:       section.Venue,
			Quota: [4]int{
				section.Quota,
				section.Enroll,
				section.Available,
				section.Waitlist,
			},
		}
	}
	return SlimCourse{
		Subject:  course.Subject,
		Course:   course.Course,
		Name:     course.Name,
		Sections: sections,
	}
}
