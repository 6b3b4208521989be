package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"ustcatalog/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

// ErrSectionID is returned when a section cell does not follow the
// "L1 (1023)" catalog format.
var ErrSectionID = errors.New("invalid section format")

// L1 (1023)
var sectionIDRegex = regexp.MustCompile(`(\w+)\s+\((\d+)\)`)

type SectionID struct {
	Code   string
	Number int
}

func ParseSectionID(text string) (SectionID, error) {
	match := sectionIDRegex.FindStringSubmatch(text)
	if match == nil {
		return SectionID{}, fmt.Errorf("%w: %q", ErrSectionID, text)
	}
	number, err := strconv.Atoi(match[2])
	if err != nil {
		return SectionID{}, fmt.Errorf("%w: %q: %v", ErrSectionID, text, err)
	}
	return SectionID{Code: match[1], Number: number}, nil
}

// the column labels of a section table, as rendered by the catalog.
const (
	colSection    = "Section"
	colDateTime   = "Date & Time"
	colRoom       = "Room"
	colInstructor = "Instructor"
	colAssistant  = "TA/IA/GTA"
	colQuota      = "Quota"
	colEnroll     = "Enrol"
	colAvail      = "Avail"
	colWait       = "Wait"
	colRemarks    = "Remarks"
)

var requiredColumns = []string{
	colSection, colDateTime, colRoom, colInstructor, colAssistant,
	colQuota, colEnroll, colAvail, colWait, colRemarks,
}

type sectionRow map[string]*goquery.Selection

// parseSectionTable converts a course's section table into Section
// records, one per data row. Row-level grammar violations are
// collected as unit errors without aborting the remaining rows.
func parseSectionTable(ctx context.Context, table *goquery.Selection) ([]Section, []error) {
	columns, err := headerColumns(table)
	if err != nil {
		return nil, []error{err}
	}

	var sections []Section
	var unitErrs []error
	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < len(columns) {
			// header or decoration row
			return
		}

		cellsByLabel := sectionRow{}
		for label, idx := range columns {
			cellsByLabel[label] = cells.Eq(idx)
		}

		section, err := parseSectionRow(ctx, cellsByLabel)
		if err != nil {
			unitErrs = append(unitErrs, err)
			return
		}
		sections = append(sections, section)
	})

	return sections, unitErrs
}

// headerColumns reads the table's header row and maps each required
// column label to its cell index.
func headerColumns(table *goquery.Selection) (map[string]int, error) {
	columns := map[string]int{}
	table.Find("tr").First().Find("th").Each(func(i int, th *goquery.Selection) {
		columns[htmlutil.CollapseSpace(th.Text())] = i
	})

	for _, label := range requiredColumns {
		if _, ok := columns[label]; !ok {
			return nil, fmt.Errorf("section table is missing column %q", label)
		}
	}
	return columns, nil
}

func parseSectionRow(ctx context.Context, cells sectionRow) (Section, error) {
	id, err := ParseSectionID(cells[colSection].Text())
	if err != nil {
		return Section{}, err
	}

	dateTime := htmlutil.TextWithBreaks(cells[colDateTime])
	schedules, err := ParseSchedule(dateTime)
	if err != nil {
		// lossy degradation: the row still parses, it just carries no
		// meeting time. see the quirks section of the package docs.
		slog.WarnContext(
			ctx, "section date & time cell did not parse",
			"section", id.Code,
			"number", id.Number,
			"text", dateTime,
			"err", err,
		)
		schedules = nil
	}

	quota, quotaDetail, err := parseQuotaCell(cells[colQuota])
	if err != nil {
		return Section{}, fmt.Errorf("section %s (%d): %w", id.Code, id.Number, err)
	}

	occupancy := map[string]int{}
	for _, label := range []string{colEnroll, colAvail, colWait} {
		n, err := strconv.Atoi(strings.TrimSpace(cells[label].Text()))
		if err != nil {
			return Section{}, fmt.Errorf(
				"section %s (%d): malformed %q cell: %v",
				id.Code, id.Number, label, err,
			)
		}
		occupancy[label] = n
	}

	return Section{
		Code:        id.Code,
		Number:      id.Number,
		Venue:       strings.TrimSpace(cells[colRoom].Text()),
		Instructors: parsePeopleCell(cells[colInstructor]),
		Assistants:  parsePeopleCell(cells[colAssistant]),
		Schedules:   schedules,
		Quota:       quota,
		Enroll:      occupancy[colEnroll],
		Available:   occupancy[colAvail],
		Waitlist:    occupancy[colWait],
		QuotaDetail: quotaDetail,
		Remarks:     parseRemarksCell(cells[colRemarks]),
	}, nil
}

// parsePeopleCell returns the labels of the cell's linked names, or
// the cell's own text when no person records exist for the slot
// (e.g. "Staff").
func parsePeopleCell(cell *goquery.Selection) []string {
	links := cell.Find("a")
	if links.Length() == 0 {
		return []string{strings.TrimSpace(cell.Text())}
	}

	var names []string
	links.Each(func(_ int, a *goquery.Selection) {
		name := a.Text()
		if name != "" {
			names = append(names, name)
		}
	})
	return names
}

var remarkSeparator = regexp.MustCompile(`\s*>\s*`)

// parseRemarksCell splits every popup fragment of the remarks cell on
// its ">" line markers, in document order.
func parseRemarksCell(cell *goquery.Selection) []string {
	var remarks []string
	cell.Find(".popup").Each(func(_ int, popup *goquery.Selection) {
		for _, line := range remarkSeparator.Split(popup.Text(), -1) {
			line = strings.TrimSpace(line)
			if line != "" {
				remarks = append(remarks, line)
			}
		}
	})
	return remarks
}
