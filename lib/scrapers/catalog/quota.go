package catalog

import (
	"fmt"
	"strconv"
	"strings"
	"ustcatalog/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

// parseQuotaCell reads a section's quota cell. A plain cell is just a
// number; a cell with a hidden ".quotadetail" block carries the
// visible number in an immediate child span plus a per-category
// breakdown parsed by parseQuotaDetail. The detail map is nil when
// the cell has no breakdown.
func parseQuotaCell(cell *goquery.Selection) (int, map[string]Occupancy, error) {
	detail := cell.Find(".quotadetail")
	if detail.Length() == 0 {
		quota, err := strconv.Atoi(strings.TrimSpace(cell.Text()))
		if err != nil {
			return 0, nil, fmt.Errorf("malformed quota cell: %v", err)
		}
		return quota, nil, nil
	}

	label := cell.ChildrenFiltered("span").First()
	quota, err := strconv.Atoi(strings.TrimSpace(label.Text()))
	if err != nil {
		return 0, nil, fmt.Errorf("malformed quota label: %v", err)
	}

	quotaDetail, err := parseQuotaDetail(detail)
	if err != nil {
		return 0, nil, err
	}
	return quota, quotaDetail, nil
}

// parseQuotaDetail parses the breakdown block shown on hovering an
// underlined quota. Its text is line based:
//
//	Quota/Enrol/Avail
//	ACCT: 68/43/25
//
// the first line is a header and is discarded. The per-category
// numbers describe overlapping eligibility pools and need not sum to
// the section totals.
func parseQuotaDetail(detail *goquery.Selection) (map[string]Occupancy, error) {
	lines := strings.Split(htmlutil.TextWithBreaks(detail), "\n")
	if len(lines) < 2 {
		return nil, fmt.Errorf("malformed quota detail: %q", detail.Text())
	}

	result := map[string]Occupancy{}
	for _, line := range lines[1:] {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		category, numbers, found := strings.Cut(line, ":")
		if !found {
			return nil, fmt.Errorf("malformed quota detail line: %q", line)
		}
		parts := strings.Split(numbers, "/")
		if len(parts) != 3 {
			return nil, fmt.Errorf("malformed quota detail line: %q", line)
		}

		var values [3]int
		for i, part := range parts {
			n, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				return nil, fmt.Errorf("malformed quota detail line: %q: %v", line, err)
			}
			values[i] = n
		}

		result[strings.TrimSpace(category)] = Occupancy{
			Quota:     values[0],
			Enroll:    values[1],
			Available: values[2],
		}
	}
	return result, nil
}
