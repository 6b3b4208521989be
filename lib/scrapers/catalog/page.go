package catalog

import (
	"context"
	"fmt"
	"strings"
	"ustcatalog/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/net/html"
)

var tracer = otel.Tracer("ustcatalog.lib.scrapers.catalog")

// ParsePage converts the raw markup of one subject page into Course
// records, in document order. A page with no course blocks is valid
// and yields an empty slice.
//
// Grammar violations fail the smallest unit possible: a malformed
// course heading drops that course block, a malformed section cell
// drops that row. Those failures come back as unit errors so the
// caller can decide between skip-and-continue and abort-all; the
// returned error is reserved for markup the tree parser cannot
// ingest at all.
func ParsePage(ctx context.Context, pageHTML string) ([]Course, []error, error) {
	ctx, span := tracer.Start(ctx, "ParsePage")
	defer span.End()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse html")
		return nil, nil, err
	}

	courses := []Course{}
	var unitErrs []error
	doc.Find(".course").Each(func(_ int, block *goquery.Selection) {
		course, errs := parseCourseBlock(ctx, block)
		if len(errs) > 0 {
			unitErrs = append(unitErrs, errs...)
		}
		if course != nil {
			courses = append(courses, *course)
		}
	})

	span.SetAttributes(
		attribute.Int("courses", len(courses)),
		attribute.Int("unit_errors", len(unitErrs)),
	)
	return courses, unitErrs, nil
}

// parseCourseBlock converts one course block. A nil Course means the
// block's own grammar contract was violated; a non-nil Course may
// still be accompanied by row-level unit errors from its section
// table.
func parseCourseBlock(ctx context.Context, block *goquery.Selection) (*Course, []error) {
	heading, err := ParseHeading(block.Find("h2").First().Text())
	if err != nil {
		return nil, []error{err}
	}

	course := Course{
		Subject: heading.Subject,
		Course:  heading.Course,
		Name:    heading.Name,
		Units:   heading.Units,
		Info:    parseInfo(block.Find(".courseattr").First()),
		Attrs:   parseAttributes(block),
	}

	var unitErrs []error
	sections := block.Find(".sections").First()
	if sections.Length() > 0 {
		parsed, errs := parseSectionTable(ctx, sections)
		for _, err := range errs {
			unitErrs = append(unitErrs, fmt.Errorf(
				"%s %s: %w", heading.Subject, heading.Course, err,
			))
		}
		course.Sections = parsed
	}

	return &course, unitErrs
}

// parseInfo reads the COURSE INFO popup: a table of {label, value}
// rows with caller-unknown labels (PRE-REQUISITE, EXCLUSION,
// DESCRIPTION, ...). Labels are lowercased with whitespace collapsed
// to "-"; values keep document order.
func parseInfo(infoSel *goquery.Selection) Info {
	var info Info
	infoSel.Find("tr").Each(func(_ int, row *goquery.Selection) {
		// skip rows of tables nested inside a value cell
		if row.ParentsUntilSelection(infoSel).Filter("tr").Length() > 0 {
			return
		}

		label := normalizeLabel(row.Find("th").First().Text())
		if label == "" {
			return
		}
		info = append(info, InfoEntry{
			Label: label,
			Value: parseInfoEntry(row.Find("td").First()),
		})
	})
	return info
}

func normalizeLabel(label string) string {
	return strings.ReplaceAll(
		strings.ToLower(htmlutil.CollapseSpace(label)),
		" ", "-",
	)
}

// parseInfoEntry flattens a value cell into a string. A cell holds a
// mix of text fragments and nested list-rendered tables (numbered
// learning outcomes); fragments are joined by newlines in document
// order and empty text nodes are skipped.
func parseInfoEntry(cell *goquery.Selection) string {
	if cell.Length() == 0 {
		return ""
	}

	var fragments []string
	for child := cell.Nodes[0].FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.ElementNode && child.Data == "table" {
			fragments = append(fragments, flattenTableList(child))
			continue
		}
		text := strings.TrimSpace(htmlutil.GetText(child))
		if text != "" {
			fragments = append(fragments, text)
		}
	}
	return strings.Join(fragments, "\n")
}

// flattenTableList renders a table that acts as an ordered list
// ("1." / "outcome text" cell pairs) as one line per row, each row's
// cell values joined by a space.
func flattenTableList(table *html.Node) string {
	var lines []string
	goquery.NewDocumentFromNode(table).Find("tr").Each(func(_ int, row *goquery.Selection) {
		var cells []string
		row.Find("th,td").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, strings.TrimSpace(cell.Text()))
		})
		if len(cells) > 0 {
			lines = append(lines, strings.Join(cells, " "))
		}
	})
	return strings.Join(lines, "\n")
}

// parseAttributes reads the badge words on the left of the course
// info, e.g. "[CC22]" with its hover description.
func parseAttributes(block *goquery.Selection) []Attribute {
	var attrs []Attribute
	block.Find(".attrword").Each(func(_ int, badge *goquery.Selection) {
		attrs = append(attrs, Attribute{
			Title:       badge.Find("span").First().Text(),
			Description: badge.Find("div").First().Text(),
		})
	})
	return attrs
}
