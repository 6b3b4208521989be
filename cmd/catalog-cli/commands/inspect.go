package commands

import (
	"fmt"
	"os"
	"strings"
	"ustcatalog/lib/configuration"
	"ustcatalog/lib/serviceutil"

	scraper "ustcatalog/lib/scrapers/catalog"
	service "ustcatalog/services/catalog"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(os.Stdout)
	return t
}

func renderSchedules(schedules []scraper.Schedule) string {
	if len(schedules) == 0 {
		return "TBA"
	}
	lines := make([]string, len(schedules))
	for i, s := range schedules {
		line := fmt.Sprintf("%s %s-%s", s.Day, s.Start, s.End)
		if s.FromDate != nil && s.ToDate != nil {
			line += fmt.Sprintf(" (%s to %s)", s.FromDate, s.ToDate)
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <term> <subject>",
	Short: "Parse one stored subject page and print its courses and sections.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		term := args[0]
		subject := args[1]

		cfg, err := configuration.ReadConfig[Config]("config.json5")
		if err != nil {
			serviceutil.Fatal("failed to read config", err)
		}
		if cfg.DataDir == "" {
			cfg.DataDir = "data"
		}
		store, err := service.NewStore(cfg.DataDir)
		if err != nil {
			serviceutil.Fatal("failed to initialize store", err)
		}

		page, err := store.ReadPage(term, subject)
		if err != nil {
			serviceutil.Fatal("failed to read stored page", err)
		}
		courses, courseErrs, err := scraper.ParsePage(cmd.Context(), page)
		if err != nil {
			serviceutil.Fatal("failed to parse page", err)
		}

		for _, course := range courses {
			fmt.Printf(
				"\n%s %s - %s (%g units)\n",
				course.Subject, course.Course, course.Name, course.Units,
			)

			if len(course.Sections) == 0 {
				fmt.Println("no sections")
				continue
			}
			t := newTable()
			t.AppendHeader(table.Row{
				"Section", "Schedule", "Venue", "Instructors",
				"Quota", "Enrol", "Avail", "Wait",
			})
			for _, s := range course.Sections {
				t.AppendRow(table.Row{
					fmt.Sprintf("%s (%d)", s.Code, s.Number),
					renderSchedules(s.Schedules),
					s.Venue,
					strings.Join(s.Instructors, "\n"),
					s.Quota, s.Enroll, s.Available, s.Waitlist,
				})
			}
			t.Render()
		}

		for _, err := range courseErrs {
			fmt.Fprintln(os.Stderr, "parse error:", err)
		}
	},
}
