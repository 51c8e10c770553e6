package main

import (
	"time"

	"github.com/reoring/formkit/calendar"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	calYear          int
	calMonth         int
	calWeeks         bool
	calChronological bool
	calContent       string

	now = time.Now
)

// calendarCmd prints a month grid
var calendarCmd = &cobra.Command{
	Use:   "calendar [--year Y] [--month M]",
	Short: "Print the day cells of a month as JSON",
	Long: `Prints the grid of a month starting on Sunday. Leading cells before the
first day are blank. Each day is marked today, completed or upcoming.`,
	Args: cobra.NoArgs,
	RunE: runCalendar,
}

func runCalendar(cmd *cobra.Command, args []string) error {
	t := now()
	year, month := calYear, calMonth
	if year == 0 {
		year = t.Year()
	}
	if month == 0 {
		month = int(t.Month())
	}

	opts := []calendar.Option{calendar.WithClock(now)}
	if calChronological {
		opts = append(opts, calendar.WithCompletedRule(calendar.RuleChronological))
	}
	if calContent != "" {
		opts = append(opts, calendar.WithContent(calContent))
	}
	// flags are 1-based, the grid API is 0-based
	cells, err := calendar.Month(year, month-1, opts...)
	if err != nil {
		return err
	}
	logger.Debug("month built", zap.Int("year", year), zap.Int("month", month), zap.Int("cells", len(cells)))

	if calWeeks {
		return writeJSON(cmd.OutOrStdout(), calendar.Weeks(cells))
	}
	return writeJSON(cmd.OutOrStdout(), cells)
}
