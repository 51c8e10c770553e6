// Package calendar lays out a month as a grid of day cells for a calendar
// view. The grid starts on Sunday and is padded with blank cells up to the
// weekday of the first day.
package calendar

import (
	"fmt"
	"strconv"
	"time"

	formkit "github.com/reoring/formkit"
)

// Status classifies a cell relative to the current date.
type Status string

const (
	StatusNone      Status = "none" // leading padding
	StatusToday     Status = "today"
	StatusCompleted Status = "completed"
	StatusUpcoming  Status = "upcoming"
)

// DefaultContent is the display string of every real day cell.
const DefaultContent = "No events"

var dayNames = [7]string{"SUN", "MON", "TUE", "WED", "THU", "FRI", "SAT"}

// Cell is one grid position.
type Cell struct {
	Date    string `json:"date"`
	Day     string `json:"day"`
	Content string `json:"content"`
	Status  Status `json:"status"`
}

// CompletedRule decides which past days are marked completed.
type CompletedRule int

const (
	// RuleLegacy marks a day completed when its day-of-month is before
	// today's and its month index is not after the current one. The year is
	// ignored, so days in other years follow the same comparison.
	RuleLegacy CompletedRule = iota
	// RuleChronological marks every date strictly before today completed.
	RuleChronological
)

// Option configures Month.
type Option func(*options)

type options struct {
	now     func() time.Time
	loc     *time.Location
	content string
	rule    CompletedRule
}

// WithClock sets the source of the current date.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithLocation sets the time zone the current date is read in. Defaults to
// time.Local.
func WithLocation(loc *time.Location) Option {
	return func(o *options) {
		if loc != nil {
			o.loc = loc
		}
	}
}

// WithContent replaces DefaultContent.
func WithContent(s string) Option { return func(o *options) { o.content = s } }

// WithCompletedRule selects the completed-status rule. Defaults to RuleLegacy.
func WithCompletedRule(r CompletedRule) Option { return func(o *options) { o.rule = r } }

func newOptions(opts []Option) options {
	o := options{now: time.Now, loc: time.Local, content: DefaultContent, rule: RuleLegacy}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// date is a calendar day with a 0-based month.
type date struct {
	year, month, day int
}

func (o options) today() date {
	t := o.now().In(o.loc)
	return date{year: t.Year(), month: int(t.Month()) - 1, day: t.Day()}
}

// StartingWeekdayOffset returns the weekday (0=Sunday) of the first day of
// the 0-based month.
func StartingWeekdayOffset(year, month int) int {
	return int(time.Date(year, time.Month(month+1), 1, 12, 0, 0, 0, time.UTC).Weekday())
}

// DaysInMonth returns the number of days of the 0-based month, leap-year
// aware.
func DaysInMonth(year, month int) int {
	// day 0 of the next month normalizes to the last day of this one
	return time.Date(year, time.Month(month+2), 0, 12, 0, 0, 0, time.UTC).Day()
}

func checkMonth(month int) error {
	if month < 0 || month > 11 {
		return fmt.Errorf("%w: month %d outside 0..11", formkit.ErrInvalidArgument, month)
	}
	return nil
}

// Month builds the grid of the 0-based month: StartingWeekdayOffset padding
// cells followed by one cell per day.
func Month(year, month int, opts ...Option) ([]Cell, error) {
	if err := checkMonth(month); err != nil {
		return nil, err
	}
	o := newOptions(opts)
	return build(year, month, o.today(), o), nil
}

func build(year, month int, today date, o options) []Cell {
	offset := StartingWeekdayOffset(year, month)
	days := DaysInMonth(year, month)
	cells := make([]Cell, 0, offset+days)
	for i := 0; i < offset; i++ {
		cells = append(cells, Cell{Status: StatusNone})
	}
	for d := 1; d <= days; d++ {
		cells = append(cells, Cell{
			Date:    strconv.Itoa(d),
			Day:     dayNames[(offset+d-1)%7],
			Content: o.content,
			Status:  o.status(date{year: year, month: month, day: d}, today),
		})
	}
	return cells
}

func (o options) status(d, today date) Status {
	if d == today {
		return StatusToday
	}
	switch o.rule {
	case RuleChronological:
		if d.before(today) {
			return StatusCompleted
		}
	default:
		if d.day < today.day && d.month <= today.month {
			return StatusCompleted
		}
	}
	return StatusUpcoming
}

func (d date) before(o date) bool {
	if d.year != o.year {
		return d.year < o.year
	}
	if d.month != o.month {
		return d.month < o.month
	}
	return d.day < o.day
}

// Weeks splits a grid into rows of seven cells. The last row may be shorter.
func Weeks(cells []Cell) [][]Cell {
	var rows [][]Cell
	for start := 0; start < len(cells); start += 7 {
		end := min(start+7, len(cells))
		rows = append(rows, cells[start:end:end])
	}
	return rows
}
