package calendar_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	formkit "github.com/reoring/formkit"
	"github.com/reoring/formkit/calendar"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fixed clock: Thursday 2024-02-15 in UTC
func fixedClock() calendar.Option {
	return calendar.WithClock(func() time.Time { return time.Date(2024, time.February, 15, 10, 0, 0, 0, time.UTC) })
}

func utc() calendar.Option { return calendar.WithLocation(time.UTC) }

func TestMonth_LeapFebruary(t *testing.T) {
	cells, err := calendar.Month(2024, 1, fixedClock(), utc())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(cells) != 33 {
		t.Fatalf("expected 33 cells, got %d", len(cells))
	}
	for i := 0; i < 4; i++ {
		if diff := cmp.Diff(calendar.Cell{Status: calendar.StatusNone}, cells[i]); diff != "" {
			t.Fatalf("padding cell %d mismatch (-want +got):\n%s", i, diff)
		}
	}
	want := calendar.Cell{Date: "1", Day: "THU", Content: calendar.DefaultContent, Status: calendar.StatusCompleted}
	if diff := cmp.Diff(want, cells[4]); diff != "" {
		t.Fatalf("first day mismatch (-want +got):\n%s", diff)
	}
	want = calendar.Cell{Date: "29", Day: "THU", Content: calendar.DefaultContent, Status: calendar.StatusUpcoming}
	if diff := cmp.Diff(want, cells[32]); diff != "" {
		t.Fatalf("last day mismatch (-want +got):\n%s", diff)
	}
	if cells[4+14].Status != calendar.StatusToday || cells[4+14].Date != "15" {
		t.Fatalf("expected day 15 to be today, got %+v", cells[4+14])
	}
}

func TestMonth_NonLeapFebruary(t *testing.T) {
	cells, err := calendar.Month(2023, 1, fixedClock(), utc())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	days := 0
	for _, c := range cells {
		if c.Status != calendar.StatusNone {
			days++
		}
	}
	if days != 28 {
		t.Fatalf("expected 28 day cells, got %d", days)
	}
	// 2023-02-01 is a Wednesday
	if got := calendar.StartingWeekdayOffset(2023, 1); got != 3 {
		t.Fatalf("expected offset 3, got %d", got)
	}
	if len(cells) != 31 {
		t.Fatalf("expected 31 cells, got %d", len(cells))
	}
}

func TestMonth_LengthInvariant(t *testing.T) {
	for year := 1999; year <= 2026; year++ {
		for month := 0; month < 12; month++ {
			cells, err := calendar.Month(year, month, fixedClock(), utc())
			if err != nil {
				t.Fatalf("%d-%d: unexpected err: %v", year, month, err)
			}
			offset := calendar.StartingWeekdayOffset(year, month)
			if len(cells) != offset+calendar.DaysInMonth(year, month) {
				t.Fatalf("%d-%d: length %d does not match offset+days", year, month, len(cells))
			}
			for i, c := range cells {
				if (i < offset) != (c.Status == calendar.StatusNone) {
					t.Fatalf("%d-%d: cell %d has status %q", year, month, i, c.Status)
				}
			}
		}
	}
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		year, month, want int
	}{
		{2024, 1, 29},
		{2023, 1, 28},
		{2000, 1, 29},
		{1900, 1, 28},
		{2024, 0, 31},
		{2024, 3, 30},
		{2024, 11, 31},
	}
	for _, tt := range tests {
		if got := calendar.DaysInMonth(tt.year, tt.month); got != tt.want {
			t.Errorf("DaysInMonth(%d, %d) = %d, want %d", tt.year, tt.month, got, tt.want)
		}
	}
}

func TestMonth_InvalidMonth(t *testing.T) {
	for _, m := range []int{-1, 12, 100} {
		if _, err := calendar.Month(2024, m); !errors.Is(err, formkit.ErrInvalidArgument) {
			t.Fatalf("month %d: expected ErrInvalidArgument, got %v", m, err)
		}
	}
}

func statuses(cells []calendar.Cell) map[string]calendar.Status {
	out := map[string]calendar.Status{}
	for _, c := range cells {
		if c.Date != "" {
			out[c.Date] = c.Status
		}
	}
	return out
}

func TestMonth_LegacyCompletedHeuristic(t *testing.T) {
	tests := []struct {
		name        string
		year, month int
		day         string
		want        calendar.Status
	}{
		{"earlier month early day", 2024, 0, "10", calendar.StatusCompleted},
		{"earlier month late day stays upcoming", 2024, 0, "20", calendar.StatusUpcoming},
		{"same day last year is not today", 2023, 1, "15", calendar.StatusUpcoming},
		{"next year early january counts as completed", 2025, 0, "3", calendar.StatusCompleted},
		{"later month", 2024, 2, "1", calendar.StatusUpcoming},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cells, err := calendar.Month(tt.year, tt.month, fixedClock(), utc())
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if got := statuses(cells)[tt.day]; got != tt.want {
				t.Fatalf("day %s: got %q want %q", tt.day, got, tt.want)
			}
		})
	}
}

func TestMonth_ChronologicalRule(t *testing.T) {
	opts := []calendar.Option{fixedClock(), utc(), calendar.WithCompletedRule(calendar.RuleChronological)}
	jan, _ := calendar.Month(2024, 0, opts...)
	for day, st := range statuses(jan) {
		if st != calendar.StatusCompleted {
			t.Fatalf("jan %s: expected completed, got %q", day, st)
		}
	}
	nextJan, _ := calendar.Month(2025, 0, opts...)
	for day, st := range statuses(nextJan) {
		if st != calendar.StatusUpcoming {
			t.Fatalf("2025-01-%s: expected upcoming, got %q", day, st)
		}
	}
	feb, _ := calendar.Month(2024, 1, opts...)
	got := statuses(feb)
	if got["14"] != calendar.StatusCompleted || got["15"] != calendar.StatusToday || got["16"] != calendar.StatusUpcoming {
		t.Fatalf("unexpected february statuses around today: %v %v %v", got["14"], got["15"], got["16"])
	}
}

func TestMonth_LocationDecidesToday(t *testing.T) {
	late := calendar.WithClock(func() time.Time { return time.Date(2024, time.February, 15, 23, 30, 0, 0, time.UTC) })
	tokyo := calendar.WithLocation(time.FixedZone("JST", 9*60*60))
	cells, err := calendar.Month(2024, 1, late, tokyo)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if st := statuses(cells)["16"]; st != calendar.StatusToday {
		t.Fatalf("expected 16th to be today in JST, got %q", st)
	}
}

func TestMonth_ContentAndIdempotence(t *testing.T) {
	a, _ := calendar.Month(2024, 6, fixedClock(), utc(), calendar.WithContent("free"))
	b, _ := calendar.Month(2024, 6, fixedClock(), utc(), calendar.WithContent("free"))
	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("grids differ (-a +b):\n%s", diff)
	}
	for _, c := range a {
		if c.Status != calendar.StatusNone && c.Content != "free" {
			t.Fatalf("expected custom content, got %q", c.Content)
		}
	}
}

func TestWeeks(t *testing.T) {
	cells, _ := calendar.Month(2024, 1, fixedClock(), utc())
	rows := calendar.Weeks(cells)
	if len(rows) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(rows))
	}
	if len(rows[4]) != 5 {
		t.Fatalf("expected a short last row of 5, got %d", len(rows[4]))
	}
	if rows[1][0].Day != "SUN" || rows[1][0].Date != "4" {
		t.Fatalf("expected second row to start on Sunday the 4th, got %+v", rows[1][0])
	}
	if calendar.Weeks(nil) != nil {
		t.Fatalf("expected nil rows for empty grid")
	}
}

func TestMemo_ConcurrentCallers(t *testing.T) {
	memo := calendar.NewMemo(fixedClock(), utc())
	want, _ := calendar.Month(2024, 1, fixedClock(), utc())

	var wg sync.WaitGroup
	errs := make(chan error, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := memo.Month(2024, 1)
			if err != nil {
				errs <- err
				return
			}
			if diff := cmp.Diff(want, got); diff != "" {
				errs <- errors.New(diff)
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatal(err)
	}
	if memo.Len() != 1 {
		t.Fatalf("expected one cached grid, got %d", memo.Len())
	}
}

func TestMemo_CopiesAndDateRollover(t *testing.T) {
	now := time.Date(2024, time.February, 15, 10, 0, 0, 0, time.UTC)
	memo := calendar.NewMemo(utc(), calendar.WithClock(func() time.Time { return now }))

	first, _ := memo.Month(2024, 1)
	first[4].Content = "mutated"
	again, _ := memo.Month(2024, 1)
	if again[4].Content != calendar.DefaultContent {
		t.Fatalf("cached grid was mutated through a returned copy")
	}

	_, _ = memo.Month(2024, 2)
	if memo.Len() != 2 {
		t.Fatalf("expected 2 cached grids, got %d", memo.Len())
	}
	now = now.AddDate(0, 0, 1)
	next, _ := memo.Month(2024, 1)
	if st := statuses(next)["16"]; st != calendar.StatusToday {
		t.Fatalf("expected rebuilt grid after date change, got %q", st)
	}
	if memo.Len() != 1 {
		t.Fatalf("expected stale grids dropped, got %d", memo.Len())
	}
	if _, err := memo.Month(2024, 12); !errors.Is(err, formkit.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestMemo_LateBuildKeepsNewerGrids(t *testing.T) {
	now := time.Date(2024, time.February, 16, 10, 0, 0, 0, time.UTC)
	memo := calendar.NewMemo(utc(), calendar.WithClock(func() time.Time { return now }))

	if _, err := memo.Month(2024, 1); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	// a caller that still observes the previous day finishes last
	now = now.AddDate(0, 0, -1)
	late, err := memo.Month(2024, 2)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if st := statuses(late)["1"]; st != calendar.StatusUpcoming {
		t.Fatalf("late caller must still get its own grid, got %q", st)
	}
	if memo.Len() != 1 {
		t.Fatalf("expected only the newer grid cached, got %d", memo.Len())
	}

	now = now.AddDate(0, 0, 1)
	feb, _ := memo.Month(2024, 1)
	if st := statuses(feb)["16"]; st != calendar.StatusToday {
		t.Fatalf("expected cached grid for the newer date, got %q", st)
	}
	if memo.Len() != 1 {
		t.Fatalf("expected 1 cached grid, got %d", memo.Len())
	}
}
