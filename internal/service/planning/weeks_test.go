package planning

import (
	"testing"
	"time"

	"github.com/taktatakra/emploi-temps-ofppt/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWeekStart_CustomRangeWins(t *testing.T) {
	t.Parallel()

	ranges := map[string]model.WeekRange{
		"S1": {Label: "S1", Start: date(2025, time.November, 17), End: date(2025, time.November, 22)},
	}

	start, ok := WeekStart("Novembre", "S1", ranges)
	if !ok {
		t.Fatalf("expected a start date")
	}
	if !start.Equal(date(2025, time.November, 17)) {
		t.Fatalf("custom range must win, got %v", start)
	}
}

func TestWeekStart_NovembreHeuristic(t *testing.T) {
	t.Parallel()

	// Novembre 2025: le premier lundi est le 3
	start, ok := WeekStart("Novembre", "S1", nil)
	if !ok || !start.Equal(date(2025, time.November, 3)) {
		t.Fatalf("expected 03/11/2025, got %v (ok=%v)", start, ok)
	}

	s2, ok := WeekStart("Novembre", "S2", nil)
	if !ok || !s2.Equal(date(2025, time.November, 10)) {
		t.Fatalf("expected 10/11/2025, got %v (ok=%v)", s2, ok)
	}
}

func TestWeekStart_JanvierIsNextCalendarYear(t *testing.T) {
	t.Parallel()

	start, ok := WeekStart("Janvier", "S1", nil)
	if !ok || !start.Equal(date(2026, time.January, 5)) {
		t.Fatalf("expected 05/01/2026, got %v (ok=%v)", start, ok)
	}
}

func TestWeekStart_Unknown(t *testing.T) {
	t.Parallel()

	if _, ok := WeekStart("Brumaire", "S1", nil); ok {
		t.Fatalf("unknown month must not produce a date")
	}
	if _, ok := WeekStart("Novembre", "Semaine A", nil); ok {
		t.Fatalf("label without S<n> must not produce a date")
	}
}

func TestJourFerie(t *testing.T) {
	t.Parallel()

	// Semaine du 03/11/2025 : jeudi 6 = La Marche Verte
	start := date(2025, time.November, 3)

	label, ferie := JourFerie(start, true, 3)
	if !ferie || label != "La Marche Verte" {
		t.Fatalf("expected La Marche Verte, got %q (ferie=%v)", label, ferie)
	}

	if _, ferie := JourFerie(start, true, 0); ferie {
		t.Fatalf("lundi 3 is not a holiday")
	}

	// 无起始日期时不判定假日
	if _, ferie := JourFerie(time.Time{}, false, 3); ferie {
		t.Fatalf("no start date means no holiday")
	}
}
