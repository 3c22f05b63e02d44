package store

import (
	"testing"
	"time"

	"github.com/taktatakra/emploi-temps-ofppt/internal/model"
)

func testSet(t *testing.T) *model.ScheduleSet {
	t.Helper()
	set := model.NewScheduleSet()
	set.Add(&model.MonthSchedule{
		Mois:       "Novembre",
		Formateurs: []string{"ALAMI"},
		Schedule: map[string]*model.Formateur{
			"ALAMI": {Nom: "ALAMI", SallePreferee: "R1", Slots: map[model.SlotKey]model.Lesson{}},
		},
		Semaines: []string{"S1"},
		Salles:   []string{"R1"},
		WeekRanges: map[string]model.WeekRange{
			"S1": {Label: "S1", Start: time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC), End: time.Date(2025, 11, 8, 0, 0, 0, 0, time.UTC)},
		},
	})
	return set
}

func TestMemoryStore_Lifecycle(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	if s.Initialized() {
		t.Fatalf("fresh store must not be initialized")
	}
	if _, err := s.Month("Novembre"); err == nil {
		t.Fatalf("expected error before first import")
	}

	set := testSet(t)
	s.SetData("abc123", set, set.Clone(), []model.ConflictEntry{{Mois: "Novembre"}})

	if !s.Initialized() {
		t.Fatalf("store should be initialized after SetData")
	}
	if s.Fingerprint() != "abc123" {
		t.Fatalf("unexpected fingerprint %q", s.Fingerprint())
	}
	if s.LastImportTime().IsZero() {
		t.Fatalf("last import time must be set")
	}

	m, err := s.Month("Novembre")
	if err != nil {
		t.Fatalf("month lookup failed: %v", err)
	}
	if m.Mois != "Novembre" {
		t.Fatalf("unexpected month: %+v", m)
	}
	if _, err := s.Month("Juin"); err == nil {
		t.Fatalf("unknown month must error")
	}

	if got := s.Months(); len(got) != 1 || got[0] != "Novembre" {
		t.Fatalf("unexpected months: %v", got)
	}
	if got := s.AllSalles(); len(got) != 1 || got[0] != "R1" {
		t.Fatalf("unexpected salles: %v", got)
	}
	if got := s.Conflicts(); len(got) != 1 {
		t.Fatalf("unexpected conflicts: %v", got)
	}

	s.Clear()
	if s.Initialized() || s.Fingerprint() != "" {
		t.Fatalf("clear must reset the store")
	}
}

func TestMemoryStore_ConflictsReturnsCopy(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	set := testSet(t)
	s.SetData("fp", set, set.Clone(), []model.ConflictEntry{{Formateur: "ALAMI"}})

	got := s.Conflicts()
	got[0].Formateur = "MUTATED"

	if s.Conflicts()[0].Formateur != "ALAMI" {
		t.Fatalf("internal conflict log must not be mutable from outside")
	}
}

func TestMemoryStore_CustomWeeksOverride(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	set := testSet(t)
	s.SetData("fp", set, set.Clone(), nil)

	detected := s.EffectiveWeekRanges("Novembre")["S1"]
	if detected.Start.Day() != 3 {
		t.Fatalf("expected detected range, got %+v", detected)
	}

	custom := model.WeekRange{
		Label: "S1",
		Start: time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 11, 15, 0, 0, 0, 0, time.UTC),
	}
	s.SetCustomWeek("Novembre", custom)

	eff := s.EffectiveWeekRanges("Novembre")["S1"]
	if eff.Start.Day() != 10 {
		t.Fatalf("custom range must win, got %+v", eff)
	}
	if len(s.CustomWeeks("Novembre")) != 1 {
		t.Fatalf("custom week not recorded")
	}

	s.DeleteCustomWeek("Novembre", "S1")
	eff = s.EffectiveWeekRanges("Novembre")["S1"]
	if eff.Start.Day() != 3 {
		t.Fatalf("delete must revert to detected range, got %+v", eff)
	}

	s.SetCustomWeek("Novembre", custom)
	s.ClearCustomWeeks("Novembre")
	if len(s.CustomWeeks("Novembre")) != 0 {
		t.Fatalf("clear must drop all custom weeks")
	}
}
