package model

import "testing"

func TestSalleLabel(t *testing.T) {
	t.Parallel()

	cases := []struct {
		lesson Lesson
		want   string
	}{
		{Lesson{Groupe: "G1", Salle: "R1", Resolved: true}, "R1"},
		{Lesson{Groupe: "G1", Salle: "R1", Resolved: false}, "R1 " + ConflitNonResolu},
		{Lesson{Groupe: "G1", Salle: "", Resolved: false}, "Aucune " + ConflitNonResolu},
		{Lesson{Groupe: "G1", Salle: "", Resolved: true}, ""},
	}
	for _, c := range cases {
		if got := c.lesson.SalleLabel(); got != c.want {
			t.Fatalf("SalleLabel(%+v) = %q, want %q", c.lesson, got, c.want)
		}
	}
}

func TestNormalizeMois(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"Decembre":   "Décembre",
		"Aout":       "Août",
		"Fevrier":    "Février",
		"Novembre":   "Novembre",
		" Decembre ": "Décembre",
	}
	for in, want := range cases {
		if got := NormalizeMois(in); got != want {
			t.Fatalf("NormalizeMois(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSortMonths_AcademicOrder(t *testing.T) {
	t.Parallel()

	got := SortMonths([]string{"Janvier", "Novembre", "Inconnu", "Décembre"})
	want := []string{"Novembre", "Décembre", "Janvier", "Inconnu"}
	if len(got) != len(want) {
		t.Fatalf("unexpected length: %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: got %v, want %v", i, got, want)
		}
	}
}

func TestScheduleSet_AllSalles(t *testing.T) {
	t.Parallel()

	set := NewScheduleSet()
	set.Add(&MonthSchedule{Mois: "Novembre", Schedule: map[string]*Formateur{}, Salles: []string{"R2", "R1"}})
	set.Add(&MonthSchedule{Mois: "Décembre", Schedule: map[string]*Formateur{}, Salles: []string{"R1", "Info 1"}})

	got := set.AllSalles()
	want := []string{"Info 1", "R1", "R2"}
	if len(got) != len(want) {
		t.Fatalf("unexpected salles: %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: got %v, want %v", i, got, want)
		}
	}
}

func TestScheduleSet_CloneIsDeep(t *testing.T) {
	t.Parallel()

	set := NewScheduleSet()
	set.Add(&MonthSchedule{
		Mois:       "Novembre",
		Formateurs: []string{"ALAMI"},
		Schedule: map[string]*Formateur{
			"ALAMI": {Nom: "ALAMI", SallePreferee: "R1", Slots: map[SlotKey]Lesson{
				{Semaine: "S1", Jour: "Lundi", Creneau: "AM1"}: {Groupe: "G1", Salle: "R1", Resolved: true},
			}},
		},
		Salles:     []string{"R1"},
		WeekRanges: map[string]WeekRange{},
	})

	clone := set.Clone()
	clone.Data["Novembre"].Schedule["ALAMI"].Slots[SlotKey{Semaine: "S1", Jour: "Lundi", Creneau: "AM1"}] = Lesson{Groupe: "G1", Salle: "R9"}
	clone.Data["Novembre"].Salles[0] = "X"

	orig := set.Data["Novembre"]
	if orig.Salles[0] != "R1" {
		t.Fatalf("clone shares salles slice")
	}
	l := orig.Schedule["ALAMI"].Slots[SlotKey{Semaine: "S1", Jour: "Lundi", Creneau: "AM1"}]
	if l.Salle != "R1" {
		t.Fatalf("clone shares slot map: %+v", l)
	}
}
