package excel

import (
	"testing"

	"github.com/taktatakra/emploi-temps-ofppt/internal/model"
)

func TestBuildColumnLayout_NestingOrder(t *testing.T) {
	t.Parallel()

	layout := BuildColumnLayout([]string{"S1", "S2"}, 0)

	if layout.SalleCol != 1 {
		t.Fatalf("salle col should follow formateur col, got %d", layout.SalleCol)
	}

	cases := []struct {
		key  model.SlotKey
		want int
	}{
		{model.SlotKey{Semaine: "S1", Jour: "Lundi", Creneau: "AM1"}, 2},
		{model.SlotKey{Semaine: "S1", Jour: "Lundi", Creneau: "PM2"}, 5},
		{model.SlotKey{Semaine: "S1", Jour: "Mardi", Creneau: "AM1"}, 6},
		{model.SlotKey{Semaine: "S1", Jour: "Samedi", Creneau: "PM2"}, 25},
		{model.SlotKey{Semaine: "S2", Jour: "Lundi", Creneau: "AM1"}, 26},
	}
	for _, c := range cases {
		if got := layout.Columns[c.key]; got != c.want {
			t.Fatalf("%+v: expected col %d, got %d", c.key, c.want, got)
		}
	}

	// 2 周 × 6 天 × 4 时段
	if len(layout.Columns) != 48 {
		t.Fatalf("expected 48 addressed columns, got %d", len(layout.Columns))
	}
}

func TestParseSheet_Basic(t *testing.T) {
	t.Parallel()

	header := []string{"Formateur", "Salle", "AM1", "AM2", "PM1", "PM2"}
	rows := [][]string{
		header,
		{"ALAMI", "R1", "G1", "", "", "", "12", "nan"},
		{"", "R9"},
		{"BENANI", "Info 1", "", "G2"},
	}

	m := ParseSheet(rows, "Planning_Novembre")
	if m == nil {
		t.Fatalf("sheet should parse")
	}

	if m.Mois != "Novembre" {
		t.Fatalf("unexpected mois: %q", m.Mois)
	}
	if len(m.Formateurs) != 2 || m.Formateurs[0] != "ALAMI" || m.Formateurs[1] != "BENANI" {
		t.Fatalf("row order must be preserved: %v", m.Formateurs)
	}

	a := m.Schedule["ALAMI"]
	if a.SallePreferee != "R1" {
		t.Fatalf("unexpected salle preferee: %q", a.SallePreferee)
	}
	l := a.Slots[model.SlotKey{Semaine: "S1", Jour: "Lundi", Creneau: "AM1"}]
	if l.Groupe != "G1" || l.Salle != "R1" || !l.Resolved {
		t.Fatalf("unexpected lesson: %+v", l)
	}

	// 纯数字与 nan 不算小组
	if len(a.Slots) != 1 {
		t.Fatalf("numeric/nan cells must be skipped, got %+v", a.Slots)
	}

	b := m.Schedule["BENANI"]
	l2 := b.Slots[model.SlotKey{Semaine: "S1", Jour: "Lundi", Creneau: "AM2"}]
	if l2.Groupe != "G2" || l2.Salle != "Info 1" {
		t.Fatalf("unexpected lesson: %+v", l2)
	}

	// 无日期区间时回退到 S1..S4
	if len(m.Semaines) != 4 || m.Semaines[0] != "S1" || m.Semaines[3] != "S4" {
		t.Fatalf("expected fallback semaines, got %v", m.Semaines)
	}

	if len(m.Groupes) != 2 || m.Groupes[0] != "G1" || m.Groupes[1] != "G2" {
		t.Fatalf("groupes must be sorted: %v", m.Groupes)
	}
	if len(m.Salles) != 2 || m.Salles[0] != "Info 1" || m.Salles[1] != "R1" {
		t.Fatalf("salles must be sorted: %v", m.Salles)
	}
}

func TestParseSheet_NoHeader(t *testing.T) {
	t.Parallel()

	rows := [][]string{
		{"EMPLOI DU TEMPS"},
		{"quelque chose", "sans", "entete"},
	}
	if m := ParseSheet(rows, "Planning_Novembre"); m != nil {
		t.Fatalf("sheet without header must be skipped, got %+v", m)
	}
}

func TestParseSheet_DetectedWeekRanges(t *testing.T) {
	t.Parallel()

	dateRow := make([]string, 30)
	dateRow[2] = "01/12/2025 → 06/12/2025"
	dateRow[26] = "08/12/2025 - 13/12/2025"

	rows := [][]string{
		{"CFP TLRA"},
		dateRow,
		{"Form", "Salle", "AM1", "AM2", "PM1", "PM2"},
		{"ALAMI", "R1", "G1"},
	}

	m := ParseSheet(rows, "Planning_Decembre")
	if m == nil {
		t.Fatalf("sheet should parse")
	}
	if m.Mois != "Décembre" {
		t.Fatalf("month name should be normalized, got %q", m.Mois)
	}

	if len(m.Semaines) != 2 || m.Semaines[0] != "S1" || m.Semaines[1] != "S2" {
		t.Fatalf("expected S1/S2 from detected ranges, got %v", m.Semaines)
	}

	r1 := m.WeekRanges["S1"]
	if r1.Start.Day() != 1 || int(r1.Start.Month()) != 12 || r1.Start.Year() != 2025 {
		t.Fatalf("unexpected S1 start: %v", r1.Start)
	}
	if r1.End.Day() != 6 {
		t.Fatalf("unexpected S1 end: %v", r1.End)
	}
	r2 := m.WeekRanges["S2"]
	if r2.Start.Day() != 8 {
		t.Fatalf("unexpected S2 start: %v", r2.Start)
	}

	// 检测到 2 周时，第一周块仍从教室列之后开始
	l := m.Schedule["ALAMI"].Slots[model.SlotKey{Semaine: "S1", Jour: "Lundi", Creneau: "AM1"}]
	if l.Groupe != "G1" {
		t.Fatalf("unexpected lesson: %+v", l)
	}
}

func TestDetectWeekRanges_CrossRowColumnOrder(t *testing.T) {
	t.Parallel()

	// 第二周的区间在更早的一行命中，编号仍必须跟列顺序走
	lateWeek := make([]string, 30)
	lateWeek[26] = "08/12/2025 → 13/12/2025"
	earlyWeek := make([]string, 30)
	earlyWeek[2] = "01/12/2025 → 06/12/2025"

	rows := [][]string{
		lateWeek,
		earlyWeek,
		{"Form", "Salle", "AM1", "AM2", "PM1", "PM2"},
	}

	ranges := detectWeekRanges(rows, 2)
	if len(ranges) != 2 {
		t.Fatalf("expected 2 ranges, got %d", len(ranges))
	}
	if ranges[0].Label != "S1" || ranges[0].Start.Day() != 1 {
		t.Fatalf("leftmost column must become S1, got %+v", ranges[0])
	}
	if ranges[1].Label != "S2" || ranges[1].Start.Day() != 8 {
		t.Fatalf("rightmost column must become S2, got %+v", ranges[1])
	}
}

func TestTryParseDate_Formats(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in         string
		wantDay    int
		wantMonth  int
		wantYear   int
		shouldFail bool
	}{
		{in: "01/12/2025", wantDay: 1, wantMonth: 12, wantYear: 2025},
		{in: "01/12/25", wantDay: 1, wantMonth: 12, wantYear: 2025},
		// ISO 写法到这里已被区间分隔符拆散，回退解析把 2025 当日数拒收
		{in: "2025-12-01", shouldFail: true},
		{in: "01.12.2025", wantDay: 1, wantMonth: 12, wantYear: 2025},
		{in: " 1/12/2025 ", wantDay: 1, wantMonth: 12, wantYear: 2025},
		{in: "pas une date", shouldFail: true},
		{in: "", shouldFail: true},
	}
	for _, c := range cases {
		got, ok := tryParseDate(c.in)
		if c.shouldFail {
			if ok {
				t.Fatalf("%q should not parse, got %v", c.in, got)
			}
			continue
		}
		if !ok {
			t.Fatalf("%q should parse", c.in)
		}
		if got.Day() != c.wantDay || int(got.Month()) != c.wantMonth || got.Year() != c.wantYear {
			t.Fatalf("%q parsed as %v", c.in, got)
		}
	}
}
