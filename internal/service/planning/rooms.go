package planning

import (
	"sort"

	"github.com/taktatakra/emploi-temps-ofppt/internal/model"
)

// SallesLibres 某（周, 日, 时段）的空闲教室
// 未解决标记的槽位不构成真实占用
func SallesLibres(m *model.MonthSchedule, allSalles []string, semaine, jour, creneau string) []string {
	key := model.SlotKey{Semaine: semaine, Jour: jour, Creneau: creneau}

	occ := make(map[string]struct{})
	for _, f := range m.Schedule {
		if l, ok := f.Slots[key]; ok && l.Resolved && l.Salle != "" {
			occ[l.Salle] = struct{}{}
		}
	}

	libres := make([]string, 0, len(allSalles))
	for _, salle := range allSalles {
		if _, taken := occ[salle]; !taken {
			libres = append(libres, salle)
		}
	}
	sort.Strings(libres)
	return libres
}

// SyntheseRow 整周空闲教室汇总的一行
type SyntheseRow struct {
	Jour     string   `json:"jour"`
	Creneau  string   `json:"creneau"`
	Horaire  string   `json:"horaire"`
	NbLibres int      `json:"nbLibres"`
	Salles   []string `json:"salles"`
	Ferie    string   `json:"ferie,omitempty"`
}

// Synthese 一周 6 日 × 4 时段的空闲教室汇总（假日当天全部空闲）
func Synthese(m *model.MonthSchedule, allSalles []string, mois, semaine string, ranges map[string]model.WeekRange) []SyntheseRow {
	start, hasStart := WeekStart(mois, semaine, ranges)

	rows := make([]SyntheseRow, 0, len(model.Jours)*len(model.Creneaux))
	for i, jour := range model.Jours {
		label, ferie := JourFerie(start, hasStart, i)
		for _, creneau := range model.Creneaux {
			var libres []string
			if ferie {
				libres = append([]string(nil), allSalles...)
				sort.Strings(libres)
			} else {
				libres = SallesLibres(m, allSalles, semaine, jour, creneau)
			}
			rows = append(rows, SyntheseRow{
				Jour:     jour,
				Creneau:  creneau,
				Horaire:  model.Horaires[creneau],
				NbLibres: len(libres),
				Salles:   libres,
				Ferie:    label,
			})
		}
	}
	return rows
}

// 小组负荷分类阈值：均值的 85% / 115%
const (
	chargeSeuilBas  = 0.85
	chargeSeuilHaut = 1.15
)

// ChargeGroupe 单个小组的周负荷
type ChargeGroupe struct {
	Groupe     string  `json:"groupe"`
	Heures     float64 `json:"heures"`
	NbCreneaux int     `json:"nbCreneaux"`
	Categorie  string  `json:"categorie"`
	Ecart      float64 `json:"ecart"`
}

// ChargeAnalyse 某周全部小组的负荷分析
type ChargeAnalyse struct {
	Moyenne   float64        `json:"moyenne"`
	SeuilBas  float64        `json:"seuilBas"`
	SeuilHaut float64        `json:"seuilHaut"`
	Groupes   []ChargeGroupe `json:"groupes"`
}

// AnalyseCharge 统计每个小组的课时负荷并按阈值分类，按课时降序返回
func AnalyseCharge(m *model.MonthSchedule, semaine string) ChargeAnalyse {
	groupes := make([]ChargeGroupe, 0, len(m.Groupes))
	total := 0.0

	for _, groupe := range m.Groupes {
		heures := 0.0
		nb := 0
		for _, jour := range model.Jours {
			for _, creneau := range model.Creneaux {
				key := model.SlotKey{Semaine: semaine, Jour: jour, Creneau: creneau}
				for _, nom := range m.Formateurs {
					if l, ok := m.Schedule[nom].Slots[key]; ok && l.Groupe == groupe {
						heures += model.SlotDurations[creneau]
						nb++
						break
					}
				}
			}
		}
		groupes = append(groupes, ChargeGroupe{Groupe: groupe, Heures: heures, NbCreneaux: nb})
		total += heures
	}

	analyse := ChargeAnalyse{Groupes: groupes}
	if len(groupes) == 0 {
		return analyse
	}

	analyse.Moyenne = total / float64(len(groupes))
	analyse.SeuilBas = analyse.Moyenne * chargeSeuilBas
	analyse.SeuilHaut = analyse.Moyenne * chargeSeuilHaut

	for i := range analyse.Groupes {
		g := &analyse.Groupes[i]
		g.Ecart = g.Heures - analyse.Moyenne
		switch {
		case g.Heures > analyse.SeuilHaut:
			g.Categorie = "Trop Chargé"
		case g.Heures >= analyse.SeuilBas:
			g.Categorie = "Chargé"
		default:
			g.Categorie = "Normal"
		}
	}

	sort.SliceStable(analyse.Groupes, func(i, j int) bool {
		return analyse.Groupes[i].Heures > analyse.Groupes[j].Heures
	})
	return analyse
}
