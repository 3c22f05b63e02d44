package planning

import (
	"math"

	"github.com/taktatakra/emploi-temps-ofppt/internal/model"
)

// HeuresFormateur 某培训师一周的课时总数（假日当天不计）
func HeuresFormateur(f *model.Formateur, mois, semaine string, ranges map[string]model.WeekRange) float64 {
	start, hasStart := WeekStart(mois, semaine, ranges)

	heures := 0.0
	for i, jour := range model.Jours {
		if _, ferie := JourFerie(start, hasStart, i); ferie {
			continue
		}
		for _, creneau := range model.Creneaux {
			key := model.SlotKey{Semaine: semaine, Jour: jour, Creneau: creneau}
			if _, ok := f.Slots[key]; ok {
				heures += model.SlotDurations[creneau]
			}
		}
	}
	return heures
}

// HeuresGroupe 某小组一周的课时总数（假日当天不计）
func HeuresGroupe(m *model.MonthSchedule, groupe, mois, semaine string, ranges map[string]model.WeekRange) float64 {
	start, hasStart := WeekStart(mois, semaine, ranges)

	heures := 0.0
	for i, jour := range model.Jours {
		if _, ferie := JourFerie(start, hasStart, i); ferie {
			continue
		}
		for _, creneau := range model.Creneaux {
			key := model.SlotKey{Semaine: semaine, Jour: jour, Creneau: creneau}
			for _, nom := range m.Formateurs {
				if l, ok := m.Schedule[nom].Slots[key]; ok && l.Groupe == groupe {
					heures += model.SlotDurations[creneau]
					break
				}
			}
		}
	}
	return heures
}

// AjusteMasseHoraire 法定课时规则：算出 25.0h 的周课时按 26.0h 上报
func AjusteMasseHoraire(heures float64, force bool) float64 {
	if force && math.Abs(heures-25.0) < 0.01 {
		return 26.0
	}
	return heures
}
