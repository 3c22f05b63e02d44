package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taktatakra/emploi-temps-ofppt/internal/model"
	"github.com/taktatakra/emploi-temps-ofppt/internal/service/planning"
)

// caseDTO 课表单元格
type caseDTO struct {
	Creneau   string `json:"creneau"`
	Horaire   string `json:"horaire"`
	Groupe    string `json:"groupe,omitempty"`
	Formateur string `json:"formateur,omitempty"`
	Salle     string `json:"salle,omitempty"`
	Resolu    bool   `json:"resolu"`
}

// jourDTO 课表一行（一个教学日）
type jourDTO struct {
	Jour  string    `json:"jour"`
	Date  string    `json:"date,omitempty"`
	Ferie string    `json:"ferie,omitempty"` // 非空表示假日名称
	Cases []caseDTO `json:"cases"`
}

// PlanningFormateur 培训师周课表视图
// GET /api/planning/formateur?mois=..&formateur=..&semaine=..
func (h *Handler) PlanningFormateur(c *gin.Context) {
	mois := c.Query("mois")
	formateur := c.Query("formateur")
	semaine := c.Query("semaine")

	m, err := h.store.Month(mois)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "mois introuvable"})
		return
	}
	f, ok := m.Schedule[formateur]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "formateur introuvable"})
		return
	}

	ranges := h.store.EffectiveWeekRanges(mois)
	jours := buildWeekView(mois, semaine, ranges, func(jour, creneau string) (caseDTO, bool) {
		l, ok := f.Slots[model.SlotKey{Semaine: semaine, Jour: jour, Creneau: creneau}]
		if !ok || l.Groupe == "" {
			return caseDTO{}, false
		}
		return caseDTO{Groupe: l.Groupe, Salle: l.SalleLabel(), Resolu: l.Resolved}, true
	})

	heures := planning.AjusteMasseHoraire(
		planning.HeuresFormateur(f, mois, semaine, ranges), h.cfg.Planning.Force25To26)

	c.JSON(http.StatusOK, gin.H{
		"mois":          mois,
		"formateur":     formateur,
		"semaine":       semaine,
		"sallePreferee": f.SallePreferee,
		"masseHoraire":  heures,
		"jours":         jours,
	})
}

// PlanningGroupe 小组周课表视图（未解决冲突标记软化为 (Conflit)）
// GET /api/planning/groupe?mois=..&groupe=..&semaine=..
func (h *Handler) PlanningGroupe(c *gin.Context) {
	mois := c.Query("mois")
	groupe := c.Query("groupe")
	semaine := c.Query("semaine")

	m, err := h.store.Month(mois)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "mois introuvable"})
		return
	}

	ranges := h.store.EffectiveWeekRanges(mois)
	jours := buildWeekView(mois, semaine, ranges, func(jour, creneau string) (caseDTO, bool) {
		key := model.SlotKey{Semaine: semaine, Jour: jour, Creneau: creneau}
		for _, nom := range m.Formateurs {
			l, ok := m.Schedule[nom].Slots[key]
			if !ok || l.Groupe != groupe {
				continue
			}
			return caseDTO{Formateur: nom, Salle: salleDouceLabel(l), Resolu: l.Resolved}, true
		}
		return caseDTO{}, false
	})

	c.JSON(http.StatusOK, gin.H{
		"mois":         mois,
		"groupe":       groupe,
		"semaine":      semaine,
		"masseHoraire": planning.HeuresGroupe(m, groupe, mois, semaine, ranges),
		"jours":        jours,
	})
}

// buildWeekView 组装一周六天的视图行，假日整行标记
func buildWeekView(mois, semaine string, ranges map[string]model.WeekRange, fill func(jour, creneau string) (caseDTO, bool)) []jourDTO {
	start, hasStart := planning.WeekStart(mois, semaine, ranges)

	out := make([]jourDTO, 0, len(model.Jours))
	for i, jour := range model.Jours {
		row := jourDTO{Jour: jour, Cases: []caseDTO{}}
		if hasStart {
			row.Date = planning.DayDate(start, i).Format(dateLayoutFR)
		}
		if label, ferie := planning.JourFerie(start, hasStart, i); ferie {
			row.Ferie = label
			out = append(out, row)
			continue
		}
		for _, creneau := range model.Creneaux {
			dto, ok := fill(jour, creneau)
			if !ok {
				continue
			}
			dto.Creneau = creneau
			dto.Horaire = model.Horaires[creneau]
			row.Cases = append(row.Cases, dto)
		}
		out = append(out, row)
	}
	return out
}

// salleDouceLabel 与导出侧一致的软化文本
func salleDouceLabel(l model.Lesson) string {
	if l.Resolved {
		return l.Salle
	}
	base := l.Salle
	if base == "" {
		base = "Aucune"
	}
	return base + " (Conflit)"
}

// SallesLibres 某时段空闲教室
// GET /api/planning/salles-libres?mois=..&semaine=..&jour=..&creneau=..
func (h *Handler) SallesLibres(c *gin.Context) {
	mois := c.Query("mois")
	m, err := h.store.Month(mois)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "mois introuvable"})
		return
	}

	libres := planning.SallesLibres(m, h.store.AllSalles(),
		c.Query("semaine"), c.Query("jour"), c.Query("creneau"))

	c.JSON(http.StatusOK, gin.H{
		"mois":    mois,
		"semaine": c.Query("semaine"),
		"jour":    c.Query("jour"),
		"creneau": c.Query("creneau"),
		"salles":  libres,
	})
}

// Synthese 某周全部时段的空闲教室汇总
// GET /api/planning/synthese?mois=..&semaine=..
func (h *Handler) Synthese(c *gin.Context) {
	mois := c.Query("mois")
	semaine := c.Query("semaine")

	m, err := h.store.Month(mois)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "mois introuvable"})
		return
	}

	rows := planning.Synthese(m, h.store.AllSalles(), mois, semaine, h.store.EffectiveWeekRanges(mois))
	c.JSON(http.StatusOK, gin.H{"mois": mois, "semaine": semaine, "synthese": rows})
}

// Charge 小组负荷分析
// GET /api/planning/charge?mois=..&semaine=..
func (h *Handler) Charge(c *gin.Context) {
	mois := c.Query("mois")
	semaine := c.Query("semaine")

	m, err := h.store.Month(mois)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "mois introuvable"})
		return
	}

	c.JSON(http.StatusOK, planning.AnalyseCharge(m, semaine))
}

// ListConflits 冲突处理日志，可按月/周过滤
// GET /api/conflits?mois=..&semaine=..
func (h *Handler) ListConflits(c *gin.Context) {
	mois := c.Query("mois")
	semaine := c.Query("semaine")

	all := h.store.Conflicts()
	out := make([]model.ConflictEntry, 0, len(all))
	nonResolus := 0
	for _, e := range all {
		if mois != "" && e.Mois != mois {
			continue
		}
		if semaine != "" && e.Semaine != semaine {
			continue
		}
		if !e.Resolved() {
			nonResolus++
		}
		out = append(out, e)
	}

	c.JSON(http.StatusOK, gin.H{
		"total":      len(out),
		"nonResolus": nonResolus,
		"conflits":   out,
	})
}
