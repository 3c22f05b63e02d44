package v1

import (
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/taktatakra/emploi-temps-ofppt/internal/model"
	"github.com/taktatakra/emploi-temps-ofppt/internal/service/planning"
)

const dateLayoutFR = "02/01/2006"

// semaineDTO 周区间（日期为 jj/mm/aaaa）
type semaineDTO struct {
	Semaine string `json:"semaine"`
	Du      string `json:"du"`
	Au      string `json:"au"`
	Custom  bool   `json:"custom"` // 手工覆盖的区间
}

// ListSemaines 某月的周区间（检测值 + 手工覆盖，覆盖优先）
// GET /api/months/:mois/semaines
func (h *Handler) ListSemaines(c *gin.Context) {
	mois := c.Param("mois")
	m, err := h.store.Month(mois)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "mois introuvable"})
		return
	}

	custom := h.store.CustomWeeks(mois)
	effective := h.store.EffectiveWeekRanges(mois)

	labels := append([]string{}, m.Semaines...)
	for label := range custom {
		found := false
		for _, l := range labels {
			if l == label {
				found = true
				break
			}
		}
		if !found {
			labels = append(labels, label)
		}
	}
	sort.Strings(labels)

	out := make([]semaineDTO, 0, len(labels))
	for _, label := range labels {
		dto := semaineDTO{Semaine: label}
		if _, ok := custom[label]; ok {
			dto.Custom = true
		}
		if r, ok := effective[label]; ok {
			dto.Du = r.Start.Format(dateLayoutFR)
			dto.Au = r.End.Format(dateLayoutFR)
		} else if start, ok := planning.WeekStart(mois, label, effective); ok {
			dto.Du = start.Format(dateLayoutFR)
			dto.Au = planning.DayDate(start, 5).Format(dateLayoutFR)
		}
		out = append(out, dto)
	}

	c.JSON(http.StatusOK, gin.H{"mois": mois, "semaines": out})
}

type setSemaineRequest struct {
	Semaine string `json:"semaine" binding:"required"`
	Du      string `json:"du" binding:"required"`
	Au      string `json:"au"`
}

// SetSemaine 手工覆盖某周的起始日期
// POST /api/months/:mois/semaines
func (h *Handler) SetSemaine(c *gin.Context) {
	mois := c.Param("mois")
	if _, err := h.store.Month(mois); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "mois introuvable"})
		return
	}

	var req setSemaineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "requête invalide"})
		return
	}

	start, err := time.Parse(dateLayoutFR, req.Du)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date invalide (jj/mm/aaaa attendu)"})
		return
	}

	end := start.AddDate(0, 0, 5)
	if req.Au != "" {
		end, err = time.Parse(dateLayoutFR, req.Au)
		if err != nil || end.Before(start) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date de fin invalide"})
			return
		}
	}

	h.store.SetCustomWeek(mois, model.WeekRange{Label: req.Semaine, Start: start, End: end})
	c.JSON(http.StatusOK, semaineDTO{
		Semaine: req.Semaine,
		Du:      start.Format(dateLayoutFR),
		Au:      end.Format(dateLayoutFR),
		Custom:  true,
	})
}

// DeleteSemaine 移除手工覆盖，回到检测值
// DELETE /api/months/:mois/semaines/:semaine
func (h *Handler) DeleteSemaine(c *gin.Context) {
	h.store.DeleteCustomWeek(c.Param("mois"), c.Param("semaine"))
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
