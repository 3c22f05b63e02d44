package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListMonths 获取可用月份（学年顺序）
// GET /api/months
func (h *Handler) ListMonths(c *gin.Context) {
	if !h.store.Initialized() {
		c.JSON(http.StatusOK, gin.H{"months": []string{}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"months": h.store.Months()})
}

// monthResponse 单月概览
type monthResponse struct {
	Mois       string   `json:"mois"`
	Formateurs []string `json:"formateurs"` // 工作表行序
	Groupes    []string `json:"groupes"`    // 字母序
	Salles     []string `json:"salles"`     // 字母序
	Semaines   []string `json:"semaines"`
}

// GetMonth 获取某月的培训师/小组/教室清单
// GET /api/months/:mois
func (h *Handler) GetMonth(c *gin.Context) {
	m, err := h.store.Month(c.Param("mois"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "mois introuvable"})
		return
	}

	c.JSON(http.StatusOK, monthResponse{
		Mois:       m.Mois,
		Formateurs: m.Formateurs,
		Groupes:    m.Groupes,
		Salles:     m.Salles,
		Semaines:   m.Semaines,
	})
}
