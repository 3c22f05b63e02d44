package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// StatusResponse 系统状态响应
type StatusResponse struct {
	Initialized    bool     `json:"initialized"`    // 是否已导入数据
	Months         []string `json:"months"`         // 可用月份（学年顺序）
	NbFormateurs   int      `json:"nbFormateurs"`   // 培训师总数（全月合计）
	NbGroupes      int      `json:"nbGroupes"`      // 小组总数（全月合计）
	NbSalles       int      `json:"nbSalles"`       // 全局教室数
	NbConflits     int      `json:"nbConflits"`     // 冲突日志条数
	NbNonResolus   int      `json:"nbNonResolus"`   // 其中未解决条数
	LastImportTime string   `json:"lastImportTime"` // 最后导入时间
}

// GetStatus 获取系统状态
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	if !h.store.Initialized() {
		c.JSON(http.StatusOK, StatusResponse{Initialized: false, Months: []string{}})
		return
	}

	months := h.store.Months()
	resolved := h.store.Resolved()

	nbFormateurs := 0
	nbGroupes := 0
	for _, mois := range months {
		if m, ok := resolved.Month(mois); ok {
			nbFormateurs += len(m.Formateurs)
			nbGroupes += len(m.Groupes)
		}
	}

	conflits := h.store.Conflicts()
	nonResolus := 0
	for _, e := range conflits {
		if !e.Resolved() {
			nonResolus++
		}
	}

	lastImport := ""
	if t := h.store.LastImportTime(); !t.IsZero() {
		lastImport = t.Format("2006-01-02 15:04:05")
	}

	c.JSON(http.StatusOK, StatusResponse{
		Initialized:    true,
		Months:         months,
		NbFormateurs:   nbFormateurs,
		NbGroupes:      nbGroupes,
		NbSalles:       len(h.store.AllSalles()),
		NbConflits:     len(conflits),
		NbNonResolus:   nonResolus,
		LastImportTime: lastImport,
	})
}
