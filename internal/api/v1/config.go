package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taktatakra/emploi-temps-ofppt/internal/config"
)

// ConfigResponse 课表相关配置
type ConfigResponse struct {
	Centre         string `json:"centre"`
	Niveau         string `json:"niveau"`
	AnneeFormation string `json:"anneeFormation"`
	Force25To26    bool   `json:"force25To26"`
	LogoPath       string `json:"logoPath"`
}

// UpdateConfigRequest 部分更新请求，指针字段缺省表示不变
type UpdateConfigRequest struct {
	Centre         *string `json:"centre"`
	Niveau         *string `json:"niveau"`
	AnneeFormation *string `json:"anneeFormation"`
	Force25To26    *bool   `json:"force25To26"`
	LogoPath       *string `json:"logoPath"`
}

// GetConfig 获取导出抬头与业务规则配置
// GET /api/config
func (h *Handler) GetConfig(c *gin.Context) {
	c.JSON(http.StatusOK, ConfigResponse{
		Centre:         h.cfg.Planning.Centre,
		Niveau:         h.cfg.Planning.Niveau,
		AnneeFormation: h.cfg.Planning.AnneeFormation,
		Force25To26:    h.cfg.Planning.Force25To26,
		LogoPath:       h.cfg.Export.LogoPath,
	})
}

// UpdateConfig 更新配置并落盘到 TOML
// PATCH /api/config
func (h *Handler) UpdateConfig(c *gin.Context) {
	var req UpdateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "requête invalide"})
		return
	}

	if req.Centre != nil {
		h.cfg.Planning.Centre = *req.Centre
	}
	if req.Niveau != nil {
		h.cfg.Planning.Niveau = *req.Niveau
	}
	if req.AnneeFormation != nil {
		h.cfg.Planning.AnneeFormation = *req.AnneeFormation
	}
	if req.Force25To26 != nil {
		h.cfg.Planning.Force25To26 = *req.Force25To26
	}
	if req.LogoPath != nil {
		h.cfg.Export.LogoPath = *req.LogoPath
	}

	if err := config.SaveConfig(h.cfg); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "enregistrement de la configuration échoué"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "configuration enregistrée"})
}
