package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/taktatakra/emploi-temps-ofppt/internal/config"
	"github.com/taktatakra/emploi-temps-ofppt/internal/service/excel"
	"github.com/taktatakra/emploi-temps-ofppt/internal/service/store"
)

// Handler V1 API 处理器
type Handler struct {
	store     *store.MemoryStore
	cfg       *config.AppConfig
	downloads *exportDownloadStore
}

// NewHandler 创建 V1 API 处理器
func NewHandler(st *store.MemoryStore, cfg *config.AppConfig) *Handler {
	return &Handler{
		store:     st,
		cfg:       cfg,
		downloads: newExportDownloadStore(),
	}
}

// RegisterRoutes 注册 V1 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 系统状态
	router.GET("/status", h.GetStatus)

	// 配置管理
	router.GET("/config", h.GetConfig)
	router.PATCH("/config", h.UpdateConfig)

	// 数据导入
	router.POST("/import", h.Import)
	router.POST("/import/clear", h.ClearData)

	// 月份与周区间
	router.GET("/months", h.ListMonths)
	router.GET("/months/:mois", h.GetMonth)
	router.GET("/months/:mois/semaines", h.ListSemaines)
	router.POST("/months/:mois/semaines", h.SetSemaine)
	router.DELETE("/months/:mois/semaines/:semaine", h.DeleteSemaine)

	// 课表视图
	router.GET("/planning/formateur", h.PlanningFormateur)
	router.GET("/planning/groupe", h.PlanningGroupe)
	router.GET("/planning/salles-libres", h.SallesLibres)
	router.GET("/planning/synthese", h.Synthese)
	router.GET("/planning/charge", h.Charge)

	// 冲突日志
	router.GET("/conflits", h.ListConflits)

	// 数据导出
	router.POST("/export/stream", h.ExportStream)
	router.GET("/export/download/:token", h.DownloadExport)
}

// exporterOptions 从配置组装导出抬头
func (h *Handler) exporterOptions() excel.ExporterOptions {
	return excel.ExporterOptions{
		Centre:         h.cfg.Planning.Centre,
		Niveau:         h.cfg.Planning.Niveau,
		AnneeFormation: h.cfg.Planning.AnneeFormation,
		LogoPath:       h.cfg.Export.LogoPath,
		Force25To26:    h.cfg.Planning.Force25To26,
	}
}
