package v1

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/taktatakra/emploi-temps-ofppt/internal/service/excel"
	"github.com/taktatakra/emploi-temps-ofppt/internal/service/planning"
)

// exportRequest 导出请求
type exportRequest struct {
	Type      string `json:"type" binding:"required"` // formateur | groupe | pack_formateurs | pack_groupes | conflits | charge
	Mois      string `json:"mois"`
	Semaine   string `json:"semaine"`
	Formateur string `json:"formateur"`
	Groupe    string `json:"groupe"`
}

type exportProgressEvent struct {
	Type      string      `json:"type"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
}

// ExportStream 导出 Excel（SSE 进度 + 完成后提供一次性下载地址）
// POST /api/export/stream
func (h *Handler) ExportStream(c *gin.Context) {
	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "requête invalide"})
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "flux non supporté"})
		return
	}

	send := func(event exportProgressEvent) {
		b, err := json.Marshal(event)
		if err != nil {
			return
		}
		fmt.Fprintf(c.Writer, "data: %s\n\n", b)
		flusher.Flush()
	}

	send(exportProgressEvent{
		Type:      "start",
		Message:   "export démarré",
		Data:      map[string]any{"type": req.Type, "mois": req.Mois, "semaine": req.Semaine},
		Timestamp: time.Now(),
	})

	wb, fileName, err := h.buildExport(req)
	if err != nil {
		send(exportProgressEvent{
			Type:      "error",
			Message:   "export échoué: " + err.Error(),
			Data:      map[string]any{},
			Timestamp: time.Now(),
		})
		return
	}
	defer wb.Close()

	tempPath := filepath.Join(os.TempDir(), fmt.Sprintf("edt_export_%d_%d.xlsx", time.Now().UnixNano(), os.Getpid()))
	if err := wb.SaveAs(tempPath); err != nil {
		send(exportProgressEvent{
			Type:      "error",
			Message:   "écriture du fichier échouée: " + err.Error(),
			Data:      map[string]any{},
			Timestamp: time.Now(),
		})
		_ = os.Remove(tempPath)
		return
	}

	token := h.downloads.put(tempPath, fileName, 10*time.Minute)
	send(exportProgressEvent{
		Type:    "done",
		Message: "export terminé",
		Data: map[string]any{
			"downloadUrl": "/api/export/download/" + token,
			"fileName":    fileName,
		},
		Timestamp: time.Now(),
	})
}

// buildExport 按类型生成工作簿与下载文件名
func (h *Handler) buildExport(req exportRequest) (*excelize.File, string, error) {
	switch req.Type {
	case "conflits":
		wb, err := excel.ExportConflits(h.store.Conflicts())
		return wb, "conflits.xlsx", err
	}

	m, err := h.store.Month(req.Mois)
	if err != nil {
		return nil, "", fmt.Errorf("mois %q introuvable", req.Mois)
	}
	ranges := h.store.EffectiveWeekRanges(req.Mois)
	exp := excel.NewExporter(h.exporterOptions())

	switch req.Type {
	case "formateur":
		wb, err := exp.ExportFormateurSemaine(m, req.Formateur, req.Semaine, req.Mois, ranges)
		return wb, fmt.Sprintf("EDT_%s_%s_%s.xlsx", req.Formateur, req.Mois, req.Semaine), err
	case "groupe":
		wb, err := exp.ExportGroupeSemaine(m, req.Groupe, req.Semaine, req.Mois, ranges)
		return wb, fmt.Sprintf("EDT_%s_%s_%s.xlsx", req.Groupe, req.Mois, req.Semaine), err
	case "pack_formateurs":
		wb, err := exp.ExportPackFormateurs(m, req.Semaine, req.Mois, ranges)
		return wb, fmt.Sprintf("EDT_Formateurs_%s_%s.xlsx", req.Mois, req.Semaine), err
	case "pack_groupes":
		wb, err := exp.ExportPackGroupes(m, req.Semaine, req.Mois, ranges)
		return wb, fmt.Sprintf("EDT_Groupes_%s_%s.xlsx", req.Mois, req.Semaine), err
	case "charge":
		analyse := planning.AnalyseCharge(m, req.Semaine)
		wb, err := excel.ExportCharge(analyse, req.Mois, req.Semaine)
		return wb, fmt.Sprintf("Charge_%s_%s.xlsx", req.Mois, req.Semaine), err
	default:
		return nil, "", fmt.Errorf("type d'export inconnu %q", req.Type)
	}
}

// DownloadExport 下载导出的 Excel 文件（一次性）
// GET /api/export/download/:token
func (h *Handler) DownloadExport(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token manquant"})
		return
	}

	item, ok := h.downloads.get(token)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "lien de téléchargement expiré"})
		return
	}

	if _, err := os.Stat(item.filePath); err != nil {
		h.downloads.delete(token)
		c.JSON(http.StatusNotFound, gin.H{"error": "fichier d'export introuvable"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", item.fileName))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.File(item.filePath)

	h.downloads.delete(token)
	_ = os.Remove(item.filePath)
}
