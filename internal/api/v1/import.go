package v1

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/taktatakra/emploi-temps-ofppt/internal/service/excel"
	"github.com/taktatakra/emploi-temps-ofppt/internal/service/resolver"
)

// importProgressEvent 导入进度事件
type importProgressEvent struct {
	Type      string      `json:"type"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
}

// Import 导入排课工作簿 (SSE 流式响应)
// 同一文件指纹重复上传时直接复用已解析结果
// POST /api/import
func (h *Handler) Import(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "formulaire invalide"})
		return
	}

	files := form.File["file"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "aucun fichier reçu"})
		return
	}

	src, err := files[0].Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lecture du fichier impossible"})
		return
	}
	defer src.Close()

	content, err := io.ReadAll(src)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lecture du fichier impossible"})
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

	send := func(event importProgressEvent) {
		b, err := json.Marshal(event)
		if err != nil {
			return
		}
		fmt.Fprintf(c.Writer, "data: %s\n\n", b)
		flusher.Flush()
	}

	sum := sha256.Sum256(content)
	fingerprint := hex.EncodeToString(sum[:])

	// 指纹一致：不重新解析
	if h.store.Initialized() && h.store.Fingerprint() == fingerprint {
		send(importProgressEvent{
			Type:      "done",
			Message:   "fichier déjà importé, résultats réutilisés",
			Data:      doneData(h, true),
			Timestamp: time.Now(),
		})
		return
	}

	send(importProgressEvent{
		Type:      "start",
		Message:   "import démarré",
		Data:      map[string]any{"fileName": files[0].Filename, "size": len(content)},
		Timestamp: time.Now(),
	})

	parser := excel.NewParser()
	if err := parser.LoadFile(bytes.NewReader(content)); err != nil {
		send(importProgressEvent{
			Type:      "error",
			Message:   "fichier Excel illisible",
			Data:      map[string]any{},
			Timestamp: time.Now(),
		})
		return
	}
	defer parser.Close()

	raw, err := parser.ParseWorkbookProgress(func(name string, ok bool) {
		msg := "feuille ignorée"
		if ok {
			msg = "feuille analysée"
		}
		send(importProgressEvent{
			Type:      "sheet",
			Message:   msg,
			Data:      map[string]any{"sheet": name, "parsed": ok},
			Timestamp: time.Now(),
		})
	})
	if err != nil {
		send(importProgressEvent{
			Type:      "error",
			Message:   "analyse échouée: " + err.Error(),
			Data:      map[string]any{},
			Timestamp: time.Now(),
		})
		return
	}

	if len(raw.Months) == 0 {
		send(importProgressEvent{
			Type:      "error",
			Message:   "aucune feuille de planning reconnue",
			Data:      map[string]any{},
			Timestamp: time.Now(),
		})
		return
	}

	send(importProgressEvent{
		Type:      "resolve",
		Message:   "résolution des conflits de salles",
		Data:      map[string]any{"months": raw.Months},
		Timestamp: time.Now(),
	})

	resolved, conflicts := resolver.Resolve(raw)
	h.store.SetData(fingerprint, raw, resolved, conflicts)

	send(importProgressEvent{
		Type:      "done",
		Message:   "import terminé",
		Data:      doneData(h, false),
		Timestamp: time.Now(),
	})
}

// doneData 导入完成事件的汇总数据
func doneData(h *Handler, cached bool) map[string]any {
	conflits := h.store.Conflicts()
	nonResolus := 0
	for _, e := range conflits {
		if !e.Resolved() {
			nonResolus++
		}
	}
	return map[string]any{
		"cached":       cached,
		"months":       h.store.Months(),
		"nbConflits":   len(conflits),
		"nbNonResolus": nonResolus,
	}
}

// ClearData 清空已导入数据
// POST /api/import/clear
func (h *Handler) ClearData(c *gin.Context) {
	h.store.Clear()
	c.JSON(http.StatusOK, gin.H{"cleared": true})
}
