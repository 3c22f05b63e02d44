package v1

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/taktatakra/emploi-temps-ofppt/internal/config"
	"github.com/taktatakra/emploi-temps-ofppt/internal/service/store"
)

func newTestRouter(t *testing.T) (*store.MemoryStore, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := store.NewMemoryStore()
	h := NewHandler(st, config.DefaultConfig())

	r := gin.New()
	h.RegisterRoutes(r.Group("/api"))
	return st, r
}

// buildWorkbook 一张 11 月排课表：两位培训师都首选 R1，周一 AM1 撞车
func buildWorkbook(t *testing.T) []byte {
	t.Helper()

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", "Planning_Novembre"); err != nil {
		t.Fatalf("rename sheet: %v", err)
	}

	header := []string{"Formateur", "Salle", "AM1", "AM2", "PM1", "PM2"}
	for i, v := range header {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue("Planning_Novembre", cell, v)
	}
	_ = f.SetCellValue("Planning_Novembre", "A2", "ALAMI")
	_ = f.SetCellValue("Planning_Novembre", "B2", "R1")
	_ = f.SetCellValue("Planning_Novembre", "C2", "G1")
	_ = f.SetCellValue("Planning_Novembre", "A3", "BENANI")
	_ = f.SetCellValue("Planning_Novembre", "B3", "R1")
	_ = f.SetCellValue("Planning_Novembre", "C3", "G2")

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

func postImport(t *testing.T, r *gin.Engine, content []byte) *httptest.ResponseRecorder {
	t.Helper()

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	part, err := mw.CreateFormFile("file", "planning.xlsx")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/import", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetStatus_Empty(t *testing.T) {
	t.Parallel()

	_, r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"initialized":false`) {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestImport_EndToEnd(t *testing.T) {
	t.Parallel()

	st, r := newTestRouter(t)
	content := buildWorkbook(t)

	w := postImport(t, r, content)
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"type":"done"`) {
		t.Fatalf("missing done event: %s", w.Body.String())
	}

	if !st.Initialized() {
		t.Fatalf("store should be initialized after import")
	}

	// 同一文件再导一次：指纹命中，直接复用
	w2 := postImport(t, r, content)
	if !strings.Contains(w2.Body.String(), `"cached":true`) {
		t.Fatalf("expected cached import: %s", w2.Body.String())
	}

	// 只有 R1 一间教室：BENANI 必然未解决
	req := httptest.NewRequest(http.MethodGet, "/api/planning/formateur?mois=Novembre&formateur=BENANI&semaine=S1", nil)
	wv := httptest.NewRecorder()
	r.ServeHTTP(wv, req)
	if wv.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", wv.Code, wv.Body.String())
	}
	if !strings.Contains(wv.Body.String(), "R1 (CONFLIT NON RESOLU)") {
		t.Fatalf("expected unresolved label: %s", wv.Body.String())
	}

	// 冲突日志过滤
	req = httptest.NewRequest(http.MethodGet, "/api/conflits?mois=Novembre", nil)
	wc := httptest.NewRecorder()
	r.ServeHTTP(wc, req)
	if !strings.Contains(wc.Body.String(), `"total":1`) || !strings.Contains(wc.Body.String(), "AUCUNE DISPO") {
		t.Fatalf("unexpected conflicts body: %s", wc.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/api/conflits?mois=Janvier", nil)
	we := httptest.NewRecorder()
	r.ServeHTTP(we, req)
	if !strings.Contains(we.Body.String(), `"total":0`) {
		t.Fatalf("filter should exclude everything: %s", we.Body.String())
	}
}

func TestSemaines_CustomOverride(t *testing.T) {
	t.Parallel()

	_, r := newTestRouter(t)
	postImport(t, r, buildWorkbook(t))

	body := strings.NewReader(`{"semaine":"S1","du":"17/11/2025","au":"22/11/2025"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/months/Novembre/semaines", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", w.Code, w.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/api/months/Novembre/semaines", nil)
	wl := httptest.NewRecorder()
	r.ServeHTTP(wl, req)
	if !strings.Contains(wl.Body.String(), `"du":"17/11/2025"`) || !strings.Contains(wl.Body.String(), `"custom":true`) {
		t.Fatalf("custom week missing: %s", wl.Body.String())
	}

	req = httptest.NewRequest(http.MethodDelete, "/api/months/Novembre/semaines/S1", nil)
	wd := httptest.NewRecorder()
	r.ServeHTTP(wd, req)
	if wd.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", wd.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/months/Novembre/semaines", nil)
	wl2 := httptest.NewRecorder()
	r.ServeHTTP(wl2, req)
	if strings.Contains(wl2.Body.String(), `"custom":true`) {
		t.Fatalf("custom week should be gone: %s", wl2.Body.String())
	}
}

func TestGetMonth_NotFound(t *testing.T) {
	t.Parallel()

	_, r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/months/Juin", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
