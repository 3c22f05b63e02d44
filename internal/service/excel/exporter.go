package excel

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/taktatakra/emploi-temps-ofppt/internal/model"
	"github.com/taktatakra/emploi-temps-ofppt/internal/service/planning"
	"github.com/taktatakra/emploi-temps-ofppt/internal/util"
)

const (
	titreFormateur = "EMPLOI DU TEMPS DE FORMATEUR : FORMATION HYBRIDE - V 1.0"
	titreGroupe    = "EMPLOI DU TEMPS PAR GROUPE : FORMATION HYBRIDE - V 1.0"
	signatureText  = "Directeur EFP"

	// 表格从第 9 行开始，1-8 行是抬头与元信息
	headerRow = 9
)

var sheetTitleRe = regexp.MustCompile(`[:\\/\?\*\[\]]`)

// ExporterOptions 导出抬头与业务规则
type ExporterOptions struct {
	Centre         string
	Niveau         string
	AnneeFormation string
	LogoPath       string
	Force25To26    bool
}

// Exporter 周课表导出器：按原版排版生成带样式的工作簿
type Exporter struct {
	opts ExporterOptions
}

// NewExporter 创建导出器
func NewExporter(opts ExporterOptions) *Exporter {
	return &Exporter{opts: opts}
}

// SanitizeSheetTitle 清理非法字符并截断到 Excel 允许的 31 字符
func SanitizeSheetTitle(s string, maxLen int) string {
	if s == "" {
		return "Sheet1"
	}
	s = strings.TrimSpace(sheetTitleRe.ReplaceAllString(s, "_"))
	if s == "" {
		s = "sheet"
	}
	return truncate(s, maxLen)
}

// ExportFormateurSemaine 导出某培训师某周的课表
func (e *Exporter) ExportFormateurSemaine(m *model.MonthSchedule, formateur, semaine, mois string, ranges map[string]model.WeekRange) (*excelize.File, error) {
	f, ok := m.Schedule[formateur]
	if !ok {
		return nil, fmt.Errorf("formateur %q not found", formateur)
	}

	wb := excelize.NewFile()
	sheet := SanitizeSheetTitle(truncate(formateur, 20)+"-"+truncate(mois, 10), 31)
	if err := wb.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	if err := e.writeFormateurSheet(wb, sheet, m, f, semaine, mois, ranges); err != nil {
		return nil, err
	}
	return wb, nil
}

// ExportGroupeSemaine 导出某小组某周的课表
func (e *Exporter) ExportGroupeSemaine(m *model.MonthSchedule, groupe, semaine, mois string, ranges map[string]model.WeekRange) (*excelize.File, error) {
	wb := excelize.NewFile()
	sheet := SanitizeSheetTitle(truncate(groupe, 20)+"-"+truncate(mois, 10), 31)
	if err := wb.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	if err := e.writeGroupeSheet(wb, sheet, m, groupe, semaine, mois, ranges); err != nil {
		return nil, err
	}
	return wb, nil
}

// ExportPackFormateurs 所有培训师合并为一个工作簿，每人一个工作表
func (e *Exporter) ExportPackFormateurs(m *model.MonthSchedule, semaine, mois string, ranges map[string]model.WeekRange) (*excelize.File, error) {
	wb := excelize.NewFile()
	used := make(map[string]bool)

	for _, nom := range m.Formateurs {
		sheet := uniqueSheetName(used, truncate(nom, 25)+"_"+mois)
		if _, err := wb.NewSheet(sheet); err != nil {
			return nil, err
		}
		if err := e.writeFormateurSheet(wb, sheet, m, m.Schedule[nom], semaine, mois, ranges); err != nil {
			return nil, err
		}
	}

	_ = wb.DeleteSheet("Sheet1")
	return wb, nil
}

// ExportPackGroupes 所有小组合并为一个工作簿，每组一个工作表
func (e *Exporter) ExportPackGroupes(m *model.MonthSchedule, semaine, mois string, ranges map[string]model.WeekRange) (*excelize.File, error) {
	wb := excelize.NewFile()
	used := make(map[string]bool)

	for _, groupe := range m.Groupes {
		sheet := uniqueSheetName(used, truncate(groupe, 25)+"_"+mois)
		if _, err := wb.NewSheet(sheet); err != nil {
			return nil, err
		}
		if err := e.writeGroupeSheet(wb, sheet, m, groupe, semaine, mois, ranges); err != nil {
			return nil, err
		}
	}

	_ = wb.DeleteSheet("Sheet1")
	return wb, nil
}

// writeFormateurSheet 写一张培训师周课表
func (e *Exporter) writeFormateurSheet(wb *excelize.File, sheet string, m *model.MonthSchedule, f *model.Formateur, semaine, mois string, ranges map[string]model.WeekRange) error {
	heures := planning.AjusteMasseHoraire(
		planning.HeuresFormateur(f, mois, semaine, ranges), e.opts.Force25To26)

	meta := []string{e.opts.Centre, "Formateur: " + f.Nom, "Mois: " + mois, "Année de Formation: " + e.opts.AnneeFormation}
	if err := e.writeSheetFrame(wb, sheet, titreFormateur, heures, meta, mois, semaine, ranges); err != nil {
		return err
	}

	cellText := func(jour, creneau string) string {
		l := f.Slots[model.SlotKey{Semaine: semaine, Jour: jour, Creneau: creneau}]
		if l.Groupe == "" {
			return ""
		}
		label := l.SalleLabel()
		if label == "" {
			return ""
		}
		return l.Groupe + "\n" + label
	}

	return e.writeWeekTable(wb, sheet, mois, semaine, ranges, cellText)
}

// writeGroupeSheet 写一张小组周课表（单元格为 培训师+教室）
func (e *Exporter) writeGroupeSheet(wb *excelize.File, sheet string, m *model.MonthSchedule, groupe, semaine, mois string, ranges map[string]model.WeekRange) error {
	heures := planning.HeuresGroupe(m, groupe, mois, semaine, ranges)

	meta := []string{e.opts.Centre, "Groupe: " + groupe, "Mois: " + mois, "Année de Formation: " + e.opts.AnneeFormation}
	if err := e.writeSheetFrame(wb, sheet, titreGroupe, heures, meta, mois, semaine, ranges); err != nil {
		return err
	}

	cellText := func(jour, creneau string) string {
		key := model.SlotKey{Semaine: semaine, Jour: jour, Creneau: creneau}
		for _, nom := range m.Formateurs {
			l, ok := m.Schedule[nom].Slots[key]
			if !ok || l.Groupe != groupe {
				continue
			}
			return nom + "\n" + salleDouce(l)
		}
		return ""
	}

	return e.writeWeekTable(wb, sheet, mois, semaine, ranges, cellText)
}

// salleDouce 小组视图里软化未解决标记
func salleDouce(l model.Lesson) string {
	if l.Resolved {
		return l.Salle
	}
	base := l.Salle
	if base == "" {
		base = "Aucune"
	}
	return base + " (Conflit)"
}

// writeSheetFrame 页面设置、logo、标题块与元信息行
func (e *Exporter) writeSheetFrame(wb *excelize.File, sheet, titre string, heures float64, leftMeta []string, mois, semaine string, ranges map[string]model.WeekRange) error {
	showGrid := false
	if err := wb.SetSheetView(sheet, 0, &excelize.ViewOptions{ShowGridLines: &showGrid}); err != nil {
		return err
	}

	orientation := "landscape"
	sizeA4 := 9
	one := 1
	fit := true
	_ = wb.SetPageLayout(sheet, &excelize.PageLayoutOptions{
		Orientation: &orientation,
		Size:        &sizeA4,
		FitToHeight: &one,
		FitToWidth:  &one,
	})
	_ = wb.SetSheetProps(sheet, &excelize.SheetPropsOptions{FitToPage: &fit})

	e.addLogo(wb, sheet)

	titleStyle, err := wb.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14, Family: "Calibri"},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	})
	if err != nil {
		return err
	}
	metaStyle, err := wb.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 10, Family: "Calibri"},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	})
	if err != nil {
		return err
	}
	leftStyle, err := wb.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 10, Family: "Calibri"},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	if err != nil {
		return err
	}
	rightStyle, err := wb.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 10, Family: "Calibri"},
		Alignment: &excelize.Alignment{Horizontal: "right", Vertical: "center"},
	})
	if err != nil {
		return err
	}

	if err := wb.MergeCell(sheet, "B1", "E2"); err != nil {
		return err
	}
	_ = wb.SetCellValue(sheet, "B1", titre)
	_ = wb.SetCellStyle(sheet, "B1", "E2", titleStyle)

	_ = wb.MergeCell(sheet, "B3", "E3")
	_ = wb.SetCellValue(sheet, "B3", "MASSE HORAIRE: "+util.FormatHeures(heures)+"/SEMAINE")
	_ = wb.SetCellStyle(sheet, "B3", "E3", metaStyle)

	_ = wb.MergeCell(sheet, "B4", "E4")
	_ = wb.SetCellValue(sheet, "B4", periodeText(mois, semaine, ranges))
	_ = wb.SetCellStyle(sheet, "B4", "E4", metaStyle)

	for i, val := range leftMeta {
		cell := fmt.Sprintf("A%d", 5+i)
		_ = wb.SetCellValue(sheet, cell, val)
		_ = wb.SetCellStyle(sheet, cell, cell, leftStyle)
	}

	niveauCell := "E7"
	_ = wb.SetCellValue(sheet, niveauCell, "Niveau: "+e.opts.Niveau)
	_ = wb.SetCellStyle(sheet, niveauCell, niveauCell, rightStyle)

	return nil
}

// writeWeekTable 表头行 + 六个教学日，假日整行合并置灰
func (e *Exporter) writeWeekTable(wb *excelize.File, sheet, mois, semaine string, ranges map[string]model.WeekRange, cellText func(jour, creneau string) string) error {
	borderThin := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}

	headStyle, err := wb.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 10},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border:    borderThin,
	})
	if err != nil {
		return err
	}
	jourStyle, err := wb.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    borderThin,
	})
	if err != nil {
		return err
	}
	cellStyle, err := wb.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 10},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border:    borderThin,
	})
	if err != nil {
		return err
	}
	ferieStyle, err := wb.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "000000"},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"DDDDDD"}, Pattern: 1},
		Border:    borderThin,
	})
	if err != nil {
		return err
	}
	signStyle, err := wb.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 10},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	if err != nil {
		return err
	}

	headers := []string{"JOUR"}
	for _, creneau := range model.Creneaux {
		headers = append(headers, creneau+"\n"+model.Horaires[creneau])
	}
	for i, txt := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		_ = wb.SetCellValue(sheet, cell, txt)
		_ = wb.SetCellStyle(sheet, cell, cell, headStyle)
	}
	_ = wb.SetRowHeight(sheet, headerRow, 26)

	start, hasStart := planning.WeekStart(mois, semaine, ranges)

	row := headerRow + 1
	for i, jour := range model.Jours {
		jourCell := fmt.Sprintf("A%d", row)
		_ = wb.SetCellValue(sheet, jourCell, jour)
		_ = wb.SetCellStyle(sheet, jourCell, jourCell, jourStyle)

		if label, ferie := planning.JourFerie(start, hasStart, i); ferie {
			top := fmt.Sprintf("B%d", row)
			end := fmt.Sprintf("E%d", row)
			_ = wb.MergeCell(sheet, top, end)
			_ = wb.SetCellValue(sheet, top, label)
			_ = wb.SetCellStyle(sheet, top, end, ferieStyle)
		} else {
			for ci, creneau := range model.Creneaux {
				cell, _ := excelize.CoordinatesToCellName(ci+2, row)
				_ = wb.SetCellValue(sheet, cell, cellText(jour, creneau))
				_ = wb.SetCellStyle(sheet, cell, cell, cellStyle)
			}
		}
		_ = wb.SetRowHeight(sheet, row, 28)
		row++
	}

	// 签名行
	sigCell := fmt.Sprintf("A%d", row+1)
	_ = wb.SetCellValue(sheet, sigCell, signatureText)
	_ = wb.SetCellStyle(sheet, sigCell, sigCell, signStyle)

	_ = wb.SetColWidth(sheet, "A", "A", 18)
	_ = wb.SetColWidth(sheet, "B", "E", 20)
	return nil
}

// addLogo 左上角插入 logo，文件缺失时静默跳过
func (e *Exporter) addLogo(wb *excelize.File, sheet string) {
	if e.opts.LogoPath == "" {
		return
	}
	if _, err := os.Stat(e.opts.LogoPath); err != nil {
		return
	}
	_ = wb.AddPicture(sheet, "A1", e.opts.LogoPath, nil)
}

// periodeText 应用区间文本："Du dd/mm/yyyy au dd/mm/yyyy"
func periodeText(mois, semaine string, ranges map[string]model.WeekRange) string {
	start, ok := planning.WeekStart(mois, semaine, ranges)
	if !ok {
		return ""
	}
	end := planning.DayDate(start, 5)
	return fmt.Sprintf("Date d'application: Du %s au %s",
		start.Format("02/01/2006"), end.Format("02/01/2006"))
}

// uniqueSheetName 保证工作簿内工作表名唯一
func uniqueSheetName(used map[string]bool, base string) string {
	name := SanitizeSheetTitle(base, 31)
	i := 1
	for used[name] {
		suffix := fmt.Sprintf("_%d", i)
		name = SanitizeSheetTitle(truncate(base, 31-len(suffix))+suffix, 31)
		i++
	}
	used[name] = true
	return name
}

// truncate 按字符截断（Excel 表名限制按字符计，重音字符不能切半）
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
