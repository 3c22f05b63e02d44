package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/taktatakra/emploi-temps-ofppt/internal/model"
	"github.com/taktatakra/emploi-temps-ofppt/internal/service/planning"
)

// ExportConflits 冲突处理日志导出为平面表
func ExportConflits(entries []model.ConflictEntry) (*excelize.File, error) {
	wb := excelize.NewFile()
	sheet := "Conflits"
	if err := wb.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	headStyle, err := wb.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 10},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"DDDDDD"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}

	headers := []string{"Mois", "Semaine", "Jour_Creneau", "Heure", "Formateur", "Groupe", "Salle_Initiale", "Salle_Attribuee"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = wb.SetCellValue(sheet, cell, h)
		_ = wb.SetCellStyle(sheet, cell, cell, headStyle)
	}

	for r, e := range entries {
		vals := []string{e.Mois, e.Semaine, e.JourCreneau, e.Heure, e.Formateur, e.Groupe, e.SalleInitiale, e.SalleAttribuee}
		for c, v := range vals {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			_ = wb.SetCellValue(sheet, cell, v)
		}
	}

	_ = wb.SetColWidth(sheet, "A", "H", 18)
	return wb, nil
}

// ExportCharge 小组负荷分析导出，含均值与阈值说明行
func ExportCharge(analyse planning.ChargeAnalyse, mois, semaine string) (*excelize.File, error) {
	wb := excelize.NewFile()
	sheet := "Charge"
	if err := wb.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	titleStyle, err := wb.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}
	headStyle, err := wb.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 10},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"DDDDDD"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}

	_ = wb.SetCellValue(sheet, "A1", fmt.Sprintf("Analyse de charge - %s / %s", mois, semaine))
	_ = wb.SetCellStyle(sheet, "A1", "A1", titleStyle)
	_ = wb.SetCellValue(sheet, "A2", fmt.Sprintf("Moyenne: %.1fH  (seuils: %.1fH / %.1fH)",
		analyse.Moyenne, analyse.SeuilBas, analyse.SeuilHaut))

	headers := []string{"Groupe", "Heures", "Nb créneaux", "Catégorie", "Écart"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 4)
		_ = wb.SetCellValue(sheet, cell, h)
		_ = wb.SetCellStyle(sheet, cell, cell, headStyle)
	}

	for r, g := range analyse.Groupes {
		row := r + 5
		_ = wb.SetCellValue(sheet, fmt.Sprintf("A%d", row), g.Groupe)
		_ = wb.SetCellValue(sheet, fmt.Sprintf("B%d", row), g.Heures)
		_ = wb.SetCellValue(sheet, fmt.Sprintf("C%d", row), g.NbCreneaux)
		_ = wb.SetCellValue(sheet, fmt.Sprintf("D%d", row), g.Categorie)
		_ = wb.SetCellValue(sheet, fmt.Sprintf("E%d", row), fmt.Sprintf("%+.1f", g.Ecart))
	}

	_ = wb.SetColWidth(sheet, "A", "E", 16)
	return wb, nil
}
