package excel

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/taktatakra/emploi-temps-ofppt/internal/model"
)

// IgnoredSheets 不参与解析的工作表
var IgnoredSheets = map[string]bool{
	"Groupes": true,
	"Feuil1":  true,
	"Sheet1":  true,
}

// sheetPrefix 月份工作表的命名前缀
const sheetPrefix = "Planning_"

// Parser 排课工作簿解析器
type Parser struct {
	file   *excelize.File
	fileID string
}

// NewParser 创建解析器
func NewParser() *Parser {
	return &Parser{
		fileID: uuid.New().String(),
	}
}

// LoadFile 加载Excel文件
func (p *Parser) LoadFile(reader io.Reader) error {
	file, err := excelize.OpenReader(reader)
	if err != nil {
		return fmt.Errorf("failed to open excel: %w", err)
	}
	p.file = file
	return nil
}

// GetFileID 获取文件ID
func (p *Parser) GetFileID() string {
	return p.fileID
}

// GetSheets 获取将被解析的工作表列表
func (p *Parser) GetSheets() ([]string, error) {
	if p.file == nil {
		return nil, errors.New("no file loaded")
	}

	sheets := p.file.GetSheetList()
	result := make([]string, 0, len(sheets))
	for _, name := range sheets {
		if IgnoredSheets[name] {
			continue
		}
		result = append(result, name)
	}
	return result, nil
}

// ParseWorkbook 解析全部月份工作表为规范化模型
// 识别失败的工作表直接跳过，不影响其余工作表
func (p *Parser) ParseWorkbook() (*model.ScheduleSet, error) {
	return p.ParseWorkbookProgress(nil)
}

// ParseWorkbookProgress 同 ParseWorkbook，每张工作表解析完回调一次
func (p *Parser) ParseWorkbookProgress(onSheet func(name string, ok bool)) (*model.ScheduleSet, error) {
	if p.file == nil {
		return nil, errors.New("no file loaded")
	}

	set := model.NewScheduleSet()
	for _, name := range p.file.GetSheetList() {
		if IgnoredSheets[name] {
			continue
		}
		rows, err := p.file.GetRows(name)
		if err != nil {
			if onSheet != nil {
				onSheet(name, false)
			}
			continue
		}
		month := ParseSheet(rows, name)
		if month == nil {
			if onSheet != nil {
				onSheet(name, false)
			}
			continue
		}
		set.Add(month)
		if onSheet != nil {
			onSheet(name, true)
		}
	}

	set.Months = model.SortMonths(set.Months)
	return set, nil
}

// Close 关闭文件
func (p *Parser) Close() error {
	if p.file != nil {
		return p.file.Close()
	}
	return nil
}

// ParseSheet 把单个工作表的文本网格转为月份模型
// 找不到表头行或培训师列时返回 nil（该表无排课）
func ParseSheet(rows [][]string, sheetName string) *model.MonthSchedule {
	mois := model.NormalizeMois(strings.TrimPrefix(sheetName, sheetPrefix))
	if mois == "" {
		mois = sheetName
	}

	headerIdx := findHeaderRow(rows)
	if headerIdx < 0 {
		return nil
	}

	colForm := findFormateurCol(rows[headerIdx])
	if colForm < 0 {
		return nil
	}

	ranges := detectWeekRanges(rows, headerIdx)
	semaines := make([]string, 0, len(ranges))
	weekRanges := make(map[string]model.WeekRange, len(ranges))
	for _, r := range ranges {
		semaines = append(semaines, r.Label)
		weekRanges[r.Label] = r
	}
	if len(semaines) == 0 {
		semaines = append(semaines, model.FallbackSemaines...)
	}

	layout := BuildColumnLayout(semaines, colForm)

	month := &model.MonthSchedule{
		Mois:       mois,
		Formateurs: []string{},
		Schedule:   make(map[string]*model.Formateur),
		Semaines:   semaines,
		WeekRanges: weekRanges,
		HeaderRow:  headerIdx,
	}

	groupes := make(map[string]struct{})
	salles := make(map[string]struct{})

	for _, row := range rows[headerIdx+1:] {
		form := cleanCell(getCell(row, layout.FormateurCol))
		if form == "" {
			continue
		}
		salle := cleanCell(getCell(row, layout.SalleCol))

		f, ok := month.Schedule[form]
		if !ok {
			f = &model.Formateur{
				Nom:           form,
				SallePreferee: salle,
				Slots:         make(map[model.SlotKey]model.Lesson),
			}
			month.Schedule[form] = f
			month.Formateurs = append(month.Formateurs, form)
		}
		if salle != "" {
			salles[salle] = struct{}{}
		}

		for key, ci := range layout.Columns {
			grp := cleanCell(getCell(row, ci))
			if grp == "" || isPureNumeric(grp) {
				continue
			}
			f.Slots[key] = model.Lesson{Groupe: grp, Salle: salle, Resolved: true}
			groupes[grp] = struct{}{}
		}
	}

	month.Groupes = sortedKeys(groupes)
	month.Salles = sortedKeys(salles)
	return month
}

// getCell 越界安全取单元格
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// cleanCell 过滤空值哨兵文本
func cleanCell(s string) string {
	switch strings.ToLower(s) {
	case "", "nan", "none":
		return ""
	}
	return s
}

// isPureNumeric 纯数字单元格是编号噪声，不算小组代码
func isPureNumeric(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
