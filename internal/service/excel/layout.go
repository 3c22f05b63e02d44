package excel

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/taktatakra/emploi-temps-ofppt/internal/model"
)

// headerLookback 表头上方搜索周日期区间的行数
const headerLookback = 10

// formateurMarkers 表头里标记培训师列的单元格文本（小写比较）
var formateurMarkers = map[string]bool{
	"formateur": true,
	"form":      true,
}

var (
	arrowRe    = regexp.MustCompile(`\s*(?:→|->|–|-)\s*`)
	sanitizeRe = regexp.MustCompile(`[^\p{L}\p{N}_\s\-/\.]`)
	splitRe    = regexp.MustCompile(`[ \-\\/\.]+`)
)

// dateLayouts 周区间单元格里可能出现的日期写法
// 带连字符的写法进不来：arrowRe 先把区间单元格按连字符切开
var dateLayouts = []string{
	"02/01/2006",
	"02/01/06",
	"02.01.2006",
}

// ColumnLayout 从表头行推导出的列寻址方案
// 输入表按周重复成块、块内无逐列表头，只能靠固定嵌套约定重建寻址
type ColumnLayout struct {
	FormateurCol int
	SalleCol     int
	Columns      map[model.SlotKey]int
}

// BuildColumnLayout 周→日→时段固定嵌套顺序，从教室列之后开始连续编号
func BuildColumnLayout(semaines []string, formateurCol int) ColumnLayout {
	layout := ColumnLayout{
		FormateurCol: formateurCol,
		SalleCol:     formateurCol + 1,
		Columns:      make(map[model.SlotKey]int),
	}
	cur := layout.SalleCol + 1
	for _, semaine := range semaines {
		for _, jour := range model.Jours {
			for _, creneau := range model.Creneaux {
				layout.Columns[model.SlotKey{Semaine: semaine, Jour: jour, Creneau: creneau}] = cur
				cur++
			}
		}
	}
	return layout
}

// findHeaderRow 定位表头行：同时包含培训师列标记和至少一个时段代码
func findHeaderRow(rows [][]string) int {
	for idx, row := range rows {
		hasFormateur := false
		hasCreneau := false
		for _, cell := range row {
			v := strings.TrimSpace(cell)
			if v == "" {
				continue
			}
			if formateurMarkers[strings.ToLower(v)] {
				hasFormateur = true
			}
			for _, c := range model.Creneaux {
				if v == c {
					hasCreneau = true
					break
				}
			}
		}
		if hasFormateur && hasCreneau {
			return idx
		}
	}
	return -1
}

// findFormateurCol 表头行里的培训师列下标
func findFormateurCol(header []string) int {
	for i, cell := range header {
		if formateurMarkers[strings.ToLower(strings.TrimSpace(cell))] {
			return i
		}
	}
	return -1
}

// detectWeekRanges 在表头上方的回看窗口里识别周日期区间
// 每列只认首次命中，按列下标排序返回
func detectWeekRanges(rows [][]string, headerIdx int) []model.WeekRange {
	top := headerIdx - headerLookback
	if top < 0 {
		top = 0
	}

	byCol := make(map[int]model.WeekRange)
	cols := make([]int, 0)
	for ridx := top; ridx < headerIdx; ridx++ {
		for cidx, cell := range rows[ridx] {
			txt := strings.TrimSpace(cell)
			if txt == "" {
				continue
			}
			if _, seen := byCol[cidx]; seen {
				continue
			}
			start, end, ok := parseDateRangeCell(txt)
			if !ok {
				continue
			}
			byCol[cidx] = model.WeekRange{Label: txt, Start: start, End: end}
			cols = append(cols, cidx)
		}
	}

	// cols 按扫描顺序可能乱序（跨行命中），重排为列顺序
	sort.Ints(cols)

	// 周标签按列顺序编号，与回退标签同一命名空间
	out := make([]model.WeekRange, 0, len(cols))
	for i, c := range cols {
		r := byCol[c]
		r.Label = "S" + strconv.Itoa(i+1)
		out = append(out, r)
	}
	return out
}

// parseDateRangeCell 解析 "<date> → <date>" 形式的周区间单元格
func parseDateRangeCell(cell string) (time.Time, time.Time, bool) {
	if !strings.ContainsAny(cell, "→-–") && !strings.Contains(cell, "->") {
		return time.Time{}, time.Time{}, false
	}
	parts := arrowRe.Split(cell, -1)
	if len(parts) < 2 {
		return time.Time{}, time.Time{}, false
	}
	start, ok1 := tryParseDate(parts[0])
	end, ok2 := tryParseDate(parts[len(parts)-1])
	if !ok1 || !ok2 {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

// tryParseDate 宽松解析日期：常见写法逐个尝试，最后按 日/月/年 三段兜底
func tryParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(sanitizeRe.ReplaceAllString(strings.TrimSpace(s), " "))
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	parts := splitRe.Split(s, -1)
	if len(parts) >= 3 {
		d, err1 := strconv.Atoi(parts[0])
		m, err2 := strconv.Atoi(parts[1])
		y, err3 := strconv.Atoi(parts[2])
		if err1 == nil && err2 == nil && err3 == nil {
			if y < 100 {
				y += 2000
			}
			if m >= 1 && m <= 12 && d >= 1 && d <= 31 {
				return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC), true
			}
		}
	}

	return time.Time{}, false
}
