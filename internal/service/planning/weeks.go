package planning

import (
	"regexp"
	"time"

	"github.com/taktatakra/emploi-temps-ofppt/internal/model"
)

var semaineNumRe = regexp.MustCompile(`(?i)^S(\d+)`)

// WeekStart 推导某周的起始日期
// 优先使用检测到/用户定义的周区间；否则按月份取当月第一个周一加 S<n> 周偏移。
// 两者都不可用时返回 false，调用方按"无日期"处理（不压制假日）。
func WeekStart(mois, semaine string, ranges map[string]model.WeekRange) (time.Time, bool) {
	if r, ok := ranges[semaine]; ok {
		return r.Start, true
	}

	num, ok := model.MoisNumero[mois]
	if !ok {
		return time.Time{}, false
	}
	// 培训年度横跨两个日历年：8月及之前属于次年
	year := 2025
	if num <= 7 {
		year = 2026
	}

	m := semaineNumRe.FindStringSubmatch(semaine)
	if m == nil {
		return time.Time{}, false
	}
	idx := 0
	for _, r := range m[1] {
		idx = idx*10 + int(r-'0')
	}
	if idx < 1 {
		return time.Time{}, false
	}

	first := time.Date(year, time.Month(num), 1, 0, 0, 0, 0, time.UTC)
	wd := (int(first.Weekday()) + 6) % 7 // 周一=0
	firstMonday := first
	if wd != 0 {
		firstMonday = first.AddDate(0, 0, (7-wd)%7)
	}
	return firstMonday.AddDate(0, 0, (idx-1)*7), true
}

// DayDate 周起始日期加天偏移
func DayDate(weekStart time.Time, offset int) time.Time {
	return weekStart.AddDate(0, 0, offset)
}

// JourFerie 某周第 i 天是否为假日
func JourFerie(weekStart time.Time, hasStart bool, offset int) (string, bool) {
	if !hasStart {
		return "", false
	}
	return model.IsHoliday(DayDate(weekStart, offset))
}
