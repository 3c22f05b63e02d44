package model

import "time"

// Holiday 法定假日（固定清单，报表层用来压制当日课时）
type Holiday struct {
	Date  time.Time `json:"date"`
	Label string    `json:"label"`
}

// Holidays 2025/2026 培训年度的假日清单
var Holidays = []Holiday{
	{Date: time.Date(2025, 11, 6, 0, 0, 0, 0, time.UTC), Label: "La Marche Verte"},
	{Date: time.Date(2025, 11, 18, 0, 0, 0, 0, time.UTC), Label: "Fête de l'Indépendance"},
	{Date: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), Label: "Nouvel an"},
	{Date: time.Date(2026, 1, 11, 0, 0, 0, 0, time.UTC), Label: "Manifeste de l'independence"},
	{Date: time.Date(2026, 1, 14, 0, 0, 0, 0, time.UTC), Label: "Nouvel an Amazigh"},
	{Date: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC), Label: "Fête du travail"},
}

// IsHoliday 判断某天是否为假日，是则返回假日名称
func IsHoliday(d time.Time) (string, bool) {
	y, m, day := d.Date()
	for _, h := range Holidays {
		hy, hm, hd := h.Date.Date()
		if y == hy && m == hm && day == hd {
			return h.Label, true
		}
	}
	return "", false
}
