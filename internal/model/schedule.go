package model

import (
	"sort"
	"strings"
	"time"
)

// Jours 一周六个教学日（周一至周六）
var Jours = []string{"Lundi", "Mardi", "Mercredi", "Jeudi", "Vendredi", "Samedi"}

// Creneaux 每日四个半日时段代码
var Creneaux = []string{"AM1", "AM2", "PM1", "PM2"}

// Horaires 时段对应的钟点文本
var Horaires = map[string]string{
	"AM1": "08H30-11H00",
	"AM2": "11H00-13H30",
	"PM1": "13H30-16H00",
	"PM2": "16H00-18H30",
}

// SlotDurations 每个时段的课时数（小时）
var SlotDurations = map[string]float64{
	"AM1": 2.5,
	"AM2": 2.5,
	"PM1": 2.5,
	"PM2": 2.5,
}

// FallbackSemaines 表头上方未检测到日期区间时使用的默认周标签
var FallbackSemaines = []string{"S1", "S2", "S3", "S4"}

// HalfDays 冲突处理的半日单元：上午两个时段、下午两个时段
var HalfDays = [][2]string{{"AM1", "AM2"}, {"PM1", "PM2"}}

// MoisOrdre 培训年度的月份顺序（11月开学）
var MoisOrdre = []string{
	"Novembre", "Décembre", "Janvier", "Février", "Mars", "Avril",
	"Mai", "Juin", "Juillet", "Août", "Septembre", "Octobre",
}

// MoisNormalise 工作表名中常见的无重音写法归一化
var MoisNormalise = map[string]string{
	"Decembre": "Décembre",
	"Aout":     "Août",
	"Fevrier":  "Février",
}

// MoisNumero 月份名到月份数字（推导周起始日期用）
var MoisNumero = map[string]int{
	"Janvier": 1, "Février": 2, "Mars": 3, "Avril": 4,
	"Mai": 5, "Juin": 6, "Juillet": 7, "Août": 8,
	"Septembre": 9, "Octobre": 10, "Novembre": 11, "Décembre": 12,
}

// SlotKey 定位一节课的复合键（周-日-时段）
type SlotKey struct {
	Semaine string
	Jour    string
	Creneau string
}

const (
	// ConflitNonResolu 未解决冲突的教室后缀标记（仅在展示/导出层拼接）
	ConflitNonResolu = "(CONFLIT NON RESOLU)"
	// AucuneDispo 冲突日志中"无任何空闲教室"的哨兵值
	AucuneDispo = "AUCUNE DISPO"
)

// Lesson 某个槽位上的课程安排
// Resolved=false 表示冲突引擎没有为该半日找到可用教室
type Lesson struct {
	Groupe   string `json:"groupe"`
	Salle    string `json:"salle"`
	Resolved bool   `json:"resolved"`
}

// SalleLabel 展示/导出用教室文本：未解决冲突时附加标记
func (l Lesson) SalleLabel() string {
	if l.Resolved {
		return l.Salle
	}
	base := l.Salle
	if base == "" {
		base = "Aucune"
	}
	return base + " " + ConflitNonResolu
}

// Formateur 培训师记录：首选教室 + 槽位安排
type Formateur struct {
	Nom           string             `json:"nom"`
	SallePreferee string             `json:"sallePreferee"`
	Slots         map[SlotKey]Lesson `json:"-"`
}

// Clone 深拷贝培训师记录
func (f *Formateur) Clone() *Formateur {
	c := &Formateur{
		Nom:           f.Nom,
		SallePreferee: f.SallePreferee,
		Slots:         make(map[SlotKey]Lesson, len(f.Slots)),
	}
	for k, v := range f.Slots {
		c.Slots[k] = v
	}
	return c
}

// WeekRange 从表头上方识别出的周日期区间
type WeekRange struct {
	Label string    `json:"label"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// MonthSchedule 单个月份（单个工作表）的规范化排课模型
// Formateurs 保留解析时首次出现的顺序：冲突引擎的分配顺序依赖它
type MonthSchedule struct {
	Mois       string                `json:"mois"`
	Formateurs []string              `json:"formateurs"`
	Schedule   map[string]*Formateur `json:"-"`
	Groupes    []string              `json:"groupes"`
	Salles     []string              `json:"salles"`
	Semaines   []string              `json:"semaines"`
	WeekRanges map[string]WeekRange  `json:"weekRanges"`
	HeaderRow  int                   `json:"headerRow"`
}

// Clone 深拷贝月份模型
func (m *MonthSchedule) Clone() *MonthSchedule {
	c := &MonthSchedule{
		Mois:       m.Mois,
		Formateurs: append([]string(nil), m.Formateurs...),
		Schedule:   make(map[string]*Formateur, len(m.Schedule)),
		Groupes:    append([]string(nil), m.Groupes...),
		Salles:     append([]string(nil), m.Salles...),
		Semaines:   append([]string(nil), m.Semaines...),
		WeekRanges: make(map[string]WeekRange, len(m.WeekRanges)),
		HeaderRow:  m.HeaderRow,
	}
	for k, v := range m.WeekRanges {
		c.WeekRanges[k] = v
	}
	for nom, f := range m.Schedule {
		c.Schedule[nom] = f.Clone()
	}
	return c
}

// ScheduleSet 整个工作簿的排课数据（月份有序）
type ScheduleSet struct {
	Months []string                  `json:"months"`
	Data   map[string]*MonthSchedule `json:"-"`
}

// NewScheduleSet 创建空数据集
func NewScheduleSet() *ScheduleSet {
	return &ScheduleSet{
		Months: []string{},
		Data:   make(map[string]*MonthSchedule),
	}
}

// Add 追加一个月份
func (s *ScheduleSet) Add(m *MonthSchedule) {
	if _, ok := s.Data[m.Mois]; !ok {
		s.Months = append(s.Months, m.Mois)
	}
	s.Data[m.Mois] = m
}

// Month 按月份标签取模型
func (s *ScheduleSet) Month(mois string) (*MonthSchedule, bool) {
	m, ok := s.Data[mois]
	return m, ok
}

// AllSalles 所有月份教室代码的并集（排序后返回）
// 空闲教室必须按全局已知教室计算，而不是按单个工作表
func (s *ScheduleSet) AllSalles() []string {
	seen := make(map[string]struct{})
	for _, mois := range s.Months {
		for _, salle := range s.Data[mois].Salles {
			seen[salle] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for salle := range seen {
		out = append(out, salle)
	}
	sort.Strings(out)
	return out
}

// Clone 深拷贝整个数据集：冲突引擎改写克隆，原始模型保持不变
func (s *ScheduleSet) Clone() *ScheduleSet {
	c := &ScheduleSet{
		Months: append([]string(nil), s.Months...),
		Data:   make(map[string]*MonthSchedule, len(s.Data)),
	}
	for mois, m := range s.Data {
		c.Data[mois] = m.Clone()
	}
	return c
}

// NormalizeMois 归一化月份名（去重音变体）
func NormalizeMois(nom string) string {
	nom = strings.TrimSpace(nom)
	if fixed, ok := MoisNormalise[nom]; ok {
		return fixed
	}
	return nom
}

// SortMonths 按培训年度顺序排序已有月份，未知标签排在末尾
func SortMonths(months []string) []string {
	present := make(map[string]bool, len(months))
	for _, m := range months {
		present[m] = true
	}
	out := make([]string, 0, len(months))
	for _, m := range MoisOrdre {
		if present[m] {
			out = append(out, m)
			present[m] = false
		}
	}
	for _, m := range months {
		if present[m] {
			out = append(out, m)
			present[m] = false
		}
	}
	return out
}
