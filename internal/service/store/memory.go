package store

import (
	"errors"
	"sync"
	"time"

	"github.com/taktatakra/emploi-temps-ofppt/internal/model"
)

// MemoryStore 内存数据存储：原始模型、解析后的模型、冲突日志
// 不做任何持久化；同一文件重复导入时凭指纹跳过重新计算
type MemoryStore struct {
	mu sync.RWMutex

	fingerprint string
	raw         *model.ScheduleSet
	resolved    *model.ScheduleSet
	conflicts   []model.ConflictEntry

	// 用户手工定义的周区间，按月份标签分组，优先于工作表里检测到的区间
	customWeeks map[string]map[string]model.WeekRange

	lastImport time.Time
}

// NewMemoryStore 创建内存存储
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		customWeeks: make(map[string]map[string]model.WeekRange),
	}
}

// Fingerprint 上次导入文件的指纹
func (s *MemoryStore) Fingerprint() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fingerprint
}

// SetData 写入一次导入的全部结果
func (s *MemoryStore) SetData(fingerprint string, raw, resolved *model.ScheduleSet, conflicts []model.ConflictEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.fingerprint = fingerprint
	s.raw = raw
	s.resolved = resolved
	s.conflicts = conflicts
	s.lastImport = time.Now()
}

// Initialized 是否已导入数据
func (s *MemoryStore) Initialized() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resolved != nil && len(s.resolved.Months) > 0
}

// Resolved 解析后的模型（调用方只读）
func (s *MemoryStore) Resolved() *model.ScheduleSet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resolved
}

// Raw 原始模型（调用方只读）
func (s *MemoryStore) Raw() *model.ScheduleSet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.raw
}

// Month 按月份标签取解析后的月份模型
func (s *MemoryStore) Month(mois string) (*model.MonthSchedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.resolved == nil {
		return nil, errors.New("no data imported")
	}
	m, ok := s.resolved.Month(mois)
	if !ok {
		return nil, errors.New("month not found")
	}
	return m, nil
}

// Months 已导入的月份标签（有序）
func (s *MemoryStore) Months() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.resolved == nil {
		return []string{}
	}
	return append([]string(nil), s.resolved.Months...)
}

// AllSalles 全局教室并集
func (s *MemoryStore) AllSalles() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.resolved == nil {
		return []string{}
	}
	return s.resolved.AllSalles()
}

// Conflicts 冲突日志（副本）
func (s *MemoryStore) Conflicts() []model.ConflictEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.ConflictEntry(nil), s.conflicts...)
}

// SetCustomWeek 为某月份登记/更新一条手工周区间
func (s *MemoryStore) SetCustomWeek(mois string, r model.WeekRange) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.customWeeks[mois] == nil {
		s.customWeeks[mois] = make(map[string]model.WeekRange)
	}
	s.customWeeks[mois][r.Label] = r
}

// DeleteCustomWeek 删除某月份的一条手工周区间
func (s *MemoryStore) DeleteCustomWeek(mois, label string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.customWeeks[mois], label)
}

// ClearCustomWeeks 清空某月份的全部手工周区间
func (s *MemoryStore) ClearCustomWeeks(mois string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.customWeeks, mois)
}

// CustomWeeks 某月份的手工周区间（副本）
func (s *MemoryStore) CustomWeeks(mois string) map[string]model.WeekRange {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]model.WeekRange, len(s.customWeeks[mois]))
	for k, v := range s.customWeeks[mois] {
		out[k] = v
	}
	return out
}

// EffectiveWeekRanges 合并后的周区间：手工定义优先，其次工作表检测结果
func (s *MemoryStore) EffectiveWeekRanges(mois string) map[string]model.WeekRange {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]model.WeekRange)
	if s.resolved != nil {
		if m, ok := s.resolved.Month(mois); ok {
			for k, v := range m.WeekRanges {
				out[k] = v
			}
		}
	}
	for k, v := range s.customWeeks[mois] {
		out[k] = v
	}
	return out
}

// LastImportTime 最后导入时间（未导入时为零值）
func (s *MemoryStore) LastImportTime() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastImport
}

// Clear 清空全部数据
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.fingerprint = ""
	s.raw = nil
	s.resolved = nil
	s.conflicts = nil
	s.customWeeks = make(map[string]map[string]model.WeekRange)
	s.lastImport = time.Time{}
}
