package resolver

import (
	"sort"
	"strings"

	"github.com/taktatakra/emploi-temps-ofppt/internal/model"
)

// salleExclusions 回退候选里永远不用的教室（机房/实训室不作溢出教室）
// 只作用于回退分配：培训师自己的首选教室不受限制
var salleExclusions = []string{"info", "ent"}

// request 一个半日单元里某培训师的教室需求
type request struct {
	formateur string
	g1        string // 第一个时段的小组（可为空）
	g2        string // 第二个时段的小组（可为空）
	pref      string
}

// Resolve 消除所有月份的教室重复占用
// 克隆输入模型、改写克隆、连同冲突日志一起返回；相同输入必然产生相同输出。
// 每个（周, 日, 半日）单元独立处理：优先保住首选教室，其次按字典序取
// 两个时段都空闲的教室，实在没有就打上未解决标记，绝不中断。
func Resolve(set *model.ScheduleSet) (*model.ScheduleSet, []model.ConflictEntry) {
	resolved := set.Clone()
	log := make([]model.ConflictEntry, 0)

	// 空闲教室按系统内全局已知教室计算，而不是按当前月份
	allSalles := make(map[string]struct{})
	for _, salle := range resolved.AllSalles() {
		allSalles[salle] = struct{}{}
	}

	for _, mois := range resolved.Months {
		month := resolved.Data[mois]
		semaines := month.Semaines
		if len(semaines) == 0 {
			semaines = model.FallbackSemaines
		}

		for _, semaine := range semaines {
			for _, jour := range model.Jours {
				for _, half := range model.HalfDays {
					log = resolveUnit(month, allSalles, mois, semaine, jour, half, log)
				}
			}
		}
	}

	return resolved, log
}

// resolveUnit 处理单个半日单元
func resolveUnit(month *model.MonthSchedule, allSalles map[string]struct{}, mois, semaine, jour string, half [2]string, log []model.ConflictEntry) []model.ConflictEntry {
	c1, c2 := half[0], half[1]
	key1 := model.SlotKey{Semaine: semaine, Jour: jour, Creneau: c1}
	key2 := model.SlotKey{Semaine: semaine, Jour: jour, Creneau: c2}

	// 当前状态下两个时段已被占用的教室（未解决标记的槽位不算真实占用）
	occ1 := make(map[string]struct{})
	occ2 := make(map[string]struct{})
	for _, f := range month.Schedule {
		if l, ok := f.Slots[key1]; ok && l.Resolved && l.Salle != "" {
			occ1[l.Salle] = struct{}{}
		}
		if l, ok := f.Slots[key2]; ok && l.Resolved && l.Salle != "" {
			occ2[l.Salle] = struct{}{}
		}
	}

	// 两个时段都空闲的教室
	libres := make(map[string]struct{})
	for salle := range allSalles {
		if _, ok := occ1[salle]; ok {
			continue
		}
		if _, ok := occ2[salle]; ok {
			continue
		}
		libres[salle] = struct{}{}
	}

	// 需求按培训师首次出现顺序收集：分配顺序是确定性契约的一部分
	requests := make([]request, 0)
	for _, nom := range month.Formateurs {
		f := month.Schedule[nom]
		l1 := f.Slots[key1]
		l2 := f.Slots[key2]
		if l1.Groupe == "" && l2.Groupe == "" {
			continue
		}
		requests = append(requests, request{
			formateur: nom,
			g1:        l1.Groupe,
			g2:        l2.Groupe,
			pref:      f.SallePreferee,
		})
	}

	claimed := make(map[string]struct{})
	for _, req := range requests {
		assigned := ""
		ok := false

		if _, taken := claimed[req.pref]; req.pref != "" && !taken {
			assigned = req.pref
			ok = true
		} else if salle, found := pickFallback(libres, claimed); found {
			assigned = salle
			ok = true
			log = appendEntries(log, mois, semaine, jour, half, req, salle)
		} else {
			// 没有任何候选：保留首选教室文本并打未解决标记
			assigned = req.pref
			log = appendEntries(log, mois, semaine, jour, half, req, model.AucuneDispo)
		}

		if ok {
			claimed[assigned] = struct{}{}
		}

		f := month.Schedule[req.formateur]
		if req.g1 != "" {
			f.Slots[key1] = model.Lesson{Groupe: req.g1, Salle: assigned, Resolved: ok}
		}
		if req.g2 != "" {
			f.Slots[key2] = model.Lesson{Groupe: req.g2, Salle: assigned, Resolved: ok}
		}
	}

	return log
}

// pickFallback 从空闲且未被本单元占用的教室里取字典序最小的一个
func pickFallback(libres, claimed map[string]struct{}) (string, bool) {
	candidates := make([]string, 0, len(libres))
	for salle := range libres {
		if _, taken := claimed[salle]; taken {
			continue
		}
		if isExcluded(salle) {
			continue
		}
		candidates = append(candidates, salle)
	}
	if len(candidates) == 0 {
		return "", false
	}
	sort.Strings(candidates)
	return candidates[0], true
}

// isExcluded 教室代码是否命中回退排除规则（大小写不敏感）
func isExcluded(salle string) bool {
	low := strings.ToLower(salle)
	for _, sub := range salleExclusions {
		if strings.Contains(low, sub) {
			return true
		}
	}
	return false
}

// appendEntries 为该需求两个时段里有课的小组各记一条日志
func appendEntries(log []model.ConflictEntry, mois, semaine, jour string, half [2]string, req request, attribuee string) []model.ConflictEntry {
	groups := [2]string{req.g1, req.g2}
	for i, creneau := range half {
		if groups[i] == "" {
			continue
		}
		log = append(log, model.ConflictEntry{
			Mois:           mois,
			Semaine:        semaine,
			JourCreneau:    jour + "-" + creneau,
			Heure:          model.Horaires[creneau],
			Formateur:      req.formateur,
			Groupe:         groups[i],
			SalleInitiale:  req.pref,
			SalleAttribuee: attribuee,
		})
	}
	return log
}
