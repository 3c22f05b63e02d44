package model

// ConflictEntry 一条教室重排/未解决冲突的审计记录
// 顺序稳定：按 周 → 日 → 半日 → 培训师首次出现顺序 追加
type ConflictEntry struct {
	Mois           string `json:"Mois"`
	Semaine        string `json:"Semaine"`
	JourCreneau    string `json:"Jour_Creneau"`
	Heure          string `json:"Heure"`
	Formateur      string `json:"Formateur"`
	Groupe         string `json:"Groupe"`
	SalleInitiale  string `json:"Salle_Initiale"`
	SalleAttribuee string `json:"Salle_Attribuee"`
}

// Resolved 该条记录是否为成功重排（反之为 AUCUNE DISPO）
func (e ConflictEntry) Resolved() bool {
	return e.SalleAttribuee != AucuneDispo
}
