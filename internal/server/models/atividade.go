package models

import "time"

// Atividade is an activity belonging to a Turma. Numero is a 1-based ordinal
// assigned at creation time; it is never renumbered, so deleting an
// atividade may leave a gap.
type Atividade struct {
	ID        string
	TurmaID   string
	Numero    int
	Titulo    string
	Descricao string
	CreatedAt time.Time
}
