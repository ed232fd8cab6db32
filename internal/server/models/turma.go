package models

import "time"

// Turma is a class owned by exactly one Professor. Only the owner may list,
// edit or delete it.
type Turma struct {
	ID          string
	Nome        string
	Numero      int
	ProfessorID string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
