package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/flaviaglenda/turmas/internal/common"
	"github.com/flaviaglenda/turmas/internal/server/models"
	"github.com/flaviaglenda/turmas/internal/server/repositories/repomanager"
)

type turmaFixture struct {
	turmas      *TurmaService
	atividades  *AtividadeService
	professores *ProfessorService
	profA       *models.Professor
	profB       *models.Professor
}

func newTurmaFixture(t *testing.T) *turmaFixture {
	t.Helper()
	rm := repomanager.NewInMemoryRepositoryManager()

	identities := NewIdentityService(nil, rm, testConfig())
	professores := NewProfessorService(nil, rm)
	turmas := NewTurmaService(nil, rm)
	atividades := NewAtividadeService(nil, rm, turmas)

	ctx := context.Background()
	idA, _, err := identities.SignUp(ctx, "a@escola.com", "senha123")
	require.NoError(t, err)
	idB, _, err := identities.SignUp(ctx, "b@escola.com", "senha123")
	require.NoError(t, err)

	profA, err := professores.Create(ctx, idA.ID, "Ana")
	require.NoError(t, err)
	profB, err := professores.Create(ctx, idB.ID, "Bruno")
	require.NoError(t, err)

	return &turmaFixture{
		turmas:      turmas,
		atividades:  atividades,
		professores: professores,
		profA:       profA,
		profB:       profB,
	}
}

func TestTurmaCreateAndList_ScopedToOwner(t *testing.T) {
	f := newTurmaFixture(t)
	ctx := context.Background()

	_, err := f.turmas.Create(ctx, f.profA.ID, "Turma A", 101)
	require.NoError(t, err)
	_, err = f.turmas.Create(ctx, f.profB.ID, "Turma B", 201)
	require.NoError(t, err)

	listA, err := f.turmas.List(ctx, f.profA.ID)
	require.NoError(t, err)
	require.Len(t, listA, 1)
	require.Equal(t, "Turma A", listA[0].Nome)

	listB, err := f.turmas.List(ctx, f.profB.ID)
	require.NoError(t, err)
	require.Len(t, listB, 1)
	require.Equal(t, "Turma B", listB[0].Nome)
}

func TestTurmaUpdate_ForeignTurmaBehavesAsMissing(t *testing.T) {
	f := newTurmaFixture(t)
	ctx := context.Background()

	turma, err := f.turmas.Create(ctx, f.profA.ID, "Turma A", 101)
	require.NoError(t, err)

	_, err = f.turmas.Update(ctx, f.profB.ID, turma.ID, "Invadida", 999)
	require.ErrorIs(t, err, common.ErrNotFound)

	updated, err := f.turmas.Update(ctx, f.profA.ID, turma.ID, "Turma A2", 102)
	require.NoError(t, err)
	require.Equal(t, "Turma A2", updated.Nome)
	require.Equal(t, 102, updated.Numero)
}

func TestTurmaDelete_BlockedWhileAtividadesExist(t *testing.T) {
	f := newTurmaFixture(t)
	ctx := context.Background()

	turma, err := f.turmas.Create(ctx, f.profA.ID, "Turma A", 101)
	require.NoError(t, err)

	atividade, err := f.atividades.Create(ctx, f.profA.ID, turma.ID, 1, "Lista 1", "Exercícios")
	require.NoError(t, err)

	err = f.turmas.Delete(ctx, f.profA.ID, turma.ID)
	require.ErrorIs(t, err, common.ErrTurmaHasAtividades)

	require.NoError(t, f.atividades.Delete(ctx, f.profA.ID, atividade.ID))
	require.NoError(t, f.turmas.Delete(ctx, f.profA.ID, turma.ID))

	_, err = f.turmas.Get(ctx, f.profA.ID, turma.ID)
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestProfessorCreate_OncePerIdentity(t *testing.T) {
	f := newTurmaFixture(t)
	ctx := context.Background()

	_, err := f.professores.Create(ctx, f.profA.ID, "Ana de novo")
	require.ErrorIs(t, err, common.ErrProfessorExists)
}

func TestProfessorGetByIdentity_Missing(t *testing.T) {
	rm := repomanager.NewInMemoryRepositoryManager()
	professores := NewProfessorService(nil, rm)

	_, err := professores.GetByIdentity(context.Background(), "no-such-identity")
	require.ErrorIs(t, err, common.ErrProfessorNotFound)
}
