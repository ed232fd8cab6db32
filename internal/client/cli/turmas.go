package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/flaviaglenda/turmas/internal/common"
)

func (a *App) listTurmas(ctx context.Context) {
	turmas, err := a.turmas.List(ctx)
	if err != nil {
		log.Println(err.Error())
		return
	}

	if len(turmas) == 0 {
		fmt.Println("Nenhuma turma cadastrada.")
		return
	}
	for _, t := range turmas {
		fmt.Printf("%s  nº %d  %s\n", t.ID, t.Numero, t.Nome)
	}
}

func (a *App) addTurma(ctx context.Context) {
	nome, err := getSimpleText(a.reader, "Enter nome da turma", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}
	numero, err := GetInt(a.reader, "Enter número da turma", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	turma, err := a.turmas.Create(ctx, nome, numero)
	if err != nil {
		fmt.Println(err.Error())
		return
	}
	fmt.Printf("Turma criada: %s\n", turma.ID)
}

func (a *App) editTurma(ctx context.Context) {
	id, err := getSimpleText(a.reader, "Enter turma id", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}
	nome, err := getSimpleText(a.reader, "Enter novo nome", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}
	numero, err := GetInt(a.reader, "Enter novo número", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	if _, err := a.turmas.Update(ctx, id, nome, numero); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			fmt.Println("Turma não encontrada.")
			return
		}
		fmt.Println(err.Error())
		return
	}
	fmt.Println("Turma atualizada.")
}

func (a *App) deleteTurma(ctx context.Context) {
	id, err := getSimpleText(a.reader, "Enter turma id", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	ok, err := GetConfirmation(a.reader, "Excluir a turma "+id+"?", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}
	if !ok {
		return
	}

	if err := a.turmas.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, common.ErrTurmaHasAtividades):
			fmt.Println("A turma ainda tem atividades. Exclua as atividades primeiro.")
		case errors.Is(err, common.ErrNotFound):
			fmt.Println("Turma não encontrada.")
		default:
			fmt.Println(err.Error())
		}
		return
	}
	fmt.Println("Turma excluída.")
}
