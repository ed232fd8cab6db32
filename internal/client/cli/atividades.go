package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/flaviaglenda/turmas/internal/common"
)

func (a *App) listAtividades(ctx context.Context) {
	turmaID, err := getSimpleText(a.reader, "Enter turma id", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	atividades, err := a.atividades.List(ctx, turmaID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			fmt.Println("Turma não encontrada.")
			return
		}
		log.Println(err.Error())
		return
	}

	if len(atividades) == 0 {
		fmt.Println("Nenhuma atividade nesta turma.")
		return
	}
	for _, at := range atividades {
		fmt.Printf("%s  Atividade %d: %s\n", at.ID, at.Numero, at.Titulo)
		if at.Descricao != "" {
			fmt.Printf("    %s\n", at.Descricao)
		}
	}
}

func (a *App) addAtividade(ctx context.Context) {
	turmaID, err := getSimpleText(a.reader, "Enter turma id", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}
	titulo, err := getSimpleText(a.reader, "Enter título", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}
	descricao, err := getSimpleText(a.reader, "Enter descrição", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	atividade, err := a.atividades.Create(ctx, turmaID, titulo, descricao)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			fmt.Println("Turma não encontrada.")
			return
		}
		fmt.Println(err.Error())
		return
	}
	fmt.Printf("Atividade %d criada: %s\n", atividade.Numero, atividade.ID)
}

func (a *App) editAtividade(ctx context.Context) {
	id, err := getSimpleText(a.reader, "Enter atividade id", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}
	titulo, err := getSimpleText(a.reader, "Enter novo título", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}
	descricao, err := getSimpleText(a.reader, "Enter nova descrição", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	if _, err := a.atividades.Update(ctx, id, titulo, descricao); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			fmt.Println("Atividade não encontrada.")
			return
		}
		fmt.Println(err.Error())
		return
	}
	fmt.Println("Atividade atualizada.")
}

func (a *App) deleteAtividade(ctx context.Context) {
	id, err := getSimpleText(a.reader, "Enter atividade id", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	ok, err := GetConfirmation(a.reader, "Excluir a atividade "+id+"?", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}
	if !ok {
		return
	}

	if err := a.atividades.Delete(ctx, id); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			fmt.Println("Atividade não encontrada.")
			return
		}
		fmt.Println(err.Error())
		return
	}
	fmt.Println("Atividade excluída.")
}
