package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/flaviaglenda/turmas/internal/client/api"
	"github.com/flaviaglenda/turmas/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// register prompts for nome, email and senha and creates the account plus
// the professor profile. Registration ends signed out; the user is sent
// back to login. Validation happens in the service; the raised message is
// shown as-is.
func (a *App) register(ctx context.Context) error {
	nome, err := getSimpleText(a.reader, "Enter nome", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter e-mail", os.Stdout)
	if err != nil {
		return err
	}
	senha, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(senha)

	if err := a.auth.SignUp(ctx, nome, email, string(senha)); err != nil {
		a.printAuthError(err)
		return err
	}

	fmt.Println("Conta criada. Faça login para entrar.")
	return nil
}

func (a *App) login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter e-mail", os.Stdout)
	if err != nil {
		return err
	}
	senha, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(senha)

	if err := a.auth.SignIn(ctx, email, string(senha)); err != nil {
		a.printAuthError(err)
		return err
	}

	if p := a.store.Professor(); p != nil {
		fmt.Println("Bem-vindo,", p.Nome)
	}
	return nil
}

func (a *App) logout(ctx context.Context) {
	if err := a.auth.SignOut(ctx); err != nil {
		log.Printf("logout: %v", err)
	}
	fmt.Println("Sessão encerrada.")
}

func (a *App) printAuthError(err error) {
	switch {
	case errors.Is(err, common.ErrEmailTaken):
		fmt.Println("Este e-mail já está cadastrado.")
	case errors.Is(err, common.ErrUnauthorized):
		fmt.Println("E-mail ou senha incorretos.")
	case errors.Is(err, common.ErrEmailNotConfirmed):
		fmt.Println("Confirme seu e-mail antes de entrar.")
	case errors.Is(err, common.ErrProfessorNotFound):
		fmt.Println("Conta sem perfil de professor.")
	case errors.Is(err, api.ErrUnavailable):
		fmt.Println("Servidor indisponível. Tente novamente.")
	default:
		fmt.Println(err.Error())
	}
}
