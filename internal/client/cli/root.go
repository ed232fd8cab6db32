package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/flaviaglenda/turmas/internal/client/session"
)

func (a *App) getStatus() string {
	if a.store.Status() != session.StatusAuthenticated {
		return ""
	}
	if p := a.store.Professor(); p != nil {
		return fmt.Sprintf("(%s)", p.Nome)
	}
	return ""
}

func (a *App) printHelp() {
	if a.isLoggedIn() {
		fmt.Println("Available commands: turmas, addturma, editturma, delturma, atividades, addatividade, editatividade, delatividade, logout, exit")
	} else {
		fmt.Println("Available commands: register, login, exit")
	}
}

// Root runs the command loop. The command set follows the session status:
// only register and login are reachable before authentication, and the
// turma and atividade screens only after.
func (a *App) Root(ctx context.Context) {
	if a.store.Status() == session.StatusLoading {
		fmt.Println("Restoring session...")
	}

	fmt.Println("Welcome to turmas CLI (type 'help' for commands)")
	if p := a.store.Professor(); p != nil {
		fmt.Printf("Signed in as %s\n", p.Nome)
	}

	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Printf("turmas %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		if !a.isLoggedIn() {
			switch cmd {
			case "help":
				a.printHelp()
			case "register":
				a.register(ctx)
			case "login":
				a.login(ctx)
			case "exit", "quit":
				fmt.Println("Bye!")
				return
			default:
				fmt.Println("Unknown command (sign in first):", cmd)
			}
			continue
		}

		switch cmd {
		case "help":
			a.printHelp()
		case "turmas":
			a.listTurmas(ctx)
		case "addturma":
			a.addTurma(ctx)
		case "editturma":
			a.editTurma(ctx)
		case "delturma":
			a.deleteTurma(ctx)
		case "atividades":
			a.listAtividades(ctx)
		case "addatividade":
			a.addAtividade(ctx)
		case "editatividade":
			a.editAtividade(ctx)
		case "delatividade":
			a.deleteAtividade(ctx)
		case "logout":
			a.logout(ctx)
		case "exit", "quit":
			fmt.Println("Bye!")
			return
		default:
			fmt.Println("Unknown command:", cmd)
		}
	}
}
