// FILE: cmd/leaderboard-cli/main.go
// Package main implements an interactive debugging client for the
// leaderboard server API.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"github.com/AbhishekSingh2002/Gaming-Leaderboard/internal/client/api"
	"github.com/AbhishekSingh2002/Gaming-Leaderboard/internal/client/commands"
	"github.com/AbhishekSingh2002/Gaming-Leaderboard/internal/client/display"
)

func main() {
	server := flag.String("server", "http://localhost:8000", "Leaderboard API base URL")
	flag.Parse()

	s := &commands.Session{
		APIBaseURL: *server,
		Client:     api.New(*server),
	}

	// Initialize readline
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          display.Prompt("leaderboard"),
		HistoryFile:     ".leaderboard_history",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Printf("%s%s%s\n", display.Red, err.Error(), display.Reset)
		os.Exit(1)
	}
	defer rl.Close()

	fmt.Printf("%sLeaderboard Debug Client%s\n", display.Cyan, display.Reset)
	fmt.Printf("%sAPI: %s%s\n", display.Cyan, s.APIBaseURL, display.Reset)
	fmt.Printf("Type 'help' for commands\n\n")

	registry := commands.NewRegistry(s)

	for {
		rl.SetPrompt(buildPrompt(s))

		line, err := rl.Readline()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if line == "exit" || line == "quit" || line == "q" {
			break
		}

		registry.Execute(line)
	}
}

func buildPrompt(s *commands.Session) string {
	base := "leaderboard"
	if s.LastCompetitor != "" {
		id := s.LastCompetitor
		if len(id) > 8 {
			id = id[:8]
		}
		base += display.Yellow + " [" + display.Reset + display.Magenta + id + display.Reset + display.Yellow + "]" + display.Reset
	}
	return display.Prompt(base)
}
