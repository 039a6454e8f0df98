// FILE: internal/client/commands/registry.go
package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AbhishekSingh2002/Gaming-Leaderboard/internal/client/api"
	"github.com/AbhishekSingh2002/Gaming-Leaderboard/internal/client/display"
)

// Session holds client-side state shared by commands
type Session struct {
	APIBaseURL     string
	Client         *api.Client
	Verbose        bool
	LastCompetitor string // last competitor id used, reused as default argument
}

// Command defines a client command with its handler
type Command struct {
	Name        string
	ShortName   string
	Description string
	Usage       string
	Handler     func(*Session, []string) error
}

// Registry manages command registration and execution
type Registry struct {
	session  *Session
	commands map[string]*Command
}

func NewRegistry(session *Session) *Registry {
	r := &Registry{
		session:  session,
		commands: make(map[string]*Command),
	}
	r.registerAll()
	return r
}

func (r *Registry) register(cmd *Command) {
	r.commands[cmd.Name] = cmd
	if cmd.ShortName != "" {
		r.commands[cmd.ShortName] = cmd
	}
}

// Execute parses a command line and dispatches it
func (r *Registry) Execute(line string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return
	}

	name := fields[0]
	args := fields[1:]

	if name == "help" || name == "h" {
		r.printHelp()
		return
	}

	cmd, ok := r.commands[name]
	if !ok {
		fmt.Printf("%sUnknown command: %s (try 'help')%s\n", display.Red, name, display.Reset)
		return
	}

	if err := cmd.Handler(r.session, args); err != nil {
		fmt.Printf("%s%s%s\n", display.Red, err.Error(), display.Reset)
	}
}

func (r *Registry) printHelp() {
	// Deduplicate aliases
	seen := make(map[string]bool)
	var cmds []*Command
	for _, cmd := range r.commands {
		if !seen[cmd.Name] {
			seen[cmd.Name] = true
			cmds = append(cmds, cmd)
		}
	}
	sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name < cmds[j].Name })

	fmt.Printf("%sCommands:%s\n", display.Cyan, display.Reset)
	for _, cmd := range cmds {
		alias := ""
		if cmd.ShortName != "" {
			alias = fmt.Sprintf(" (%s)", cmd.ShortName)
		}
		fmt.Printf("  %s%-12s%s%s  %s\n", display.Green, cmd.Name, alias, display.Reset, cmd.Description)
		if cmd.Usage != "" {
			fmt.Printf("               usage: %s\n", cmd.Usage)
		}
	}
	fmt.Println("  help (h)      Show this help")
	fmt.Println("  quit (q)      Exit the client")
}
