package commands

import (
	"flag"
	"fmt"
	"sort"
	"strings"
)

const prefix = "cmd "

// Command is a subcommand with its own flags and a Run function. Run is called
// after FlagSet.Parse and can read both flag state and remaining positionals.
type Command struct {
	Name    string
	FlagSet *flag.FlagSet
	Run     func(args []string) error
}

// Registry holds subcommands by name. Add commands with Register; run with
// Execute.
type Registry struct {
	cmds map[string]*Command
}

// NewRegistry returns an empty command registry.
func NewRegistry() *Registry {
	return &Registry{cmds: make(map[string]*Command)}
}

// Register adds a subcommand. name is the first token after "cmd"; fs is that
// command's FlagSet; run receives the positional arguments left after flag
// parsing.
func (r *Registry) Register(name string, fs *flag.FlagSet, run func(args []string) error) {
	r.cmds[name] = &Command{Name: name, FlagSet: fs, Run: run}
}

// Names returns the registered command names, sorted. Used by the console's
// help output.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.cmds))
	for name := range r.cmds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Parse interprets line as a console line. If it starts with "cmd "
// (case-sensitive), the rest is tokenized by spaces and returned with ok true.
func Parse(line string) (args []string, ok bool) {
	if !strings.HasPrefix(line, prefix) {
		return nil, false
	}
	rest := strings.TrimSpace(line[len(prefix):])
	if rest == "" {
		return nil, true
	}
	return strings.Fields(rest), true
}

// Execute runs the subcommand in args[0] with args[1:] as flag/positional
// arguments. FlagSets live as long as the registry, so every flag is reset to
// its default before parsing; values set by an earlier invocation never bleed
// into the next one.
func (r *Registry) Execute(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing subcommand")
	}
	cmd, ok := r.cmds[args[0]]
	if !ok {
		return fmt.Errorf("unknown command: %s", args[0])
	}
	cmd.FlagSet.VisitAll(func(f *flag.Flag) {
		_ = cmd.FlagSet.Set(f.Name, f.DefValue)
	})
	if err := cmd.FlagSet.Parse(args[1:]); err != nil {
		return err
	}
	return cmd.Run(cmd.FlagSet.Args())
}
