// Package launcher opens catalog items: applications run their command
// line, places and documents go to the platform opener.
package launcher

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/pders01/overview/internal/config"
	"github.com/pders01/overview/internal/debuglog"
	"github.com/pders01/overview/internal/storage"
	"github.com/pders01/overview/internal/validation"
)

// Runner starts a process without waiting for it.
type Runner interface {
	Start(name string, args ...string) error
}

type execRunner struct{}

func (execRunner) Start(name string, args ...string) error {
	path, err := exec.LookPath(name)
	if err != nil {
		return fmt.Errorf("command not found: %s", name)
	}
	cmd := exec.Command(path, args...)
	// Start GUI applications detached
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", name, err)
	}
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}

type Launcher struct {
	opener string
	runner Runner
}

func New(cfg config.LauncherConfig) *Launcher {
	return NewWithRunner(cfg.DefaultOpener, execRunner{})
}

// NewWithRunner creates a launcher that starts processes through r.
func NewWithRunner(opener string, r Runner) *Launcher {
	if opener == "" {
		opener = findCommand("xdg-open", "open")
	}
	return &Launcher{opener: opener, runner: r}
}

// Launch opens item according to its kind.
func (l *Launcher) Launch(item *storage.Item) error {
	debuglog.WithFields(map[string]any{"id": item.ID, "kind": item.Kind}).Infof("launching %s", item.Name)
	switch item.Kind {
	case storage.KindApplication:
		return l.Run(item.Target)
	case storage.KindPlace, storage.KindDocument:
		return l.Open(item.Target)
	default:
		return fmt.Errorf("unknown item kind %q", item.Kind)
	}
}

// Run starts a command line.
func (l *Launcher) Run(commandLine string) error {
	args, err := SplitCommand(commandLine)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("empty command")
	}
	for i, a := range args[1:] {
		if a == "~" || strings.HasPrefix(a, "~/") {
			if expanded, err := validation.ExpandPath(a); err == nil {
				args[i+1] = expanded
			}
		}
	}
	return l.runner.Start(args[0], args[1:]...)
}

// Open hands a path or URL to the platform opener.
func (l *Launcher) Open(target string) error {
	_, normalized, err := validation.CheckTarget(target)
	if err != nil {
		return fmt.Errorf("invalid target: %w", err)
	}
	if l.opener == "" {
		return fmt.Errorf("no application found to open %s", normalized)
	}
	return l.runner.Start(l.opener, normalized)
}

// SplitCommand splits a command line on whitespace, honoring single and
// double quotes.
func SplitCommand(s string) ([]string, error) {
	var (
		args  []string
		cur   strings.Builder
		quote rune
		inArg bool
	)
	for _, r := range s {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				cur.WriteRune(r)
			}
		case r == '\'' || r == '"':
			quote = r
			inArg = true
		case r == ' ' || r == '\t':
			if inArg {
				args = append(args, cur.String())
				cur.Reset()
				inArg = false
			}
		default:
			cur.WriteRune(r)
			inArg = true
		}
	}
	if quote != 0 {
		return nil, fmt.Errorf("unterminated quote in %q", s)
	}
	if inArg {
		args = append(args, cur.String())
	}
	return args, nil
}

func findCommand(commands ...string) string {
	for _, cmd := range commands {
		if _, err := exec.LookPath(cmd); err == nil {
			return cmd
		}
	}
	return ""
}
