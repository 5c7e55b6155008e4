package audio

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// PathPlaceholder is replaced by the audio file path in Player.Args.
const PathPlaceholder = "{path}"

// Player describes how to launch a play-to-completion media player.
type Player struct {
	Name    string
	Command string
	Args    []string // may contain PathPlaceholder
	// Builtin marks players shipped with the OS that need no PATH lookup.
	Builtin bool
	// Quote escapes the path for the interpreter that parses Args.
	// Nil means the path is passed through untouched.
	Quote func(path string) string
}

// Players is the platform strategy table, keyed by GOOS.
var Players = map[string]Player{
	"linux": {
		Name:    "ffplay",
		Command: "ffplay",
		Args:    []string{"-nodisp", "-autoexit", PathPlaceholder},
	},
	"darwin": {
		Name:    "afplay",
		Command: "afplay",
		Args:    []string{PathPlaceholder},
		Builtin: true,
	},
	"windows": {
		Name:    "powershell",
		Command: "powershell",
		Args:    []string{"-c", "(New-Object Media.SoundPlayer '" + PathPlaceholder + "').PlaySync();"},
		Builtin: true,
		Quote:   QuotePowerShell,
	},
}

// fallbackOS is used for platforms without a dedicated entry.
const fallbackOS = "linux"

// PlayerFor selects the player for goos, falling back to the linux entry.
func PlayerFor(goos string) Player {
	if p, ok := Players[goos]; ok {
		return p
	}
	return Players[fallbackOS]
}

// DefaultPlayer selects the player for the running platform.
func DefaultPlayer() Player {
	return PlayerFor(runtime.GOOS)
}

// CommandLine expands the player's arguments for path.
func (p Player) CommandLine(path string) (string, []string) {
	if p.Quote != nil {
		path = p.Quote(path)
	}
	args := make([]string, len(p.Args))
	for i, a := range p.Args {
		args[i] = strings.ReplaceAll(a, PathPlaceholder, path)
	}
	return p.Command, args
}

// powerShellQuotes are the characters PowerShell accepts as a single quote.
var powerShellQuotes = strings.NewReplacer(
	"'", "''",
	"\u2018", "\u2018\u2018",
	"\u2019", "\u2019\u2019",
	"\u201a", "\u201a\u201a",
	"\u201b", "\u201b\u201b",
)

// QuotePowerShell escapes path for use inside a single-quoted PowerShell
// string by doubling every quote character.
func QuotePowerShell(path string) string {
	return powerShellQuotes.Replace(path)
}

// Validate reports a player that cannot possibly be launched.
func (p Player) Validate() error {
	if strings.TrimSpace(p.Command) == "" {
		return fmt.Errorf("player command not configured")
	}
	return nil
}

// Availability reports whether a player can be found on this machine.
type Availability struct {
	Name      string
	Command   string
	Available bool
	Detail    string
}

// CheckPlayer looks the player binary up on PATH. Builtin players are
// reported available without a lookup.
func CheckPlayer(p Player) Availability {
	status := Availability{Name: p.Name, Command: p.Command}
	if err := p.Validate(); err != nil {
		status.Detail = err.Error()
		return status
	}
	if p.Builtin {
		status.Available = true
		status.Detail = "provided by the operating system"
		return status
	}
	resolved, err := exec.LookPath(p.Command)
	if err != nil {
		status.Detail = fmt.Sprintf("binary %q not found", p.Command)
		return status
	}
	status.Available = true
	status.Detail = resolved
	return status
}
