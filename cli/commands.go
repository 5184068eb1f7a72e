package cli

import (
	"strings"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/stmtsplit/logging"
)

// Globals defines global flags available to all commands.
type Globals struct {
	Version     kong.VersionFlag `help:"Show version information."`
	Telemetry   bool             `help:"Show timing telemetry for operations."`
	LogLevel    string           `help:"Log level (${enum})." enum:"${log_levels}" default:"warn"`
	ErrorFormat string           `help:"Error output format (${enum})." enum:"text,json" default:"text"`
	Config      string           `help:"YAML configuration file." type:"existingfile" placeholder:"FILE"`
}

type Commands struct {
	Globals

	Convert ConvertCmd `cmd:"" default:"withargs" help:"Merge the statements of a directory and write one file per year."`
	Check   CheckCmd   `cmd:"" help:"Validate and merge the statements of a directory without writing anything."`
	Watch   WatchCmd   `cmd:"" help:"Convert, then convert again whenever a statement changes."`
	Doctor  DoctorCmd  `cmd:"" help:"Doctor utilities for debugging statement files."`
}

// Vars returns the variables interpolated into the command tags.
func Vars(version string) kong.Vars {
	return kong.Vars{
		"version":    version,
		"log_levels": strings.Join(logging.Levels, ","),
	}
}
