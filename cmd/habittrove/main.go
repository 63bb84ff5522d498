package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/dohsimpson/habittrove/internal/cli"
	"github.com/dohsimpson/habittrove/internal/constants"
	apperrors "github.com/dohsimpson/habittrove/internal/errors"
	"github.com/dohsimpson/habittrove/internal/logger"
	"github.com/dohsimpson/habittrove/internal/storage"
)

var CLI struct {
	Version  kong.VersionFlag
	DataDir  string `help:"Directory holding the JSON data files." type:"path" default:"./data" env:"HABITTROVE_DATA_DIR"`
	Timezone string `help:"IANA timezone, overriding settings (e.g. America/New_York)." env:"HABITTROVE_TIMEZONE"`
	Debug    bool   `help:"Log debug output to stderr." env:"HABITTROVE_DEBUG"`

	Init     cli.InitCmd     `cmd:"" help:"Create the data directory and default data files."`
	Due      cli.DueCmd      `cmd:"" help:"Show habits and tasks due on a day." default:"1"`
	Parse    cli.ParseCmd    `cmd:"" help:"Parse schedule text into a recurrence rule or due date."`
	Render   cli.RenderCmd   `cmd:"" help:"Show a habit's schedule as readable text."`
	Complete cli.CompleteCmd `cmd:"" help:"Record a completion for today."`
	Undo     cli.UndoCmd     `cmd:"" help:"Remove today's latest completion."`
	Coins    cli.CoinsCmd    `cmd:"" help:"Show the coin balance and recent transactions."`
	Note     cli.NoteCmd     `cmd:"" help:"Set the note on a coin transaction."`
	Hash     cli.HashCmd     `cmd:"" help:"Print the freshness hash of the current data."`
	Check    cli.CheckCmd    `cmd:"" help:"Check whether a freshness hash is still current."`
	Watch    cli.WatchCmd    `cmd:"" help:"Watch the data files and report changes."`
	Backup   struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    cli.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage data backups."`
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env: %v\n", err)
	}

	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Habit and task tracker with coin rewards"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	if err := logger.Init(logger.Config{Debug: CLI.Debug, DataDir: CLI.DataDir}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	appCtx := cli.NewContext(storage.NewJSONStore(CLI.DataDir), nil, CLI.Timezone)
	apperrors.Fatal(ctx.Run(appCtx))
}
