// Package pipsheet parses pipsheet flags and runs the terminal sheet host.
package pipsheet

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	entrypoint "github.com/louisbranch/pipsheet/internal/platform/cmd"
	apperrors "github.com/louisbranch/pipsheet/internal/platform/errors"
	"github.com/louisbranch/pipsheet/internal/platform/i18n/catalog"
	"github.com/louisbranch/pipsheet/internal/sheet/engine"
	"github.com/louisbranch/pipsheet/internal/sheet/layout"
	"github.com/louisbranch/pipsheet/internal/sheet/storage"
	boltstore "github.com/louisbranch/pipsheet/internal/sheet/storage/bbolt"
	"github.com/louisbranch/pipsheet/internal/sheet/storage/memory"
	sqlitestore "github.com/louisbranch/pipsheet/internal/sheet/storage/sqlite"
	"golang.org/x/text/message"
)

// Config holds pipsheet command configuration. Env names carry the
// PIPSHEET_ prefix.
type Config struct {
	DBPath      string        `env:"DB_PATH"      envDefault:"data/pipsheet.db"`
	Storage     string        `env:"STORAGE"      envDefault:"sqlite"`
	Key         string        `env:"KEY"          envDefault:"formData"`
	Autosave    time.Duration `env:"AUTOSAVE"     envDefault:"5s"`
	Layout      string        `env:"LAYOUT"`
	Locale      string        `env:"LOCALE"       envDefault:"en-US"`
	ConfirmSave bool          `env:"CONFIRM_SAVE"`

	// Args holds the subcommand and its arguments.
	Args []string
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "path to the sheet database file")
	fs.StringVar(&cfg.Storage, "storage", cfg.Storage, "storage backend (sqlite, bbolt, memory)")
	fs.StringVar(&cfg.Key, "key", cfg.Key, "storage key of the sheet")
	fs.DurationVar(&cfg.Autosave, "autosave", cfg.Autosave, "autosave interval for session mode")
	fs.StringVar(&cfg.Layout, "layout", cfg.Layout, "path to a sheet layout YAML (default: embedded Pip-Boy sheet)")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "message locale")
	fs.BoolVar(&cfg.ConfirmSave, "confirm-save", cfg.ConfirmSave, "ask before saving in session mode")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	cfg.Args = fs.Args()
	return cfg, nil
}

// Run executes one pipsheet subcommand.
func Run(ctx context.Context, cfg Config, in io.Reader, out io.Writer, errOut io.Writer) error {
	if in == nil {
		in = strings.NewReader("")
	}
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	printer := catalog.Default().Printer(cfg.Locale)
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceSheet, func(ctx context.Context) error {
		return localize(printer, run(ctx, cfg, printer, in, out, errOut))
	})
}

func run(ctx context.Context, cfg Config, printer *message.Printer, in io.Reader, out io.Writer, errOut io.Writer) error {
	command, args := "show", []string(nil)
	if len(cfg.Args) > 0 {
		command, args = cfg.Args[0], cfg.Args[1:]
	}
	if !knownCommand(command) {
		return fmt.Errorf("%s\n%s", printer.Sprintf("cli.unknown_command", command), printer.Sprintf("cli.usage"))
	}

	doc, err := loadLayout(cfg.Layout)
	if err != nil {
		return err
	}
	tree, err := doc.Build()
	if err != nil {
		return err
	}
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("close store: %v", err)
		}
	}()

	con := newConsole(in, out, errOut, printer, doc)
	eng, err := engine.New(tree, store, engine.Options{
		Key:              cfg.Key,
		Confirmer:        con,
		ConfirmSave:      cfg.ConfirmSave,
		ReloadAfterReset: true,
		ResetPrompt:      printer.Sprintf("core.prompt.reset"),
		SavePrompt:       printer.Sprintf("core.prompt.save"),
		Logf:             log.Printf,
	})
	if err != nil {
		return err
	}

	switch command {
	case "show":
		eng.Start(ctx)
		con.show(eng.Tree())
		con.lastSaved(ctx, store, cfg.Key)
		return nil
	case "set":
		eng.Start(ctx)
		for _, arg := range args {
			if err := con.assign(eng.Tree(), arg); err != nil {
				return err
			}
		}
		if err := eng.Save(ctx); err != nil {
			return err
		}
		con.say("cli.saved")
		return nil
	case "reset":
		flags := flag.NewFlagSet("reset", flag.ContinueOnError)
		flags.SetOutput(errOut)
		flags.BoolVar(&con.assumeYes, "yes", false, "reset without asking")
		if err := flags.Parse(args); err != nil {
			return err
		}
		eng.Start(ctx)
		eng.RequestReset(ctx)
		if con.lastAnswer {
			con.say("cli.reset_done")
		} else {
			con.say("cli.reset_cancelled")
		}
		return nil
	default:
		return runSession(ctx, eng, con, cfg)
	}
}

func knownCommand(command string) bool {
	switch command {
	case "show", "set", "reset", "session":
		return true
	default:
		return false
	}
}

func loadLayout(path string) (layout.Document, error) {
	if strings.TrimSpace(path) == "" {
		return layout.Default(), nil
	}
	return layout.LoadFile(path)
}

// openStore opens the configured backend, creating the database directory
// when needed.
func openStore(cfg Config) (storage.BlobStore, error) {
	backend, err := storage.ParseBackend(cfg.Storage)
	if err != nil {
		return nil, err
	}
	if backend == storage.BackendMemory {
		return memory.New(), nil
	}
	if strings.TrimSpace(cfg.DBPath) == "" {
		return nil, apperrors.New(apperrors.CodeStorageUnavailable, "database path is required")
	}
	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, apperrors.Wrap(apperrors.CodeStorageUnavailable, "create data dir", err)
		}
	}
	if backend == storage.BackendBolt {
		return boltstore.Open(cfg.DBPath)
	}
	return sqlitestore.Open(cfg.DBPath)
}

// localize prefixes coded errors with their catalog text.
func localize(printer *message.Printer, err error) error {
	if err == nil {
		return nil
	}
	code := apperrors.CodeOf(err)
	if code == apperrors.CodeUnknown || code == apperrors.CodeFieldUnknown {
		return err
	}
	return fmt.Errorf("%s (%w)", printer.Sprintf(code.MessageKey()), err)
}
