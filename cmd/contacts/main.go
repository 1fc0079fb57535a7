package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-isatty"

	"github.com/smileynet/contacts"
	"github.com/smileynet/contacts/internal/config"
	"github.com/smileynet/contacts/internal/contact"
	"github.com/smileynet/contacts/internal/directory"
	"github.com/smileynet/contacts/internal/export"
	"github.com/smileynet/contacts/internal/logging"
	"github.com/smileynet/contacts/internal/store"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Globals are the flags shared by every command.
type Globals struct {
	DB       string `help:"SQLite database file (overrides store.path)." placeholder:"PATH"`
	Config   string `help:"Project config file." default:".contacts/config.yaml" placeholder:"PATH"`
	LogLevel string `help:"Log level: debug, info, warn or error." placeholder:"LEVEL"`
	EnvFile  string `help:"Dotenv file read before CONTACTS_* overrides." default:".env" placeholder:"PATH"`
}

// CLI is the top-level command structure for contacts.
type CLI struct {
	Globals `embed:""`

	Version kong.VersionFlag `help:"Show version." short:"V"`
	UI      UICmd            `cmd:"" default:"1" help:"Open the interactive directory."`
	Add     AddCmd           `cmd:"" help:"Add a contact."`
	Update  UpdateCmd        `cmd:"" help:"Replace every field of a contact."`
	Delete  DeleteCmd        `cmd:"" help:"Delete a contact."`
	List    ListCmd          `cmd:"" help:"List contacts."`
	Export  ExportCmd        `cmd:"" help:"Export every contact to a CSV file."`
	Init    InitCmd          `cmd:"" help:"Write the default config file and create the database."`
}

// FieldFlags are the editable contact fields accepted by add and update.
type FieldFlags struct {
	Name     string `help:"Last name." short:"n"`
	Surname  string `help:"First name." short:"s"`
	Email    string `help:"Email address." short:"e"`
	Phone    string `help:"Phone number, digits only." short:"p"`
	Category string `help:"Family, Friends, Work, Vendors or Other." short:"c"`
}

// fields converts the flags to contact.Fields. An unrecognized category is
// kept verbatim so validation reports it.
func (f FieldFlags) fields() contact.Fields {
	raw := strings.TrimSpace(f.Category)
	cat := contact.Category(raw)
	if c, err := contact.ParseCategory(raw); err == nil {
		cat = c
	}
	return contact.Fields{
		Name:     strings.TrimSpace(f.Name),
		Surname:  strings.TrimSpace(f.Surname),
		Email:    strings.TrimSpace(f.Email),
		Phone:    strings.TrimSpace(f.Phone),
		Category: cat,
	}
}

// loadConfig loads layered config from user and project paths with dotenv
// and env overrides, then applies the global flags.
func (g *Globals) loadConfig() (*config.Config, error) {
	cfg, err := config.LoadLayered(
		os.ExpandEnv("$HOME/.config/contacts/config.yaml"),
		g.Config,
	)
	if err != nil {
		return nil, err
	}
	if err := config.LoadDotEnv(g.EnvFile); err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if g.DB != "" {
		cfg.Store.Path = g.DB
	}
	if g.LogLevel != "" {
		cfg.Log.Level = g.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openStore loads config and returns a store with its schema in place,
// logging to w.
func (g *Globals) openStore(ctx context.Context, w io.Writer) (*store.Store, error) {
	cfg, err := g.loadConfig()
	if err != nil {
		return nil, err
	}
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	s := store.New(cfg.Store.Path,
		store.WithBusyTimeout(cfg.Store.BusyTimeout),
		store.WithLogger(logging.New(w, level)),
	)
	if err := s.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// UICmd opens the interactive directory.
type UICmd struct{}

// teaRunner abstracts Bubble Tea program execution for testing.
type teaRunner interface {
	Run() (tea.Model, error)
}

// Run builds real dependencies and launches the directory TUI.
func (u *UICmd) Run(g *Globals) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return errors.New("ui: requires a terminal (TTY)")
	}

	cfg, err := g.loadConfig()
	if err != nil {
		return fmt.Errorf("ui: %w", err)
	}
	logger, closeLog, err := tuiLogger(cfg.Log)
	if err != nil {
		return fmt.Errorf("ui: %w", err)
	}
	defer closeLog() //nolint:errcheck // best-effort close of the log file

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	s := store.New(cfg.Store.Path,
		store.WithBusyTimeout(cfg.Store.BusyTimeout),
		store.WithLogger(logger),
	)
	if err := s.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ui: %w", err)
	}

	m := directory.NewModel(s,
		directory.WithExportDir(cfg.Export.Dir),
		directory.WithLogger(logger),
		directory.WithContext(ctx),
	)
	return runTUI(tea.NewProgram(m, tea.WithAltScreen()))
}

// runTUI runs the program and reports errors under the ui prefix.
func runTUI(p teaRunner) error {
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("ui: %w", err)
	}
	return nil
}

// tuiLogger returns a logger for the TUI. The terminal belongs to the UI, so
// records go to the configured log file or nowhere.
func tuiLogger(cfg config.Log) (*slog.Logger, func() error, error) {
	if cfg.File == "" {
		return logging.Discard(), func() error { return nil }, nil
	}
	level, err := logging.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}
	return logging.OpenFile(cfg.File, level)
}

// AddCmd inserts one contact.
type AddCmd struct {
	Fields FieldFlags `embed:""`
}

// Run executes the add command.
func (a *AddCmd) Run(g *Globals) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	s, err := g.openStore(ctx, os.Stderr)
	if err != nil {
		return fmt.Errorf("add: %w", err)
	}
	return a.run(ctx, os.Stdout, s)
}

func (a *AddCmd) run(ctx context.Context, w io.Writer, s directory.Store) error {
	f := a.Fields.fields()
	if err := contact.Validate(f); err != nil {
		return fmt.Errorf("add: %w", err)
	}
	id, err := s.Insert(ctx, f)
	if err != nil {
		return fmt.Errorf("add: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Contact %d added.\n", id)
	return nil
}

// UpdateCmd replaces the fields of one contact.
type UpdateCmd struct {
	ID     int64      `arg:"" help:"Contact id."`
	Fields FieldFlags `embed:""`
}

// Run executes the update command.
func (u *UpdateCmd) Run(g *Globals) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	s, err := g.openStore(ctx, os.Stderr)
	if err != nil {
		return fmt.Errorf("update: %w", err)
	}
	return u.run(ctx, os.Stdout, s)
}

func (u *UpdateCmd) run(ctx context.Context, w io.Writer, s directory.Store) error {
	f := u.Fields.fields()
	if err := contact.Validate(f); err != nil {
		return fmt.Errorf("update: %w", err)
	}
	if err := s.Update(ctx, u.ID, f); err != nil {
		return fmt.Errorf("update: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Contact %d updated.\n", u.ID)
	return nil
}

// DeleteCmd removes one contact.
type DeleteCmd struct {
	ID int64 `arg:"" help:"Contact id."`
}

// Run executes the delete command.
func (d *DeleteCmd) Run(g *Globals) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	s, err := g.openStore(ctx, os.Stderr)
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	return d.run(ctx, os.Stdout, s)
}

func (d *DeleteCmd) run(ctx context.Context, w io.Writer, s directory.Store) error {
	if err := s.Delete(ctx, d.ID); err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Contact %d deleted.\n", d.ID)
	return nil
}

// ListCmd prints contacts as a table or as CSV.
type ListCmd struct {
	Filter string `help:"Case-insensitive substring matched against every column." short:"f"`
	Plain  bool   `help:"Print CSV instead of a table."`
}

// Run executes the list command.
func (l *ListCmd) Run(g *Globals) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	s, err := g.openStore(ctx, os.Stderr)
	if err != nil {
		return fmt.Errorf("list: %w", err)
	}
	return l.run(ctx, os.Stdout, s)
}

func (l *ListCmd) run(ctx context.Context, w io.Writer, s directory.Store) error {
	all, err := s.SelectAll(ctx)
	if err != nil {
		return fmt.Errorf("list: %w", err)
	}
	idx := contact.Filter(all, l.Filter)
	rows := make([]contact.Contact, len(idx))
	for i, j := range idx {
		rows[i] = all[j]
	}

	if l.Plain {
		if err := export.Write(w, rows); err != nil {
			return fmt.Errorf("list: %w", err)
		}
		return nil
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(export.Header...)
	for _, c := range rows {
		t.Row(c.Columns()...)
	}
	_, _ = fmt.Fprintln(w, t.Render())
	_, _ = fmt.Fprintf(w, "%d of %d contacts\n", len(rows), len(all))
	return nil
}

// ExportCmd writes every contact to a CSV file.
type ExportCmd struct {
	Path string `arg:"" help:"Destination CSV file."`
}

// Run executes the export command.
func (e *ExportCmd) Run(g *Globals) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	s, err := g.openStore(ctx, os.Stderr)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return e.run(ctx, os.Stdout, s)
}

func (e *ExportCmd) run(ctx context.Context, w io.Writer, s directory.Store) error {
	rows, err := s.SelectAll(ctx)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := export.ToFile(e.Path, rows); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d contacts to %s.\n", len(rows), e.Path)
	return nil
}

// InitCmd writes the default config file and creates the database schema.
type InitCmd struct {
	Force bool `help:"Overwrite an existing config file."`
}

// Run executes the init command.
func (i *InitCmd) Run(g *Globals) error {
	templates := contacts.OverlayFS(os.ExpandEnv("$HOME/.config/contacts/templates"), contacts.Templates)
	if err := i.writeConfig(os.Stdout, g.Config, templates); err != nil {
		return fmt.Errorf("init: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	s, err := g.openStore(ctx, os.Stderr)
	if err != nil {
		return fmt.Errorf("init: %w", err)
	}
	_, _ = fmt.Fprintf(os.Stdout, "Database ready at %s.\n", s.Path())
	return nil
}

// writeConfig copies the config template from templates to path.
func (i *InitCmd) writeConfig(w io.Writer, path string, templates fs.FS) error {
	if !i.Force {
		if _, err := os.Stat(path); err == nil {
			if _, err := config.Load(path); err != nil {
				return fmt.Errorf("existing config: %w", err)
			}
			_, _ = fmt.Fprintf(w, "Config %s already exists.\n", path)
			return nil
		}
	}
	data, err := fs.ReadFile(templates, contacts.ConfigTemplate)
	if err != nil {
		return fmt.Errorf("reading config template: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	_, _ = fmt.Fprintf(w, "Wrote %s.\n", path)
	return nil
}

// Exit codes.
const (
	exitSuccess = 0
	exitInput   = 1
	exitSetup   = 2
)

// exitCode maps an error to the appropriate exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	// Rejected input maps to the input exit code (not setup).
	if contact.IsValidationError(err) || errors.Is(err, store.ErrDuplicateEmail) {
		return exitInput
	}
	return exitSetup
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("contacts"),
		kong.Description("A personal contact directory backed by a local SQLite file."),
		kong.Vars{"version": version + " " + commit + " " + date},
	)
	err := ctx.Run(&cli.Globals)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(exitCode(err))
	}
}
