package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/rolo-cli/rolo"
	"github.com/rolo-cli/rolo/internal/audit"
	"github.com/rolo-cli/rolo/internal/book"
	"github.com/rolo-cli/rolo/internal/config"
	"github.com/rolo-cli/rolo/internal/contact"
	"github.com/rolo-cli/rolo/internal/interchange"
	"github.com/rolo-cli/rolo/internal/shell"
	"github.com/rolo-cli/rolo/internal/store"
	"github.com/rolo-cli/rolo/internal/tui"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// CLI is the top-level command structure for rolo.
type CLI struct {
	Version kong.VersionFlag `help:"Show version." short:"V"`
	Shell   ShellCmd         `cmd:"" default:"1" help:"Run the interactive contact menu."`
	Browse  BrowseCmd        `cmd:"" help:"Open the contact browser TUI."`
	Add     AddCmd           `cmd:"" help:"Add a contact."`
	List    ListCmd          `cmd:"" help:"List all contacts."`
	Search  SearchCmd        `cmd:"" help:"Search contacts by name."`
	Update  UpdateCmd        `cmd:"" help:"Update a contact's phone or email."`
	Delete  DeleteCmd        `cmd:"" help:"Delete every contact with the given name."`
	Export  ExportCmd        `cmd:"" help:"Export contacts to a JSON file."`
	Import  ImportCmd        `cmd:"" help:"Replace contacts from a JSON file."`
	Init    InitCmd          `cmd:"" help:"Write a starter config file."`
}

// contactBook abstracts the book operations for testing command wiring.
type contactBook interface {
	Add(name, phone, email string) error
	List() ([]contact.Contact, error)
	Search(term string) ([]contact.Contact, error)
	Get(name string) (contact.Contact, error)
	Update(name, newPhone, newEmail string) (contact.Contact, error)
	Delete(name string) (int, error)
	Export(path string) (int, error)
	Import(path string) (int, error)
}

// loadConfig loads layered config from user and project paths with env overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadLayered(
		os.ExpandEnv("$HOME/.config/rolo/config.yaml"),
		".rolo/config.yaml",
	)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openBook builds the file-backed book with its audit logger, ensuring
// the store file exists.
func openBook() (*book.Book, audit.Logger, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}

	st := store.NewFileStore(cfg.Store.Path)
	if err := st.EnsureExists(); err != nil {
		return nil, nil, nil, err
	}

	log := audit.NewFileLogger(cfg.Log.Path)
	return book.New(st, log), log, cfg, nil
}

// ShellCmd runs the interactive numbered-menu loop.
type ShellCmd struct{}

// Run builds real dependencies and starts the menu loop.
func (s *ShellCmd) Run() error {
	b, log, cfg, err := openBook()
	if err != nil {
		return fmt.Errorf("shell: %w", err)
	}
	shell.New(b, log, os.Stdin, os.Stdout, cfg.Store.ExportPath).Run()
	return nil
}

// BrowseCmd opens the contact browser TUI.
type BrowseCmd struct{}

// teaRunner abstracts Bubble Tea program execution for testing.
type teaRunner interface {
	Run() (tea.Model, error)
}

// Run builds real dependencies and launches the browser TUI.
func (b *BrowseCmd) Run() error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return fmt.Errorf("browse: requires a terminal (TTY)")
	}

	bk, _, _, err := openBook()
	if err != nil {
		return fmt.Errorf("browse: %w", err)
	}

	prog := tea.NewProgram(tui.NewModel(bk), tea.WithAltScreen())
	return b.run(true, prog)
}

// run executes the tea program, enabling testable wiring.
func (b *BrowseCmd) run(isTTY bool, prog teaRunner) error {
	if !isTTY {
		return fmt.Errorf("browse: requires a terminal (TTY)")
	}
	_, err := prog.Run()
	return err
}

// AddCmd adds a single contact.
type AddCmd struct {
	Name  string `arg:"" help:"Contact name."`
	Phone string `arg:"" help:"Contact phone."`
	Email string `arg:"" help:"Contact email."`
}

// Run executes the add command.
func (a *AddCmd) Run() error {
	b, _, _, err := openBook()
	if err != nil {
		return fmt.Errorf("add: %w", err)
	}
	return a.run(os.Stdout, b)
}

// run adds the contact with the given book, enabling testable wiring.
func (a *AddCmd) run(w io.Writer, b contactBook) error {
	if err := b.Add(a.Name, a.Phone, a.Email); err != nil {
		if errors.Is(err, contact.ErrBlankField) {
			return fmt.Errorf("add: all fields are required: %w", err)
		}
		return fmt.Errorf("add: %w", err)
	}
	_, _ = fmt.Fprintln(w, "Contact added.")
	return nil
}

// ListCmd prints every contact in file order.
type ListCmd struct{}

// Run executes the list command.
func (l *ListCmd) Run() error {
	b, _, _, err := openBook()
	if err != nil {
		return fmt.Errorf("list: %w", err)
	}
	return l.run(os.Stdout, b)
}

// run lists contacts with the given book, enabling testable wiring.
func (l *ListCmd) run(w io.Writer, b contactBook) error {
	contacts, err := b.List()
	if err != nil {
		return fmt.Errorf("list: %w", err)
	}
	if len(contacts) == 0 {
		_, _ = fmt.Fprintln(w, "No contacts found.")
		return nil
	}
	_, _ = fmt.Fprint(w, contact.Table(contacts))
	return nil
}

// SearchCmd finds contacts whose name contains the term.
type SearchCmd struct {
	Term string `arg:"" optional:"" help:"Name substring to match; empty matches all."`
}

// Run executes the search command.
func (s *SearchCmd) Run() error {
	b, _, _, err := openBook()
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}
	return s.run(os.Stdout, b)
}

// run searches with the given book, enabling testable wiring.
func (s *SearchCmd) run(w io.Writer, b contactBook) error {
	found, err := b.Search(s.Term)
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}
	if len(found) == 0 {
		_, _ = fmt.Fprintln(w, "No matches.")
		return nil
	}
	for _, c := range found {
		_, _ = fmt.Fprintf(w, "Name: %s\nPhone: %s\nEmail: %s\n\n", c.Name, c.Phone, c.Email)
	}
	return nil
}

// UpdateCmd changes the phone and/or email of the first contact
// matching the name exactly (case-insensitive).
type UpdateCmd struct {
	Name  string `arg:"" help:"Exact contact name."`
	Phone string `help:"New phone; omit to keep the current value."`
	Email string `help:"New email; omit to keep the current value."`
}

// Run executes the update command.
func (u *UpdateCmd) Run() error {
	b, _, _, err := openBook()
	if err != nil {
		return fmt.Errorf("update: %w", err)
	}
	return u.run(os.Stdout, b)
}

// run updates with the given book, enabling testable wiring.
func (u *UpdateCmd) run(w io.Writer, b contactBook) error {
	updated, err := b.Update(u.Name, u.Phone, u.Email)
	if err != nil {
		return fmt.Errorf("update: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Contact updated.\nName: %s\nPhone: %s\nEmail: %s\n",
		updated.Name, updated.Phone, updated.Email)
	return nil
}

// DeleteCmd removes every contact matching the name exactly
// (case-insensitive).
type DeleteCmd struct {
	Name string `arg:"" help:"Exact contact name."`
}

// Run executes the delete command.
func (d *DeleteCmd) Run() error {
	b, _, _, err := openBook()
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	return d.run(os.Stdout, b)
}

// run deletes with the given book, enabling testable wiring.
func (d *DeleteCmd) run(w io.Writer, b contactBook) error {
	n, err := b.Delete(d.Name)
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Deleted %d contact(s).\n", n)
	return nil
}

// ExportCmd writes every contact to a JSON file.
type ExportCmd struct {
	Path string `arg:"" optional:"" help:"Target JSON file; defaults to the configured export path."`
}

// Run executes the export command.
func (e *ExportCmd) Run() error {
	b, _, cfg, err := openBook()
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if e.Path == "" {
		e.Path = cfg.Store.ExportPath
	}
	return e.run(os.Stdout, b)
}

// run exports with the given book, enabling testable wiring.
func (e *ExportCmd) run(w io.Writer, b contactBook) error {
	n, err := b.Export(e.Path)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if n == 0 {
		_, _ = fmt.Fprintln(w, "No contacts to export.")
		return nil
	}
	_, _ = fmt.Fprintf(w, "Exported %d contacts to %s.\n", n, e.Path)
	return nil
}

// ImportCmd replaces the whole store with the contents of a JSON file.
type ImportCmd struct {
	Path string `arg:"" optional:"" help:"Source JSON file; defaults to the configured export path."`
}

// Run executes the import command.
func (i *ImportCmd) Run() error {
	b, _, cfg, err := openBook()
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}
	if i.Path == "" {
		i.Path = cfg.Store.ExportPath
	}
	return i.run(os.Stdout, b)
}

// run imports with the given book, enabling testable wiring.
func (i *ImportCmd) run(w io.Writer, b contactBook) error {
	n, err := b.Import(i.Path)
	if err != nil {
		if errors.Is(err, interchange.ErrNotFound) {
			return fmt.Errorf("import: JSON file not found: %w", err)
		}
		return fmt.Errorf("import: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Imported %d contacts from %s.\n", n, i.Path)
	return nil
}

// InitCmd writes the embedded starter config into a project directory.
type InitCmd struct {
	Dir   string `help:"Directory to write the config into." default:".rolo"`
	Force bool   `help:"Overwrite an existing config file."`
}

// Run executes the init command.
func (i *InitCmd) Run() error {
	// Local template overrides beat the embedded copy.
	tmpl := rolo.OverlayFS(filepath.Join(i.Dir, "templates"), rolo.Templates)
	return i.run(os.Stdout, tmpl)
}

// run writes the starter config from tmpl, enabling testable wiring.
func (i *InitCmd) run(w io.Writer, tmpl fs.FS) error {
	data, err := fs.ReadFile(tmpl, "config.yaml")
	if err != nil {
		return fmt.Errorf("init: reading config template: %w", err)
	}

	target := filepath.Join(i.Dir, "config.yaml")
	if !i.Force {
		if _, err := os.Stat(target); err == nil {
			return fmt.Errorf("init: %s already exists (use --force to overwrite)", target)
		}
	}

	if err := os.MkdirAll(i.Dir, 0o755); err != nil {
		return fmt.Errorf("init: %w", err)
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return fmt.Errorf("init: %w", err)
	}

	_, _ = fmt.Fprintf(w, "Wrote %s\n", target)
	return nil
}

// Exit codes.
const (
	exitSuccess = 0
	exitUser    = 1
	exitSetup   = 2
)

// exitCode maps an error to the appropriate exit code. Misses and bad
// input exit 1; config and I/O failures exit 2.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	if errors.Is(err, book.ErrNotFound) ||
		errors.Is(err, contact.ErrBlankField) ||
		errors.Is(err, interchange.ErrNotFound) ||
		errors.Is(err, interchange.ErrBadFormat) {
		return exitUser
	}
	return exitSetup
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli, kong.Vars{"version": version + " " + commit + " " + date})
	err := ctx.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(exitCode(err))
	}
}
