package tui

import (
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/crateview/internal/config"
	"github.com/studiowebux/crateview/internal/engine"
	"github.com/studiowebux/crateview/internal/fetch"
	"github.com/studiowebux/crateview/internal/history"
	"github.com/studiowebux/crateview/internal/keybinds"
	"github.com/studiowebux/crateview/internal/logging"
	"github.com/studiowebux/crateview/internal/version"
)

// Options wires the TUI to its collaborators
type Options struct {
	Config config.Config
	Keys   *keybinds.Registry // nil uses the default bindings
	Source fetch.Source

	History *history.Manager // nil disables history
	Updates version.Source   // nil skips the update check
	Version string

	Query string // initial search

	// FetchOptions are passed to the fetch coordinator
	FetchOptions []fetch.Option
}

// New creates a new TUI model
func New(opts Options) (Model, error) {
	if opts.Source == nil {
		return Model{}, errors.New("no registry source")
	}

	cfg := opts.Config
	keys := opts.Keys
	if keys == nil {
		keys = keybinds.NewDefaultRegistry()
	}

	tickRate := cfg.TickRate
	if tickRate <= 0 {
		tickRate = config.Default().TickRate
	}

	state, startup := engine.New(engine.Options{
		PageSize: cfg.PageSize,
		Query:    opts.Query,
		Templates: engine.Templates{
			CopyCommand: cfg.Templates.CopyCommand,
			DocsURL:     cfg.Templates.DocsURL,
			RegistryURL: cfg.Templates.RegistryURL,
		},
		HelpLines: helpLineCounts(keys),
	})

	input := textinput.New()
	input.Prompt = ""
	input.CharLimit = 256
	input.Cursor.SetMode(cursor.CursorStatic)

	m := Model{
		state:        state,
		startup:      startup,
		keys:         keys,
		resolver:     keybinds.NewResolver(keys, cfg.ChordTimeout),
		fetcher:      fetch.New(opts.Source, opts.FetchOptions...),
		history:      opts.History,
		updates:      opts.Updates,
		version:      opts.Version,
		input:        input,
		popupView:    viewport.New(80, 20),
		helpView:     viewport.New(80, 20),
		tickInterval: time.Duration(float64(time.Second) / tickRate),
		now:          time.Now,
		logger:       logging.WithPrefix("tui"),
	}

	return m, nil
}

// Run starts the TUI and blocks until it quits
func Run(opts Options) error {
	m, err := New(opts)
	if err != nil {
		return err
	}
	defer m.Cleanup()

	// pass pointer since Update uses pointer receiver
	p := tea.NewProgram(&m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
