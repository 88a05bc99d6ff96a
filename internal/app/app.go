// Package app contains the root application model.
package app

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/venom/internal/config"
	"github.com/zjrosen/venom/internal/keys"
	"github.com/zjrosen/venom/internal/log"
	"github.com/zjrosen/venom/internal/pubsub"
	"github.com/zjrosen/venom/internal/session"
	"github.com/zjrosen/venom/internal/storage"
	"github.com/zjrosen/venom/internal/store"
	"github.com/zjrosen/venom/internal/ui/markdown"
	"github.com/zjrosen/venom/internal/ui/toaster"
	"github.com/zjrosen/venom/internal/view"
	"github.com/zjrosen/venom/internal/watcher"
)

// Options wires the model to its collaborators.
type Options struct {
	Session *session.Session
	// Backend reloads the document after external changes. Optional.
	Backend storage.Backend
	// Watcher reports external changes to the save file. Optional; the
	// model owns it and stops it in Close.
	Watcher *watcher.Watcher
	// ConfigPath receives the last completion policy. Empty disables it.
	ConfigPath    string
	ShowSummary   bool
	MarkdownStyle string
}

// Model is the root application state.
type Model struct {
	sess    *session.Session
	backend storage.Backend

	configPath  string
	showSummary bool
	notes       *markdown.Renderer

	width  int
	height int

	toaster toaster.Model
	help    help.Model

	watcher  *watcher.Watcher
	listener *pubsub.Listener[string]
	ctx      context.Context
	cancel   context.CancelFunc

	// lastPolicy is the policy seen after the previous command. A change is
	// written to the config file.
	lastPolicy view.Policy
}

// New builds the model.
func New(opts Options) Model {
	ctx, cancel := context.WithCancel(context.Background())

	style := opts.MarkdownStyle
	if style == "" {
		style = "dark"
	}

	m := Model{
		sess:        opts.Session,
		backend:     opts.Backend,
		configPath:  opts.ConfigPath,
		showSummary: opts.ShowSummary,
		notes:       markdown.New(style),
		toaster:     toaster.New(),
		help:        help.New(),
		watcher:     opts.Watcher,
		ctx:         ctx,
		cancel:      cancel,
		lastPolicy:  opts.Session.View().Policy(),
	}
	if opts.Watcher != nil {
		m.listener = pubsub.NewListener(ctx, opts.Watcher.Broker())
	}
	return m
}

// Session returns the wrapped edit session.
func (m Model) Session() *session.Session {
	return m.sess
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.listener != nil {
		return m.listener.Listen()
	}
	return nil
}

// reloadedMsg carries a document read after an external change.
type reloadedMsg struct {
	doc store.Document
	err error
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.sess.State() == session.MainView && key.Matches(msg, keys.Main.Help) {
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
		cmd, ok := commandFor(m.sess.Snapshot(), msg)
		if !ok {
			return m, nil
		}
		return m.apply(cmd)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case pubsub.Event[string]:
		return m.handleWatcher(msg)

	case reloadedMsg:
		return m.handleReloaded(msg)

	case toaster.DismissMsg:
		m.toaster = m.toaster.Update(msg)
		return m, nil
	}
	return m, nil
}

func (m Model) apply(cmd session.Command) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	if err := m.sess.Apply(m.ctx, cmd); err != nil {
		var toast tea.Cmd
		m.toaster, toast = m.toaster.Show(err.Error(), toaster.StyleError, toaster.DefaultDuration)
		cmds = append(cmds, toast)
	} else if cmd.Kind == session.CopySelectedTitle {
		var toast tea.Cmd
		m.toaster, toast = m.toaster.Show("Copied title", toaster.StyleSuccess, toaster.DefaultDuration)
		cmds = append(cmds, toast)
	}

	if p := m.sess.View().Policy(); p != m.lastPolicy {
		m.lastPolicy = p
		m.savePolicy(p)
	}

	if m.sess.Quitting() {
		cmds = append(cmds, tea.Quit)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) savePolicy(p view.Policy) {
	if m.configPath == "" {
		return
	}
	if err := config.SaveViewState(m.configPath, p); err != nil {
		log.ErrorErr(log.CatConfig, "saving view policy", err, "path", m.configPath)
	}
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if m.sess.State() != session.MainView {
		return m, nil
	}
	for i := range m.sess.View().Len() {
		if z := zone.Get(rowZoneID(i)); z != nil && z.InBounds(msg) {
			m.sess.Select(i)
			break
		}
	}
	return m, nil
}

func (m Model) handleWatcher(ev pubsub.Event[string]) (tea.Model, tea.Cmd) {
	var next tea.Cmd
	if m.listener != nil {
		next = m.listener.Listen()
	}
	switch ev.Type {
	case pubsub.ChangedEvent:
		if m.backend == nil {
			return m, next
		}
		log.Debug(log.CatWatcher, "save file changed", "path", ev.Payload)
		return m, tea.Batch(m.loadCmd(), next)
	case pubsub.ErrorEvent:
		log.Warn(log.CatWatcher, "watcher error", "error", ev.Payload)
	}
	return m, next
}

func (m Model) loadCmd() tea.Cmd {
	backend, ctx := m.backend, m.ctx
	return func() tea.Msg {
		doc, err := backend.Load(ctx)
		return reloadedMsg{doc: doc, err: err}
	}
}

// handleReloaded swaps in a document read from disk. Our own saves come
// back through the watcher too; those match the current document and are
// skipped. A file that fails to load leaves the current store in place.
func (m Model) handleReloaded(msg reloadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		log.ErrorErr(log.CatStorage, "reloading tasks, keeping current list", msg.err)
		var cmd tea.Cmd
		m.toaster, cmd = m.toaster.Show("Save file unreadable, keeping current tasks", toaster.StyleError, toaster.DefaultDuration)
		return m, cmd
	}
	if storage.SameDocument(msg.doc, m.sess.Store().Document()) {
		return m, nil
	}
	if !m.sess.Reload(store.FromDocument(msg.doc)) {
		log.Debug(log.CatWatcher, "reload skipped while editing")
		return m, nil
	}
	var cmd tea.Cmd
	m.toaster, cmd = m.toaster.Show("Reloaded tasks from disk", toaster.StyleInfo, toaster.DefaultDuration)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	snap := m.sess.Snapshot()

	out := m.renderMain(snap)
	if snap.State != session.MainView {
		out = m.renderEditorOverlay(snap, out)
	}
	out = m.toaster.Overlay(out, m.width, m.height)
	return zone.Scan(out)
}

// Close stops the watcher and cancels pending reloads.
func (m *Model) Close() error {
	m.cancel()
	if m.watcher != nil {
		return m.watcher.Stop()
	}
	return nil
}
