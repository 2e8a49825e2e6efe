package ui

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/five82/tango/internal/cache"
	"github.com/five82/tango/internal/deck"
	"github.com/five82/tango/internal/prefs"
	"github.com/five82/tango/internal/presets"
	"github.com/five82/tango/internal/remote"
	"github.com/five82/tango/internal/vocab"
)

// pane identifies which half of the screen receives navigation keys.
type pane int

const (
	paneSidebar pane = iota
	paneCards
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	API       remote.API
	Library   *cache.Library
	Levels    []presets.Level
	Logger    *zap.Logger
	Prefs     prefs.Prefs
	PrefsPath string

	// Rand drives shuffles. Nil uses a time-seeded PCG source.
	Rand deck.Rand
	// Now and NewID default to time.Now and uuid.NewString.
	Now   func() time.Time
	NewID func() string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx       context.Context
	api       remote.API
	lib       *cache.Library
	levels    []presets.Level
	logger    *zap.Logger
	prefsPath string
	prefs     prefs.Prefs
	rng       deck.Rand
	now       func() time.Time
	newID     func() string

	keys   keyMap
	theme  Theme
	width  int
	height int
	ready  bool
	focus  pane

	// Sidebar
	folders      []vocab.Folder
	sidebarIndex int

	// Cards
	deck           deck.State
	openGen        int
	flipped        bool
	loading        bool
	levelFavorites map[string]map[string]bool

	// Search
	search    textinput.Model
	searching bool
	searchSeq int

	spinner  spinner.Model
	pending  int
	modal    Modal
	showHelp bool
	notice   notice

	changes []<-chan string
	cancels []func()
	startup tea.Cmd
}

// New creates a new Bubble Tea model and reopens the remembered source.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	rng := opts.Rand
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1))
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	newID := opts.NewID
	if newID == nil {
		newID = uuid.NewString
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "한국어 / 日本語"
	search.CharLimit = 64

	spin := spinner.New()
	spin.Spinner = spinner.MiniDot

	m := Model{
		ctx:            ctx,
		api:            opts.API,
		lib:            opts.Library,
		levels:         opts.Levels,
		logger:         logger,
		prefsPath:      prefsPath,
		prefs:          opts.Prefs,
		rng:            rng,
		now:            now,
		newID:          newID,
		keys:           DefaultKeyMap(),
		theme:          GetTheme(opts.Prefs.Theme),
		search:         search,
		spinner:        spin,
		levelFavorites: make(map[string]map[string]bool),
	}
	if m.lib != nil {
		m.folders = m.lib.Folders.Get(cache.FoldersKey).Value
		for _, sub := range []func() (<-chan string, func()){m.lib.Folders.Subscribe, m.lib.Words.Subscribe} {
			ch, cancel := sub()
			m.changes = append(m.changes, ch)
			m.cancels = append(m.cancels, cancel)
		}
	}

	m.deck = deck.Reduce(m.deck, deck.SetQuery{FavoritesOnly: opts.Prefs.FavoritesOnly})
	switch {
	case opts.Prefs.LastLevel != "":
		m, m.startup = m.openSource(deck.LevelSource(opts.Prefs.LastLevel))
	case opts.Prefs.LastFolder != "":
		m, m.startup = m.openSource(deck.FolderSource(opts.Prefs.LastFolder))
	}
	if m.deck.Phase() == deck.PhaseLoaded {
		m.focus = paneCards
		m.sidebarIndex = m.entryIndex(m.deck.Source)
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.EnterAltScreen, m.spinner.Tick, m.startup}
	if m.lib != nil {
		cmds = append(cmds, m.loadFoldersCmd())
	}
	for _, ch := range m.changes {
		cmds = append(cmds, waitForChange(ch))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.search.Width = maxInt(10, m.cardPaneWidth()-8)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case cacheChangedMsg:
		m = m.applyCacheChange(msg.key)
		return m, waitForChange(msg.ch)

	case foldersLoadedMsg:
		if msg.err != nil {
			m.logger.Warn("load folders failed", zap.Error(msg.err))
			m.notice = errorNotice("Could not load folders", msg.err)
		}
		m = m.setFolders(msg.folders)
		return m, nil

	case wordsLoadedMsg:
		return m.wordsLoaded(msg), nil

	case favoriteDoneMsg:
		return m.favoriteDone(msg)

	case wordAddedMsg:
		return m.wordAdded(msg)

	case wordDeletedMsg:
		return m.wordDeleted(msg), nil

	case folderCreatedMsg:
		return m.folderCreated(msg)

	case folderDeletedMsg:
		return m.folderDeleted(msg), nil

	case searchTickMsg:
		if msg.seq != m.searchSeq {
			return m, nil
		}
		return m.applySearch(), nil

	case shuffleConfirmedMsg:
		return m.shuffle(), nil

	case deleteWordConfirmedMsg:
		m.pending++
		return m, m.deleteWordCmd(msg.folder, msg.word.ID)

	case deleteFolderConfirmedMsg:
		m.pending++
		return m, m.deleteFolderCmd(msg.name)

	case createFolderRequestMsg:
		m.pending++
		return m, m.createFolderCmd(msg.name)

	case addWordRequestMsg:
		return m.addWord(msg)

	case translateRequestMsg:
		return m, m.translateCmd(msg)

	case translatedMsg:
		if m.modal == nil {
			return m, nil
		}
		var cmd tea.Cmd
		m.modal, cmd, _ = m.modal.Update(msg, m.keys)
		return m, cmd
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}
	return m.renderMain()
}

// busy reports whether a request the user is waiting on is in flight.
func (m Model) busy() bool {
	return m.loading || m.deck.IsUpdating || m.pending > 0
}

func (m *Model) done() {
	if m.pending > 0 {
		m.pending--
	}
}

func (m Model) savePrefs() Model {
	p := prefs.Prefs{Theme: m.theme.Name, FavoritesOnly: m.deck.FavoritesOnly}
	switch m.deck.Source.Kind {
	case deck.SourceLevel:
		p.LastLevel = m.deck.Source.Name
	case deck.SourceFolder:
		p.LastFolder = m.deck.Source.Name
	}
	if p == m.prefs {
		return m
	}
	m.prefs = p
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.logger.Warn("save prefs failed", zap.String("path", m.prefsPath), zap.Error(err))
	}
	return m
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m = m.savePrefs()
	for _, cancel := range m.cancels {
		cancel()
	}
	return m, tea.Quit
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if err != nil && m.ctx.Err() != nil {
		// Interrupted by signal; the terminal has been restored.
		return nil
	}
	return err
}
