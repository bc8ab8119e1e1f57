package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/scout/internal/scanner"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	ConfirmView ViewState = iota
	ScanView
	ResultView
)

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	view         ViewState
	engine       *scanner.Engine
	opts         scanner.ScanOpts
	width        int
	height       int
	resultList   list.Model
	progressChan chan scanner.ProgressUpdate
	progress     scanner.ProgressUpdate
	result       *scanner.ScanResult
	err          error
	help         help.Model
	keys         keyMap
}

type progressUpdateMsg scanner.ProgressUpdate

type scanCompleteMsg struct {
	result *scanner.ScanResult
	err    error
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, engine *scanner.Engine, opts scanner.ScanOpts) *Model {
	return &Model{
		ctx:    ctx,
		view:   ConfirmView,
		engine: engine,
		opts:   opts,
		help:   help.New(),
		keys:   newKeyMap(),
	}
}

// Init implements tea.Model; the scan waits for confirmation.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.resultList.Width() == 0 {
			m.resultList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case ConfirmView:
			return m.handleConfirmKeys(msg)
		case ResultView:
			return m.handleResultKeys(msg)
		case ScanView:
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			return m, nil
		}

	case progressUpdateMsg:
		m.progress = scanner.ProgressUpdate(msg)
		return m, m.waitForProgress()

	case scanCompleteMsg:
		m.result = msg.result
		m.err = msg.err
		m.view = ResultView
		if m.progressChan != nil {
			m.progressChan = nil
		}
		if m.result != nil {
			items := make([]list.Item, 0, len(m.result.Flagged)+len(m.result.HighScoring))
			for _, f := range m.result.Flagged {
				items = append(items, flaggedItem{flagged: f})
			}
			for _, h := range m.result.HighScoring {
				items = append(items, highScoringItem{team: h})
			}
			m.resultList = list.New(items, list.NewDefaultDelegate(), 0, 0)
			m.resultList.Title = "Flagged Fixtures"
			m.resultList.SetSize(m.width-4, m.height-8)
		}
		return m, nil
	}

	if m.view == ResultView {
		var cmd tea.Cmd
		m.resultList, cmd = m.resultList.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil && m.view != ResultView {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case ConfirmView:
		return m.renderConfirm()
	case ScanView:
		return m.renderScan()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "n":
		return m, tea.Quit
	case "y", "enter":
		m.view = ScanView
		return m, m.startScan()
	}
	return m, nil
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "r":
		m.view = ConfirmView
		m.result = nil
		m.err = nil
		return m, nil
	}

	var cmd tea.Cmd
	m.resultList, cmd = m.resultList.Update(msg)
	return m, cmd
}

func (m *Model) startScan() tea.Cmd {
	m.progressChan = make(chan scanner.ProgressUpdate, 50)
	progressChan := m.progressChan

	go func() {
		result, err := m.engine.Scan(m.ctx, progressChan, m.opts)
		m.result = result
		m.err = err
		close(progressChan)
	}()

	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	return func() tea.Msg {
		if m.progressChan == nil {
			return scanCompleteMsg{result: m.result, err: m.err}
		}

		update, ok := <-m.progressChan
		if !ok {
			return scanCompleteMsg{result: m.result, err: m.err}
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) renderConfirm() string {
	title := styles.title.Render("Scan upcoming fixtures for form streaks?")
	format := m.opts.Format
	if format == "" {
		format = "LEAGUE + CUP"
	}
	info := fmt.Sprintf(
		"\nArea: %d\nFormat: %s\nOdds band: [%.2f, %.2f]\nWin window: %d · Goals window: %d (≥%d goals)\n",
		m.opts.AreaID, format, m.opts.Band.Low, m.opts.Band.High,
		m.opts.WinWindow, m.opts.GoalsWindow, m.opts.GoalsThreshold,
	)

	helpKeys := []key.Binding{m.keys.yes, m.keys.no, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n%s", title, info, helpView)
}

func (m *Model) renderScan() string {
	title := styles.title.Render("Scanning Fixtures")

	var phase string
	switch m.progress.Phase {
	case scanner.FetchCatalog:
		phase = "Fetching competition catalog..."
	case scanner.ScanCompetition, scanner.CheckFixtures:
		phase = fmt.Sprintf("Scanning competitions (%d/%d)", m.progress.Step, m.progress.Total)
	case scanner.FlagResult:
		phase = "Evaluating streaks..."
	default:
		phase = "Processing..."
	}

	return fmt.Sprintf("%s\n\n%s\n%s", title, phase, m.progress.Message)
}

func (m *Model) renderResult() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Scan failed: %v\n\nPress r to retry, q to quit", m.err))
	}

	if m.result == nil {
		return styles.err.Render("No result available\n\nPress r to retry, q to quit")
	}

	title := styles.ok.Render(fmt.Sprintf("✓ Scan complete: %d flagged, %d high-scoring", len(m.result.Flagged), len(m.result.HighScoring)))

	var failures string
	if len(m.result.Errors) > 0 {
		failures = "\n" + styles.warn.Render(fmt.Sprintf("%d fetches failed (results may be partial)", len(m.result.Errors)))
	}

	helpKeys := []key.Binding{m.keys.restart, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s%s\n\n%s\n\n%s", title, failures, m.resultList.View(), helpView)
}
