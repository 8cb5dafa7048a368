package tui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/sanity-io/litter"

	"github.com/lox/blackjack/internal/blackjack"
	"github.com/lox/blackjack/internal/statistics"
)

// Table is the engine surface the view drives. *blackjack.Engine
// implements it.
type Table interface {
	StartGame() error
	Hit() error
	Stand() (<-chan blackjack.Result, error)
	Exec(cmd blackjack.Command) error
	Snapshot() blackjack.Snapshot
	Subscribe(subscriber blackjack.EventSubscriber)
	Unsubscribe(subscriber blackjack.EventSubscriber)
}

// Options configures the table view
type Options struct {
	Logger      *log.Logger
	HideHistory bool
	// Dev opens the developer panel on start.
	Dev bool
}

// standDoneMsg is delivered when a Stand completion channel fires
type standDoneMsg struct {
	result blackjack.Result
	ok     bool
}

// scoreboardLength caps how many outcome codes the scoreboard shows
const scoreboardLength = 24

var dumper = litter.Options{
	HidePrivateFields: true,
	HideZeroValues:    true,
	StripPackageNames: true,
}

// Model is the Bubble Tea model for the blackjack table
type Model struct {
	table  Table
	bridge *Bridge
	logger *log.Logger

	keys        keyMap
	help        help.Model
	logViewport viewport.Model

	snap    blackjack.Snapshot
	stats   *statistics.Statistics
	gameLog []string
	notice  string

	showDev     bool
	hideHistory bool
	quitting    bool

	width  int
	height int
}

// NewModel creates a table view subscribed to the engine's events
func NewModel(table Table, opts Options) *Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	vp := viewport.New(10, 5)
	vp.SetContent("")

	m := &Model{
		table:       table,
		bridge:      NewBridge(logger, 256),
		logger:      logger.WithPrefix("tui"),
		keys:        defaultKeyMap(),
		help:        help.New(),
		logViewport: vp,
		stats:       &statistics.Statistics{},
		showDev:     opts.Dev,
		hideHistory: opts.HideHistory,
	}
	table.Subscribe(m.bridge)
	m.refresh()
	return m
}

// Close unsubscribes from the engine and stops event delivery
func (m *Model) Close() {
	m.table.Unsubscribe(m.bridge)
	m.bridge.Close()
}

// Init initializes the TUI model
func (m *Model) Init() tea.Cmd {
	return m.bridge.Wait()
}

// Update handles messages in the TUI
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.logger.Debug("Updating dimensions", "width", m.width, "height", m.height)

	case eventMsg:
		m.handleEvent(msg.event)
		m.refresh()
		cmds = append(cmds, m.bridge.Wait())

	case standDoneMsg:
		if !msg.ok {
			m.logger.Debug("Round ended without a result")
		} else {
			m.logger.Debug("Stand completed", "result", msg.result.String())
		}
		m.refresh()

	case tea.KeyMsg:
		if cmd := m.handleKey(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
		if m.quitting {
			return m, tea.Batch(cmds...)
		}
	}

	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Dev):
		m.showDev = !m.showDev
	case key.Matches(msg, m.keys.Deal):
		m.act("deal", m.table.StartGame())
	case key.Matches(msg, m.keys.Hit):
		m.act("hit", m.table.Hit())
	case key.Matches(msg, m.keys.Stand):
		done, err := m.table.Stand()
		m.act("stand", err)
		if err == nil {
			return waitForStand(done)
		}
	case key.Matches(msg, m.keys.ScrollUp), key.Matches(msg, m.keys.ScrollDown):
		// the log viewport scrolls itself
	case m.showDev:
		return m.handleDevKey(msg)
	}
	return nil
}

// handleDevKey runs developer commands, only reachable with the panel open
func (m *Model) handleDevKey(msg tea.KeyMsg) tea.Cmd {
	var cmd blackjack.Command
	switch {
	case key.Matches(msg, m.keys.ForceEnd):
		cmd = blackjack.ForceEndRound{}
	case key.Matches(msg, m.keys.DealPlayer):
		cmd = blackjack.DealOne{Role: blackjack.Player}
	case key.Matches(msg, m.keys.DealDealer):
		cmd = blackjack.DealOne{Role: blackjack.Dealer}
	case key.Matches(msg, m.keys.DealNow):
		cmd = blackjack.DealOpening{}
	default:
		return nil
	}
	m.act(cmd.Name(), m.table.Exec(cmd))
	return nil
}

func waitForStand(done <-chan blackjack.Result) tea.Cmd {
	return func() tea.Msg {
		r, ok := <-done
		return standDoneMsg{result: r, ok: ok}
	}
}

// act records the outcome of a player or developer action
func (m *Model) act(action string, err error) {
	switch {
	case err == nil:
		m.notice = ""
	case errors.Is(err, blackjack.ErrIllegalAction):
		m.notice = WarningStyle.Render(fmt.Sprintf("Can't %s right now", action))
		m.logger.Debug("Rejected action", "action", action, "error", err)
	default:
		m.notice = ErrorStyle.Render(err.Error())
		m.logger.Error("Action failed", "action", action, "error", err)
	}
	m.refresh()
}

func (m *Model) handleEvent(event blackjack.GameEvent) {
	switch ev := event.(type) {
	case blackjack.RoundSettledEvent:
		m.stats.Add(ev.Result)
	case blackjack.RoundFailedEvent:
		m.stats.Aborted++
	case blackjack.PhaseChangeEvent:
		if ev.To == blackjack.RoundOver && ev.Message == blackjack.MsgForceEnded {
			m.stats.Aborted++
			m.AddLogEntry(InfoStyle.Render(ev.Message))
		}
	}

	if line, ok := describeEvent(event); ok {
		m.AddLogEntry(line)
	}
}

func (m *Model) refresh() {
	m.snap = m.table.Snapshot()
}

// AddLogEntry adds an entry to the game log and scrolls to it
func (m *Model) AddLogEntry(entry string) {
	m.gameLog = append(m.gameLog, entry)
	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))

	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	left := lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		TableStyle.Render(m.renderTable()),
		m.renderScoreboard(),
	)

	logWidth := m.width - lipgloss.Width(left) - 2
	logHeight := lipgloss.Height(left) - 2
	if logWidth < 1 {
		logWidth = 1
	}
	if logHeight < 1 {
		logHeight = 1
	}
	m.logViewport.Width = logWidth
	m.logViewport.Height = logHeight
	logPane := PaneStyle.Width(logWidth).Height(logHeight).Render(m.logViewport.View())

	sections := []string{lipgloss.JoinHorizontal(lipgloss.Top, left, logPane)}
	if m.showDev {
		sections = append(sections, DevPanelStyle.Width(m.width-2).Render(m.renderDevPanel()))
	}
	if m.notice != "" {
		sections = append(sections, m.notice)
	}
	sections = append(sections, m.help.View(m.keys))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderHeader() string {
	info := fmt.Sprintf("  round %d · %d cards in shoe", m.snap.Round, m.snap.ShoeRemaining)
	return HeaderStyle.Render(blackjack.MsgWelcome) + InfoStyle.Render(info)
}

func (m *Model) renderTable() string {
	var b strings.Builder

	b.WriteString("Dealer  ")
	b.WriteString(m.renderDealer())
	b.WriteString("\n\n")
	b.WriteString("Player  ")
	b.WriteString(renderHand(m.snap.Player))
	b.WriteString("\n\n")
	b.WriteString(MessageStyle.Render(m.snap.Message))
	b.WriteString("\n")
	b.WriteString(m.renderActions())

	return b.String()
}

func (m *Model) renderDealer() string {
	dealer := m.snap.Dealer
	if !m.snap.HoleCardHidden || len(dealer.Cards) < 2 {
		return renderHand(dealer)
	}
	shown := formatCards(dealer.Cards[1:])
	return "[" + HoleCardStyle.Render("▒▒") + " " + strings.TrimPrefix(shown, "[") + " (?)"
}

func renderHand(h blackjack.HandView) string {
	if len(h.Cards) == 0 {
		return InfoStyle.Render("—")
	}

	s := fmt.Sprintf("%s (%d)", formatCards(h.Cards), h.Value)
	switch {
	case h.Blackjack:
		s += " " + SuccessStyle.Render("BLACKJACK")
	case h.Busted:
		s += " " + ErrorStyle.Render("BUST")
	case h.Soft:
		s += InfoStyle.Render(" soft")
	}
	return s
}

func (m *Model) renderActions() string {
	if !m.snap.ActionsHidden {
		return ActionsStyle.Render("[h] hit  [s] stand")
	}
	if !m.snap.Phase.InProgress() {
		return ActionsStyle.Render("[d] deal")
	}
	return InfoStyle.Render("…")
}

func (m *Model) renderScoreboard() string {
	if m.hideHistory {
		return ""
	}

	history := m.snap.History
	if len(history) > scoreboardLength {
		history = history[len(history)-scoreboardLength:]
	}
	codes := make([]string, 0, len(history))
	for _, o := range history {
		codes = append(codes, outcomeStyle(o).Render(o.Code()))
	}

	s := m.stats
	summary := fmt.Sprintf("W %d  L %d  push %d  win %.0f%%  mean %+.2f ±%.2f",
		s.PlayerWins, s.DealerWins, s.Pushes, s.WinRate()*100, s.Mean(), s.StdError())

	return lipgloss.JoinVertical(lipgloss.Left,
		"History "+strings.Join(codes, " "),
		InfoStyle.Render(summary),
	)
}

func outcomeStyle(o blackjack.Outcome) lipgloss.Style {
	switch o {
	case blackjack.BlackjackWin:
		return WarningStyle
	case blackjack.PlayerWin:
		return SuccessStyle
	default:
		return ErrorStyle
	}
}

func (m *Model) renderDevPanel() string {
	return HandInfoStyle.Render("DEVELOPER") + "  " +
		InfoStyle.Render("[x] end round  [p] card to player  [o] card to dealer  [n] deal now") + "\n" +
		dumper.Sdump(m.snap)
}

// Run starts the interactive table and blocks until the player quits
func Run(table Table, opts Options) error {
	m := NewModel(table, opts)
	defer m.Close()

	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
