// Package tui is the terminal front-end for a blackjack table.
package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/blackjack/internal/blackjack"
	"github.com/lox/blackjack/internal/table"
)

const (
	sidebarWidth = 24
	tablePaneH   = 9
)

// Model is the Bubble Tea model for a blackjack table
type Model struct {
	table  *table.Table
	logger *log.Logger
	clock  quartz.Clock

	// Opening cards are dealt one per interval
	interval   time.Duration
	nextDealAt time.Time

	keys        keyMap
	help        help.Model
	logViewport viewport.Model
	gameLog     []string
	notice      string
	settled     int

	width    int
	height   int
	quitting bool
}

// dealTickMsg asks the model to deal the next opening card of a round
type dealTickMsg struct {
	round int
}

// Option configures a Model
type Option func(*Model)

// WithClock sets the clock used to pace the opening deal
func WithClock(clock quartz.Clock) Option {
	return func(m *Model) {
		m.clock = clock
	}
}

// WithDealInterval sets the pause between opening cards. Zero deals at once.
func WithDealInterval(d time.Duration) Option {
	return func(m *Model) {
		m.interval = d
	}
}

// New creates a model for tbl
func New(tbl *table.Table, logger *log.Logger, opts ...Option) *Model {
	vp := viewport.New(10, 5)
	vp.SetContent("")

	m := &Model{
		table:       tbl,
		logger:      logger.WithPrefix("tui"),
		clock:       quartz.NewReal(),
		interval:    250 * time.Millisecond,
		keys:        defaultKeyMap(),
		help:        help.New(),
		logViewport: vp,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Init starts dealing the first round
func (m *Model) Init() tea.Cmd {
	return m.beginDeal()
}

// beginDeal schedules the opening of the current round
func (m *Model) beginDeal() tea.Cmd {
	if m.interval <= 0 {
		m.table.Open()
		return nil
	}
	m.nextDealAt = m.clock.Now().Add(m.interval)
	return m.tick(m.interval)
}

func (m *Model) tick(d time.Duration) tea.Cmd {
	round := m.table.Round()
	return tea.Tick(d, func(time.Time) tea.Msg {
		return dealTickMsg{round: round}
	})
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

	case dealTickMsg:
		if cmd := m.handleDealTick(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Hit):
			m.act("hit", m.table.Hit)
		case key.Matches(msg, m.keys.Stand):
			m.act("stand", m.table.Stand)
		case key.Matches(msg, m.keys.BetUp):
			m.act("bet up", m.table.RaiseBet)
		case key.Matches(msg, m.keys.BetDown):
			m.act("bet down", m.table.LowerBet)
		case key.Matches(msg, m.keys.Reset):
			m.table.Reset()
			m.notice = ""
			cmds = append(cmds, m.beginDeal())
		}
	}

	// The viewport scrolls the log on its own key bindings
	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// handleDealTick deals one opening card once the interval has passed on the
// model's clock. Ticks left over from an earlier round are dropped.
func (m *Model) handleDealTick(msg dealTickMsg) tea.Cmd {
	if msg.round != m.table.Round() || !m.table.Dealing() {
		return nil
	}

	now := m.clock.Now()
	if now.Before(m.nextDealAt) {
		return m.tick(m.nextDealAt.Sub(now))
	}

	if !m.table.Step() {
		return nil
	}
	m.nextDealAt = now.Add(m.interval)
	return m.tick(m.interval)
}

// act runs a table action and records its outcome
func (m *Model) act(name string, fn func() error) {
	if err := fn(); err != nil {
		m.logger.Debug("Action rejected", "action", name, "error", err)
		switch {
		case errors.Is(err, table.ErrNotYourTurn):
			m.notice = "Not your turn"
		case errors.Is(err, table.ErrRoundFinished):
			m.notice = "Round over, press r to deal again"
		case errors.Is(err, blackjack.ErrInvalidBet):
			m.notice = "Bet must stay between 1 and your balance"
		default:
			m.notice = err.Error()
		}
		return
	}
	m.notice = ""
	m.syncLog()
}

// syncLog appends any newly settled rounds to the log
func (m *Model) syncLog() {
	history := m.table.History()
	for _, r := range history[m.settled:] {
		m.AddLogEntry(formatResult(r))
	}
	m.settled = len(history)
}

func formatResult(r table.RoundResult) string {
	return fmt.Sprintf("Round %d: %s player %d dealer %d (%+d) balance $%d",
		r.Round, r.State, r.PlayerScore, r.DealerScore, r.Net, r.Balance)
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

	snap := m.table.Snapshot()

	header := HeaderStyle.Width(m.width).Render("Blackjack")

	mainWidth := max(m.width-sidebarWidth-4, 1)
	tablePane := activePaneStyle.
		Width(mainWidth).
		Height(tablePaneH).
		Render(m.renderTable(snap))
	sidebar := paneStyle.
		Width(sidebarWidth).
		Height(tablePaneH).
		Render(m.renderSidebar(snap))
	top := lipgloss.JoinHorizontal(lipgloss.Top, tablePane, sidebar)

	helpView := m.help.View(m.keys)

	logHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(top)-lipgloss.Height(helpView)-2, 1)
	m.logViewport.Width = max(m.width-2, 1)
	m.logViewport.Height = logHeight
	logPane := paneStyle.
		Width(m.logViewport.Width).
		Height(logHeight).
		Render(m.logViewport.View())

	return lipgloss.JoinVertical(lipgloss.Left, header, top, logPane, helpView)
}

func (m *Model) renderTable(snap table.Snapshot) string {
	var b strings.Builder

	dealerScore := fmt.Sprintf("%d", snap.DealerScore)
	if !snap.DealerRevealed && len(snap.Dealer) > 1 {
		dealerScore += "+?"
	}

	b.WriteString(LabelStyle.Render("Dealer "))
	b.WriteString(formatCards(snap.Dealer))
	b.WriteString(InfoStyle.Render("  " + dealerScore))
	b.WriteString("\n\n")

	b.WriteString(LabelStyle.Render("Player "))
	b.WriteString(formatCards(snap.Player))
	b.WriteString(InfoStyle.Render(fmt.Sprintf("  %d", snap.PlayerScore)))
	b.WriteString("\n\n")

	b.WriteString(statusStyle(snap.State).Render(snap.Status))

	return b.String()
}

func (m *Model) renderSidebar(snap table.Snapshot) string {
	var b strings.Builder

	b.WriteString(WarningStyle.Render(fmt.Sprintf("Bet: $%d", snap.Bet)))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Balance: $%d", snap.Balance))
	b.WriteString("\n")
	b.WriteString(InfoStyle.Render(fmt.Sprintf("Round %d", snap.Round)))
	b.WriteString("\n\n")

	if m.notice != "" {
		b.WriteString(ErrorStyle.Render(m.notice))
	}

	return b.String()
}

func statusStyle(state string) lipgloss.Style {
	switch state {
	case blackjack.Win.Name():
		return SuccessStyle
	case blackjack.Lose.Name(), blackjack.GameOver.Name():
		return ErrorStyle
	case blackjack.Push.Name():
		return WarningStyle
	}
	return InfoStyle
}

// formatCards formats cards with colors
func formatCards(cards []table.CardView) string {
	if len(cards) == 0 {
		return "[]"
	}

	formatted := make([]string, len(cards))
	for i, card := range cards {
		switch {
		case card.Hidden:
			formatted[i] = HiddenCardStyle.Render(card.Label)
		case card.Red:
			formatted[i] = RedCardStyle.Render(card.Label)
		default:
			formatted[i] = BlackCardStyle.Render(card.Label)
		}
	}

	return "[" + strings.Join(formatted, " ") + "]"
}
