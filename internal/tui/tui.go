// Package tui is a Bubble Tea front-end for interactive blackjack. The
// round engine runs on its own goroutine and talks to the model through
// an Agent, so every model mutation happens inside Update.
package tui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/blackjack-cli/internal/deck"
	"github.com/lox/blackjack-cli/internal/game"
)

// promptKind identifies what input the engine is waiting on.
type promptKind int

const (
	promptNone promptKind = iota
	promptBet
	promptAction
)

// Messages delivered into the Bubble Tea loop from the engine goroutine.
type (
	// logMsg appends a line to the game log.
	logMsg struct{ line string }

	// statusMsg refreshes the sidebar.
	statusMsg struct {
		balance float64
		wins    int
		losses  int
		pushes  int
	}

	// promptBetMsg asks the player for the next stake.
	promptBetMsg struct{}

	// promptActionMsg asks the player to hit or stand.
	promptActionMsg struct {
		hand   string
		score  int
		upcard string
	}
)

// QuitMsg is a custom message to signal quit
type QuitMsg struct{}

// Model represents the Bubble Tea model for a blackjack session
type Model struct {
	logger *log.Logger

	// UI components
	logViewport viewport.Model
	input       textinput.Model

	// State
	gameLog  []string
	prompt   promptKind
	handLine string // Shown in the action pane while a hit/stand prompt is live

	// Sidebar state
	playerName string
	balance    float64
	wins       int
	losses     int
	pushes     int

	// Replies back to the engine goroutine
	bets       chan float64
	actions    chan game.Action
	quitSignal chan bool
	quitting   bool

	focusedPane int // 0 = log, 1 = input

	// Dimensions
	width       int
	height      int
	initialized bool

	// Test mode
	testMode    bool
	capturedLog []string
}

// NewModel creates a new TUI model
func NewModel(logger *log.Logger, playerName string, balance float64) *Model {
	return NewModelWithOptions(logger, playerName, balance, false)
}

// NewModelWithOptions creates a new TUI model with test mode option
func NewModelWithOptions(logger *log.Logger, playerName string, balance float64, testMode bool) *Model {
	// Sized properly when the first WindowSizeMsg arrives
	vp := viewport.New(10, 5)
	vp.SetContent("")

	ti := textinput.New()
	ti.Placeholder = "Waiting for the table..."
	ti.Focus()
	ti.CharLimit = 32
	ti.Width = 40
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA"))
	ti.Prompt = "> "

	return &Model{
		logger:      logger.WithPrefix("tui"),
		logViewport: vp,
		input:       ti,
		gameLog:     []string{},
		playerName:  playerName,
		balance:     balance,
		bets:        make(chan float64, 1),
		actions:     make(chan game.Action, 1),
		quitSignal:  make(chan bool, 1),
		focusedPane: 1, // Start with input focused
		testMode:    testMode,
		capturedLog: []string{},
	}
}

// Init initializes the TUI model
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.listenForQuit())
}

// listenForQuit returns a command that listens for quit signals
func (m *Model) listenForQuit() tea.Cmd {
	return func() tea.Msg {
		<-m.quitSignal
		return QuitMsg{}
	}
}

// Update handles messages in the TUI
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if m.applyEngineMsg(msg) {
		return m, nil
	}

	switch msg := msg.(type) {
	case QuitMsg:
		m.quitting = true
		return m, tea.Sequence(tea.ClearScreen, tea.Quit)

	case tea.WindowSizeMsg:
		m.logger.Debug("Updating dimensions", "width", msg.Width, "height", msg.Height)
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			m.releaseEngine()
			return m, tea.Sequence(tea.ClearScreen, tea.Quit)
		case "tab":
			// Switch focus between log and input
			if m.focusedPane == 0 {
				m.focusedPane = 1
				m.input.Focus()
			} else {
				m.focusedPane = 0
				m.input.Blur()
			}
		case "enter":
			if m.focusedPane == 1 {
				m.processInput(m.input.Value())
				m.input.SetValue("")
			}
		case "up", "k":
			if m.focusedPane == 0 {
				m.logViewport.ScrollUp(1)
			}
		case "down", "j":
			if m.focusedPane == 0 {
				m.logViewport.ScrollDown(1)
			}
		case "pgup", "b":
			if m.focusedPane == 0 {
				m.logViewport.HalfPageUp()
			}
		case "pgdown", "f":
			if m.focusedPane == 0 {
				m.logViewport.HalfPageDown()
			}
		case "home", "g":
			if m.focusedPane == 0 {
				m.logViewport.GotoTop()
			}
		case "end", "G":
			if m.focusedPane == 0 {
				m.logViewport.GotoBottom()
			}
		}
	}

	// Update components
	var cmd tea.Cmd

	// Only update input if it's focused
	if m.focusedPane == 1 {
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	// Always update viewport (for scrolling)
	m.logViewport, cmd = m.logViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// applyEngineMsg handles messages sent by the engine goroutine. Tests
// call it directly to drive the model without a running program.
func (m *Model) applyEngineMsg(msg tea.Msg) bool {
	switch msg := msg.(type) {
	case logMsg:
		m.addLog(msg.line)
	case statusMsg:
		m.balance = msg.balance
		m.wins = msg.wins
		m.losses = msg.losses
		m.pushes = msg.pushes
	case promptBetMsg:
		m.prompt = promptBet
		m.handLine = ""
		m.input.Placeholder = "Bet amount (0 to quit)"
	case promptActionMsg:
		m.prompt = promptAction
		m.handLine = fmt.Sprintf("Your hand: %s (%d) against dealer %s", msg.hand, msg.score, msg.upcard)
		m.input.Placeholder = "(h)it or (s)tand"
	default:
		return false
	}
	return true
}

// processInput routes submitted text to whichever prompt is live.
func (m *Model) processInput(raw string) {
	input := strings.TrimSpace(raw)
	switch m.prompt {
	case promptBet:
		m.submitBet(input)
	case promptAction:
		m.submitAction(input)
	}
}

func (m *Model) submitBet(input string) {
	if input == "" {
		return
	}
	if strings.EqualFold(input, "q") || strings.EqualFold(input, "quit") {
		m.deliverBet(0)
		return
	}
	amount, err := strconv.ParseFloat(input, 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		m.addLog(ErrorStyle.Render("Enter a positive amount, or 0 to quit."))
		return
	}
	m.deliverBet(amount)
}

func (m *Model) submitAction(input string) {
	switch strings.ToLower(input) {
	case "h", "hit":
		m.deliverAction(game.Hit)
	case "s", "stand":
		m.deliverAction(game.Stand)
	default:
		m.addLog(ErrorStyle.Render(`Please answer "h" or "s".`))
	}
}

func (m *Model) deliverBet(amount float64) {
	m.prompt = promptNone
	select {
	case m.bets <- amount:
	default:
	}
}

func (m *Model) deliverAction(action game.Action) {
	m.prompt = promptNone
	m.handLine = ""
	select {
	case m.actions <- action:
	default:
	}
}

// releaseEngine unblocks an engine goroutine waiting on either channel so
// it can wind down after the player quits mid-prompt.
func (m *Model) releaseEngine() {
	select {
	case m.actions <- game.Stand:
	default:
	}
	select {
	case m.bets <- 0:
	default:
	}
}

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	// Don't render until we have valid dimensions
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	// Action pane (bottom, full width)
	actionContent := m.renderActionPane()
	actionHeight := lipgloss.Height(actionContent)
	calculatedActionWidth := m.width - 2       // Full width minus border
	calculatedActionHeight := actionHeight - 2 // Content height minus border

	if calculatedActionWidth < 1 {
		calculatedActionWidth = 1
	}
	if calculatedActionHeight < 1 {
		calculatedActionHeight = 1
	}

	actionStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#04B575")).
		Width(calculatedActionWidth).
		Height(calculatedActionHeight)
	actionPane := actionStyle.Render(actionContent)

	// Sidebar pane (right of the log, same height)
	sidebarContent := m.renderSidebarPane()
	sidebarWidth := lipgloss.Width(sidebarContent)

	calculatedSidebarWidth := 25
	if sidebarWidth > calculatedSidebarWidth {
		calculatedSidebarWidth = sidebarWidth
	}

	calculatedSidebarHeight := m.height - actionHeight - 4

	if calculatedSidebarWidth < 1 {
		calculatedSidebarWidth = 1
	}
	if calculatedSidebarHeight < 1 {
		calculatedSidebarHeight = 1
	}

	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(calculatedSidebarWidth).
		Height(calculatedSidebarHeight)

	sidebarPane := sidebarStyle.Render(sidebarContent)

	// Log pane (top, fills height minus action pane)
	logContent := m.renderLogPane()
	m.logViewport.SetContent(logContent)

	calculatedLogWidth := m.width - calculatedSidebarWidth - 4
	calculatedLogHeight := m.height - actionHeight - 4

	if calculatedLogWidth < 1 {
		calculatedLogWidth = 1
	}
	if calculatedLogHeight < 1 {
		calculatedLogHeight = 1
	}

	m.logViewport.Width = calculatedLogWidth
	m.logViewport.Height = calculatedLogHeight

	// On first proper sizing, reset to top to avoid starting scrolled down
	if !m.initialized && calculatedLogWidth > 1 && calculatedLogHeight > 1 {
		m.logViewport.GotoTop()
		m.initialized = true
	}

	logStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(calculatedLogWidth).
		Height(calculatedLogHeight)

	if m.focusedPane == 0 {
		logStyle = logStyle.BorderForeground(lipgloss.Color("#04B575"))
	}
	logPane := logStyle.Render(m.logViewport.View())

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, logPane, sidebarPane)

	return lipgloss.JoinVertical(lipgloss.Top, topRow, actionPane)
}

// renderLogPane renders the game log pane content
func (m *Model) renderLogPane() string {
	return strings.Join(m.gameLog, "\n")
}

// renderSidebarPane creates the sidebar content
func (m *Model) renderSidebarPane() string {
	var content strings.Builder

	content.WriteString(HeaderStyle.Render(" ♠ ♥ Blackjack ♦ ♣ "))
	content.WriteString("\n\n")

	content.WriteString(PlayerInfoStyle.Render(m.playerName))
	content.WriteString("\n")
	content.WriteString(WarningStyle.Render("Balance: " + formatMoney(m.balance)))
	content.WriteString("\n\n")

	rounds := m.wins + m.losses + m.pushes
	content.WriteString(InfoStyle.Render(fmt.Sprintf("Rounds: %d", rounds)))
	content.WriteString("\n")
	content.WriteString(InfoStyle.Render(fmt.Sprintf("W %d / L %d / P %d", m.wins, m.losses, m.pushes)))
	content.WriteString("\n")

	return content.String()
}

// renderActionPane renders the action input pane
func (m *Model) renderActionPane() string {
	var content strings.Builder

	switch m.prompt {
	case promptAction:
		content.WriteString(HandInfoStyle.Render(m.handLine))
		content.WriteString("\n")
		content.WriteString(ActionsStyle.Render("Actions: ") +
			SuccessStyle.Render("[h]it") + " " + WarningStyle.Render("[s]tand"))
		content.WriteString("\n")
	case promptBet:
		content.WriteString(HandInfoStyle.Render("Place your bet"))
		content.WriteString("\n")
	default:
		content.WriteString(HandInfoStyle.Render("Waiting..."))
		content.WriteString("\n")
	}

	content.WriteString(m.input.View())
	content.WriteString("\n")

	if m.focusedPane == 0 {
		content.WriteString(InfoStyle.Render(
			"Log focused: ↑↓ scroll, PgUp/PgDn half page, Home/End, Tab to input"))
	} else {
		content.WriteString(InfoStyle.Render(
			"Tab to scroll log • Enter to submit • Ctrl+C to quit"))
	}

	return content.String()
}

// addLog appends an entry to the game log
func (m *Model) addLog(entry string) {
	m.gameLog = append(m.gameLog, entry)

	// In test mode, also capture the log entry
	if m.testMode {
		m.capturedLog = append(m.capturedLog, entry)
		return
	}

	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

// SendQuitSignal signals the TUI to quit gracefully
func (m *Model) SendQuitSignal() {
	select {
	case m.quitSignal <- true:
	default:
		// Quit signal already sent
	}
}

// GetCapturedLog returns the captured log entries (test mode only)
func (m *Model) GetCapturedLog() []string {
	if !m.testMode {
		return nil
	}
	result := make([]string, len(m.capturedLog))
	copy(result, m.capturedLog)
	return result
}

// InjectBet programmatically answers a bet prompt (test mode only)
func (m *Model) InjectBet(amount float64) error {
	if !m.testMode {
		return fmt.Errorf("bet injection only available in test mode")
	}
	select {
	case m.bets <- amount:
		return nil
	default:
		return fmt.Errorf("bet channel full")
	}
}

// InjectAction programmatically answers a hit/stand prompt (test mode only)
func (m *Model) InjectAction(action game.Action) error {
	if !m.testMode {
		return fmt.Errorf("action injection only available in test mode")
	}
	select {
	case m.actions <- action:
		return nil
	default:
		return fmt.Errorf("action channel full")
	}
}

// IsTestMode returns whether the TUI is in test mode
func (m *Model) IsTestMode() bool {
	return m.testMode
}

// formatCard colors a single card by suit
func formatCard(card deck.Card) string {
	if card.IsRed() {
		return RedCardStyle.Render(card.String())
	}
	return BlackCardStyle.Render(card.String())
}

// formatCards formats cards with colors
func formatCards(cards []deck.Card) string {
	if len(cards) == 0 {
		return ""
	}

	var formatted []string
	for _, card := range cards {
		formatted = append(formatted, formatCard(card))
	}

	return "[" + strings.Join(formatted, " ") + "]"
}

func formatMoney(amount float64) string {
	return "$" + strconv.FormatFloat(amount, 'f', -1, 64)
}
