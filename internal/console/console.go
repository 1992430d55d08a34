// Package console implements the line-oriented table interface: prompts
// read from an io.Reader on one side, rendered round events written to an
// io.Writer on the other. A Console satisfies both game.Agent and
// game.EventSubscriber, so wiring one to a round is
//
//	con := console.New(os.Stdin, os.Stdout)
//	bus := game.NewEventBus()
//	bus.Subscribe(con)
//	round := game.NewRound(shoe, player, game.WithEventBus(bus))
//	result, err := round.Play(bet, con)
//
// The reader and writer are injected so tests can drive the whole
// protocol through buffers.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/coder/quartz"

	"github.com/lox/blackjack-cli/internal/deck"
	"github.com/lox/blackjack-cli/internal/game"
)

var (
	// ErrQuit is reported when the player leaves the table, either with a
	// zero bet or by closing the input stream.
	ErrQuit = errors.New("console: player quit")

	// ErrInvalidInput marks input that does not parse as what the prompt
	// asked for. The prompt loops recover from it by asking again.
	ErrInvalidInput = errors.New("console: invalid input")
)

const defaultDealerDelay = 600 * time.Millisecond

const (
	promptName = "Enter your name: "
	promptBet  = "Enter bet amount (or 0 to quit): "
	promptHit  = "Do you want to (H)it or (S)tand? "
)

// Styles contains the lipgloss styling for table output.
type Styles struct {
	Header    lipgloss.Style
	SubHeader lipgloss.Style
	Action    lipgloss.Style
	Winner    lipgloss.Style
	Loss      lipgloss.Style
	Money     lipgloss.Style
	CardRed   lipgloss.Style
	CardBlack lipgloss.Style
	Separator lipgloss.Style
	Error     lipgloss.Style
}

// NewStyles returns the default table styling.
func NewStyles() *Styles {
	return &Styles{
		Header: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 2).
			Bold(true),
		SubHeader: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true),
		Action: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#74B9FF")),
		Winner: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),
		Loss: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		Money: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),
		CardRed: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		CardBlack: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#000000")).
			Bold(true),
		Separator: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")),
	}
}

// Console is the terminal table interface.
type Console struct {
	in          *bufio.Scanner
	out         io.Writer
	styles      *Styles
	clock       quartz.Clock
	dealerDelay time.Duration
}

// Option configures a Console.
type Option func(*Console)

// WithStyles replaces the default styling.
func WithStyles(styles *Styles) Option {
	return func(c *Console) { c.styles = styles }
}

// WithClock injects the clock used to pace dealer cards.
func WithClock(clock quartz.Clock) Option {
	return func(c *Console) { c.clock = clock }
}

// WithDealerDelay sets the pause before each dealer reveal or draw. Zero
// disables pacing.
func WithDealerDelay(d time.Duration) Option {
	return func(c *Console) { c.dealerDelay = d }
}

// New creates a console that reads player input from in and renders to out.
func New(in io.Reader, out io.Writer, opts ...Option) *Console {
	if in == nil {
		panic("console: New requires a reader")
	}
	if out == nil {
		panic("console: New requires a writer")
	}
	c := &Console{
		in:          bufio.NewScanner(in),
		out:         out,
		styles:      NewStyles(),
		clock:       quartz.NewReal(),
		dealerDelay: defaultDealerDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// PromptName asks the player to introduce themselves. Blank answers are
// asked again; a closed input reports ErrQuit.
func (c *Console) PromptName() (string, error) {
	for {
		fmt.Fprint(c.out, promptName)
		name, err := c.readLine()
		if err != nil {
			return "", err
		}
		if name != "" {
			return name, nil
		}
		fmt.Fprintln(c.out, c.styles.Error.Render("A name is required."))
	}
}

// PromptBet asks for the next stake. A zero bet means the player is done
// and is reported as ErrQuit, as is a closed input. Anything that does not
// parse as a positive amount is asked again.
func (c *Console) PromptBet() (float64, error) {
	for {
		fmt.Fprint(c.out, promptBet)
		line, err := c.readLine()
		if err != nil {
			return 0, err
		}
		bet, err := parseBet(line)
		if err == nil {
			return bet, nil
		}
		if errors.Is(err, ErrQuit) {
			return 0, ErrQuit
		}
		fmt.Fprintln(c.out, c.styles.Error.Render("Enter a positive amount, or 0 to quit."))
	}
}

// MakeDecision implements game.Agent by asking the player to hit or stand.
// The Agent interface carries no error channel, so when the input closes
// mid-hand the safe answer is to stand.
func (c *Console) MakeDecision(view game.RoundView) game.Action {
	fmt.Fprintf(c.out, "Your hand: %s (%d) against dealer %s\n",
		c.formatCards(view.PlayerCards), view.PlayerScore, c.formatCard(view.DealerUpcard))
	for {
		fmt.Fprint(c.out, promptHit)
		line, err := c.readLine()
		if err != nil {
			return game.Stand
		}
		action, err := parseAction(line)
		if err != nil {
			fmt.Fprintln(c.out, c.styles.Error.Render(`Please answer "h" or "s".`))
			continue
		}
		return action
	}
}

// OnEvent implements game.EventSubscriber by rendering each round event as
// table narration. Dealer reveals and draws are paced by the configured
// delay so the end of a round reads like a live deal.
func (c *Console) OnEvent(event game.GameEvent) {
	switch e := event.(type) {
	case game.RoundStartEvent:
		fmt.Fprintln(c.out, c.styles.Separator.Render(strings.Repeat("═", 44)))
		fmt.Fprintf(c.out, "%s bets %s • %s remaining\n",
			e.Player, c.styles.Money.Render(money(e.Bet)), money(e.Balance))

	case game.CardDealtEvent:
		switch {
		case e.FaceDown:
			fmt.Fprintln(c.out, "Dealer's second card is face down.")
		case e.To == game.SeatDealer:
			fmt.Fprintf(c.out, "Dealer shows %s\n", c.formatCard(e.Card))
		default:
			fmt.Fprintf(c.out, "You are dealt %s (%d)\n", c.formatCard(e.Card), e.Score)
		}

	case game.PlayerActionEvent:
		if e.Action == game.Stand {
			fmt.Fprintln(c.out, c.styles.Action.Render(fmt.Sprintf("You stand on %d.", e.Score)))
		} else {
			fmt.Fprintln(c.out, c.styles.Action.Render("You hit."))
		}

	case game.DealerRevealEvent:
		c.pace()
		fmt.Fprintf(c.out, "Dealer reveals %s and has %s (%d)\n",
			c.formatCard(e.HoleCard), c.formatCards(e.Cards), e.Score)

	case game.DealerDrawEvent:
		c.pace()
		fmt.Fprintf(c.out, "Dealer draws %s (%d)\n", c.formatCard(e.Card), e.Score)

	case game.RoundEndEvent:
		fmt.Fprintf(c.out, "Your hand:   %s (%d)\n", c.formatCards(e.PlayerCards), e.Result.PlayerScore)
		fmt.Fprintf(c.out, "Dealer hand: %s (%d)\n", c.formatCards(e.DealerCards), e.Result.DealerScore)
		fmt.Fprintln(c.out, c.outcomeLine(e.Result))
	}
}

// ShowWelcome prints the table banner.
func (c *Console) ShowWelcome(decks int, balance float64) {
	fmt.Fprintln(c.out, c.styles.Header.Render("♠ ♥ Blackjack ♦ ♣"))
	fmt.Fprintf(c.out, "%d-deck shoe • dealer stands on 17 • blackjack pays 3:2\n", decks)
	fmt.Fprintf(c.out, "Starting balance: %s\n", c.styles.Money.Render(money(balance)))
	fmt.Fprintln(c.out)
}

// ShowBalance prints the running balance between rounds.
func (c *Console) ShowBalance(balance float64) {
	fmt.Fprintf(c.out, "Balance: %s\n", c.styles.Money.Render(money(balance)))
	fmt.Fprintln(c.out)
}

// ShowGoodbye prints the final balance as the player leaves the table.
func (c *Console) ShowGoodbye(name string, balance float64) {
	fmt.Fprintf(c.out, "Thanks for playing, %s. You leave with %s.\n",
		name, c.styles.Money.Render(money(balance)))
}

// ShowError prints a styled error line, used when the engine rejects a bet.
func (c *Console) ShowError(msg string) {
	fmt.Fprintln(c.out, c.styles.Error.Render(msg))
}

func (c *Console) readLine() (string, error) {
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", fmt.Errorf("console: reading input: %w", err)
		}
		return "", ErrQuit
	}
	return strings.TrimSpace(c.in.Text()), nil
}

// pace blocks for the dealer delay so consecutive dealer cards do not
// arrive in a single burst.
func (c *Console) pace() {
	if c.dealerDelay <= 0 {
		return
	}
	timer := c.clock.NewTimer(c.dealerDelay)
	defer timer.Stop()
	<-timer.C
}

func (c *Console) outcomeLine(res game.Result) string {
	switch res.Outcome {
	case game.Win:
		if res.PlayerBlackjack {
			return c.styles.Winner.Render(fmt.Sprintf("Blackjack! You win %s.", money(res.Payout)))
		}
		return c.styles.Winner.Render(fmt.Sprintf("You win %s.", money(res.Payout)))
	case game.Push:
		return c.styles.SubHeader.Render("Push. Your bet is returned.")
	default:
		if res.PlayerScore > 21 {
			return c.styles.Loss.Render(fmt.Sprintf("Bust! You lose %s.", money(res.Bet)))
		}
		if res.DealerBlackjack {
			return c.styles.Loss.Render(fmt.Sprintf("Dealer has blackjack. You lose %s.", money(res.Bet)))
		}
		return c.styles.Loss.Render(fmt.Sprintf("You lose %s.", money(res.Bet)))
	}
}

func (c *Console) formatCard(card deck.Card) string {
	if card.IsRed() {
		return c.styles.CardRed.Render(card.String())
	}
	return c.styles.CardBlack.Render(card.String())
}

// formatCards renders a hand as a bracketed, color-coded card list.
func (c *Console) formatCards(cards []deck.Card) string {
	formatted := make([]string, len(cards))
	for i, card := range cards {
		formatted[i] = c.formatCard(card)
	}
	return "[" + strings.Join(formatted, " ") + "]"
}

func parseBet(s string) (float64, error) {
	amount, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, fmt.Errorf("%w: %q is not a bet amount", ErrInvalidInput, s)
	}
	if amount == 0 {
		return 0, ErrQuit
	}
	if amount < 0 {
		return 0, fmt.Errorf("%w: bet cannot be negative", ErrInvalidInput)
	}
	return amount, nil
}

func parseAction(s string) (game.Action, error) {
	switch strings.ToLower(s) {
	case "h", "hit":
		return game.Hit, nil
	case "s", "stand":
		return game.Stand, nil
	}
	return game.Stand, fmt.Errorf("%w: %q", ErrInvalidInput, s)
}

// money renders amounts without trailing zeros, so whole-dollar values
// read "$10" rather than "$10.00".
func money(amount float64) string {
	return "$" + strconv.FormatFloat(amount, 'f', -1, 64)
}
