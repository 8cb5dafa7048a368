package tui

import (
	"fmt"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/lox/blackjack/internal/blackjack"
	"github.com/lox/blackjack/internal/deck"
)

// eventMsg carries one engine event into the Bubble Tea update loop
type eventMsg struct {
	event blackjack.GameEvent
}

// Bridge forwards engine events into the Bubble Tea program. The engine
// publishes while holding its lock, so OnEvent never blocks: when the
// buffer is full the event is dropped and the next snapshot catches up.
type Bridge struct {
	events chan blackjack.GameEvent
	logger *log.Logger

	closeOnce sync.Once
}

// NewBridge creates a bridge buffering up to size events
func NewBridge(logger *log.Logger, size int) *Bridge {
	return &Bridge{
		events: make(chan blackjack.GameEvent, size),
		logger: logger.WithPrefix("bridge"),
	}
}

// OnEvent implements blackjack.EventSubscriber
func (b *Bridge) OnEvent(event blackjack.GameEvent) {
	select {
	case b.events <- event:
	default:
		b.logger.Warn("Event buffer full, dropping event", "type", event.EventType())
	}
}

// Wait returns a command that delivers the next event
func (b *Bridge) Wait() tea.Cmd {
	return func() tea.Msg {
		event, ok := <-b.events
		if !ok {
			return nil
		}
		return eventMsg{event: event}
	}
}

// Close stops delivering events
func (b *Bridge) Close() {
	b.closeOnce.Do(func() { close(b.events) })
}

// describeEvent renders an event as a game log line. ok is false for
// events that are not worth a line of their own.
func describeEvent(event blackjack.GameEvent) (line string, ok bool) {
	switch ev := event.(type) {
	case blackjack.RoundStartEvent:
		return HandInfoStyle.Render(fmt.Sprintf("*** ROUND %d ***", ev.Round)), true

	case blackjack.CardsDealtEvent:
		cards := formatCards(ev.Cards)
		// The dealer's opening pair arrives with the hole card face down.
		if ev.Role == blackjack.Dealer && len(ev.Cards) == 2 {
			cards = formatCards(ev.Cards[1:])
			cards = "[" + HoleCardStyle.Render("▒▒") + " " + strings.TrimPrefix(cards, "[")
			return fmt.Sprintf("Dealer is dealt %s", cards), true
		}
		return fmt.Sprintf("%s is dealt %s (%d)", roleName(ev.Role), cards, ev.Value), true

	case blackjack.PhaseChangeEvent:
		switch ev.To {
		case blackjack.DealerPeek, blackjack.DealerTurn:
			return InfoStyle.Render(ev.Message), true
		}
		return "", false

	case blackjack.RoundSettledEvent:
		r := ev.Result
		style := ErrorStyle
		switch {
		case r.Push:
			style = WarningStyle
		case r.Winner == blackjack.Player:
			style = SuccessStyle
		}
		return style.Render(fmt.Sprintf("%s (player %d, dealer %d)", r.Message, r.PlayerValue, r.DealerValue)), true

	case blackjack.ShoeReshuffledEvent:
		return InfoStyle.Render(fmt.Sprintf("Shoe reshuffled, %d cards", ev.Remaining)), true

	case blackjack.RoundFailedEvent:
		return ErrorStyle.Render(fmt.Sprintf("Round %d failed: %v", ev.Round, ev.Err)), true
	}
	return "", false
}

func roleName(r blackjack.Role) string {
	if r == blackjack.Dealer {
		return "Dealer"
	}
	return "Player"
}

// formatCards formats cards with colors
func formatCards(cards []deck.Card) string {
	if len(cards) == 0 {
		return "[]"
	}

	formatted := make([]string, 0, len(cards))
	for _, card := range cards {
		if card.IsRed() {
			formatted = append(formatted, RedCardStyle.Render(card.String()))
		} else {
			formatted = append(formatted, BlackCardStyle.Render(card.String()))
		}
	}
	return "[" + strings.Join(formatted, " ") + "]"
}
