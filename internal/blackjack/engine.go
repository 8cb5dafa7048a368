package blackjack

import (
	"errors"
	"fmt"
	"io"
	rand "math/rand/v2"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"

	"github.com/lox/blackjack/internal/deck"
)

var (
	// ErrIllegalAction is returned when an action is not allowed in the current phase
	ErrIllegalAction = errors.New("illegal action")
	// ErrShoeExhausted is returned when a deal cannot be satisfied even after a reshuffle
	ErrShoeExhausted = errors.New("shoe exhausted")
	// ErrInvalidDecks is returned for a configuration with fewer than one deck
	ErrInvalidDecks = deck.ErrInvalidDecks
)

// Shoe is the card source the engine deals from. *deck.Shoe implements it.
type Shoe interface {
	Reset()
	Shuffle()
	Deal(n int) []deck.Card
	Remaining() int
}

// reshuffleCounter is implemented by shoes that report threshold reshuffles
type reshuffleCounter interface {
	Reshuffles() int
}

// Engine runs one blackjack table: it owns the shoe, both hands, the phase
// and the outcome history. All state changes happen under a single lock and
// timed transitions are scheduled continuations bound to the round that
// scheduled them.
type Engine struct {
	mu sync.Mutex

	cfg    Config
	clock  quartz.Clock
	logger *log.Logger
	bus    EventBus
	shoe   Shoe
	rng    *rand.Rand

	player  *Hand
	dealer  *Hand
	phase   Phase
	round   uint64
	roundID string
	message string
	history []Outcome
	result  *Result
	err     error

	queue    []*task
	draining bool
	waiters  []chan Result
}

// Option configures an Engine
type Option func(*Engine)

// WithClock sets the clock used for timed transitions
func WithClock(clock quartz.Clock) Option {
	return func(e *Engine) {
		e.clock = clock
	}
}

// WithLogger sets the engine logger
func WithLogger(logger *log.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithShoe replaces the default shoe built from Config.Decks
func WithShoe(shoe Shoe) Option {
	return func(e *Engine) {
		e.shoe = shoe
	}
}

// WithRand seeds the default shoe's shuffles. Without it shuffles use the
// cryptographic source.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) {
		e.rng = rng
	}
}

// WithEventBus sets the bus events are published on
func WithEventBus(bus EventBus) Option {
	return func(e *Engine) {
		e.bus = bus
	}
}

// New creates an engine in the Idle phase
func New(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:     cfg,
		player:  NewHand(Player),
		dealer:  NewHand(Dealer),
		phase:   Idle,
		message: MsgWelcome,
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.clock == nil {
		e.clock = quartz.NewReal()
	}
	if e.logger == nil {
		e.logger = log.New(io.Discard)
	}
	e.logger = e.logger.WithPrefix("engine")
	if e.bus == nil {
		e.bus = NewEventBus()
	}
	if e.shoe == nil {
		var shoeOpts []deck.Option
		if e.rng != nil {
			shoeOpts = append(shoeOpts, deck.WithRand(e.rng))
		}
		shoe, err := deck.NewShoe(cfg.Decks, shoeOpts...)
		if err != nil {
			return nil, err
		}
		e.shoe = shoe
	}

	return e, nil
}

// Subscribe registers an observer for engine events
func (e *Engine) Subscribe(subscriber EventSubscriber) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.bus.Subscribe(subscriber)
}

// Unsubscribe removes an observer
func (e *Engine) Unsubscribe(subscriber EventSubscriber) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.bus.Unsubscribe(subscriber)
}

// StartGame begins a new round: both hands are cleared, the shoe is reset
// and shuffled, and the opening hand is dealt after the deal delay. It is
// rejected while a round is in progress.
func (e *Engine) StartGame() error {
	e.mu.Lock()
	defer e.unlock()
	return e.startRound(false)
}

// Deal is the explicit "next round" command; it is StartGame.
func (e *Engine) Deal() error {
	return e.StartGame()
}

// Hit deals one card to the player. Only legal during the player's turn.
func (e *Engine) Hit() error {
	e.mu.Lock()
	defer e.unlock()

	if e.phase != PlayerTurn {
		return e.illegal("hit")
	}
	if !e.dealTo(e.player, 1) {
		return e.err
	}
	e.checkPlayer()
	return nil
}

// Stand ends the player's turn and lets the dealer play. The returned
// channel receives the round result once settlement has finished and, with
// AutoDeal, the next round has started. It is closed without a value if
// the round is aborted first.
func (e *Engine) Stand() (<-chan Result, error) {
	e.mu.Lock()
	defer e.unlock()

	if e.phase != PlayerTurn {
		return nil, e.illegal("stand")
	}

	done := make(chan Result, 1)
	e.waiters = append(e.waiters, done)
	e.setPhase(DealerTurn, MsgDealerPlaying)
	e.schedule("dealer_play", e.cfg.Timings.DealerDelay, e.playDealer)
	return done, nil
}

// Phase returns the current phase
func (e *Engine) Phase() Phase {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.phase
}

// History returns a copy of the recorded outcomes, oldest first
func (e *Engine) History() []Outcome {
	e.mu.Lock()
	defer e.mu.Unlock()
	history := make([]Outcome, len(e.history))
	copy(history, e.history)
	return history
}

// startRound must be called with e.mu held
func (e *Engine) startRound(immediate bool) error {
	if e.phase.InProgress() {
		return e.illegal("deal")
	}

	previous := e.result
	e.cancelPending()

	e.round++
	e.roundID = uuid.Must(uuid.NewV7()).String()
	e.player.Reset()
	e.dealer.Reset()
	e.result = nil
	e.err = nil
	e.shoe.Reset()
	e.shoe.Shuffle()

	e.logger.Info("Starting round", "round", e.round, "id", e.roundID, "shoe", e.shoe.Remaining())
	e.bus.Publish(RoundStartEvent{Round: e.round, RoundID: e.roundID, timestamp: e.clock.Now()})
	e.setPhase(Dealing, MsgDealing)

	if immediate {
		e.dealOpening()
	} else {
		e.schedule("opening_deal", e.cfg.Timings.DealDelay, e.dealOpening)
	}

	if previous != nil {
		e.deliver(*previous)
	}
	return nil
}

// dealOpening deals two cards to each hand and decides whether the dealer
// must peek for blackjack
func (e *Engine) dealOpening() {
	if !e.dealTo(e.player, 2) || !e.dealTo(e.dealer, 2) {
		return
	}

	// The second dealer card is the face-up card.
	up := e.dealer.cards[1]
	if up.IsAce() || up.IsTenValue() {
		e.setPhase(DealerPeek, MsgDealerChecking)
		e.schedule("dealer_peek", e.cfg.Timings.PeekDelay, e.resolvePeek)
		return
	}

	e.beginPlayerTurn()
}

func (e *Engine) resolvePeek() {
	if e.dealer.IsBlackjack() {
		e.settle(settlePeek(e.player, e.dealer))
		return
	}
	e.beginPlayerTurn()
}

func (e *Engine) beginPlayerTurn() {
	e.setPhase(PlayerTurn, MsgWelcome)
	e.checkPlayer()
}

// checkPlayer ends the round when the player has a blackjack or has busted
func (e *Engine) checkPlayer() {
	if r, done := settlePlayer(e.player, e.dealer); done {
		e.settle(r)
	}
}

// playDealer draws until the dealer reaches 17, soft or hard
func (e *Engine) playDealer() {
	for e.dealer.Value() < 17 {
		if !e.dealTo(e.dealer, 1) {
			return
		}
	}
	e.settle(Settle(e.player, e.dealer))
}

// settle records the result and schedules the end of the round
func (e *Engine) settle(r Result) {
	e.result = &r
	if !r.Push {
		e.history = append(e.history, r.Outcome)
	}

	e.logger.Info("Round settled",
		"round", e.roundID,
		"result", r.String(),
		"player", e.player.String(),
		"dealer", e.dealer.String())

	e.setPhase(Settling, r.Message)
	e.bus.Publish(RoundSettledEvent{Round: e.round, RoundID: e.roundID, Result: r, timestamp: e.clock.Now()})
	e.schedule("round_over", e.cfg.Timings.SettleDelay, e.finishRound)
}

func (e *Engine) finishRound() {
	e.setPhase(RoundOver, e.message)

	if e.cfg.AutoDeal {
		e.schedule("auto_deal", e.cfg.Timings.ResetDelay, func() {
			if err := e.startRound(false); err != nil {
				e.logger.Error("Auto deal failed", "error", err)
			}
		})
		return
	}

	if e.result != nil {
		e.deliver(*e.result)
	}
}

// dealTo moves n cards from the shoe into h. A short deal fails the round.
func (e *Engine) dealTo(h *Hand, n int) bool {
	before := e.reshuffles()
	cards := e.shoe.Deal(n)
	if len(cards) != n {
		e.fail(fmt.Errorf("%w: wanted %d cards for %s, %d remaining", ErrShoeExhausted, n, h.Role(), e.shoe.Remaining()))
		return false
	}

	if e.reshuffles() > before {
		e.logger.Info("Shoe reshuffled", "round", e.roundID, "remaining", e.shoe.Remaining())
		e.bus.Publish(ShoeReshuffledEvent{Round: e.round, Remaining: e.shoe.Remaining(), timestamp: e.clock.Now()})
	}

	value := h.AddCards(cards...)
	e.logger.Debug("Dealt cards", "round", e.roundID, "to", h.Role(), "cards", cards, "value", value)
	e.bus.Publish(CardsDealtEvent{Round: e.round, Role: h.Role(), Cards: cards, Value: value, timestamp: e.clock.Now()})
	return true
}

func (e *Engine) reshuffles() int {
	if rc, ok := e.shoe.(reshuffleCounter); ok {
		return rc.Reshuffles()
	}
	return 0
}

// fail aborts the round. Hands are cleared so no short hand is ever visible.
func (e *Engine) fail(err error) {
	e.cancelPending()
	e.err = err
	e.result = nil
	e.player.Reset()
	e.dealer.Reset()

	e.logger.Error("Round failed", "round", e.roundID, "error", err)
	e.setPhase(Failed, MsgShoeExhausted)
	e.bus.Publish(RoundFailedEvent{Round: e.round, Err: err, timestamp: e.clock.Now()})
	e.closeWaiters()
}

func (e *Engine) setPhase(to Phase, message string) {
	from := e.phase
	e.phase = to
	e.message = message
	if from != to {
		e.logger.Debug("Phase change", "round", e.roundID, "from", from, "to", to)
	}
	e.bus.Publish(PhaseChangeEvent{Round: e.round, From: from, To: to, Message: message, timestamp: e.clock.Now()})
}

func (e *Engine) deliver(r Result) {
	for _, w := range e.waiters {
		w <- r
		close(w)
	}
	e.waiters = nil
}

func (e *Engine) closeWaiters() {
	for _, w := range e.waiters {
		close(w)
	}
	e.waiters = nil
}

func (e *Engine) illegal(action string) error {
	return fmt.Errorf("%w: %s during %s", ErrIllegalAction, action, e.phase)
}
