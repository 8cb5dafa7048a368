package blackjack

// Command is a developer or test-harness instruction executed by Exec.
// Commands replace fire-and-forget notifications with a direct call whose
// error the caller sees.
type Command interface {
	Name() string
	apply(e *Engine) error
}

// ForceEndRound aborts the round in progress without recording an outcome
type ForceEndRound struct{}

func (ForceEndRound) Name() string { return "force_end_round" }

func (ForceEndRound) apply(e *Engine) error {
	if !e.phase.InProgress() {
		return e.illegal("force end")
	}
	e.cancelPending()
	e.result = nil
	e.setPhase(RoundOver, MsgForceEnded)
	e.closeWaiters()
	return nil
}

// DealOne deals a single card to either hand during the player's turn.
// A card dealt to the player is checked exactly like a hit.
type DealOne struct {
	Role Role
}

func (DealOne) Name() string { return "deal_one" }

func (c DealOne) apply(e *Engine) error {
	if e.phase != PlayerTurn {
		return e.illegal("deal one")
	}
	h := e.player
	if c.Role == Dealer {
		h = e.dealer
	}
	if !e.dealTo(h, 1) {
		return e.err
	}
	if c.Role == Player {
		e.checkPlayer()
	}
	return nil
}

// DealOpening starts a round and deals the opening hand without the deal delay
type DealOpening struct{}

func (DealOpening) Name() string { return "deal_opening" }

func (DealOpening) apply(e *Engine) error {
	return e.startRound(true)
}

// Exec runs a command against the engine
func (e *Engine) Exec(cmd Command) error {
	e.mu.Lock()
	defer e.unlock()

	e.logger.Debug("Executing command", "command", cmd.Name(), "phase", e.phase)
	return cmd.apply(e)
}
