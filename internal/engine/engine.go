package engine

import (
	"math/rand"
	"sort"
	"time"

	"texasholdem-server/internal/card"
)

// Engine is the per-match hand-by-hand state machine: deal, betting rounds,
// showdown, winnings. One Engine owns exactly one table's seats and the
// hand currently in progress; the caller (controller.Match) is responsible
// for serializing all access to it.
type Engine struct {
	cfg GameConfig
	rng *rand.Rand

	seats    map[int]*Seat // by Index
	maxIndex int

	handNumber uint64
	phase      Phase

	community []card.Card
	deck      *card.Deck

	ring                             *seatNode // rebuilt fresh each hand
	dealerIdx, sbIdx, bbIdx, actIdx  int
	hasDealer                        bool

	needActionCount int
	curBet          int64
	minRaise        int64
	raiserIdx       int
	canReopen       bool

	pots           potManager
	lastSettlement *SettlementResult
}

// NewEngine constructs an empty engine in WaitingForPlayers.
func NewEngine(cfg GameConfig) (*Engine, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Engine{
		cfg:   cfg,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
		seats: make(map[int]*Seat),
		phase: WaitingForPlayers,
	}, nil
}

// SeedRNG pins the shuffle source — used by tests and replay reconstruction
// for deterministic deals.
func (e *Engine) SeedRNG(seed int64) { e.rng = rand.New(rand.NewSource(seed)) }

// AddSeat appends a seat at the next free position. Per spec.md §4.5, a
// non-positive chip stack is coerced to 1 so engine invariants hold.
func (e *Engine) AddSeat(id PlayerID, name string, stack int64) (*Seat, error) {
	if len(e.seats) >= e.cfg.MaxPlayers {
		return nil, ErrInvalidConfig("table is full")
	}
	if stack <= 0 {
		stack = 1
	}
	idx := e.maxIndex
	e.maxIndex++
	s := &Seat{ID: id, Name: name, Index: idx, stack: stack, active: true}
	e.seats[idx] = s
	return s, nil
}

// RemoveSeat removes a seat between hands. If a hand is in progress, the
// seat is folded in place instead (it cannot vanish mid-hand without
// breaking pot accounting).
func (e *Engine) RemoveSeat(id PlayerID) {
	s := e.seatByID(id)
	if s == nil {
		return
	}
	if e.phase != WaitingForPlayers && e.phase != HandComplete {
		s.folded = true
		s.active = false
		return
	}
	delete(e.seats, s.Index)
}

func (e *Engine) seatByID(id PlayerID) *Seat {
	for _, s := range e.seats {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// SeatCount returns the number of occupied positions (including busted seats
// not yet removed).
func (e *Engine) SeatCount() int { return len(e.seats) }

// SolventSeatCount returns the number of active seats with chips > 0 (a
// seat folded in place by RemoveSeat mid-hand is not counted).
func (e *Engine) SolventSeatCount() int {
	n := 0
	for _, s := range e.seats {
		if s.active && s.stack > 0 {
			n++
		}
	}
	return n
}

// RemoveBustedSeats drops every seat with stack == 0, per spec.md §4.5
// startHand: "remove all seats with chip stack = 0."
func (e *Engine) RemoveBustedSeats() {
	for idx, s := range e.seats {
		if s.stack <= 0 {
			delete(e.seats, idx)
		}
	}
}

// StartHand begins a new hand: rotates the dealer, posts blinds, shuffles,
// deals hole cards, and sets the seat to act first.
func (e *Engine) StartHand() error {
	if e.SolventSeatCount() < 2 {
		return ErrInsufficientPlayers
	}

	e.lastSettlement = nil
	e.community = nil
	e.pots.reset()

	active := make([]*Seat, 0, len(e.seats))
	for _, s := range e.seats {
		if s.stack > 0 {
			s.resetForHand()
			active = append(active, s)
		} else {
			s.active = false
		}
	}
	sort.Slice(active, func(i, j int) bool { return active[i].Index < active[j].Index })

	e.handNumber++
	e.buildRing(active)
	e.rotateDealer(active)
	e.assignBlinds(active)
	e.shuffleDeck()
	e.dealHoleCards()
	e.postBlinds()

	e.phase = PreFlop
	e.curBet = e.cfg.BigBlindAmount
	e.minRaise = e.cfg.BigBlindAmount
	// No seat has raised yet — posting the blind doesn't consume the big
	// blind's option to raise when action folds/calls back around to it.
	e.raiserIdx = -1
	e.canReopen = true
	e.onRoundStart()

	// Short-circuit: blinds alone already put every contender all-in, so
	// nobody can voluntarily act this hand.
	if e.actionableSeats() <= 1 {
		_, err := e.runOutAndSettle()
		return err
	}
	return nil
}

func (e *Engine) buildRing(active []*Seat) {
	e.ring = nil
	var first, last *seatNode
	for _, s := range active {
		n := &seatNode{seat: s}
		if first == nil {
			first = n
		}
		if last != nil {
			last.next = n
		}
		last = n
	}
	if last != nil {
		last.next = first
	}
	e.ring = first
}

func (e *Engine) nodeAt(idx int) *seatNode {
	if e.ring == nil {
		return nil
	}
	return e.ring.walkFrom(func(n *seatNode) bool { return n.seat.Index == idx })
}

func (e *Engine) rotateDealer(active []*Seat) {
	if !e.hasDealer {
		e.dealerIdx = active[e.rng.Intn(len(active))].Index
		e.hasDealer = true
		return
	}
	cur := e.nodeAt(e.dealerIdx)
	if cur != nil && cur.next != nil {
		e.dealerIdx = cur.next.seat.Index
		return
	}
	e.dealerIdx = active[e.rng.Intn(len(active))].Index
}

func (e *Engine) assignBlinds(active []*Seat) {
	dealer := e.nodeAt(e.dealerIdx)
	if len(active) == 2 {
		// Heads-up: dealer posts small blind and acts first preflop.
		e.sbIdx = dealer.seat.Index
		e.bbIdx = dealer.next.seat.Index
		e.actIdx = dealer.seat.Index
	} else {
		sb := dealer.next
		bb := sb.next
		e.sbIdx = sb.seat.Index
		e.bbIdx = bb.seat.Index
		e.actIdx = bb.next.seat.Index
	}
}

func (e *Engine) shuffleDeck() {
	e.deck = card.New()
	e.deck.Shuffle(e.rng)
}

func (e *Engine) dealHoleCards() {
	start := e.nodeAt(e.sbIdx)
	if start == nil {
		return
	}
	for round := 0; round < 2; round++ {
		start.walkFrom(func(n *seatNode) bool {
			cards, ok := e.deck.Deal(1)
			if ok {
				n.seat.dealCard(cards[0])
			}
			return false // never stops early: walk the whole ring once
		})
	}
}

func (e *Engine) postBlinds() {
	if sb := e.seats[e.sbIdx]; sb != nil {
		sb.placeBet(e.cfg.SmallBlindAmount)
	}
	if bb := e.seats[e.bbIdx]; bb != nil {
		bb.placeBet(e.cfg.BigBlindAmount)
	}
}

func (e *Engine) onRoundStart() {
	for _, s := range e.seats {
		s.resetForRound()
	}
	node := e.nodeAt(e.actIdx)
	node = node.walkFrom(func(n *seatNode) bool { return n.seat.canAct() })
	if node != nil {
		e.actIdx = node.seat.Index
	}
	e.recalcNeedActionCount()
}

func (e *Engine) recalcNeedActionCount() {
	n := 0
	for _, s := range e.seats {
		if s.canAct() {
			n++
		}
	}
	e.needActionCount = n
}

// contendersRemaining is the number of seats that haven't folded.
func (e *Engine) contendersRemaining() int {
	n := 0
	for _, s := range e.seats {
		if s.active && !s.folded {
			n++
		}
	}
	return n
}

// LegalActions is a pure projection of current state — it mutates nothing.
func (e *Engine) LegalActions(id PlayerID) ([]PossibleAction, error) {
	if e.phase == WaitingForPlayers || e.phase == HandComplete {
		return nil, ErrGameNotRunning
	}
	s := e.seatByID(id)
	if s == nil {
		return nil, ErrGameNotRunning
	}
	return possibleActions(s, e.bettingContext()), nil
}

func (e *Engine) bettingContext() bettingContext {
	return bettingContext{
		curBet:      e.curBet,
		minRaise:    e.minRaise,
		bigBlind:    e.cfg.BigBlindAmount,
		raiserIndex: e.raiserIdx,
		canReopen:   e.canReopen,
	}
}

// Act applies action for the current seat to act. A non-nil SettlementResult
// is returned exactly when this action ended the hand.
func (e *Engine) Act(id PlayerID, action Action) (*SettlementResult, error) {
	if e.phase == WaitingForPlayers || e.phase == HandComplete {
		return nil, ErrGameNotRunning
	}
	s := e.seatByID(id)
	if s == nil || s.Index != e.actIdx {
		return nil, ErrNotYourTurn
	}

	allowed := possibleActions(s, e.bettingContext())
	if err := validateAction(allowed, action); err != nil {
		return nil, err
	}

	e.applyAction(s, action)

	if action.Type == Fold {
		if e.contendersRemaining() <= 1 {
			return e.runOutAndSettle()
		}
	}

	e.needActionCount--
	next, roundEnded := e.advanceTurn(s)
	if !roundEnded {
		e.actIdx = next.seat.Index
		return nil, nil
	}

	e.settleRoundWagers()
	if e.contendersRemaining() <= 1 || e.phase == River {
		return e.runOutAndSettle()
	}
	e.phase++
	e.dealCommunityForPhase()
	e.curBet = 0
	e.minRaise = e.cfg.BigBlindAmount
	e.raiserIdx = -1
	e.canReopen = true
	e.onRoundStart()

	// Everyone left is all-in: run the remaining streets with no more betting.
	if e.contendersRemaining() >= 2 && e.actionableSeats() <= 1 {
		return e.runOutAndSettle()
	}
	return nil, nil
}

func (e *Engine) actionableSeats() int {
	n := 0
	for _, s := range e.seats {
		if s.canAct() {
			n++
		}
	}
	return n
}

func (e *Engine) applyAction(s *Seat, action Action) {
	toCall := e.curBet - s.roundWager

	switch action.Type {
	case Fold:
		s.folded = true
	case Check:
		// no-op
	case Call:
		s.placeBet(toCall)
	case Bet:
		s.placeBet(action.Amount)
		e.curBet = s.roundWager
		e.minRaise = action.Amount
		e.raiserIdx = s.Index
	case Raise:
		raiseDelta := action.Amount - e.curBet
		s.placeBet(action.Amount - s.roundWager)
		e.curBet = action.Amount
		e.minRaise = raiseDelta
		e.raiserIdx = s.Index
	case AllIn:
		amount := s.stack
		s.placeBet(amount)
		if s.roundWager > e.curBet {
			delta := s.roundWager - e.curBet
			if delta >= e.minRaise {
				e.curBet = s.roundWager
				e.minRaise = delta
				e.raiserIdx = s.Index
			} else {
				// Short all-in raise: caps the bet but doesn't reopen action.
				e.curBet = s.roundWager
				e.canReopen = false
			}
		}
	}
	s.hasActed = true
	s.lastAction = action.Type
}

// advanceTurn finds the next seat to act clockwise from s — one that can
// still act and either hasn't acted this round or faces a bet larger than
// its current-round wager — and reports whether the betting round is
// instead over because no such seat is left.
func (e *Engine) advanceTurn(s *Seat) (*seatNode, bool) {
	cur := e.nodeAt(s.Index)
	if cur == nil {
		return nil, true
	}
	next := cur.next.walkFrom(func(n *seatNode) bool {
		return n.seat.canAct() && (!n.seat.hasActed || n.seat.roundWager < e.curBet)
	})
	if next == nil {
		return nil, true
	}
	return next, false
}

func (e *Engine) settleRoundWagers() {
	all := make([]*Seat, 0, len(e.seats))
	for _, s := range e.seats {
		all = append(all, s)
	}
	e.potsLocked().calcPotsFromRoundWagers(all)
	for _, s := range all {
		s.collectRoundWager()
	}
}

// potsLocked returns a pointer to the potManager, which is kept as a value
// field on Engine; it exists only to keep the call-site above readable.
func (e *Engine) potsLocked() *potManager { return &e.pots }

func (e *Engine) dealCommunityForPhase() {
	n := 0
	switch e.phase {
	case Flop:
		e.deck.Burn()
		n = 3
	case Turn, River:
		e.deck.Burn()
		n = 1
	}
	if n == 0 {
		return
	}
	cards, ok := e.deck.Deal(n)
	if ok {
		e.community = append(e.community, cards...)
	}
}

// runOutAndSettle deals any remaining community cards with no further
// betting and resolves the pot. When only one contender is left (a fold
// win), no further community cards are dealt.
func (e *Engine) runOutAndSettle() (*SettlementResult, error) {
	e.settleRoundWagers()
	for e.contendersRemaining() >= 2 && len(e.community) < 5 && e.phase < Showdown {
		e.phase++
		e.dealCommunityForPhase()
	}
	e.phase = Showdown
	result, err := e.settle()
	if err != nil {
		return nil, err
	}
	e.phase = HandComplete
	e.lastSettlement = result
	return result, nil
}
