package biz

import (
	"time"
)

// SeatCount is the table size. The game is strictly three-handed: one landlord
// against two farmers.
const SeatCount = 3

// Seat indexes one of the three chairs at the table, 0 through 2.
type Seat int

// Valid reports whether s is one of the three chairs.
func (s Seat) Valid() bool { return s >= 0 && s < SeatCount }

// SeatUnknown marks an unset seat value, e.g. a round input that leaves the
// first bidder to the rotation formula.
const SeatUnknown Seat = -1

// Bid is one seat's call during the auction.
type Bid int

const (
	BidNone Bid = iota
	BidOne
	BidTwo
	BidThree
)

// Valid reports whether b is inside the auction domain.
func (b Bid) Valid() bool { return b >= BidNone && b <= BidThree }

// Outcome classifies a signed point delta. It is carried next to the delta and
// never re-derived from presentation tags.
type Outcome int8

const (
	OutcomeNeutral Outcome = iota
	OutcomeWin
	OutcomeLoss
)

// OutcomeOf classifies a point delta by sign.
func OutcomeOf(delta int64) Outcome {
	switch {
	case delta > 0:
		return OutcomeWin
	case delta < 0:
		return OutcomeLoss
	default:
		return OutcomeNeutral
	}
}

// RoundInput carries the raw table entry for one round. It lives only for the
// duration of resolution; the persisted shape is RoundRecord.
type RoundInput struct {
	Bids        [SeatCount]Bid
	Doubles     [SeatCount]bool
	BombCount   int
	Spring      bool
	LandlordWon bool
	// FirstBidder is the seat that opened the auction. SeatUnknown lets the
	// caller's rotation pick it.
	FirstBidder Seat
}

// Validate checks the modifier domain before any scoring math runs. Violations
// are caller contract errors, not user-facing auction validation.
func (in *RoundInput) Validate() error {
	if in.BombCount < 0 || in.BombCount > MaxBombCount {
		return ErrInvalidModifier("bomb count %d outside [0,%d]", in.BombCount, MaxBombCount)
	}
	for seat, b := range in.Bids {
		if !b.Valid() {
			return ErrInvalidModifier("seat %d bid %d outside auction domain", seat, b)
		}
	}
	if in.FirstBidder != SeatUnknown && !in.FirstBidder.Valid() {
		return ErrInvalidModifier("first bidder seat %d out of range", in.FirstBidder)
	}
	return nil
}

// RoundRecord is the persisted, resolved outcome of one round. Once stored it
// only changes through the explicit edit-and-recompute path of ScoreUsecase.
type RoundRecord struct {
	ID          int64
	MatchID     string
	RoundIndex  int
	Players     [SeatCount]string
	Landlord    Seat
	Bids        [SeatCount]Bid
	Doubles     [SeatCount]bool
	BombCount   int
	Spring      bool
	LandlordWon bool
	Deltas      [SeatCount]int64
	Outcomes    [SeatCount]Outcome
	// FirstBidder is the recorded live sequence and wins over the rotation
	// formula; legacy rows without it default to seat 0.
	FirstBidder Seat
	PlayedAt    time.Time
}

// SeatOf returns the chair playerID occupied in this round.
func (r *RoundRecord) SeatOf(playerID string) (Seat, bool) {
	for seat, id := range r.Players {
		if id == playerID {
			return Seat(seat), true
		}
	}
	return SeatUnknown, false
}
