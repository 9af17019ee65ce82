package biz

import "fmt"

// MaxBombCount bounds the exponential bomb doubling so the stake stays far
// from int64 overflow.
const MaxBombCount = 10

// Modifiers are the stake modifiers of one resolved round.
type Modifiers struct {
	Landlord    Seat
	BombCount   int
	Spring      bool
	Doubles     [SeatCount]bool
	LandlordWon bool
}

// ApplyMultipliers turns a base stake into three signed point deltas.
//
// The order is load-bearing: bombs first, then spring, then the landlord's
// double, and only then each farmer's own double. A landlord double therefore
// inflates both farmer payments, while a farmer double affects that farmer
// alone. The landlord settles the sum of the two farmer payments, so the
// deltas cancel exactly.
//
// Modifiers are validated by the caller; an out-of-range value reaching this
// far is a programming error and panics.
func ApplyMultipliers(baseStake int64, m Modifiers) [SeatCount]int64 {
	if m.BombCount < 0 || m.BombCount > MaxBombCount {
		panic(fmt.Sprintf("biz: bomb count %d outside [0,%d]", m.BombCount, MaxBombCount))
	}
	if !m.Landlord.Valid() {
		panic(fmt.Sprintf("biz: landlord seat %d out of range", m.Landlord))
	}

	stake := baseStake * (1 << m.BombCount)
	if m.Spring {
		stake *= 2
	}
	if m.Doubles[m.Landlord] {
		stake *= 2
	}

	var deltas [SeatCount]int64
	var landlordTotal int64
	for seat := Seat(0); seat < SeatCount; seat++ {
		if seat == m.Landlord {
			continue
		}
		payment := stake
		if m.Doubles[seat] {
			payment *= 2
		}
		landlordTotal += payment
		if m.LandlordWon {
			deltas[seat] = -payment
		} else {
			deltas[seat] = payment
		}
	}
	if m.LandlordWon {
		deltas[m.Landlord] = landlordTotal
	} else {
		deltas[m.Landlord] = -landlordTotal
	}
	return deltas
}

// outcomesOf classifies all three deltas at once.
func outcomesOf(deltas [SeatCount]int64) [SeatCount]Outcome {
	var out [SeatCount]Outcome
	for seat, d := range deltas {
		out[seat] = OutcomeOf(d)
	}
	return out
}
