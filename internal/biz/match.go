package biz

import "time"

// ScoreTriple is the running cumulative score of the three seats within one
// match.
type ScoreTriple [SeatCount]int64

// Add returns the triple advanced by one round's deltas.
func (t ScoreTriple) Add(deltas [SeatCount]int64) ScoreTriple {
	for seat, d := range deltas {
		t[seat] += d
	}
	return t
}

// MatchSummary is the per-match aggregate. It is finalized when the match ends
// and only rewritten through the edit-and-recompute path.
type MatchSummary struct {
	MatchID    string
	Players    [SeatCount]string
	Final      ScoreTriple
	TotalGames int
	// MaxScores and MinScores are the snapshot extremes: the highest and
	// lowest running total each seat touched, the zero state before round one
	// included.
	MaxScores   ScoreTriple
	MinScores   ScoreTriple
	FirstBidder Seat
	StartedAt   time.Time
	EndedAt     time.Time
}

// SeatOf returns the chair playerID occupied in this match.
func (m *MatchSummary) SeatOf(playerID string) (Seat, bool) {
	for seat, id := range m.Players {
		if id == playerID {
			return Seat(seat), true
		}
	}
	return SeatUnknown, false
}

// MatchSession is the caller-owned context of the match being scored. The
// engine keeps no table state of its own; every call receives the session it
// should score against as an immutable snapshot.
type MatchSession struct {
	MatchID string
	Players [SeatCount]string
	// Starter is the seat that opened round one; the rotation derives every
	// later default from it.
	Starter   Seat
	StartedAt time.Time
}

// FirstBidder computes which seat opens the auction for the given round of a
// match whose first round was opened by starter. Stored round records win
// over this formula; it is the default for new rounds and the fallback for
// legacy records that predate the stored field.
func FirstBidder(roundIndex int, starter Seat) Seat {
	return Seat((roundIndex + int(starter)) % SeatCount)
}

// FoldMatch replays rounds in order and produces the running score sequence
// plus the match aggregate. The returned summary carries no session metadata;
// callers stamp match identity and timestamps. An empty slice folds to an
// all-zero summary, which callers discard rather than persist.
func FoldMatch(rounds []*RoundRecord) ([]ScoreTriple, *MatchSummary) {
	sum := &MatchSummary{TotalGames: len(rounds)}
	if len(rounds) > 0 {
		sum.MatchID = rounds[0].MatchID
		sum.Players = rounds[0].Players
		sum.FirstBidder = rounds[0].FirstBidder
	}

	seq := make([]ScoreTriple, 0, len(rounds))
	var running ScoreTriple
	for _, r := range rounds {
		running = running.Add(r.Deltas)
		seq = append(seq, running)
		for seat := 0; seat < SeatCount; seat++ {
			if running[seat] > sum.MaxScores[seat] {
				sum.MaxScores[seat] = running[seat]
			}
			if running[seat] < sum.MinScores[seat] {
				sum.MinScores[seat] = running[seat]
			}
		}
	}
	sum.Final = running
	return seq, sum
}
