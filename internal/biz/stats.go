package biz

// RoleStats is a win tally restricted to one role. WinRate is a percentage in
// [0,100]; an empty role reads as 0, never NaN.
type RoleStats struct {
	Rounds  int     `json:"rounds"`
	Wins    int     `json:"wins"`
	WinRate float64 `json:"winRate"`
}

// StreakStats tracks consecutive same-sign results. A zero delta is neither a
// win nor a loss and resets both counters; that is deliberate policy, a push
// breaks the run.
type StreakStats struct {
	CurrentWins   int `json:"currentWins"`
	CurrentLosses int `json:"currentLosses"`
	LongestWins   int `json:"longestWins"`
	LongestLosses int `json:"longestLosses"`
}

func (s *StreakStats) observe(out Outcome) {
	switch out {
	case OutcomeWin:
		s.CurrentWins++
		s.CurrentLosses = 0
		if s.CurrentWins > s.LongestWins {
			s.LongestWins = s.CurrentWins
		}
	case OutcomeLoss:
		s.CurrentLosses++
		s.CurrentWins = 0
		if s.CurrentLosses > s.LongestLosses {
			s.LongestLosses = s.CurrentLosses
		}
	default:
		s.CurrentWins = 0
		s.CurrentLosses = 0
	}
}

// Milestone is an extreme of the continuous cross-match running score together
// with the 0-based index (within the player's own round sequence) where it was
// first reached. Round -1 means the zero starting state was never beaten.
type Milestone struct {
	Value int64 `json:"value"`
	Round int   `json:"round"`
}

// PlayerStatistics is a projection over one player's full ordered history. It
// is recomputed from scratch on demand and cached, never patched in place.
type PlayerStatistics struct {
	PlayerID string `json:"playerId"`

	Rounds  int     `json:"rounds"`
	Wins    int     `json:"wins"`
	Losses  int     `json:"losses"`
	WinRate float64 `json:"winRate"`

	Landlord RoleStats `json:"landlord"`
	Farmer   RoleStats `json:"farmer"`

	// BidCounts tallies the player's own call, indexed by Bid, over the rounds
	// the player opened the auction in.
	BidCounts [4]int `json:"bidCounts"`

	// Springs counts swept wins as landlord; SprungAgainst the mirror as
	// farmer.
	Springs       int `json:"springs"`
	SprungAgainst int `json:"sprungAgainst"`

	DoubledRounds  int     `json:"doubledRounds"`
	DoubledWins    int     `json:"doubledWins"`
	DoubledWinRate float64 `json:"doubledWinRate"`

	RoundStreaks StreakStats `json:"roundStreaks"`
	MatchStreaks StreakStats `json:"matchStreaks"`

	BestRoundDelta  int64 `json:"bestRoundDelta"`
	WorstRoundDelta int64 `json:"worstRoundDelta"`

	Matches         int     `json:"matches"`
	MatchWins       int     `json:"matchWins"`
	MatchLosses     int     `json:"matchLosses"`
	MatchWinRate    float64 `json:"matchWinRate"`
	BestMatchScore  int64   `json:"bestMatchScore"`
	WorstMatchScore int64   `json:"worstMatchScore"`

	// BestSnapshot and WorstSnapshot are the single highest and lowest running
	// totals the player touched within any one match.
	BestSnapshot  int64 `json:"bestSnapshot"`
	WorstSnapshot int64 `json:"worstSnapshot"`

	// Peak and Trough track the running score concatenated across all matches,
	// ignoring match boundaries.
	Peak   Milestone `json:"peak"`
	Trough Milestone `json:"trough"`
}

// ComputeStatistics replays a player's complete history: rounds ordered by
// time played and match summaries ordered by match start. Records the player
// did not sit in are skipped, and legacy records degrade to zero-value
// defaults rather than aborting the aggregate; this function never fails.
func ComputeStatistics(playerID string, rounds []*RoundRecord, matches []*MatchSummary) *PlayerStatistics {
	st := &PlayerStatistics{
		PlayerID: playerID,
		Peak:     Milestone{Round: -1},
		Trough:   Milestone{Round: -1},
	}

	var running int64
	for _, r := range rounds {
		seat, ok := r.SeatOf(playerID)
		if !ok {
			continue
		}
		delta := r.Deltas[seat]
		out := OutcomeOf(delta)

		st.Rounds++
		switch out {
		case OutcomeWin:
			st.Wins++
		case OutcomeLoss:
			st.Losses++
		}

		if seat == r.Landlord {
			st.Landlord.Rounds++
			if out == OutcomeWin {
				st.Landlord.Wins++
			}
			if r.Spring && r.LandlordWon {
				st.Springs++
			}
		} else {
			st.Farmer.Rounds++
			if out == OutcomeWin {
				st.Farmer.Wins++
			}
			if r.Spring && r.LandlordWon {
				st.SprungAgainst++
			}
		}

		if seat == r.FirstBidder {
			if b := r.Bids[seat]; b.Valid() {
				st.BidCounts[b]++
			}
		}

		if r.Doubles[seat] {
			st.DoubledRounds++
			if out == OutcomeWin {
				st.DoubledWins++
			}
		}

		st.RoundStreaks.observe(out)

		if delta > st.BestRoundDelta {
			st.BestRoundDelta = delta
		}
		if delta < st.WorstRoundDelta {
			st.WorstRoundDelta = delta
		}

		running += delta
		if running > st.Peak.Value {
			st.Peak = Milestone{Value: running, Round: st.Rounds - 1}
		}
		if running < st.Trough.Value {
			st.Trough = Milestone{Value: running, Round: st.Rounds - 1}
		}
	}

	for _, m := range matches {
		seat, ok := m.SeatOf(playerID)
		if !ok {
			continue
		}
		final := m.Final[seat]
		out := OutcomeOf(final)

		st.Matches++
		switch out {
		case OutcomeWin:
			st.MatchWins++
		case OutcomeLoss:
			st.MatchLosses++
		}
		st.MatchStreaks.observe(out)

		if final > st.BestMatchScore {
			st.BestMatchScore = final
		}
		if final < st.WorstMatchScore {
			st.WorstMatchScore = final
		}
		if m.MaxScores[seat] > st.BestSnapshot {
			st.BestSnapshot = m.MaxScores[seat]
		}
		if m.MinScores[seat] < st.WorstSnapshot {
			st.WorstSnapshot = m.MinScores[seat]
		}
	}

	st.WinRate = rate(st.Wins, st.Rounds)
	st.Landlord.WinRate = rate(st.Landlord.Wins, st.Landlord.Rounds)
	st.Farmer.WinRate = rate(st.Farmer.Wins, st.Farmer.Rounds)
	st.DoubledWinRate = rate(st.DoubledWins, st.DoubledRounds)
	st.MatchWinRate = rate(st.MatchWins, st.Matches)
	return st
}

// rate divides with a zero guard so an empty denominator reads as 0%, not NaN.
func rate(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}
