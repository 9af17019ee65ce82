package biz

import (
	"math/rand"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	_simMatches        = 200
	_simRoundsPerMatch = 50
)

func init() {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.ErrorLevel)
	cfg.DisableStacktrace = true
	logger, _ := cfg.Build()
	zap.ReplaceGlobals(logger)
}

// TestSimulatedMatches drives random auctions and modifiers through the whole
// scoring path and checks the structural invariants that must survive any
// input: resolved rounds are zero-sum, folds are exact prefix sums, and the
// statistics replay agrees with the per-round tallies.
func TestSimulatedMatches(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	players := [SeatCount]string{"ann", "bo", "cia"}

	var allRounds []*RoundRecord
	var summaries []*MatchSummary

	for m := 0; m < _simMatches; m++ {
		starter := Seat(rng.Intn(SeatCount))
		var rounds []*RoundRecord

		for len(rounds) < _simRoundsPerMatch {
			var bids [SeatCount]Bid
			for s := 0; s < SeatCount; s++ {
				bids[s] = Bid(rng.Intn(4))
			}
			landlord, stake, err := ResolveBids(bids)
			if err != nil {
				continue // void auction, redeal
			}

			mods := Modifiers{
				Landlord:    landlord,
				BombCount:   rng.Intn(MaxBombCount + 1),
				Spring:      rng.Intn(8) == 0,
				LandlordWon: rng.Intn(2) == 0,
			}
			for s := 0; s < SeatCount; s++ {
				mods.Doubles[s] = rng.Intn(4) == 0
			}

			deltas := ApplyMultipliers(stake, mods)
			if sum := deltas[0] + deltas[1] + deltas[2]; sum != 0 {
				t.Fatalf("match %d round %d: deltas %v sum to %d", m, len(rounds), deltas, sum)
			}

			rounds = append(rounds, &RoundRecord{
				MatchID:     "sim",
				RoundIndex:  len(rounds),
				Players:     players,
				Landlord:    landlord,
				Bids:        bids,
				Doubles:     mods.Doubles,
				BombCount:   mods.BombCount,
				Spring:      mods.Spring,
				LandlordWon: mods.LandlordWon,
				Deltas:      deltas,
				Outcomes:    outcomesOf(deltas),
				FirstBidder: FirstBidder(len(rounds), starter),
			})
		}

		seq, sum := FoldMatch(rounds)
		var running ScoreTriple
		for i, r := range rounds {
			running = running.Add(r.Deltas)
			if seq[i] != running {
				t.Fatalf("match %d: seq[%d] = %v, want prefix sum %v", m, i, seq[i], running)
			}
		}
		if sum.Final != running {
			t.Fatalf("match %d: final %v != last prefix %v", m, sum.Final, running)
		}
		for s := 0; s < SeatCount; s++ {
			if sum.MaxScores[s] < 0 || sum.MinScores[s] > 0 {
				t.Fatalf("match %d seat %d: extremes %d/%d exclude the zero start",
					m, s, sum.MaxScores[s], sum.MinScores[s])
			}
			if sum.MaxScores[s] < sum.Final[s] || sum.MinScores[s] > sum.Final[s] {
				t.Fatalf("match %d seat %d: final %d escapes extremes %d/%d",
					m, s, sum.Final[s], sum.MinScores[s], sum.MaxScores[s])
			}
		}

		// Fold again; the result must be identical.
		seq2, sum2 := FoldMatch(rounds)
		for i := range seq {
			if seq[i] != seq2[i] {
				t.Fatalf("match %d: fold not deterministic at %d", m, i)
			}
		}
		if *sum2 != *sum {
			t.Fatalf("match %d: fold summary not deterministic", m)
		}

		allRounds = append(allRounds, rounds...)
		summaries = append(summaries, sum)
	}

	for _, p := range players {
		st := ComputeStatistics(p, allRounds, summaries)
		if st.Rounds != len(allRounds) {
			t.Fatalf("%s: rounds = %d, want %d", p, st.Rounds, len(allRounds))
		}
		if st.Wins+st.Losses > st.Rounds {
			t.Fatalf("%s: wins %d + losses %d exceed rounds %d", p, st.Wins, st.Losses, st.Rounds)
		}
		if st.Landlord.Rounds+st.Farmer.Rounds != st.Rounds {
			t.Fatalf("%s: role split %d+%d != %d", p, st.Landlord.Rounds, st.Farmer.Rounds, st.Rounds)
		}
		if st.BestRoundDelta < 0 || st.WorstRoundDelta > 0 {
			t.Fatalf("%s: round extremes %d/%d cross zero the wrong way", p, st.BestRoundDelta, st.WorstRoundDelta)
		}
		if st.RoundStreaks.LongestWins < st.RoundStreaks.CurrentWins ||
			st.RoundStreaks.LongestLosses < st.RoundStreaks.CurrentLosses {
			t.Fatalf("%s: current streak exceeds longest: %+v", p, st.RoundStreaks)
		}
		if st.Peak.Value < st.Trough.Value {
			t.Fatalf("%s: peak %d below trough %d", p, st.Peak.Value, st.Trough.Value)
		}
	}

	zap.L().Info("simulation complete",
		zap.Int("rounds", len(allRounds)),
		zap.Int("matches", len(summaries)))
}
