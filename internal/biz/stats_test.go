package biz

import "testing"

// annAt builds a round with "ann" seated at seat and the given personal delta.
// The counter-deltas land on the next seat; statistics only ever reads ann's.
func annAt(seat Seat, delta int64) *RoundRecord {
	var players [SeatCount]string
	others := []string{"bo", "cia"}
	for s := Seat(0); s < SeatCount; s++ {
		if s == seat {
			players[s] = "ann"
		} else {
			players[s] = others[0]
			others = others[1:]
		}
	}
	var deltas [SeatCount]int64
	deltas[seat] = delta
	deltas[(seat+1)%SeatCount] = -delta

	return &RoundRecord{
		MatchID:     "m1",
		Players:     players,
		Landlord:    (seat + 1) % SeatCount,
		Deltas:      deltas,
		Outcomes:    outcomesOf(deltas),
		FirstBidder: (seat + 2) % SeatCount,
	}
}

func TestComputeStatisticsStreaks(t *testing.T) {
	deltas := []int64{50, 30, -10, 20, 0, 5}
	rounds := make([]*RoundRecord, 0, len(deltas))
	for _, d := range deltas {
		rounds = append(rounds, annAt(0, d))
	}

	st := ComputeStatistics("ann", rounds, nil)
	if st.Rounds != 6 || st.Wins != 4 || st.Losses != 1 {
		t.Fatalf("totals = %d/%d/%d, want 6/4/1", st.Rounds, st.Wins, st.Losses)
	}
	s := st.RoundStreaks
	if s.CurrentWins != 1 || s.CurrentLosses != 0 {
		t.Fatalf("current streaks = %d/%d, want 1/0", s.CurrentWins, s.CurrentLosses)
	}
	if s.LongestWins != 2 || s.LongestLosses != 1 {
		t.Fatalf("longest streaks = %d/%d, want 2/1", s.LongestWins, s.LongestLosses)
	}
}

func TestComputeStatisticsTieResetsBothStreaks(t *testing.T) {
	rounds := []*RoundRecord{
		annAt(0, 100), annAt(0, 100), annAt(0, 100),
		annAt(0, 0),
	}
	st := ComputeStatistics("ann", rounds, nil)
	if st.RoundStreaks.CurrentWins != 0 || st.RoundStreaks.CurrentLosses != 0 {
		t.Fatalf("streaks after tie = %d/%d, want 0/0",
			st.RoundStreaks.CurrentWins, st.RoundStreaks.CurrentLosses)
	}
	if st.RoundStreaks.LongestWins != 3 {
		t.Fatalf("longest wins = %d, want 3", st.RoundStreaks.LongestWins)
	}
}

func TestComputeStatisticsRoleSplit(t *testing.T) {
	landlordWin := annAt(0, 200)
	landlordWin.Landlord = 0

	landlordLoss := annAt(0, -200)
	landlordLoss.Landlord = 0

	farmerWin := annAt(1, 100)
	farmerWin.Landlord = 0

	st := ComputeStatistics("ann", []*RoundRecord{landlordWin, landlordLoss, farmerWin}, nil)
	if st.Landlord.Rounds != 2 || st.Landlord.Wins != 1 {
		t.Fatalf("landlord split = %d/%d, want 2/1", st.Landlord.Rounds, st.Landlord.Wins)
	}
	if st.Landlord.WinRate != 50 {
		t.Fatalf("landlord win rate = %v, want 50", st.Landlord.WinRate)
	}
	if st.Farmer.Rounds != 1 || st.Farmer.Wins != 1 || st.Farmer.WinRate != 100 {
		t.Fatalf("farmer split = %d/%d (%v%%), want 1/1 (100%%)",
			st.Farmer.Rounds, st.Farmer.Wins, st.Farmer.WinRate)
	}
}

func TestComputeStatisticsBidDistribution(t *testing.T) {
	opened := annAt(0, 100)
	opened.FirstBidder = 0
	opened.Bids[0] = BidThree

	openedPass := annAt(0, -50)
	openedPass.FirstBidder = 0
	openedPass.Bids[0] = BidNone

	// Ann bid two here but did not open; the distribution must ignore it.
	notOpened := annAt(0, 100)
	notOpened.FirstBidder = 1
	notOpened.Bids[0] = BidTwo

	st := ComputeStatistics("ann", []*RoundRecord{opened, openedPass, notOpened}, nil)
	if got, want := st.BidCounts, [4]int{1, 0, 0, 1}; got != want {
		t.Fatalf("bidCounts = %v, want %v", got, want)
	}
}

func TestComputeStatisticsSprings(t *testing.T) {
	sprung := annAt(0, 400)
	sprung.Landlord = 0
	sprung.Spring = true
	sprung.LandlordWon = true

	sprungAgainst := annAt(1, -400)
	sprungAgainst.Landlord = 0
	sprungAgainst.Spring = true
	sprungAgainst.LandlordWon = true

	// A spring the landlord lost favours nobody's sweep count.
	failedSpring := annAt(0, -400)
	failedSpring.Landlord = 0
	failedSpring.Spring = true
	failedSpring.LandlordWon = false

	st := ComputeStatistics("ann", []*RoundRecord{sprung, sprungAgainst, failedSpring}, nil)
	if st.Springs != 1 {
		t.Fatalf("springs = %d, want 1", st.Springs)
	}
	if st.SprungAgainst != 1 {
		t.Fatalf("sprungAgainst = %d, want 1", st.SprungAgainst)
	}
}

func TestComputeStatisticsDoubled(t *testing.T) {
	doubledWin := annAt(0, 200)
	doubledWin.Doubles[0] = true

	doubledLoss := annAt(0, -200)
	doubledLoss.Doubles[0] = true

	plain := annAt(0, 100)

	st := ComputeStatistics("ann", []*RoundRecord{doubledWin, doubledLoss, plain}, nil)
	if st.DoubledRounds != 2 || st.DoubledWins != 1 {
		t.Fatalf("doubled = %d/%d, want 2/1", st.DoubledRounds, st.DoubledWins)
	}
	if st.DoubledWinRate != 50 {
		t.Fatalf("doubled win rate = %v, want 50", st.DoubledWinRate)
	}
}

func TestComputeStatisticsMilestones(t *testing.T) {
	deltas := []int64{200, -500, 400, -50}
	rounds := make([]*RoundRecord, 0, len(deltas))
	for _, d := range deltas {
		rounds = append(rounds, annAt(0, d))
	}

	st := ComputeStatistics("ann", rounds, nil)
	if st.BestRoundDelta != 400 || st.WorstRoundDelta != -500 {
		t.Fatalf("round extremes = %d/%d, want 400/-500", st.BestRoundDelta, st.WorstRoundDelta)
	}
	// Running: 200, -300, 100, 50. Peak 200 at round 0, trough -300 at round 1.
	if st.Peak != (Milestone{Value: 200, Round: 0}) {
		t.Fatalf("peak = %+v, want {200 0}", st.Peak)
	}
	if st.Trough != (Milestone{Value: -300, Round: 1}) {
		t.Fatalf("trough = %+v, want {-300 1}", st.Trough)
	}
}

func TestComputeStatisticsMatches(t *testing.T) {
	matches := []*MatchSummary{
		{
			MatchID: "m1", Players: [SeatCount]string{"ann", "bo", "cia"},
			Final:     ScoreTriple{300, -200, -100},
			MaxScores: ScoreTriple{500, 0, 0},
			MinScores: ScoreTriple{-100, -300, -200},
		},
		{
			MatchID: "m2", Players: [SeatCount]string{"bo", "ann", "cia"},
			Final:     ScoreTriple{200, -600, 400},
			MaxScores: ScoreTriple{300, 100, 400},
			MinScores: ScoreTriple{0, -900, -50},
		},
		{
			MatchID: "m3", Players: [SeatCount]string{"ann", "bo", "cia"},
			Final:     ScoreTriple{0, 100, -100},
			MaxScores: ScoreTriple{200, 150, 0},
			MinScores: ScoreTriple{-20, 0, -150},
		},
	}

	st := ComputeStatistics("ann", nil, matches)
	if st.Matches != 3 || st.MatchWins != 1 || st.MatchLosses != 1 {
		t.Fatalf("match totals = %d/%d/%d, want 3/1/1", st.Matches, st.MatchWins, st.MatchLosses)
	}
	if st.BestMatchScore != 300 || st.WorstMatchScore != -600 {
		t.Fatalf("match extremes = %d/%d, want 300/-600", st.BestMatchScore, st.WorstMatchScore)
	}
	if st.BestSnapshot != 500 || st.WorstSnapshot != -900 {
		t.Fatalf("snapshots = %d/%d, want 500/-900", st.BestSnapshot, st.WorstSnapshot)
	}
	// Win then loss then tie: the tie clears both counters.
	if st.MatchStreaks.CurrentWins != 0 || st.MatchStreaks.CurrentLosses != 0 {
		t.Fatalf("match streaks = %+v, want cleared", st.MatchStreaks)
	}
	if st.MatchStreaks.LongestWins != 1 || st.MatchStreaks.LongestLosses != 1 {
		t.Fatalf("longest match streaks = %+v, want 1/1", st.MatchStreaks)
	}
}

func TestComputeStatisticsEmptyHistory(t *testing.T) {
	st := ComputeStatistics("ann", nil, nil)
	if st.WinRate != 0 || st.Landlord.WinRate != 0 || st.Farmer.WinRate != 0 ||
		st.DoubledWinRate != 0 || st.MatchWinRate != 0 {
		t.Fatalf("empty history produced nonzero rates: %+v", st)
	}
	if st.Peak.Round != -1 || st.Trough.Round != -1 {
		t.Fatalf("empty history milestones = %+v/%+v, want round -1", st.Peak, st.Trough)
	}
}

func TestComputeStatisticsSkipsForeignRecords(t *testing.T) {
	foreign := annAt(0, 500)
	foreign.Players = [SeatCount]string{"dee", "bo", "cia"}

	st := ComputeStatistics("ann", []*RoundRecord{foreign, annAt(0, 100)}, nil)
	if st.Rounds != 1 || st.Wins != 1 {
		t.Fatalf("totals = %d/%d, want 1/1 after skipping foreign record", st.Rounds, st.Wins)
	}
}
