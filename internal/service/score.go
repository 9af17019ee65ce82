package service

import (
	"context"

	"scorekeeper/internal/biz"

	"github.com/shopspring/decimal"
	"github.com/yola1107/kratos/v2/log"
)

// ScoreService is the request/reply surface over the scoring usecase.
type ScoreService struct {
	uc  *biz.ScoreUsecase
	log *log.Helper
}

// NewScoreService new a Score service.
func NewScoreService(uc *biz.ScoreUsecase, logger log.Logger) *ScoreService {
	return &ScoreService{uc: uc, log: log.NewHelper(logger)}
}

// RoundPayload is one round's table entry, shared by record and edit requests.
type RoundPayload struct {
	Bids        [3]int  `json:"bids"`
	Doubles     [3]bool `json:"doubles"`
	BombCount   int     `json:"bombCount"`
	Spring      bool    `json:"spring"`
	LandlordWon bool    `json:"landlordWon"`
	// FirstBidder overrides the rotation default when present.
	FirstBidder *int `json:"firstBidder,omitempty"`
}

func (p *RoundPayload) toInput() *biz.RoundInput {
	in := &biz.RoundInput{
		BombCount:   p.BombCount,
		Spring:      p.Spring,
		LandlordWon: p.LandlordWon,
		FirstBidder: biz.SeatUnknown,
	}
	for i := 0; i < 3; i++ {
		in.Bids[i] = biz.Bid(p.Bids[i])
		in.Doubles[i] = p.Doubles[i]
	}
	if p.FirstBidder != nil {
		in.FirstBidder = biz.Seat(*p.FirstBidder)
	}
	return in
}

// SessionPayload names the match a request is scoring against.
type SessionPayload struct {
	MatchID   string    `json:"matchId"`
	Players   [3]string `json:"players"`
	Starter   int       `json:"starter"`
	StartedAt int64     `json:"startedAt"` // unix seconds
}

func (p *SessionPayload) toSession() *biz.MatchSession {
	return &biz.MatchSession{
		MatchID:   p.MatchID,
		Players:   p.Players,
		Starter:   biz.Seat(p.Starter),
		StartedAt: unixOrNow(p.StartedAt),
	}
}

type RecordRoundRequest struct {
	Session SessionPayload `json:"session"`
	Round   RoundPayload   `json:"round"`
}

type RoundReply struct {
	ID          int64    `json:"id"`
	MatchID     string   `json:"matchId"`
	RoundIndex  int      `json:"roundIndex"`
	Landlord    int      `json:"landlord"`
	FirstBidder int      `json:"firstBidder"`
	Deltas      [3]int64 `json:"deltas"`
	Outcomes    [3]int8  `json:"outcomes"`
	Running     [3]int64 `json:"running"`
}

func newRoundReply(rec *biz.RoundRecord, running biz.ScoreTriple) *RoundReply {
	reply := &RoundReply{
		ID:          rec.ID,
		MatchID:     rec.MatchID,
		RoundIndex:  rec.RoundIndex,
		Landlord:    int(rec.Landlord),
		FirstBidder: int(rec.FirstBidder),
	}
	for i := 0; i < 3; i++ {
		reply.Deltas[i] = rec.Deltas[i]
		reply.Outcomes[i] = int8(rec.Outcomes[i])
		reply.Running[i] = running[i]
	}
	return reply
}

// RecordRound scores one round and persists it.
func (s *ScoreService) RecordRound(ctx context.Context, req *RecordRoundRequest) (*RoundReply, error) {
	rec, running, err := s.uc.RecordRound(ctx, req.Session.toSession(), req.Round.toInput())
	if err != nil {
		return nil, err
	}
	return newRoundReply(rec, running), nil
}

type EditRoundRequest struct {
	MatchID    string       `json:"matchId"`
	RoundIndex int          `json:"roundIndex"`
	Round      RoundPayload `json:"round"`
}

type EditRoundReply struct {
	Round   *RoundReply        `json:"round"`
	Summary *MatchSummaryReply `json:"summary,omitempty"`
}

// EditRound rewrites a historical round and recomputes the match downstream.
func (s *ScoreService) EditRound(ctx context.Context, req *EditRoundRequest) (*EditRoundReply, error) {
	rec, sum, err := s.uc.EditRound(ctx, req.MatchID, req.RoundIndex, req.Round.toInput())
	if err != nil {
		return nil, err
	}
	return &EditRoundReply{
		Round:   newRoundReply(rec, sum.Final),
		Summary: newMatchSummaryReply(sum),
	}, nil
}

type FinishMatchRequest struct {
	Session SessionPayload `json:"session"`
}

type MatchSummaryReply struct {
	MatchID     string    `json:"matchId"`
	Players     [3]string `json:"players"`
	Final       [3]int64  `json:"final"`
	TotalGames  int       `json:"totalGames"`
	MaxScores   [3]int64  `json:"maxScores"`
	MinScores   [3]int64  `json:"minScores"`
	FirstBidder int       `json:"firstBidder"`
	// Discarded marks an empty match that was dropped instead of saved.
	Discarded bool `json:"discarded,omitempty"`
}

func newMatchSummaryReply(m *biz.MatchSummary) *MatchSummaryReply {
	if m == nil {
		return nil
	}
	return &MatchSummaryReply{
		MatchID:     m.MatchID,
		Players:     m.Players,
		Final:       [3]int64(m.Final),
		TotalGames:  m.TotalGames,
		MaxScores:   [3]int64(m.MaxScores),
		MinScores:   [3]int64(m.MinScores),
		FirstBidder: int(m.FirstBidder),
	}
}

// FinishMatch finalizes the session's summary. An empty match comes back
// flagged as discarded.
func (s *ScoreService) FinishMatch(ctx context.Context, req *FinishMatchRequest) (*MatchSummaryReply, error) {
	sum, err := s.uc.FinishMatch(ctx, req.Session.toSession())
	if err != nil {
		return nil, err
	}
	if sum == nil {
		return &MatchSummaryReply{MatchID: req.Session.MatchID, Discarded: true}, nil
	}
	return newMatchSummaryReply(sum), nil
}

type MatchScoreReply struct {
	Scores  [][3]int64         `json:"scores"`
	Summary *MatchSummaryReply `json:"summary"`
}

// MatchScore folds a match on demand.
func (s *ScoreService) MatchScore(ctx context.Context, matchID string) (*MatchScoreReply, error) {
	seq, sum, err := s.uc.MatchScore(ctx, matchID)
	if err != nil {
		return nil, err
	}
	reply := &MatchScoreReply{
		Scores:  make([][3]int64, 0, len(seq)),
		Summary: newMatchSummaryReply(sum),
	}
	for _, t := range seq {
		reply.Scores = append(reply.Scores, [3]int64(t))
	}
	return reply, nil
}

// PlayerStatisticsReply flattens the projection for transport; percentages are
// rounded to two decimals.
type PlayerStatisticsReply struct {
	PlayerID string `json:"playerId"`

	Rounds  int     `json:"rounds"`
	Wins    int     `json:"wins"`
	Losses  int     `json:"losses"`
	WinRate float64 `json:"winRate"`

	LandlordRounds  int     `json:"landlordRounds"`
	LandlordWins    int     `json:"landlordWins"`
	LandlordWinRate float64 `json:"landlordWinRate"`
	FarmerRounds    int     `json:"farmerRounds"`
	FarmerWins      int     `json:"farmerWins"`
	FarmerWinRate   float64 `json:"farmerWinRate"`

	BidCounts [4]int `json:"bidCounts"`

	Springs       int `json:"springs"`
	SprungAgainst int `json:"sprungAgainst"`

	DoubledRounds  int     `json:"doubledRounds"`
	DoubledWins    int     `json:"doubledWins"`
	DoubledWinRate float64 `json:"doubledWinRate"`

	RoundStreaks biz.StreakStats `json:"roundStreaks"`
	MatchStreaks biz.StreakStats `json:"matchStreaks"`

	BestRoundDelta  int64 `json:"bestRoundDelta"`
	WorstRoundDelta int64 `json:"worstRoundDelta"`

	Matches         int     `json:"matches"`
	MatchWins       int     `json:"matchWins"`
	MatchLosses     int     `json:"matchLosses"`
	MatchWinRate    float64 `json:"matchWinRate"`
	BestMatchScore  int64   `json:"bestMatchScore"`
	WorstMatchScore int64   `json:"worstMatchScore"`
	BestSnapshot    int64   `json:"bestSnapshot"`
	WorstSnapshot   int64   `json:"worstSnapshot"`

	Peak   biz.Milestone `json:"peak"`
	Trough biz.Milestone `json:"trough"`
}

// PlayerStatistics returns the player's aggregate projection.
func (s *ScoreService) PlayerStatistics(ctx context.Context, playerID string) (*PlayerStatisticsReply, error) {
	st, err := s.uc.Statistics(ctx, playerID)
	if err != nil {
		return nil, err
	}
	return &PlayerStatisticsReply{
		PlayerID:        st.PlayerID,
		Rounds:          st.Rounds,
		Wins:            st.Wins,
		Losses:          st.Losses,
		WinRate:         percent(st.WinRate),
		LandlordRounds:  st.Landlord.Rounds,
		LandlordWins:    st.Landlord.Wins,
		LandlordWinRate: percent(st.Landlord.WinRate),
		FarmerRounds:    st.Farmer.Rounds,
		FarmerWins:      st.Farmer.Wins,
		FarmerWinRate:   percent(st.Farmer.WinRate),
		BidCounts:       st.BidCounts,
		Springs:         st.Springs,
		SprungAgainst:   st.SprungAgainst,
		DoubledRounds:   st.DoubledRounds,
		DoubledWins:     st.DoubledWins,
		DoubledWinRate:  percent(st.DoubledWinRate),
		RoundStreaks:    st.RoundStreaks,
		MatchStreaks:    st.MatchStreaks,
		BestRoundDelta:  st.BestRoundDelta,
		WorstRoundDelta: st.WorstRoundDelta,
		Matches:         st.Matches,
		MatchWins:       st.MatchWins,
		MatchLosses:     st.MatchLosses,
		MatchWinRate:    percent(st.MatchWinRate),
		BestMatchScore:  st.BestMatchScore,
		WorstMatchScore: st.WorstMatchScore,
		BestSnapshot:    st.BestSnapshot,
		WorstSnapshot:   st.WorstSnapshot,
		Peak:            st.Peak,
		Trough:          st.Trough,
	}, nil
}

func percent(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
