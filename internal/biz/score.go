package biz

import (
	"context"
	"time"

	"github.com/yola1107/kratos/v2/log"
)

// RecordRepo is the persistence contract for rounds and match summaries. All
// list results come back in the stated order; the engine depends on it.
type RecordRepo interface {
	// ListPlayerRounds returns every round the player sat in, ordered by time
	// played.
	ListPlayerRounds(ctx context.Context, playerID string) ([]*RoundRecord, error)
	// ListMatchRounds returns a match's rounds ordered by round index.
	ListMatchRounds(ctx context.Context, matchID string) ([]*RoundRecord, error)
	// ListPlayerMatches returns the player's finished matches ordered by start
	// time.
	ListPlayerMatches(ctx context.Context, playerID string) ([]*MatchSummary, error)
	// GetMatch returns the finished summary for matchID, or nil when the match
	// is still open.
	GetMatch(ctx context.Context, matchID string) (*MatchSummary, error)
	SaveRound(ctx context.Context, r *RoundRecord) error
	UpdateRound(ctx context.Context, r *RoundRecord) error
	SaveMatch(ctx context.Context, m *MatchSummary) error
	UpdateMatch(ctx context.Context, m *MatchSummary) error
}

// StatsCache holds computed PlayerStatistics projections. A miss is (nil, nil).
type StatsCache interface {
	Get(ctx context.Context, playerID string) (*PlayerStatistics, error)
	Set(ctx context.Context, st *PlayerStatistics) error
	Drop(ctx context.Context, playerIDs ...string) error
}

// ScoreUsecase orchestrates resolution, scoring, persistence and the derived
// aggregates. Anything downstream of an edited round is always re-derived in
// full, never patched.
type ScoreUsecase struct {
	repo  RecordRepo
	cache StatsCache
	log   *log.Helper
}

// NewScoreUsecase new a Score usecase.
func NewScoreUsecase(repo RecordRepo, cache StatsCache, logger log.Logger) *ScoreUsecase {
	return &ScoreUsecase{repo: repo, cache: cache, log: log.NewHelper(logger)}
}

// RecordRound resolves and scores one round inside sess, persists it, and
// returns the stored record together with the match's running score.
func (uc *ScoreUsecase) RecordRound(ctx context.Context, sess *MatchSession, in *RoundInput) (*RoundRecord, ScoreTriple, error) {
	if err := in.Validate(); err != nil {
		return nil, ScoreTriple{}, err
	}
	landlord, baseStake, err := ResolveBids(in.Bids)
	if err != nil {
		return nil, ScoreTriple{}, err
	}

	prior, err := uc.repo.ListMatchRounds(ctx, sess.MatchID)
	if err != nil {
		return nil, ScoreTriple{}, err
	}

	firstBidder := in.FirstBidder
	if firstBidder == SeatUnknown {
		firstBidder = FirstBidder(len(prior), sess.Starter)
	}

	deltas := ApplyMultipliers(baseStake, Modifiers{
		Landlord:    landlord,
		BombCount:   in.BombCount,
		Spring:      in.Spring,
		Doubles:     in.Doubles,
		LandlordWon: in.LandlordWon,
	})

	rec := &RoundRecord{
		MatchID:     sess.MatchID,
		RoundIndex:  len(prior),
		Players:     sess.Players,
		Landlord:    landlord,
		Bids:        in.Bids,
		Doubles:     in.Doubles,
		BombCount:   in.BombCount,
		Spring:      in.Spring,
		LandlordWon: in.LandlordWon,
		Deltas:      deltas,
		Outcomes:    outcomesOf(deltas),
		FirstBidder: firstBidder,
		PlayedAt:    time.Now(),
	}
	if err := uc.repo.SaveRound(ctx, rec); err != nil {
		return nil, ScoreTriple{}, err
	}
	uc.dropStats(ctx, sess.Players)

	seq, _ := FoldMatch(append(prior, rec))
	return rec, seq[len(seq)-1], nil
}

// EditRound replaces round roundIndex of a persisted match and recomputes
// everything downstream: the deltas, the whole score sequence, the summary if
// the match is already finished, and the three players' statistic projections.
// A stored first bidder is kept unless the input names a new one; the rotation
// formula never overwrites it.
func (uc *ScoreUsecase) EditRound(ctx context.Context, matchID string, roundIndex int, in *RoundInput) (*RoundRecord, *MatchSummary, error) {
	if err := in.Validate(); err != nil {
		return nil, nil, err
	}
	landlord, baseStake, err := ResolveBids(in.Bids)
	if err != nil {
		return nil, nil, err
	}

	rounds, err := uc.repo.ListMatchRounds(ctx, matchID)
	if err != nil {
		return nil, nil, err
	}
	if roundIndex < 0 || roundIndex >= len(rounds) {
		return nil, nil, ErrRoundNotFound(matchID, roundIndex)
	}

	rec := rounds[roundIndex]
	rec.Landlord = landlord
	rec.Bids = in.Bids
	rec.Doubles = in.Doubles
	rec.BombCount = in.BombCount
	rec.Spring = in.Spring
	rec.LandlordWon = in.LandlordWon
	rec.Deltas = ApplyMultipliers(baseStake, Modifiers{
		Landlord:    landlord,
		BombCount:   in.BombCount,
		Spring:      in.Spring,
		Doubles:     in.Doubles,
		LandlordWon: in.LandlordWon,
	})
	rec.Outcomes = outcomesOf(rec.Deltas)
	if in.FirstBidder != SeatUnknown {
		rec.FirstBidder = in.FirstBidder
	}

	if err := uc.repo.UpdateRound(ctx, rec); err != nil {
		return nil, nil, err
	}

	_, sum := FoldMatch(rounds)
	if old, err := uc.repo.GetMatch(ctx, matchID); err != nil {
		return nil, nil, err
	} else if old != nil {
		sum.StartedAt = old.StartedAt
		sum.EndedAt = old.EndedAt
		if err := uc.repo.UpdateMatch(ctx, sum); err != nil {
			return nil, nil, err
		}
	}

	uc.dropStats(ctx, rec.Players)
	return rec, sum, nil
}

// FinishMatch folds the session's rounds into a final summary and persists it.
// A match with no rounds is discarded: nothing is saved and nil comes back.
func (uc *ScoreUsecase) FinishMatch(ctx context.Context, sess *MatchSession) (*MatchSummary, error) {
	rounds, err := uc.repo.ListMatchRounds(ctx, sess.MatchID)
	if err != nil {
		return nil, err
	}
	if len(rounds) == 0 {
		uc.log.WithContext(ctx).Infof("discarding empty match %s", sess.MatchID)
		return nil, nil
	}

	_, sum := FoldMatch(rounds)
	sum.MatchID = sess.MatchID
	sum.Players = sess.Players
	sum.StartedAt = sess.StartedAt
	sum.EndedAt = time.Now()
	if err := uc.repo.SaveMatch(ctx, sum); err != nil {
		return nil, err
	}
	uc.dropStats(ctx, sess.Players)
	return sum, nil
}

// MatchScore folds a match on demand and returns the full running score
// sequence with the aggregate.
func (uc *ScoreUsecase) MatchScore(ctx context.Context, matchID string) ([]ScoreTriple, *MatchSummary, error) {
	rounds, err := uc.repo.ListMatchRounds(ctx, matchID)
	if err != nil {
		return nil, nil, err
	}
	if len(rounds) == 0 {
		return nil, nil, ErrMatchNotFound(matchID)
	}
	seq, sum := FoldMatch(rounds)
	return seq, sum, nil
}

// Statistics returns the cached projection when present, otherwise replays the
// player's full history. Cache writes are best effort; a failed write only
// costs the next caller a recompute.
func (uc *ScoreUsecase) Statistics(ctx context.Context, playerID string) (*PlayerStatistics, error) {
	if st, err := uc.cache.Get(ctx, playerID); err != nil {
		uc.log.WithContext(ctx).Warnf("stats cache read for %s: %v", playerID, err)
	} else if st != nil {
		return st, nil
	}

	rounds, err := uc.repo.ListPlayerRounds(ctx, playerID)
	if err != nil {
		return nil, err
	}
	matches, err := uc.repo.ListPlayerMatches(ctx, playerID)
	if err != nil {
		return nil, err
	}

	st := ComputeStatistics(playerID, rounds, matches)
	if err := uc.cache.Set(ctx, st); err != nil {
		uc.log.WithContext(ctx).Warnf("stats cache write for %s: %v", playerID, err)
	}
	return st, nil
}

func (uc *ScoreUsecase) dropStats(ctx context.Context, players [SeatCount]string) {
	if err := uc.cache.Drop(ctx, players[:]...); err != nil {
		uc.log.WithContext(ctx).Warnf("stats cache drop: %v", err)
	}
}
