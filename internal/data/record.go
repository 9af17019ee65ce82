package data

import (
	"context"
	"time"

	"scorekeeper/internal/biz"

	"github.com/yola1107/kratos/v2/log"
)

// roundRow is the rounds table. Seat-indexed values are flattened into one
// column per chair so the table stays queryable without JSON decoding.
type roundRow struct {
	ID          int64     `xorm:"'id' pk autoincr"`
	MatchID     string    `xorm:"'match_id' varchar(64) index notnull"`
	RoundIndex  int       `xorm:"'round_index' notnull"`
	PlayerA     string    `xorm:"'player_a' varchar(64) index"`
	PlayerB     string    `xorm:"'player_b' varchar(64) index"`
	PlayerC     string    `xorm:"'player_c' varchar(64) index"`
	Landlord    int       `xorm:"'landlord'"`
	BidA        int       `xorm:"'bid_a'"`
	BidB        int       `xorm:"'bid_b'"`
	BidC        int       `xorm:"'bid_c'"`
	DoubledA    bool      `xorm:"'doubled_a'"`
	DoubledB    bool      `xorm:"'doubled_b'"`
	DoubledC    bool      `xorm:"'doubled_c'"`
	BombCount   int       `xorm:"'bomb_count'"`
	Spring      bool      `xorm:"'spring'"`
	LandlordWon bool      `xorm:"'landlord_won'"`
	DeltaA      int64     `xorm:"'delta_a'"`
	DeltaB      int64     `xorm:"'delta_b'"`
	DeltaC      int64     `xorm:"'delta_c'"`
	OutcomeA    int8      `xorm:"'outcome_a'"`
	OutcomeB    int8      `xorm:"'outcome_b'"`
	OutcomeC    int8      `xorm:"'outcome_c'"`
	FirstBidder int       `xorm:"'first_bidder'"`
	PlayedAt    time.Time `xorm:"'played_at' index"`
}

func (roundRow) TableName() string { return "score_rounds" }

// matchRow is the finished-match table.
type matchRow struct {
	MatchID     string    `xorm:"'match_id' pk varchar(64)"`
	PlayerA     string    `xorm:"'player_a' varchar(64) index"`
	PlayerB     string    `xorm:"'player_b' varchar(64) index"`
	PlayerC     string    `xorm:"'player_c' varchar(64) index"`
	FinalA      int64     `xorm:"'final_a'"`
	FinalB      int64     `xorm:"'final_b'"`
	FinalC      int64     `xorm:"'final_c'"`
	TotalGames  int       `xorm:"'total_games'"`
	MaxA        int64     `xorm:"'max_a'"`
	MaxB        int64     `xorm:"'max_b'"`
	MaxC        int64     `xorm:"'max_c'"`
	MinA        int64     `xorm:"'min_a'"`
	MinB        int64     `xorm:"'min_b'"`
	MinC        int64     `xorm:"'min_c'"`
	FirstBidder int       `xorm:"'first_bidder'"`
	StartedAt   time.Time `xorm:"'started_at' index"`
	EndedAt     time.Time `xorm:"'ended_at'"`
}

func (matchRow) TableName() string { return "score_matches" }

func toRoundRow(r *biz.RoundRecord) *roundRow {
	return &roundRow{
		ID:          r.ID,
		MatchID:     r.MatchID,
		RoundIndex:  r.RoundIndex,
		PlayerA:     r.Players[0],
		PlayerB:     r.Players[1],
		PlayerC:     r.Players[2],
		Landlord:    int(r.Landlord),
		BidA:        int(r.Bids[0]),
		BidB:        int(r.Bids[1]),
		BidC:        int(r.Bids[2]),
		DoubledA:    r.Doubles[0],
		DoubledB:    r.Doubles[1],
		DoubledC:    r.Doubles[2],
		BombCount:   r.BombCount,
		Spring:      r.Spring,
		LandlordWon: r.LandlordWon,
		DeltaA:      r.Deltas[0],
		DeltaB:      r.Deltas[1],
		DeltaC:      r.Deltas[2],
		OutcomeA:    int8(r.Outcomes[0]),
		OutcomeB:    int8(r.Outcomes[1]),
		OutcomeC:    int8(r.Outcomes[2]),
		FirstBidder: int(r.FirstBidder),
		PlayedAt:    r.PlayedAt,
	}
}

func fromRoundRow(row *roundRow) *biz.RoundRecord {
	return &biz.RoundRecord{
		ID:          row.ID,
		MatchID:     row.MatchID,
		RoundIndex:  row.RoundIndex,
		Players:     [biz.SeatCount]string{row.PlayerA, row.PlayerB, row.PlayerC},
		Landlord:    biz.Seat(row.Landlord),
		Bids:        [biz.SeatCount]biz.Bid{biz.Bid(row.BidA), biz.Bid(row.BidB), biz.Bid(row.BidC)},
		Doubles:     [biz.SeatCount]bool{row.DoubledA, row.DoubledB, row.DoubledC},
		BombCount:   row.BombCount,
		Spring:      row.Spring,
		LandlordWon: row.LandlordWon,
		Deltas:      [biz.SeatCount]int64{row.DeltaA, row.DeltaB, row.DeltaC},
		Outcomes:    [biz.SeatCount]biz.Outcome{biz.Outcome(row.OutcomeA), biz.Outcome(row.OutcomeB), biz.Outcome(row.OutcomeC)},
		FirstBidder: biz.Seat(row.FirstBidder),
		PlayedAt:    row.PlayedAt,
	}
}

func toMatchRow(m *biz.MatchSummary) *matchRow {
	return &matchRow{
		MatchID:     m.MatchID,
		PlayerA:     m.Players[0],
		PlayerB:     m.Players[1],
		PlayerC:     m.Players[2],
		FinalA:      m.Final[0],
		FinalB:      m.Final[1],
		FinalC:      m.Final[2],
		TotalGames:  m.TotalGames,
		MaxA:        m.MaxScores[0],
		MaxB:        m.MaxScores[1],
		MaxC:        m.MaxScores[2],
		MinA:        m.MinScores[0],
		MinB:        m.MinScores[1],
		MinC:        m.MinScores[2],
		FirstBidder: int(m.FirstBidder),
		StartedAt:   m.StartedAt,
		EndedAt:     m.EndedAt,
	}
}

func fromMatchRow(row *matchRow) *biz.MatchSummary {
	return &biz.MatchSummary{
		MatchID:     row.MatchID,
		Players:     [biz.SeatCount]string{row.PlayerA, row.PlayerB, row.PlayerC},
		Final:       biz.ScoreTriple{row.FinalA, row.FinalB, row.FinalC},
		TotalGames:  row.TotalGames,
		MaxScores:   biz.ScoreTriple{row.MaxA, row.MaxB, row.MaxC},
		MinScores:   biz.ScoreTriple{row.MinA, row.MinB, row.MinC},
		FirstBidder: biz.Seat(row.FirstBidder),
		StartedAt:   row.StartedAt,
		EndedAt:     row.EndedAt,
	}
}

type recordRepo struct {
	data *Data
	log  *log.Helper
}

// NewRecordRepo .
func NewRecordRepo(data *Data, logger log.Logger) biz.RecordRepo {
	return &recordRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

func (r *recordRepo) ListPlayerRounds(ctx context.Context, playerID string) ([]*biz.RoundRecord, error) {
	rows := make([]roundRow, 0, 64)
	err := r.data.db.Context(ctx).
		Where("player_a = ? OR player_b = ? OR player_c = ?", playerID, playerID, playerID).
		Asc("played_at", "id").
		Find(&rows)
	if err != nil {
		return nil, err
	}
	out := make([]*biz.RoundRecord, 0, len(rows))
	for i := range rows {
		out = append(out, fromRoundRow(&rows[i]))
	}
	return out, nil
}

func (r *recordRepo) ListMatchRounds(ctx context.Context, matchID string) ([]*biz.RoundRecord, error) {
	rows := make([]roundRow, 0, 16)
	err := r.data.db.Context(ctx).
		Where("match_id = ?", matchID).
		Asc("round_index").
		Find(&rows)
	if err != nil {
		return nil, err
	}
	out := make([]*biz.RoundRecord, 0, len(rows))
	for i := range rows {
		out = append(out, fromRoundRow(&rows[i]))
	}
	return out, nil
}

func (r *recordRepo) ListPlayerMatches(ctx context.Context, playerID string) ([]*biz.MatchSummary, error) {
	rows := make([]matchRow, 0, 16)
	err := r.data.db.Context(ctx).
		Where("player_a = ? OR player_b = ? OR player_c = ?", playerID, playerID, playerID).
		Asc("started_at", "match_id").
		Find(&rows)
	if err != nil {
		return nil, err
	}
	out := make([]*biz.MatchSummary, 0, len(rows))
	for i := range rows {
		out = append(out, fromMatchRow(&rows[i]))
	}
	return out, nil
}

func (r *recordRepo) GetMatch(ctx context.Context, matchID string) (*biz.MatchSummary, error) {
	row := matchRow{MatchID: matchID}
	has, err := r.data.db.Context(ctx).Get(&row)
	if err != nil {
		return nil, err
	}
	if !has {
		return nil, nil
	}
	return fromMatchRow(&row), nil
}

func (r *recordRepo) SaveRound(ctx context.Context, rec *biz.RoundRecord) error {
	row := toRoundRow(rec)
	if _, err := r.data.db.Context(ctx).Insert(row); err != nil {
		return err
	}
	rec.ID = row.ID
	r.data.pub.RoundSaved(rec)
	return nil
}

func (r *recordRepo) UpdateRound(ctx context.Context, rec *biz.RoundRecord) error {
	row := toRoundRow(rec)
	// AllCols so cleared flags and zeroed deltas are written too.
	if _, err := r.data.db.Context(ctx).ID(row.ID).AllCols().Update(row); err != nil {
		return err
	}
	r.data.pub.RoundSaved(rec)
	return nil
}

func (r *recordRepo) SaveMatch(ctx context.Context, m *biz.MatchSummary) error {
	if _, err := r.data.db.Context(ctx).Insert(toMatchRow(m)); err != nil {
		return err
	}
	r.data.pub.MatchSaved(m)
	return nil
}

func (r *recordRepo) UpdateMatch(ctx context.Context, m *biz.MatchSummary) error {
	row := toMatchRow(m)
	if _, err := r.data.db.Context(ctx).ID(row.MatchID).AllCols().Update(row); err != nil {
		return err
	}
	r.data.pub.MatchSaved(m)
	return nil
}
