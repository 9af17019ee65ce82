package service

import (
	"testing"

	"scorekeeper/internal/biz"
)

func TestRoundPayloadToInput(t *testing.T) {
	opener := 2
	p := &RoundPayload{
		Bids:        [3]int{0, 2, 3},
		Doubles:     [3]bool{false, true, false},
		BombCount:   2,
		Spring:      true,
		LandlordWon: true,
		FirstBidder: &opener,
	}

	in := p.toInput()
	if in.Bids != ([biz.SeatCount]biz.Bid{biz.BidNone, biz.BidTwo, biz.BidThree}) {
		t.Fatalf("bids = %v", in.Bids)
	}
	if !in.Doubles[1] || in.Doubles[0] || in.Doubles[2] {
		t.Fatalf("doubles = %v", in.Doubles)
	}
	if in.BombCount != 2 || !in.Spring || !in.LandlordWon {
		t.Fatalf("modifiers = %+v", in)
	}
	if in.FirstBidder != 2 {
		t.Fatalf("first bidder = %d, want 2", in.FirstBidder)
	}
}

func TestRoundPayloadDefaultsFirstBidder(t *testing.T) {
	p := &RoundPayload{Bids: [3]int{1, 0, 0}}
	if in := p.toInput(); in.FirstBidder != biz.SeatUnknown {
		t.Fatalf("first bidder = %d, want unset", in.FirstBidder)
	}
}

func TestPercentRounding(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{in: 0, want: 0},
		{in: 100, want: 100},
		{in: 1.0 / 3.0 * 100, want: 33.33},
		{in: 2.0 / 3.0 * 100, want: 66.67},
	}
	for _, tt := range tests {
		if got := percent(tt.in); got != tt.want {
			t.Fatalf("percent(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
