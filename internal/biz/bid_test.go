package biz

import (
	"testing"

	"github.com/yola1107/kratos/v2/errors"
)

func TestResolveBids(t *testing.T) {
	tests := []struct {
		name         string
		bids         [SeatCount]Bid
		wantLandlord Seat
		wantStake    int64
	}{
		{name: "single bid of one", bids: [SeatCount]Bid{BidOne, BidNone, BidNone}, wantLandlord: 0, wantStake: 100},
		{name: "single bid of two", bids: [SeatCount]Bid{BidNone, BidTwo, BidNone}, wantLandlord: 1, wantStake: 200},
		{name: "single bid of three", bids: [SeatCount]Bid{BidNone, BidNone, BidThree}, wantLandlord: 2, wantStake: 300},
		{name: "three beats two", bids: [SeatCount]Bid{BidTwo, BidThree, BidOne}, wantLandlord: 1, wantStake: 300},
		{name: "lower tie is irrelevant", bids: [SeatCount]Bid{BidThree, BidTwo, BidTwo}, wantLandlord: 0, wantStake: 300},
		{name: "lower tie of ones is irrelevant", bids: [SeatCount]Bid{BidOne, BidTwo, BidOne}, wantLandlord: 1, wantStake: 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			landlord, stake, err := ResolveBids(tt.bids)
			if err != nil {
				t.Fatalf("ResolveBids(%v) error: %v", tt.bids, err)
			}
			if landlord != tt.wantLandlord || stake != tt.wantStake {
				t.Fatalf("ResolveBids(%v) = (%d, %d), want (%d, %d)",
					tt.bids, landlord, stake, tt.wantLandlord, tt.wantStake)
			}
		})
	}
}

func TestResolveBidsAmbiguous(t *testing.T) {
	tests := []struct {
		name      string
		bids      [SeatCount]Bid
		wantLevel Bid
	}{
		{name: "two seats at two", bids: [SeatCount]Bid{BidTwo, BidTwo, BidNone}, wantLevel: BidTwo},
		{name: "two seats at three", bids: [SeatCount]Bid{BidThree, BidThree, BidOne}, wantLevel: BidThree},
		{name: "all three at one", bids: [SeatCount]Bid{BidOne, BidOne, BidOne}, wantLevel: BidOne},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ResolveBids(tt.bids)
			if err == nil {
				t.Fatalf("ResolveBids(%v) succeeded, want ambiguous bid error", tt.bids)
			}
			if reason := errors.Reason(err); reason != ReasonAmbiguousBid {
				t.Fatalf("reason = %s, want %s", reason, ReasonAmbiguousBid)
			}
			level, ok := AmbiguousLevel(err)
			if !ok || level != tt.wantLevel {
				t.Fatalf("AmbiguousLevel = (%d, %v), want (%d, true)", level, ok, tt.wantLevel)
			}
		})
	}
}

func TestResolveBidsNoBid(t *testing.T) {
	_, _, err := ResolveBids([SeatCount]Bid{BidNone, BidNone, BidNone})
	if err == nil {
		t.Fatal("all-pass auction succeeded, want no-bid error")
	}
	if reason := errors.Reason(err); reason != ReasonNoBid {
		t.Fatalf("reason = %s, want %s", reason, ReasonNoBid)
	}
}

func TestResolveBidsIsPure(t *testing.T) {
	bids := [SeatCount]Bid{BidThree, BidTwo, BidTwo}
	l1, s1, err1 := ResolveBids(bids)
	l2, s2, err2 := ResolveBids(bids)
	if l1 != l2 || s1 != s2 || (err1 == nil) != (err2 == nil) {
		t.Fatalf("ResolveBids not deterministic: (%d,%d,%v) vs (%d,%d,%v)", l1, s1, err1, l2, s2, err2)
	}
}
