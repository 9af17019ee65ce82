package biz

// Each bid point is worth 100 base stake.
const stakePerBidPoint = 100

// ResolveBids picks the landlord from the three auction calls.
//
// Levels are scanned from three down to one. The first populated level
// decides: a single caller there becomes landlord with a base stake of 100 per
// bid point, while two or more callers tied there void the auction. Ties at
// lower levels never matter once a higher level resolves uniquely.
func ResolveBids(bids [SeatCount]Bid) (Seat, int64, error) {
	for level := BidThree; level >= BidOne; level-- {
		holder := SeatUnknown
		count := 0
		for seat, b := range bids {
			if b == level {
				holder = Seat(seat)
				count++
			}
		}
		switch {
		case count == 1:
			return holder, int64(level) * stakePerBidPoint, nil
		case count > 1:
			return SeatUnknown, 0, ErrAmbiguousBid(level)
		}
	}
	return SeatUnknown, 0, ErrNoBid()
}
