package biz

import (
	"fmt"
	"strconv"

	"github.com/yola1107/kratos/v2/errors"
)

// Error reasons exposed to callers. Auction failures must reach the end user
// verbatim so the table can re-prompt; they are never auto-resolved here.
const (
	ReasonNoBid           = "NO_BID"
	ReasonAmbiguousBid    = "AMBIGUOUS_BID"
	ReasonInvalidModifier = "INVALID_MODIFIER"
	ReasonRoundNotFound   = "ROUND_NOT_FOUND"
	ReasonMatchNotFound   = "MATCH_NOT_FOUND"
)

// ErrNoBid reports an auction where all three seats passed.
func ErrNoBid() *errors.Error {
	return errors.BadRequest(ReasonNoBid, "all three seats passed")
}

// ErrAmbiguousBid reports a tie at the highest populated bid level.
func ErrAmbiguousBid(level Bid) *errors.Error {
	return errors.BadRequest(ReasonAmbiguousBid,
		fmt.Sprintf("bid level %d is contested by more than one seat", level)).
		WithMetadata(map[string]string{"level": strconv.Itoa(int(level))})
}

// AmbiguousLevel extracts the contested level from an ErrAmbiguousBid.
func AmbiguousLevel(err error) (Bid, bool) {
	e := errors.FromError(err)
	if e == nil || e.Reason != ReasonAmbiguousBid {
		return BidNone, false
	}
	level, convErr := strconv.Atoi(e.Metadata["level"])
	if convErr != nil {
		return BidNone, false
	}
	return Bid(level), true
}

// ErrInvalidModifier reports an out-of-domain modifier. This is a programming
// contract violation by the caller, not user-recoverable input.
func ErrInvalidModifier(format string, args ...any) *errors.Error {
	return errors.InternalServer(ReasonInvalidModifier, fmt.Sprintf(format, args...))
}

// ErrRoundNotFound reports an edit aimed at a round index the match never had.
func ErrRoundNotFound(matchID string, index int) *errors.Error {
	return errors.NotFound(ReasonRoundNotFound,
		fmt.Sprintf("match %s has no round %d", matchID, index))
}

// ErrMatchNotFound reports a lookup for a match with no persisted rounds.
func ErrMatchNotFound(matchID string) *errors.Error {
	return errors.NotFound(ReasonMatchNotFound,
		fmt.Sprintf("match %s has no rounds", matchID))
}
