package exchangev1

import "fmt"

// Side identifies which half of the book an offer belongs to.
type Side uint8

const (
	// Bid is a buy offer, escrowed in currency.
	Bid Side = iota
	// Ask is a sell offer, backed by reserved custodied shares.
	Ask
)

// Opposite returns the side an incoming offer matches against.
func (s Side) Opposite() Side {
	if s == Bid {
		return Ask
	}
	return Bid
}

// IsValid reports whether s is one of the two known sides.
func (s Side) IsValid() bool {
	return s == Bid || s == Ask
}

func (s Side) String() string {
	switch s {
	case Bid:
		return "bid"
	case Ask:
		return "ask"
	default:
		return fmt.Sprintf("side(%d)", uint8(s))
	}
}
