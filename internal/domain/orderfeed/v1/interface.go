package orderfeedv1

import (
	"context"

	"github.com/segmentio/kafka-go"
)

// RequestType discriminates the operations carried on the offer feed.
type RequestType string

const (
	// RequestTypePost places a new offer.
	RequestTypePost RequestType = "post"
	// RequestTypeCancel cancels a resting offer by its exact tuple.
	RequestTypeCancel RequestType = "cancel"
	// RequestTypeWithdraw pays out the caller's whole escrow balance.
	RequestTypeWithdraw RequestType = "withdraw"
)

// OfferRequest is the wire payload for a single exchange operation.
type OfferRequest struct {
	Type          RequestType `json:"type"`
	Account       string      `json:"account"`
	Side          uint8       `json:"side"`
	Price         int64       `json:"price"`
	Quantity      int64       `json:"quantity"`
	AttachedValue int64       `json:"attachedValue"`
	Offset        int64       `json:"-"` // position in the stream, set by the reader
}

// Reader defines the interface for consuming offer requests.
type Reader interface {
	// ReadMessage reads a message and returns it with the parsed request.
	ReadMessage(ctx context.Context) (kafka.Message, *OfferRequest, error)
	// SetOffset sets the offset for the reader.
	SetOffset(offset int64) error
	// Close closes the reader.
	Close() error
}
