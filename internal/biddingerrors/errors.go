package biddingerrors

import "errors"

// Validation errors
var (
	ErrInvalidPrice      = errors.New("invalid price")
	ErrItemAlreadyExists = errors.New("you already created bid for this item")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidTopic      = errors.New("invalid room topic")
)

// Authorization errors
var (
	ErrNotOwner          = errors.New("user does not own item")
	ErrSelfBidNotAllowed = errors.New("you cannot place price for your own bid")
)

// State errors
var (
	ErrItemNotFound = errors.New("this item doesn't exist")
	ErrBidClosed    = errors.New("this bid is closed already")
	ErrPriceTooLow  = errors.New("price is equal to or lower than the current price")
)

// Transport errors
var (
	ErrPeerNotFound = errors.New("peer not found")
	ErrNotJoined    = errors.New("not joined to a room")
)

// Protocol errors
var (
	ErrUnknownCommand   = errors.New("unknown command")
	ErrMalformedMessage = errors.New("malformed message")
)

// Kind groups errors by how they are reported.
type Kind string

const (
	KindValidation    Kind = "validation"
	KindAuthorization Kind = "authorization"
	KindState         Kind = "state"
	KindTransport     Kind = "transport"
	KindProtocol      Kind = "protocol"
	KindUnknown       Kind = "unknown"
)

var kinds = []struct {
	err  error
	kind Kind
}{
	{ErrInvalidPrice, KindValidation},
	{ErrItemAlreadyExists, KindValidation},
	{ErrInvalidInput, KindValidation},
	{ErrInvalidTopic, KindValidation},
	{ErrNotOwner, KindAuthorization},
	{ErrSelfBidNotAllowed, KindAuthorization},
	{ErrItemNotFound, KindState},
	{ErrBidClosed, KindState},
	{ErrPriceTooLow, KindState},
	{ErrPeerNotFound, KindTransport},
	{ErrNotJoined, KindTransport},
	{ErrUnknownCommand, KindProtocol},
	{ErrMalformedMessage, KindProtocol},
}

// KindOf returns the taxonomy bucket of err, or KindUnknown.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return KindUnknown
}
