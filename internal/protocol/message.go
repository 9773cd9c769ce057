package protocol

import (
	"fmt"
	"peer-bidding/internal/biddingerrors"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Command tags a message exchanged between peers
type Command string

const (
	CmdSendMessageLocally Command = "SEND_MESSAGE_LOCALLY"
	CmdPeerPlacePrice     Command = "PEER_PLACE_PRICE"
	CmdError              Command = "ERROR"
)

// Known reports whether c is one of the commands this node understands
func (c Command) Known() bool {
	switch c {
	case CmdSendMessageLocally, CmdPeerPlacePrice, CmdError:
		return true
	default:
		return false
	}
}

// SwarmMessage is the envelope written to every peer connection.
// Data stays raw until the command is known so unknown payloads are never decoded.
type SwarmMessage struct {
	Command Command             `json:"command"`
	Data    jsoniter.RawMessage `json:"data"`
}

// PlacePricePayload is the data of a PEER_PLACE_PRICE message
type PlacePricePayload struct {
	SellerID string     `json:"sellerId,omitempty"`
	ItemID   string     `json:"itemId"`
	Price    PriceInput `json:"price"`
}

// PriceInput holds a price exactly as the sender typed it.
// Both JSON strings and JSON numbers are accepted.
type PriceInput string

// UnmarshalJSON keeps the literal text of numbers and the content of strings
func (p *PriceInput) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*p = PriceInput(s)
		return nil
	}
	if raw == "null" {
		*p = ""
		return nil
	}
	*p = PriceInput(raw)
	return nil
}

// Encode builds the wire form of a command and its payload
func Encode(cmd Command, data any) ([]byte, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("protocol: encode %s payload: %w", cmd, err)
	}
	out, err := json.Marshal(SwarmMessage{Command: cmd, Data: payload})
	if err != nil {
		return nil, fmt.Errorf("protocol: encode %s: %w", cmd, err)
	}
	return out, nil
}

// Decode parses the envelope only; payloads are decoded by the handler of the command
func Decode(raw []byte) (SwarmMessage, error) {
	if len(strings.TrimSpace(string(raw))) == 0 {
		return SwarmMessage{}, fmt.Errorf("protocol: %w: empty frame", biddingerrors.ErrMalformedMessage)
	}
	var msg SwarmMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return SwarmMessage{}, fmt.Errorf("protocol: %w: %v", biddingerrors.ErrMalformedMessage, err)
	}
	if msg.Command == "" {
		return SwarmMessage{}, fmt.Errorf("protocol: %w: missing command", biddingerrors.ErrMalformedMessage)
	}
	return msg, nil
}

// Text decodes a display-string payload
func (m SwarmMessage) Text() (string, error) {
	var s string
	if err := json.Unmarshal(m.Data, &s); err != nil {
		return "", fmt.Errorf("protocol: %w: %s payload is not a string", biddingerrors.ErrMalformedMessage, m.Command)
	}
	return s, nil
}

// PlacePrice decodes a PEER_PLACE_PRICE payload
func (m SwarmMessage) PlacePrice() (PlacePricePayload, error) {
	var p PlacePricePayload
	if err := json.Unmarshal(m.Data, &p); err != nil {
		return PlacePricePayload{}, fmt.Errorf("protocol: %w: %v", biddingerrors.ErrMalformedMessage, err)
	}
	return p, nil
}
