package bridge

import (
	"encoding/json"
	"errors"
	"fmt"
)

// MessageType tags an envelope crossing the surface boundary.
type MessageType string

// MsgProviders is the only message type the surface is expected to post.
const MsgProviders MessageType = "PROVIDERS"

// Envelope is the tagged message posted by the search surface. The payload is
// kept raw so the host can validate it before any domain logic consumes it.
type Envelope struct {
	Type MessageType     `json:"type"`
	Data json.RawMessage `json:"data"`
}

// RawProvider is one untrusted provider entry as the surface reports it.
type RawProvider struct {
	Name    string   `json:"name"`
	Address string   `json:"address"`
	Rating  *float64 `json:"rating,omitempty"`
	Lat     *float64 `json:"lat,omitempty"`
	Lng     *float64 `json:"lng,omitempty"`
}

// Common errors for inbound message validation.
var (
	ErrUnknownMessageType = errors.New("unknown bridge message type")
	ErrInvalidPayload     = errors.New("bridge message payload is not a provider list")
)

// decodeMessage validates one inbound message. Anything other than a
// well-formed PROVIDERS envelope with an array payload is rejected.
func decodeMessage(raw []byte) ([]RawProvider, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("failed to decode bridge envelope: %w", err)
	}

	if env.Type != MsgProviders {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMessageType, env.Type)
	}

	var providers []RawProvider
	if err := json.Unmarshal(env.Data, &providers); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}

	return providers, nil
}
