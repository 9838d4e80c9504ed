package protocol

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pion/webrtc/v4"
)

var (
	// ErrMalformedMessage is returned by Decode for frames that are not a
	// JSON object with a string discriminator.
	ErrMalformedMessage = errors.New("malformed message")

	// ErrMissingKind is returned by Decode for JSON objects without a "msg" field.
	ErrMissingKind = errors.New("message has no kind")

	// ErrUnknownKind is returned by Encode for kinds outside the closed set.
	ErrUnknownKind = errors.New("unknown message kind")
)

// Encode serializes a Message into a flat JSON object: the "msg"
// discriminator followed by exactly the payload fields of its kind.
func Encode(msg *Message) ([]byte, error) {
	switch msg.Kind {
	case KindProperty:
		return json.Marshal(struct {
			Kind  Kind   `json:"msg"`
			Name  string `json:"name"`
			Value Value  `json:"value"`
		}{msg.Kind, msg.Name, msg.Value})

	case KindStream:
		return json.Marshal(struct {
			Kind  Kind `json:"msg"`
			State bool `json:"state"`
		}{msg.Kind, msg.State})

	case KindAnswer:
		return json.Marshal(struct {
			Kind Kind   `json:"msg"`
			SDP  string `json:"sdp"`
		}{msg.Kind, msg.SDP})

	case KindCandidate:
		return json.Marshal(struct {
			Kind      Kind                    `json:"msg"`
			Candidate webrtc.ICECandidateInit `json:"candidate"`
		}{msg.Kind, msg.Candidate})
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, msg.Kind)
}

// Decode parses a frame. Payload fields are read leniently: a missing or
// mistyped field leaves the zero value (a nil Value for "value") instead of
// rejecting the message. Unknown kinds decode successfully so the caller can
// decide how to route them.
func Decode(data []byte) (*Message, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}

	rawKind, ok := fields[KindField]
	if !ok {
		return nil, ErrMissingKind
	}

	var kind string
	if err := json.Unmarshal(rawKind, &kind); err != nil {
		return nil, fmt.Errorf("%w: %q is not a string", ErrMalformedMessage, KindField)
	}

	msg := &Message{Kind: Kind(kind)}

	switch msg.Kind {
	case KindProperty:
		_ = json.Unmarshal(fields["name"], &msg.Name)
		msg.Value = decodeValue(fields["value"])
	case KindStream:
		_ = json.Unmarshal(fields["state"], &msg.State)
	case KindAnswer:
		_ = json.Unmarshal(fields["sdp"], &msg.SDP)
	case KindCandidate:
		_ = json.Unmarshal(fields["candidate"], &msg.Candidate)
	}

	return msg, nil
}
