// Package protocol defines the JSON message format exchanged between the
// controller and the device over the signaling WebSocket.
package protocol

import (
	"github.com/pion/webrtc/v4"
)

// Kind identifies the payload shape of a Message. It travels in the "msg"
// field of every frame.
type Kind string

// Message kinds. The set is closed.
const (
	KindProperty  Kind = "property"  // name + scalar value, both directions
	KindStream    Kind = "stream"    // streaming on/off toggle
	KindAnswer    Kind = "answer"    // SDP answer
	KindCandidate Kind = "candidate" // trickled ICE candidate
)

// KindField is the name of the discriminator field on the wire.
const KindField = "msg"

// Valid reports whether k belongs to the closed set of message kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindProperty, KindStream, KindAnswer, KindCandidate:
		return true
	}
	return false
}

// Message is one decoded frame. Only the fields belonging to Kind are
// meaningful; Encode writes exactly those.
type Message struct {
	Kind Kind

	// property
	Name  string
	Value Value // nil when the frame carried no scalar value

	// stream
	State bool

	// answer
	SDP string

	// candidate
	Candidate webrtc.ICECandidateInit
}

// Property builds a property message.
func Property(name string, value Value) *Message {
	return &Message{Kind: KindProperty, Name: name, Value: value}
}

// Stream builds a stream toggle message.
func Stream(state bool) *Message {
	return &Message{Kind: KindStream, State: state}
}

// Answer builds an SDP answer message.
func Answer(sdp string) *Message {
	return &Message{Kind: KindAnswer, SDP: sdp}
}

// Candidate builds an ICE candidate message.
func Candidate(c webrtc.ICECandidateInit) *Message {
	return &Message{Kind: KindCandidate, Candidate: c}
}
