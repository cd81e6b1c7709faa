/*
 * MIT License
 *
 * Copyright (c) 2024 The Loadforge Authors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package protocol defines the control-link message envelopes exchanged
// between a client-manager and the controller, built on top of the
// wire package's typed value encoding.
package protocol

import (
	"fmt"

	libwire "github.com/nabbar/loadforge/wire"
)

// Kind identifies a message's type; it is the first element of every
// top-level sequence on the wire.
type Kind int64

const (
	KindClientManagerHello Kind = iota + 1
	KindHelloResponse
	KindStartClientRequest
	KindStartClientResponse
	KindStopClientRequest
	KindStopClientResponse
	KindServerShutdown
)

func (k Kind) String() string {
	switch k {
	case KindClientManagerHello:
		return "ClientManagerHello"
	case KindHelloResponse:
		return "HelloResponse"
	case KindStartClientRequest:
		return "StartClientRequest"
	case KindStartClientResponse:
		return "StartClientResponse"
	case KindStopClientRequest:
		return "StopClientRequest"
	case KindStopClientResponse:
		return "StopClientResponse"
	case KindServerShutdown:
		return "ServerShutdown"
	default:
		return fmt.Sprintf("Kind(%d)", int64(k))
	}
}

// Message is the decoded envelope shared by every message kind: a type
// tag, a message ID, and a type-specific body (§4.2).
type Message struct {
	Kind Kind
	ID   int64
	Body libwire.Value
}

// Encode renders the message as its top-level wire sequence.
func (m Message) Encode() libwire.Value {
	return libwire.Seq(libwire.Int(int64(m.Kind)), libwire.Int(m.ID), m.Body)
}

// Decode parses a top-level wire sequence into a Message.
func Decode(v libwire.Value) (Message, error) {
	if v.Tag != libwire.TagSequence || len(v.Seq) != 3 {
		return Message{}, fmt.Errorf("protocol: malformed envelope: expected a 3-element sequence")
	}
	if v.Seq[0].Tag != libwire.TagInt || v.Seq[1].Tag != libwire.TagInt {
		return Message{}, fmt.Errorf("protocol: malformed envelope: kind and id must be integers")
	}

	return Message{
		Kind: Kind(v.Seq[0].I),
		ID:   v.Seq[1].I,
		Body: v.Seq[2],
	}, nil
}

// IDSequence hands out strictly increasing, step-2 message IDs from a
// configurable starting parity (manager-originated start at 1/odd,
// controller-originated start at 2/even — see DESIGN.md §Open Questions).
type IDSequence struct {
	next int64
}

// NewIDSequence returns a sequence starting at start (1 for a manager,
// 2 for a controller) and incrementing by 2 on every call to Next.
func NewIDSequence(start int64) *IDSequence {
	return &IDSequence{next: start}
}

// Next returns the next ID and advances the sequence by 2.
func (s *IDSequence) Next() int64 {
	id := s.next
	s.next += 2
	return id
}
