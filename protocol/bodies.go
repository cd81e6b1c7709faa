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

package protocol

import (
	"fmt"

	libwire "github.com/nabbar/loadforge/wire"
)

// ClientManagerHello is sent manager -> controller to open a session.
type ClientManagerHello struct {
	ClientVersion string
	ClientID      string
	MaxClients    int64
}

func NewClientManagerHello(id int64, h ClientManagerHello) Message {
	return Message{
		Kind: KindClientManagerHello,
		ID:   id,
		Body: libwire.Seq(libwire.Str(h.ClientVersion), libwire.Str(h.ClientID), libwire.Int(h.MaxClients)),
	}
}

func DecodeClientManagerHello(m Message) (ClientManagerHello, error) {
	if m.Kind != KindClientManagerHello {
		return ClientManagerHello{}, fmt.Errorf("protocol: expected ClientManagerHello, got %s", m.Kind)
	}
	b := m.Body
	if b.Tag != libwire.TagSequence || len(b.Seq) != 3 {
		return ClientManagerHello{}, fmt.Errorf("protocol: malformed ClientManagerHello body")
	}
	return ClientManagerHello{
		ClientVersion: b.Seq[0].S,
		ClientID:      b.Seq[1].S,
		MaxClients:    b.Seq[2].I,
	}, nil
}

// HelloResponse is sent controller -> manager in reply to a hello.
type HelloResponse struct {
	Code ResponseCode
	Text string
}

func NewHelloResponse(id int64, r HelloResponse) Message {
	return Message{
		Kind: KindHelloResponse,
		ID:   id,
		Body: libwire.Seq(libwire.Int(int64(r.Code)), libwire.Str(r.Text)),
	}
}

func DecodeHelloResponse(m Message) (HelloResponse, error) {
	if m.Kind != KindHelloResponse {
		return HelloResponse{}, fmt.Errorf("protocol: expected HelloResponse, got %s", m.Kind)
	}
	b := m.Body
	if b.Tag != libwire.TagSequence || len(b.Seq) != 2 {
		return HelloResponse{}, fmt.Errorf("protocol: malformed HelloResponse body")
	}
	return HelloResponse{Code: ResponseCode(b.Seq[0].I), Text: b.Seq[1].S}, nil
}

// StartClientRequest asks the manager to spawn n more client processes.
type StartClientRequest struct {
	Count int64
}

func NewStartClientRequest(id int64, r StartClientRequest) Message {
	return Message{Kind: KindStartClientRequest, ID: id, Body: libwire.Seq(libwire.Int(r.Count))}
}

func DecodeStartClientRequest(m Message) (StartClientRequest, error) {
	if m.Kind != KindStartClientRequest {
		return StartClientRequest{}, fmt.Errorf("protocol: expected StartClientRequest, got %s", m.Kind)
	}
	if m.Body.Tag != libwire.TagSequence || len(m.Body.Seq) != 1 {
		return StartClientRequest{}, fmt.Errorf("protocol: malformed StartClientRequest body")
	}
	return StartClientRequest{Count: m.Body.Seq[0].I}, nil
}

// StartClientResponse reports the outcome of a StartClientRequest.
type StartClientResponse struct {
	Code ResponseCode
	Text string
}

func NewStartClientResponse(id int64, r StartClientResponse) Message {
	return Message{
		Kind: KindStartClientResponse,
		ID:   id,
		Body: libwire.Seq(libwire.Int(int64(r.Code)), libwire.Str(r.Text)),
	}
}

func DecodeStartClientResponse(m Message) (StartClientResponse, error) {
	if m.Kind != KindStartClientResponse {
		return StartClientResponse{}, fmt.Errorf("protocol: expected StartClientResponse, got %s", m.Kind)
	}
	b := m.Body
	if b.Tag != libwire.TagSequence || len(b.Seq) != 2 {
		return StartClientResponse{}, fmt.Errorf("protocol: malformed StartClientResponse body")
	}
	return StartClientResponse{Code: ResponseCode(b.Seq[0].I), Text: b.Seq[1].S}, nil
}

// StopClientRequest asks the manager to kill n children; n<0 means all.
type StopClientRequest struct {
	Count int64
}

func NewStopClientRequest(id int64, r StopClientRequest) Message {
	return Message{Kind: KindStopClientRequest, ID: id, Body: libwire.Seq(libwire.Int(r.Count))}
}

func DecodeStopClientRequest(m Message) (StopClientRequest, error) {
	if m.Kind != KindStopClientRequest {
		return StopClientRequest{}, fmt.Errorf("protocol: expected StopClientRequest, got %s", m.Kind)
	}
	if m.Body.Tag != libwire.TagSequence || len(m.Body.Seq) != 1 {
		return StopClientRequest{}, fmt.Errorf("protocol: malformed StopClientRequest body")
	}
	return StopClientRequest{Count: m.Body.Seq[0].I}, nil
}

// StopClientResponse reports how many children were actually stopped.
type StopClientResponse struct {
	StoppedCount int64
}

func NewStopClientResponse(id int64, r StopClientResponse) Message {
	return Message{Kind: KindStopClientResponse, ID: id, Body: libwire.Seq(libwire.Int(r.StoppedCount))}
}

func DecodeStopClientResponse(m Message) (StopClientResponse, error) {
	if m.Kind != KindStopClientResponse {
		return StopClientResponse{}, fmt.Errorf("protocol: expected StopClientResponse, got %s", m.Kind)
	}
	if m.Body.Tag != libwire.TagSequence || len(m.Body.Seq) != 1 {
		return StopClientResponse{}, fmt.Errorf("protocol: malformed StopClientResponse body")
	}
	return StopClientResponse{StoppedCount: m.Body.Seq[0].I}, nil
}

// ServerShutdown tells the manager to close and enter reconnect wait.
func NewServerShutdown(id int64) Message {
	return Message{Kind: KindServerShutdown, ID: id, Body: libwire.Seq()}
}
