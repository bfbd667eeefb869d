// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

// Package ticdispatch forwards decoded frames over UDP, one datagram
// per frame. It is an external collaborator built on top of
// pkg/ticjson's rendering, the way §1 describes "dispatching over UDP"
// as a consumer of the decoder's event stream rather than part of it.
package ticdispatch

import (
	"bytes"
	"fmt"
	"net"

	"github.com/Thermoquad/tic-collector/pkg/tic"
	"github.com/Thermoquad/tic-collector/pkg/ticjson"
)

// Sink wraps a ticjson.Sink and flushes each rendered frame as a
// single UDP datagram instead of a stream write, since a frame's JSON
// rendering is already a complete, self-contained unit (§6 "exactly
// one root object per frame").
type Sink struct {
	conn *net.UDPConn
	buf  *bytes.Buffer
	json *ticjson.Sink
}

// Dial opens a UDP socket to addr (host:port) and returns a Sink ready
// to receive tic.Sink callbacks. The socket is connected, so every
// subsequent Write is one outbound datagram.
func Dial(addr string, opts ticjson.Options) (*Sink, error) {
	raddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("ticdispatch: resolve %q: %w", addr, err)
	}
	conn, err := net.DialUDP("udp", nil, raddr)
	if err != nil {
		return nil, fmt.Errorf("ticdispatch: dial %q: %w", addr, err)
	}

	buf := &bytes.Buffer{}
	return &Sink{
		conn: conn,
		buf:  buf,
		json: ticjson.NewSink(buf, opts),
	}, nil
}

// Close closes the underlying UDP socket.
func (s *Sink) Close() error {
	return s.conn.Close()
}

// PrintField implements tic.Sink by delegating to the wrapped JSON
// renderer.
func (s *Sink) PrintField(f tic.Field) {
	s.json.PrintField(f)
}

// FrameErr implements tic.Sink.
func (s *Sink) FrameErr() {
	s.json.FrameErr()
}

// FrameSep implements tic.Sink: it asks the wrapped renderer to flush
// the frame into the internal buffer, then sends the buffer's contents
// as one UDP datagram and resets it for the next frame. A frame
// skipped by the renderer's EveryNth option produces no write.
func (s *Sink) FrameSep() {
	s.buf.Reset()
	s.json.FrameSep()
	if s.buf.Len() == 0 {
		return
	}
	_, _ = s.conn.Write(s.buf.Bytes())
}
