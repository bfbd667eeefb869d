// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package ticdispatch

import (
	"encoding/json"
	"net"
	"testing"
	"time"

	"github.com/Thermoquad/tic-collector/pkg/tic"
	"github.com/Thermoquad/tic-collector/pkg/ticjson"
)

func TestSink_SendsOneDatagramPerFrame(t *testing.T) {
	listener, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	if err != nil {
		t.Fatalf("ListenUDP: %v", err)
	}
	defer listener.Close()

	sink, err := Dial(listener.LocalAddr().String(), ticjson.Options{Mode: ticjson.ModeDict})
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer sink.Close()

	etiq, ok := tic.V02.Lookup("ADSC")
	if !ok {
		t.Fatalf("ADSC not found in V02 dialect")
	}
	sink.PrintField(tic.Field{Etiq: etiq, Str: "012345678901"})
	sink.FrameSep()

	if err := listener.SetReadDeadline(time.Now().Add(time.Second)); err != nil {
		t.Fatalf("SetReadDeadline: %v", err)
	}
	buf := make([]byte, 1024)
	n, _, err := listener.ReadFromUDP(buf)
	if err != nil {
		t.Fatalf("ReadFromUDP: %v", err)
	}

	var got map[string]interface{}
	if err := json.Unmarshal(buf[:n], &got); err != nil {
		t.Fatalf("invalid JSON datagram: %v (%s)", err, buf[:n])
	}
	if _, present := got["ADSC"]; !present {
		t.Errorf("expected an ADSC entry in the datagram, got %v", got)
	}
}
