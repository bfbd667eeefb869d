// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/Thermoquad/tic-collector/pkg/tic"
	"github.com/spf13/cobra"
)

var probeTimeout int

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Wait for the first fully valid dataset on a connection",
	Long: `Connect and wait for a single dataset that passes its checksum.

Useful for confirming the dialect and baud rate are correct before
running a long decode, without buffering or printing every field.

Exit codes:
  0 - A valid dataset was received before the timeout
  1 - Timeout reached without a valid dataset
  2 - Connection or configuration error`,
	RunE: runProbe,
}

func init() {
	rootCmd.AddCommand(probeCmd)
	probeCmd.Flags().IntVar(&probeTimeout, "timeout", 10, "Timeout in seconds to wait for a dataset")
}

// probeSink discards every field but records the first one it sees.
type probeSink struct {
	first chan tic.Field
	sent  bool
}

func (p *probeSink) PrintField(f tic.Field) {
	if p.sent {
		return
	}
	p.sent = true
	p.first <- f
}

func (p *probeSink) FrameSep() {}
func (p *probeSink) FrameErr() {}

func runProbe(cmd *cobra.Command, args []string) error {
	dialect, err := resolveDialect()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}

	conn, connInfo, err := OpenConnection()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Connection error: %v\n", err)
		os.Exit(2)
	}
	defer conn.Close()

	fmt.Printf("tic-collector - Probe\n")
	fmt.Printf("Connection: %s\n", connInfo)
	fmt.Printf("Dialect: %s\n", dialect.Name)
	fmt.Printf("Timeout: %d seconds\n", probeTimeout)
	fmt.Printf("Waiting for a valid dataset...\n\n")

	sink := &probeSink{first: make(chan tic.Field, 1)}
	decoder := tic.NewDecoder(dialect, sink, nil)

	errChan := make(chan error, 1)
	go func() {
		buf := make([]byte, 128)
		for {
			n, err := conn.Read(buf)
			if err != nil {
				errChan <- err
				return
			}
			for i := 0; i < n; i++ {
				decoder.Feed(buf[i])
			}
		}
	}()

	select {
	case field := <-sink.first:
		fmt.Printf("SUCCESS: %s = ", field.Etiq.Label)
		if field.Etiq.UnitType.IsString() {
			fmt.Printf("%q\n", field.Str)
		} else {
			fmt.Printf("%d\n", field.Int)
		}
		os.Exit(0)

	case err := <-errChan:
		fmt.Fprintf(os.Stderr, "Read error: %v\n", err)
		os.Exit(2)

	case <-time.After(time.Duration(probeTimeout) * time.Second):
		fmt.Fprintf(os.Stderr, "TIMEOUT: no valid dataset received within %d seconds\n", probeTimeout)
		os.Exit(1)
	}

	return nil
}
