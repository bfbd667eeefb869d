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

var autodetectTimeout int

var autodetectBaudRates = []int{1200, 9600, 19200}
var autodetectDialects = []*tic.Dialect{tic.V01, tic.V02, tic.V01PME}

var autodetectCmd = &cobra.Command{
	Use:   "autodetect",
	Short: "Cycle baud rates and dialects on a serial port until one decodes",
	Long: `Cycle every (baud rate, dialect) combination defined by §6 on a
serial port and report the first one that yields a fully valid
dataset.

TIC meters never receive anything; this is a purely passive listen on
each combination for a fixed window, not a request/response probe.

Exit codes:
  0 - A working combination was found
  1 - No combination decoded a valid dataset
  2 - Connection or configuration error (e.g. --port not given)`,
	RunE: runAutodetect,
}

func init() {
	rootCmd.AddCommand(autodetectCmd)
	autodetectCmd.Flags().IntVar(&autodetectTimeout, "per-combo-timeout", 4, "Seconds to listen per (baud, dialect) combination")
}

func runAutodetect(cmd *cobra.Command, args []string) error {
	if portName == "" {
		fmt.Fprintf(os.Stderr, "Configuration error: autodetect requires --port\n")
		os.Exit(2)
	}

	fmt.Printf("tic-collector - Autodetect\n")
	fmt.Printf("Port: %s\n", portName)
	fmt.Printf("Trying %d baud rates x %d dialects, %ds each\n\n",
		len(autodetectBaudRates), len(autodetectDialects), autodetectTimeout)

	for _, baud := range autodetectBaudRates {
		for _, dialect := range autodetectDialects {
			fmt.Printf("Trying %d baud, %s... ", baud, dialect.Name)

			ok, err := tryCombination(portName, baud, dialect, time.Duration(autodetectTimeout)*time.Second)
			if err != nil {
				fmt.Printf("connection error: %v\n", err)
				os.Exit(2)
			}
			if ok {
				fmt.Printf("OK\n\n")
				fmt.Printf("Detected: %d baud, dialect %s\n", baud, dialect.Name)
				os.Exit(0)
			}
			fmt.Printf("no valid dataset\n")
		}
	}

	fmt.Printf("\nNo working combination found.\n")
	os.Exit(1)
	return nil
}

// tryCombination listens passively on portName at baud for the given
// window and reports whether dialect decoded at least one valid
// dataset.
func tryCombination(portName string, baud int, dialect *tic.Dialect, window time.Duration) (bool, error) {
	conn, err := OpenSerialConnection(portName, baud)
	if err != nil {
		return false, err
	}
	defer conn.Close()

	sink := &probeSink{first: make(chan tic.Field, 1)}
	decoder := tic.NewDecoder(dialect, sink, nil)

	done := make(chan struct{})
	go func() {
		defer close(done)
		buf := make([]byte, 128)
		for {
			n, err := conn.Read(buf)
			if err != nil {
				return
			}
			for i := 0; i < n; i++ {
				decoder.Feed(buf[i])
			}
		}
	}()

	select {
	case <-sink.first:
		return true, nil
	case <-time.After(window):
		return false, nil
	case <-done:
		return false, nil
	}
}
