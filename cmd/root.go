// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"github.com/spf13/cobra"
)

var (
	// Serial connection flags
	portName string
	baudRate int

	// WebSocket connection flags
	wsURL         string
	wsUsername    string
	wsNoSSLVerify bool

	// Dialect selector (§4.3, §6 "-1/-2/-P")
	dialectHistorique bool
	dialectStandard   bool
	dialectPME        bool

	// Output modifiers (§6)
	outputDict          bool
	outputDescriptions  bool
	outputNewlinePer    bool
	outputDecodeProfile bool
	outputLongDate      bool
	outputDecodeSTGE    bool
	outputMaskZero      bool

	// Filter / tagging / sampling (§4.6, §6)
	filterPath string
	idTag      string
	everyNth   int

	// UDP dispatch (§1, supplemented feature 5)
	udpAddr string

	logLevel  string
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "tic-collector",
	Short: "TIC (Télé-Information Client) telemetry decoder",
	Long: `tic-collector decodes the French electrical meter telemetry protocol
(Télé-Information Client) from a serial port, a WebSocket bridge, or
standard input, and renders each frame as JSON.

Dialect (choose exactly one):
  -1   V01 "historique"
  -2   V02 "standard" (default for modern Linky meters)
  -P   V01PME (three-phase professional meters)

Connection modes:
  Serial:    --port /dev/ttyUSB0 [--baud 9600]
  WebSocket: --url ws://host/path [--username user]
  Neither flag given: bytes are read from standard input (§6).

For WebSocket authentication, the password is read from the TIC_PASSWORD
environment variable, or prompted interactively if not set.`,
	RunE: runDecode,
}

// showVersion is handled by hand (rather than cobra's auto --version
// flag) so the single-letter -V matches §6's CLI surface exactly.
var showVersion bool

const toolVersion = "1.0.0"

func init() {
	// Serial connection flags. --port (like --url below) takes the
	// long-only form because its otherwise-natural shorthand (-p, -u)
	// is already claimed by a protocol flag below (§6).
	rootCmd.PersistentFlags().StringVar(&portName, "port", "", "Serial port device")
	rootCmd.PersistentFlags().IntVarP(&baudRate, "baud", "b", 9600, "Baud rate (serial only)")

	// WebSocket connection flags
	rootCmd.PersistentFlags().StringVar(&wsURL, "url", "", "WebSocket bridge URL (ws:// or wss://)")
	rootCmd.PersistentFlags().StringVar(&wsUsername, "username", "", "Username for HTTP Basic auth")
	rootCmd.PersistentFlags().BoolVar(&wsNoSSLVerify, "no-ssl-verify", false, "Skip TLS certificate verification (wss:// only)")

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Diagnostic log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Diagnostic log format (text, json)")

	// Dialect selector (§4.3, §6). Persistent so probe/autodetect can
	// reuse resolveDialect without redeclaring the flags.
	rootCmd.PersistentFlags().BoolVarP(&dialectHistorique, "historique", "1", false, "Decode as V01 historique")
	rootCmd.PersistentFlags().BoolVarP(&dialectStandard, "standard", "2", false, "Decode as V02 standard")
	rootCmd.PersistentFlags().BoolVarP(&dialectPME, "pme", "P", false, "Decode as V01PME")

	// Output modifiers (§6)
	rootCmd.Flags().BoolVarP(&outputDict, "dict", "d", false, "Render each frame as a dict keyed by label instead of a list")
	rootCmd.Flags().BoolVarP(&outputDescriptions, "long", "l", false, "Include label descriptions and units")
	rootCmd.Flags().BoolVarP(&outputNewlinePer, "newline", "n", false, "Put each field on its own line within a frame's JSON")
	rootCmd.Flags().BoolVarP(&outputDecodeProfile, "profile", "p", false, "Decode PJOURF+1/PPOINTE day profiles")
	rootCmd.Flags().BoolVarP(&outputLongDate, "iso-date", "r", false, "Reformat horodates as ISO-8601")
	rootCmd.Flags().BoolVarP(&outputDecodeSTGE, "stge", "u", false, "Decode the STGE status register")
	rootCmd.Flags().BoolVarP(&outputMaskZero, "mask-zero", "z", false, "Omit numeric fields whose value is zero")

	rootCmd.Flags().StringVarP(&filterPath, "filter", "e", "", "Path to a tag filter allow-list file")
	rootCmd.Flags().StringVarP(&idTag, "id", "i", "", "Id tag added to every emitted field")
	rootCmd.Flags().IntVarP(&everyNth, "sample", "s", 1, "Emit only every Nth frame")
	rootCmd.Flags().StringVar(&udpAddr, "udp", "", "Dispatch rendered frames to host:port over UDP instead of stdout")
	rootCmd.Flags().BoolVarP(&showVersion, "version", "V", false, "Print the version and exit")
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
