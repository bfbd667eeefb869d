// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/Thermoquad/tic-collector/pkg/tic"
	"github.com/Thermoquad/tic-collector/pkg/ticdispatch"
	"github.com/Thermoquad/tic-collector/pkg/ticjson"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// resolveDialect maps the mutually exclusive -1/-2/-P flags to a
// dialect table (§4.3, §6). Exactly one must be selected; this is a
// fatal configuration error per §7, not a decoding-time one.
func resolveDialect() (*tic.Dialect, error) {
	selected := 0
	var d *tic.Dialect
	if dialectHistorique {
		selected++
		d = tic.V01
	}
	if dialectStandard {
		selected++
		d = tic.V02
	}
	if dialectPME {
		selected++
		d = tic.V01PME
	}
	switch selected {
	case 0:
		return nil, fmt.Errorf("no dialect selected: pass exactly one of -1, -2, -P")
	case 1:
		return d, nil
	default:
		return nil, fmt.Errorf("only one dialect may be selected at a time (got %d)", selected)
	}
}

func jsonOptions(filter *tic.FilterBitmap) ticjson.Options {
	mode := ticjson.ModeList
	if outputDict {
		mode = ticjson.ModeDict
	}
	return ticjson.Options{
		Mode:          mode,
		Descriptions:  outputDescriptions,
		Newline:       outputNewlinePer,
		DecodeProfile: outputDecodeProfile,
		LongDate:      outputLongDate,
		DecodeSTGE:    outputDecodeSTGE,
		MaskZero:      outputMaskZero,
		Filter:        filter,
		ID:            idTag,
		EveryNth:      everyNth,
	}
}

// loadFilterFlag opens and parses the -e filter file, if given.
func loadFilterFlag(d *tic.Dialect) (*tic.FilterBitmap, error) {
	if filterPath == "" {
		return nil, nil
	}
	f, err := os.Open(filterPath)
	if err != nil {
		return nil, fmt.Errorf("opening filter file: %w", err)
	}
	defer f.Close()

	bitmap, err := tic.LoadFilter(d, f)
	if err != nil {
		return nil, fmt.Errorf("loading filter file: %w", err)
	}
	return bitmap, nil
}

// diagHook adapts the core's diagnostic callback to a logrus logger,
// the way every external collaborator is expected to per SPEC's
// ambient-stack logging section.
func diagHook(log *logrus.Logger) tic.DiagHook {
	return func(level tic.DiagLevel, msg string) {
		switch level {
		case tic.DiagFrame:
			log.Warn(msg)
		case tic.DiagDataset:
			log.Info(msg)
		default:
			log.Debug(msg)
		}
	}
}

func runDecode(cmd *cobra.Command, args []string) error {
	if showVersion {
		fmt.Printf("tic-collector %s\n", toolVersion)
		return nil
	}

	dialect, err := resolveDialect()
	if err != nil {
		return err
	}

	log := setupLogger(logLevel, logFormat)

	filter, err := loadFilterFlag(dialect)
	if err != nil {
		return err
	}

	var sink tic.Sink
	if udpAddr != "" {
		udpSink, err := ticdispatch.Dial(udpAddr, jsonOptions(filter))
		if err != nil {
			return err
		}
		defer udpSink.Close()
		sink = udpSink
		log.Infof("dispatching frames to %s", udpAddr)
	} else {
		sink = ticjson.NewSink(os.Stdout, jsonOptions(filter))
	}

	var reader io.Reader = os.Stdin
	connInfo := "stdin"
	if portName != "" || wsURL != "" {
		conn, info, err := OpenConnection()
		if err != nil {
			return err
		}
		defer conn.Close()
		reader = conn
		connInfo = info
	}
	log.Infof("decoding %s frames from %s", dialect.Name, connInfo)

	decoder := tic.NewDecoder(dialect, sink, diagHook(log))
	buf := make([]byte, 256)
	for {
		n, err := reader.Read(buf)
		for i := 0; i < n; i++ {
			decoder.Feed(buf[i])
		}
		if err != nil {
			if err == io.EOF || err == ErrConnectionClosed {
				return nil
			}
			return err
		}
	}
}
