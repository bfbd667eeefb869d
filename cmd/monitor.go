// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/Thermoquad/tic-collector/pkg/tic"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Live dashboard of decoded fields and frame validity",
	Long: `A live, full-screen view of the most recently decoded frame's field
table, a running frame-validity ratio, and a scrolling diagnostic log.

Requires the dialect selector (-1/-2/-P) and a connection (--port or
--url); unlike the default decode command, it does not fall back to
standard input.`,
	RunE: runMonitor,
}

func init() {
	rootCmd.AddCommand(monitorCmd)
}

// monitorLogEntry is one line of the scrolling diagnostic log.
type monitorLogEntry struct {
	timestamp time.Time
	message   string
	isError   bool
}

// fieldItem adapts a decoded tic.Field to bubbles/list.Item for the
// live field table.
type fieldItem struct {
	label string
	value string
	unit  string
}

func (f fieldItem) Title() string { return f.label }
func (f fieldItem) Description() string {
	if f.unit == "" {
		return f.value
	}
	return f.value + " " + f.unit
}
func (f fieldItem) FilterValue() string { return f.label }

type monitorModel struct {
	dialect  *tic.Dialect
	connInfo string

	fieldList list.Model
	fields    map[string]fieldItem

	totalFrames int
	validFrames int

	logEntries    []monitorLogEntry
	maxLogEntries int

	width, height int
	quitting      bool
}

type monitorFieldMsg tic.Field
type monitorFrameMsg struct{ valid bool }
type monitorLogMsg struct {
	message string
	isError bool
}
type monitorTickMsg time.Time

func initialMonitorModel(dialect *tic.Dialect, connInfo string) monitorModel {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true
	delegate.SetHeight(2)
	l := list.New(nil, delegate, 40, 14)
	l.Title = "Fields"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)

	return monitorModel{
		dialect:       dialect,
		connInfo:      connInfo,
		fieldList:     l,
		fields:        make(map[string]fieldItem),
		maxLogEntries: 100,
		width:         80,
		height:        24,
	}
}

func (m monitorModel) Init() tea.Cmd {
	return tea.Batch(monitorTickCmd(), tea.EnterAltScreen)
}

func monitorTickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return monitorTickMsg(t) })
}

func (m monitorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.fieldList.SetSize(m.width-4, m.height-14)

	case monitorTickMsg:
		return m, monitorTickCmd()

	case monitorFieldMsg:
		field := tic.Field(msg)
		var value string
		if field.Etiq.UnitType.IsString() {
			value = field.Str
		} else {
			value = fmt.Sprintf("%d", field.Int)
		}
		m.fields[field.Etiq.Label] = fieldItem{
			label: field.Etiq.Label,
			value: value,
			unit:  field.Etiq.UnitType.Unit().String(),
		}
		m.fieldList.SetItems(m.sortedFieldItems())

	case monitorFrameMsg:
		m.totalFrames++
		if msg.valid {
			m.validFrames++
		}

	case monitorLogMsg:
		m.addLogEntry(msg.message, msg.isError)
	}

	var cmd tea.Cmd
	m.fieldList, cmd = m.fieldList.Update(msg)
	return m, cmd
}

func (m *monitorModel) addLogEntry(message string, isError bool) {
	m.logEntries = append(m.logEntries, monitorLogEntry{time.Now(), message, isError})
	if len(m.logEntries) > m.maxLogEntries {
		m.logEntries = m.logEntries[len(m.logEntries)-m.maxLogEntries:]
	}
}

func (m monitorModel) sortedFieldItems() []list.Item {
	labels := make([]string, 0, len(m.fields))
	for l := range m.fields {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	items := make([]list.Item, len(labels))
	for i, l := range labels {
		items[i] = m.fields[l]
	}
	return items
}

func (m monitorModel) View() string {
	if m.quitting {
		return "Shutting down...\n"
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Background(lipgloss.Color("235")).Padding(0, 1)
	headerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statsLabelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	statsValueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	warningStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	boxStyle := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)

	var s strings.Builder
	s.WriteString(titleStyle.Render("TIC-COLLECTOR - MONITOR"))
	s.WriteString("\n")
	s.WriteString(headerStyle.Render(fmt.Sprintf("Dialect: %s | Connection: %s | Press 'q' to quit", m.dialect.Name, m.connInfo)))
	s.WriteString("\n\n")

	var validPercent float64
	if m.totalFrames > 0 {
		validPercent = float64(m.validFrames) * 100.0 / float64(m.totalFrames)
	}
	statsLine := fmt.Sprintf("%s %s   %s %s",
		statsLabelStyle.Render("Frames:"), statsValueStyle.Render(fmt.Sprintf("%d", m.totalFrames)),
		statsLabelStyle.Render("Valid:"), statsValueStyle.Render(fmt.Sprintf("%d (%.1f%%)", m.validFrames, validPercent)))
	s.WriteString(boxStyle.Render(statsLine))
	s.WriteString("\n\n")

	s.WriteString(boxStyle.Render(m.fieldList.View()))
	s.WriteString("\n\n")

	s.WriteString(statsLabelStyle.Render("Recent Events:"))
	s.WriteString("\n")

	logHeight := m.height - 18
	if logHeight < 3 {
		logHeight = 3
	}
	var logContent strings.Builder
	start := len(m.logEntries) - logHeight
	if start < 0 {
		start = 0
	}
	if len(m.logEntries) == 0 {
		logContent.WriteString(headerStyle.Render("  (no events yet)"))
	} else {
		for _, entry := range m.logEntries[start:] {
			ts := entry.timestamp.Format("15:04:05.000")
			if entry.isError {
				logContent.WriteString(fmt.Sprintf("%s %s\n", headerStyle.Render(ts), errorStyle.Render("✗ "+entry.message)))
			} else {
				logContent.WriteString(fmt.Sprintf("%s %s\n", headerStyle.Render(ts), warningStyle.Render("ℹ "+entry.message)))
			}
		}
	}
	s.WriteString(boxStyle.Width(m.width - 4).Render(logContent.String()))

	return s.String()
}

// monitorSink feeds decoded events into the bubbletea program as
// messages so all state mutation happens inside Update, on the
// program's own goroutine.
type monitorSink struct {
	program    *tea.Program
	frameValid bool
}

func (s *monitorSink) PrintField(f tic.Field) {
	s.program.Send(monitorFieldMsg(f))
}

func (s *monitorSink) FrameErr() {
	s.frameValid = false
}

func (s *monitorSink) FrameSep() {
	s.program.Send(monitorFrameMsg{valid: s.frameValid})
	s.frameValid = true
}

func runMonitor(cmd *cobra.Command, args []string) error {
	dialect, err := resolveDialect()
	if err != nil {
		return err
	}

	conn, connInfo, err := OpenConnection()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Connection error: %v\n", err)
		os.Exit(2)
	}
	defer conn.Close()

	model := initialMonitorModel(dialect, connInfo)
	program := tea.NewProgram(model)

	sink := &monitorSink{program: program, frameValid: true}
	decoder := tic.NewDecoder(dialect, sink, func(level tic.DiagLevel, msg string) {
		program.Send(monitorLogMsg{message: msg, isError: level != tic.DiagLexical})
	})

	go func() {
		buf := make([]byte, 256)
		for {
			n, err := conn.Read(buf)
			if err != nil {
				program.Send(monitorLogMsg{message: fmt.Sprintf("read error: %v", err), isError: true})
				return
			}
			for i := 0; i < n; i++ {
				decoder.Feed(buf[i])
			}
		}
	}()

	_, err = program.Run()
	return err
}
