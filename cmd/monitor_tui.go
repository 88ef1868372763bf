// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2025 AeroAPI Project

package cmd

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

//////////////////////////////////////////////////////////////
// Types
//////////////////////////////////////////////////////////////

type monitorLogEntry struct {
	timestamp time.Time
	message   string
	isError   bool
}

// monitorModel is the Bubble Tea model for the monitor TUI
type monitorModel struct {
	pipeline *pipeline

	// Latest snapshot, refreshed on every tick
	snapshot  map[string]map[string]interface{}
	connected bool

	// Command entry
	cmdInput     textinput.Model
	inputFocused bool

	// Event log
	log           []monitorLogEntry
	maxLogEntries int

	// UI state
	width    int
	height   int
	quitting bool
}

type monitorTickMsg time.Time

//////////////////////////////////////////////////////////////
// Model Initialization
//////////////////////////////////////////////////////////////

func initialMonitorModel(p *pipeline) monitorModel {
	ti := textinput.New()
	ti.Placeholder = "GEAR_HANDLE true"
	ti.CharLimit = 64
	ti.Width = 40

	return monitorModel{
		pipeline:      p,
		cmdInput:      ti,
		maxLogEntries: 100,
		width:         80,
		height:        24,
	}
}

//////////////////////////////////////////////////////////////
// Bubble Tea Interface
//////////////////////////////////////////////////////////////

func (m monitorModel) Init() tea.Cmd {
	return monitorTickCmd()
}

func monitorTickCmd() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(t time.Time) tea.Msg {
		return monitorTickMsg(t)
	})
}

func (m monitorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case monitorTickMsg:
		m.snapshot = m.pipeline.store.Snapshot()
		wasConnected := m.connected
		m.connected = m.pipeline.client.Connected()
		if m.connected != wasConnected {
			if m.connected {
				m.addLogEntry("Upstream connected", false)
			} else {
				m.addLogEntry("Upstream connection lost - reconnecting", true)
			}
		}
		return m, monitorTickCmd()
	}

	if m.inputFocused {
		var cmd tea.Cmd
		m.cmdInput, cmd = m.cmdInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *monitorModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "q":
		if !m.inputFocused {
			m.quitting = true
			return m, tea.Quit
		}

	case "tab":
		m.inputFocused = !m.inputFocused
		if m.inputFocused {
			m.cmdInput.Focus()
		} else {
			m.cmdInput.Blur()
		}
		return m, nil

	case "enter":
		if m.inputFocused {
			m.submitCommand()
			return m, nil
		}
	}

	if m.inputFocused {
		var cmd tea.Cmd
		m.cmdInput, cmd = m.cmdInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

// submitCommand parses "NAME value" from the input line and sends it
// through the same encode/write path the downstream server uses.
func (m *monitorModel) submitCommand() {
	line := strings.TrimSpace(m.cmdInput.Value())
	if line == "" {
		return
	}
	parts := strings.Fields(line)
	if len(parts) != 2 {
		m.addLogEntry("Usage: <COMMAND> <value>", true)
		return
	}
	name := parts[0]
	value := parseCommandValue(parts[1])

	target, raw, err := m.pipeline.commands.EncodeCommand(name, value)
	if err != nil {
		m.addLogEntry(fmt.Sprintf("%v", err), true)
		return
	}
	if err := m.pipeline.client.WriteOffset(target, raw); err != nil {
		m.addLogEntry(fmt.Sprintf("%s: write failed: %v", name, err), true)
		return
	}
	m.addLogEntry(fmt.Sprintf("Sent %s = %v (raw=%d @ 0x%04X)", name, value, raw, target.Address), false)
	m.cmdInput.SetValue("")
}

// parseCommandValue keeps booleans and numbers typed the way a JSON
// client would send them.
func parseCommandValue(s string) interface{} {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

//////////////////////////////////////////////////////////////
// View
//////////////////////////////////////////////////////////////

func (m monitorModel) View() string {
	if m.quitting {
		return "Shutting down...\n"
	}

	var s strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		Background(lipgloss.Color("235")).
		Padding(0, 1)

	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("12")).
		Bold(true)

	valueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("10"))

	errorStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("9")).
		Bold(true)

	warningStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("11"))

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	// Header
	s.WriteString(titleStyle.Render("SIMBRIDGE MONITOR"))
	s.WriteString(" ")
	connStatus := valueStyle.Render("CONNECTED")
	if !m.connected {
		connStatus = warningStyle.Render("RECONNECTING...")
	}
	s.WriteString(headerStyle.Render(fmt.Sprintf("| upstream %s | q=quit Tab=command input", connStatus)))
	s.WriteString("\n\n")

	// State groups
	s.WriteString(m.renderGroups(labelStyle, valueStyle, headerStyle, boxStyle))
	s.WriteString("\n")

	// Command input
	inputLabel := labelStyle.Render("Command: ")
	if m.inputFocused {
		s.WriteString(inputLabel + m.cmdInput.View())
	} else {
		s.WriteString(inputLabel + headerStyle.Render("(Tab to focus)"))
	}
	s.WriteString("\n\n")

	// Event log
	s.WriteString(m.renderEventLog(labelStyle, errorStyle, headerStyle, warningStyle, boxStyle))

	return s.String()
}

func (m monitorModel) renderGroups(labelStyle, valueStyle, headerStyle, boxStyle lipgloss.Style) string {
	if len(m.snapshot) == 0 {
		return boxStyle.Width(m.width - 4).Render(headerStyle.Render("Waiting for simulator data..."))
	}

	groups := make([]string, 0, len(m.snapshot))
	for g := range m.snapshot {
		groups = append(groups, g)
	}
	sort.Strings(groups)

	var s strings.Builder
	for _, group := range groups {
		fields := m.snapshot[group]
		names := make([]string, 0, len(fields))
		for f := range fields {
			names = append(names, f)
		}
		sort.Strings(names)

		s.WriteString(labelStyle.Render(strings.ToUpper(group)))
		s.WriteString("\n")
		for _, f := range names {
			s.WriteString(fmt.Sprintf("  %s %s\n",
				headerStyle.Render(f+":"),
				valueStyle.Render(formatFieldValue(fields[f]))))
		}
	}
	return boxStyle.Width(m.width - 4).Render(s.String())
}

func formatFieldValue(v interface{}) string {
	switch val := v.(type) {
	case float64:
		return strconv.FormatFloat(val, 'f', 2, 64)
	case bool:
		if val {
			return "on"
		}
		return "off"
	default:
		return fmt.Sprintf("%v", v)
	}
}

func (m monitorModel) renderEventLog(labelStyle, errorStyle, headerStyle, warningStyle, boxStyle lipgloss.Style) string {
	var s strings.Builder
	s.WriteString(labelStyle.Render("EVENTS"))
	s.WriteString("\n")

	logHeight := 8
	startIdx := len(m.log) - logHeight
	if startIdx < 0 {
		startIdx = 0
	}

	if len(m.log) == 0 {
		s.WriteString(headerStyle.Render("  (no events yet)"))
	} else {
		for i := startIdx; i < len(m.log); i++ {
			entry := m.log[i]
			icon := "i"
			style := warningStyle
			if entry.isError {
				icon = "x"
				style = errorStyle
			}
			s.WriteString(fmt.Sprintf("%s %s %s\n",
				headerStyle.Render(entry.timestamp.Format("15:04:05.000")),
				style.Render(icon),
				entry.message))
		}
	}

	return boxStyle.Width(m.width - 4).Render(s.String())
}

func (m *monitorModel) addLogEntry(message string, isError bool) {
	m.log = append(m.log, monitorLogEntry{
		timestamp: time.Now(),
		message:   message,
		isError:   isError,
	})
	if len(m.log) > m.maxLogEntries {
		m.log = m.log[len(m.log)-m.maxLogEntries:]
	}
}
