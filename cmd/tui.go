// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Thermoquad/edfastat/pkg/erbium"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var tuiInterval time.Duration

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Live telemetry dashboard",
	Long: `Watch the addressed EDFA module in an interactive terminal dashboard.

Polls the module at a fixed interval and displays telemetry, alarm state,
exchange statistics and an event log. Because the protocol is half-duplex,
exactly one poll cycle is in flight at a time.

Keys:
  tab    edit the amplifier index
  enter  apply the amplifier index
  q      quit`,
	RunE: runTui,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
	tuiCmd.Flags().DurationVarP(&tuiInterval, "interval", "i", 2*time.Second, "Polling interval")
}

func runTui(cmd *cobra.Command, args []string) error {
	address, err := parseAddress()
	if err != nil {
		return err
	}

	conn, connInfo, err := OpenConnection()
	if err != nil {
		return err
	}
	defer conn.Close()

	ctrl := erbium.NewController(address, newFrameTransport(conn))
	m := initialDashModel(ctrl, connInfo, uint8(ampIndex))

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %v", err)
	}
	return nil
}

// Event log entry
type eventLogEntry struct {
	timestamp time.Time
	message   string
	isError   bool
}

// Messages
type dashTickMsg time.Time
type pollResultMsg struct {
	snapshot *erbium.Snapshot
	outcomes []error
}

// dashModel drives the dashboard. The controller is only touched from poll
// commands, and exactly one poll is in flight at a time, so the half-duplex
// exchange discipline holds.
type dashModel struct {
	ctrl     *erbium.Controller
	connInfo string
	amp      uint8

	snapshot *erbium.Snapshot
	stats    *erbium.Statistics

	eventLog      []eventLogEntry
	maxLogEntries int

	ampInput textinput.Model
	focused  bool

	width    int
	height   int
	quitting bool
}

func initialDashModel(ctrl *erbium.Controller, connInfo string, amp uint8) dashModel {
	input := textinput.New()
	input.Placeholder = strconv.Itoa(int(amp))
	input.CharLimit = 3
	input.Width = 4

	return dashModel{
		ctrl:          ctrl,
		connInfo:      connInfo,
		amp:           amp,
		stats:         erbium.NewStatistics(),
		eventLog:      make([]eventLogEntry, 0),
		maxLogEntries: 100,
		ampInput:      input,
		width:         80,
		height:        24,
	}
}

func (m dashModel) Init() tea.Cmd {
	return tea.Batch(
		pollCmd(m.ctrl, m.amp),
		tea.EnterAltScreen,
	)
}

// pollCmd runs one polling cycle off the UI goroutine. Statistics are not
// touched here; the outcomes travel back in the message and are classified
// in Update, keeping all model state single-threaded.
func pollCmd(ctrl *erbium.Controller, amp uint8) tea.Cmd {
	return func() tea.Msg {
		snapshot := &erbium.Snapshot{
			Taken:     time.Now(),
			Amplifier: amp,
		}
		var outcomes []error

		mode, err := ctrl.GetModeStatus(amp)
		outcomes = append(outcomes, err)
		if err == nil {
			snapshot.Mode = &mode
		}

		temperature, err := ctrl.GetTemperature(amp)
		outcomes = append(outcomes, err)
		if err == nil {
			snapshot.Temperature = &temperature
		}

		input, err := ctrl.GetInputPower(amp)
		outcomes = append(outcomes, err)
		if err == nil {
			snapshot.InputPower = input
		}

		output, err := ctrl.GetOutputPower(amp)
		outcomes = append(outcomes, err)
		if err == nil {
			snapshot.OutputPower = output
		}

		gain, err := ctrl.GetSignalGain(amp)
		outcomes = append(outcomes, err)
		if err == nil {
			snapshot.Gain = gain
		}

		alarms, err := ctrl.GetAlarmStatus(amp)
		outcomes = append(outcomes, err)
		if err == nil {
			snapshot.Alarms = alarms
		}

		return pollResultMsg{snapshot: snapshot, outcomes: outcomes}
	}
}

func dashTickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return dashTickMsg(t)
	})
}

func (m dashModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if !m.focused || msg.String() == "ctrl+c" {
				m.quitting = true
				return m, tea.Quit
			}

		case "tab":
			m.focused = !m.focused
			if m.focused {
				m.ampInput.SetValue("")
				m.ampInput.Focus()
			} else {
				m.ampInput.Blur()
			}
			return m, nil

		case "enter":
			if m.focused {
				if v, err := strconv.Atoi(m.ampInput.Value()); err == nil && v >= 1 && v <= 255 {
					m.amp = uint8(v)
					m.addLogEntry(fmt.Sprintf("Switched to amplifier %d", v), false)
				} else if m.ampInput.Value() != "" {
					m.addLogEntry(fmt.Sprintf("Invalid amplifier index %q", m.ampInput.Value()), true)
				}
				m.focused = false
				m.ampInput.Blur()
				return m, nil
			}
		}

		if m.focused {
			var cmd tea.Cmd
			m.ampInput, cmd = m.ampInput.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case pollResultMsg:
		m.snapshot = msg.snapshot
		for _, err := range msg.outcomes {
			m.stats.Update(err)
			if err != nil {
				m.addLogEntry(err.Error(), true)
			}
		}
		return m, dashTickCmd(tuiInterval)

	case dashTickMsg:
		return m, pollCmd(m.ctrl, m.amp)
	}

	return m, nil
}

func (m *dashModel) addLogEntry(message string, isError bool) {
	m.eventLog = append(m.eventLog, eventLogEntry{
		timestamp: time.Now(),
		message:   message,
		isError:   isError,
	})
	if len(m.eventLog) > m.maxLogEntries {
		m.eventLog = m.eventLog[len(m.eventLog)-m.maxLogEntries:]
	}
}

func (m dashModel) View() string {
	if m.quitting {
		return "Shutting down...\n"
	}

	// Styles
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

	var s strings.Builder
	s.WriteString(titleStyle.Render("EDFASTAT - LIVE DASHBOARD"))
	s.WriteString("\n")
	address := m.ctrl.Address()
	s.WriteString(headerStyle.Render(fmt.Sprintf("%s | Device: %02X%02X | Amplifier: %d | Press 'q' to quit, tab to switch amplifier",
		m.connInfo, address[0], address[1], m.amp)))
	s.WriteString("\n\n")

	// Telemetry
	telemetry := strings.Builder{}
	if m.snapshot == nil {
		telemetry.WriteString(warningStyle.Render("Waiting for first poll cycle..."))
	} else {
		if m.snapshot.Mode != nil {
			telemetry.WriteString(fmt.Sprintf("%s %s\n",
				labelStyle.Render("Mode:"),
				valueStyle.Render(erbium.FormatAmpMode(m.snapshot.Mode.Mode))))
		}
		if m.snapshot.Temperature != nil {
			telemetry.WriteString(fmt.Sprintf("%s %s   %s %s\n",
				labelStyle.Render("Ambient:"),
				valueStyle.Render(fmt.Sprintf("%.1f °C", m.snapshot.Temperature.Ambient)),
				labelStyle.Render("Coil:"),
				valueStyle.Render(fmt.Sprintf("%.1f °C", m.snapshot.Temperature.Coil))))
		}
		idx := int(m.amp) - 1
		if idx >= 0 && idx < len(m.snapshot.InputPower) {
			telemetry.WriteString(fmt.Sprintf("%s %s",
				labelStyle.Render("Input:"),
				valueStyle.Render(fmt.Sprintf("%.2f dBm", m.snapshot.InputPower[idx]))))
			if idx < len(m.snapshot.OutputPower) {
				telemetry.WriteString(fmt.Sprintf("   %s %s",
					labelStyle.Render("Output:"),
					valueStyle.Render(fmt.Sprintf("%.2f dBm", m.snapshot.OutputPower[idx]))))
			}
			if idx < len(m.snapshot.Gain) {
				telemetry.WriteString(fmt.Sprintf("   %s %s",
					labelStyle.Render("Gain:"),
					valueStyle.Render(fmt.Sprintf("%.2f dB", m.snapshot.Gain[idx]))))
			}
			telemetry.WriteString("\n")
		}
		telemetry.WriteString(headerStyle.Render(fmt.Sprintf("Last poll: %s", m.snapshot.Taken.Format("15:04:05"))))
	}
	s.WriteString(boxStyle.Render(telemetry.String()))
	s.WriteString("\n\n")

	// Alarms
	if m.snapshot != nil && len(m.snapshot.Alarms) > 0 {
		alarms := strings.Builder{}
		active := 0
		for i, pair := range m.snapshot.Alarms {
			current := pair.Current.Conditions()
			latched := pair.Latched.Conditions()
			active += len(current)
			if len(current) == 0 && len(latched) == 0 {
				continue
			}
			alarms.WriteString(labelStyle.Render(fmt.Sprintf("Amplifier %d:", i+1)))
			alarms.WriteString("\n")
			for _, c := range current {
				alarms.WriteString(errorStyle.Render(fmt.Sprintf("  ✗ %s", erbium.FormatAlarmCondition(c))))
				alarms.WriteString("\n")
			}
			for _, c := range latched {
				alarms.WriteString(warningStyle.Render(fmt.Sprintf("  ⚑ %s (latched)", erbium.FormatAlarmCondition(c))))
				alarms.WriteString("\n")
			}
		}
		if active == 0 && alarms.Len() == 0 {
			alarms.WriteString(valueStyle.Render("✓ No alarms"))
		}
		s.WriteString(boxStyle.Render(strings.TrimRight(alarms.String(), "\n")))
		s.WriteString("\n\n")
	}

	// Statistics
	m.stats.CalculateRates()
	var completedPercent float64
	if m.stats.TotalExchanges > 0 {
		completedPercent = float64(m.stats.Completed) * 100.0 / float64(m.stats.TotalExchanges)
	}
	statsContent := strings.Builder{}
	statsContent.WriteString(fmt.Sprintf("%s %s   %s %s   %s %s",
		labelStyle.Render("Exchanges:"), valueStyle.Render(fmt.Sprintf("%d", m.stats.TotalExchanges)),
		labelStyle.Render("Completed:"), valueStyle.Render(fmt.Sprintf("%d (%.1f%%)", m.stats.Completed, completedPercent)),
		labelStyle.Render("Timeouts:"), func() string {
			if m.stats.Timeouts > 0 {
				return errorStyle.Render(fmt.Sprintf("%d", m.stats.Timeouts))
			}
			return valueStyle.Render("0")
		}(),
	))
	if m.stats.CRCErrors > 0 || m.stats.DecodeErrors > 0 || m.stats.TransportErrors > 0 {
		statsContent.WriteString(fmt.Sprintf("\n%s %s   %s %s   %s %s",
			labelStyle.Render("CRC Errors:"), errorStyle.Render(fmt.Sprintf("%d", m.stats.CRCErrors)),
			labelStyle.Render("Decode Errors:"), errorStyle.Render(fmt.Sprintf("%d", m.stats.DecodeErrors)),
			labelStyle.Render("Transport:"), errorStyle.Render(fmt.Sprintf("%d", m.stats.TransportErrors)),
		))
	}
	s.WriteString(boxStyle.Render(statsContent.String()))
	s.WriteString("\n\n")

	// Event log
	s.WriteString(labelStyle.Render("Recent Events:"))
	s.WriteString("\n")

	logHeight := m.height - 18
	if logHeight < 4 {
		logHeight = 4
	}
	startIdx := len(m.eventLog) - logHeight
	if startIdx < 0 {
		startIdx = 0
	}

	logContent := strings.Builder{}
	if len(m.eventLog) == 0 {
		logContent.WriteString(headerStyle.Render("  (no events yet)"))
	} else {
		for i := startIdx; i < len(m.eventLog); i++ {
			entry := m.eventLog[i]
			timestamp := entry.timestamp.Format("15:04:05.000")
			if entry.isError {
				logContent.WriteString(fmt.Sprintf("%s %s\n",
					headerStyle.Render(timestamp),
					errorStyle.Render("✗ "+entry.message)))
			} else {
				logContent.WriteString(fmt.Sprintf("%s %s\n",
					headerStyle.Render(timestamp),
					warningStyle.Render("ℹ "+entry.message)))
			}
		}
	}
	s.WriteString(boxStyle.Width(m.width - 4).Render(strings.TrimRight(logContent.String(), "\n")))
	s.WriteString("\n")

	// Footer / amplifier input
	if m.focused {
		s.WriteString(fmt.Sprintf("%s %s", labelStyle.Render("Amplifier:"), m.ampInput.View()))
		s.WriteString("\n")
	}

	return s.String()
}
