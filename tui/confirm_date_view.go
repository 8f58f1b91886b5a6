// ABOUTME: TUI view for the inspection date screen
// ABOUTME: Shows the proposed slot, counter-date picker, and availability actions
package tui

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/harperreed/haggle/api"
	"github.com/harperreed/haggle/db"
	"github.com/harperreed/haggle/models"
	"github.com/harperreed/haggle/negotiation"
)

// availabilityTurn reports whether the viewer answers the proposed slot
// with a straight available/unavailable. The seller does, until they
// counter the date; the buyer, or a seller holding a counter, proceeds
// with the updated slot instead.
func (m Model) availabilityTurn() bool {
	return m.ctrl.Viewer() == models.PartySeller &&
		m.ctrl.DateStatus() != negotiation.DateCountered
}

func (m Model) renderConfirmDateView() string {
	record := m.ctrl.Record()
	if record == nil {
		return m.renderLoadFailedView()
	}

	var s strings.Builder
	s.WriteString(titleStyle.Render("Confirm Inspection Date · " + record.Property.Type + " · " + record.Property.Location))
	s.WriteString("\n")
	s.WriteString(mutedStyle.Render(partyHeading(m.ctrl.Viewer()) + " · " + record.Client.Name))
	s.WriteString("\n\n")

	// Proposed slot, with the session counter shown alongside the original
	// while one exists.
	s.WriteString(labelStyle.Render("Proposed"))
	s.WriteString(record.InspectionSlot.Date + " at " + record.InspectionSlot.Time)
	s.WriteString("\n")

	if counter, ok := m.ctrl.CounterSlot(); ok {
		s.WriteString(labelStyle.Render("Your counter"))
		s.WriteString(amountStyle.Render(counter.Date + " at " + counter.Time))
		s.WriteString("\n")
	}

	s.WriteString("\n")

	if m.submitting {
		s.WriteString(waitingStyle.Render("⟳ Submitting..."))
		s.WriteString("\n")
		return m.withStatusLine(s.String())
	}

	if m.ctrl.Blocked() {
		s.WriteString(waitingStyle.Render(m.ctrl.WaitingMessage()))
		s.WriteString("\n")
		s.WriteString(helpStyle.Render("r: Refresh • q: Quit"))
		return m.withStatusLine(s.String())
	}

	var help []string
	if m.decisionPending {
		// An accept/reject recorded this session still needs to be sent.
		s.WriteString("Offer response ready: " + string(m.ctrl.Decision()))
		s.WriteString("\n")
		help = append(help, "s: Send offer response")
	}
	if m.availabilityTurn() {
		help = append(help, "y: Available", "n: Not available", "d: Counter date")
	} else {
		help = append(help, "d: Update date", "p: Proceed")
	}
	if m.ctrl.DateStatus() == negotiation.DateCountered {
		help = append(help, "u: Undo counter")
	}
	help = append(help, "r: Refresh", "q: Quit")
	s.WriteString(helpStyle.Render(strings.Join(help, " • ")))

	return m.withStatusLine(s.String())
}

func (m Model) handleConfirmDateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.submitting {
		return m, nil
	}

	switch msg.String() {
	case "s":
		if m.decisionPending {
			return m.submitDecision()
		}
	case "y":
		if m.availabilityTurn() {
			return m.submitAvailability(api.Available)
		}
	case "n":
		if m.availabilityTurn() {
			return m.submitAvailability(api.Unavailable)
		}
	case "p":
		if !m.availabilityTurn() {
			return m.submitAvailability(api.Available)
		}
	case "d":
		if m.ctrl.Blocked() {
			return m, nil
		}
		return m.openDatePicker(), nil
	case "u":
		m.ctrl.ResetCounterDate()
		m.logActivity(db.VerbDateReset, "")
		m.statusLine = ""
	case "r":
		return m, m.loadNegotiation()
	}

	return m, nil
}

func (m Model) openDatePicker() Model {
	now := time.Now()
	m.pickerOpen = true
	m.pickerDays = negotiation.UpcomingInspectionDays(now)
	m.pickerDayIdx = 0
	m.pickerSlots = negotiation.SlotTimesFor(m.pickerDays[0], now)
	m.pickerSlotIdx = 0
	return m
}

func (m Model) renderDatePicker() string {
	var s strings.Builder
	s.WriteString(titleStyle.Render("Pick an inspection slot"))
	s.WriteString("\n\n")

	s.WriteString(headerStyle.Render("Day"))
	s.WriteString("\n")
	for i, day := range m.pickerDays {
		label := day.Format("Mon, Jan 2")
		if i == m.pickerDayIdx {
			s.WriteString(selectedStyle.Render("▶ " + label))
		} else {
			s.WriteString("  " + label)
		}
		s.WriteString("\n")
	}

	s.WriteString("\n")
	s.WriteString(headerStyle.Render("Time"))
	s.WriteString("\n")
	if len(m.pickerSlots) == 0 {
		s.WriteString(mutedStyle.Render("  No slots left today"))
		s.WriteString("\n")
	}
	for i, slot := range m.pickerSlots {
		if i == m.pickerSlotIdx {
			s.WriteString(selectedStyle.Render("▶ " + slot))
		} else {
			s.WriteString("  " + slot)
		}
		s.WriteString("\n")
	}

	s.WriteString(helpStyle.Render("↑/↓: Day • ←/→: Time • Enter: Choose • Esc: Back"))
	return s.String()
}

func (m Model) handlePickerKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.pickerOpen = false
		return m, nil
	case "up", "k":
		if m.pickerDayIdx > 0 {
			m.pickerDayIdx--
			m.reloadPickerSlots()
		}
	case "down", "j":
		if m.pickerDayIdx < len(m.pickerDays)-1 {
			m.pickerDayIdx++
			m.reloadPickerSlots()
		}
	case "left", "h":
		if m.pickerSlotIdx > 0 {
			m.pickerSlotIdx--
		}
	case "right", "l":
		if m.pickerSlotIdx < len(m.pickerSlots)-1 {
			m.pickerSlotIdx++
		}
	case "enter":
		if len(m.pickerSlots) == 0 {
			return m, nil
		}
		date := m.pickerDays[m.pickerDayIdx].Format(negotiation.DateLayout)
		slot := m.pickerSlots[m.pickerSlotIdx]
		if err := m.ctrl.ProposeCounterDate(date, slot); err != nil {
			m.statusLine = "✗ " + err.Error()
		} else if m.ctrl.DateStatus() == negotiation.DateCountered {
			m.logActivity(db.VerbDateCountered, date+" "+slot)
			m.statusLine = ""
		} else {
			// Picking the already-proposed slot counts as no counter.
			m.statusLine = "Selected slot matches the proposed date"
		}
		m.pickerOpen = false
	}

	return m, nil
}

func (m *Model) reloadPickerSlots() {
	m.pickerSlots = negotiation.SlotTimesFor(m.pickerDays[m.pickerDayIdx], time.Now())
	if m.pickerSlotIdx >= len(m.pickerSlots) {
		m.pickerSlotIdx = 0
	}
}

func (m Model) submitDecision() (tea.Model, tea.Cmd) {
	if m.ctrl.Blocked() {
		return m, nil
	}
	m.submitting = true
	m.decisionPending = false
	m.statusLine = ""
	return m, func() tea.Msg {
		err := m.ctrl.SubmitDecision(context.Background())
		if err == nil {
			m.logActivity(db.VerbDecisionSubmitted, string(m.ctrl.Decision()))
			m.cacheSnapshot()
		}
		return submitCompleteMsg{action: "Offer response", decision: true, err: err}
	}
}

func (m Model) submitAvailability(availability api.Availability) (tea.Model, tea.Cmd) {
	if m.ctrl.Blocked() {
		return m, nil
	}
	m.submitting = true
	m.statusLine = ""
	return m, func() tea.Msg {
		err := m.ctrl.SubmitAvailability(context.Background(), availability)
		if err == nil {
			m.logActivity(db.VerbAvailabilitySubmitted, string(availability))
			m.cacheSnapshot()
		}
		return submitCompleteMsg{action: "Inspection response", err: err}
	}
}
