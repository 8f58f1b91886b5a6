// ABOUTME: TUI terminal views for completed, cancelled, and failed loads
// ABOUTME: Read-only screens with no negotiation actions
package tui

import (
	"strings"
)

func (m Model) renderSummaryView() string {
	record := m.ctrl.Record()
	if record == nil {
		return m.renderLoadFailedView()
	}

	var s strings.Builder
	s.WriteString(titleStyle.Render("Negotiation Complete"))
	s.WriteString("\n\n")

	s.WriteString(labelStyle.Render("Property"))
	s.WriteString(record.Property.Type + " · " + record.Property.Location)
	s.WriteString("\n")

	s.WriteString(labelStyle.Render("Client"))
	s.WriteString(record.Client.Name)
	s.WriteString("\n")

	if record.IsLOI() {
		s.WriteString(labelStyle.Render("Terms"))
		s.WriteString("Letter of Intention")
	} else {
		s.WriteString(labelStyle.Render("Agreed Price"))
		s.WriteString(amountStyle.Render(formatNaira(record.BuyOffer)))
	}
	s.WriteString("\n")

	if !record.InspectionSlot.IsZero() {
		s.WriteString(labelStyle.Render("Inspection"))
		s.WriteString(record.InspectionSlot.Date + " at " + record.InspectionSlot.Time)
		s.WriteString("\n")
	}

	s.WriteString("\n")
	s.WriteString(mutedStyle.Render("The marketplace will follow up with the paperwork."))
	s.WriteString("\n")
	s.WriteString(helpStyle.Render("q: Quit"))
	return s.String()
}

func (m Model) renderCancelledSummaryView() string {
	record := m.ctrl.Record()
	if record == nil {
		return m.renderLoadFailedView()
	}

	var s strings.Builder
	s.WriteString(titleStyle.Render("Negotiation Cancelled"))
	s.WriteString("\n\n")

	s.WriteString(labelStyle.Render("Property"))
	s.WriteString(record.Property.Type + " · " + record.Property.Location)
	s.WriteString("\n")

	s.WriteString(labelStyle.Render("Client"))
	s.WriteString(record.Client.Name)
	s.WriteString("\n\n")

	s.WriteString(mutedStyle.Render("This thread is closed. You can browse similar listings"))
	s.WriteString("\n")
	s.WriteString(mutedStyle.Render("or start a fresh offer on the property page."))
	s.WriteString("\n")
	s.WriteString(helpStyle.Render("q: Quit"))
	return s.String()
}

func (m Model) renderLoadFailedView() string {
	var s strings.Builder
	s.WriteString(titleStyle.Render("Negotiation Unavailable"))
	s.WriteString("\n\n")
	s.WriteString(errorStyle.Render("The negotiation could not be loaded."))
	s.WriteString("\n")
	if m.statusLine != "" {
		s.WriteString(mutedStyle.Render(m.statusLine))
		s.WriteString("\n")
	}
	s.WriteString(helpStyle.Render("q: Quit"))
	return s.String()
}
