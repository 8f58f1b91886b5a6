// ABOUTME: TUI view for the offer screen
// ABOUTME: Shows the active price or LOI offer with accept/reject/counter actions
package tui

import (
	"context"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/harperreed/haggle/db"
	"github.com/harperreed/haggle/negotiation"
)

func (m Model) renderNegotiationView() string {
	record := m.ctrl.Record()
	if record == nil {
		return m.renderLoadFailedView()
	}

	var s strings.Builder
	s.WriteString(titleStyle.Render("Negotiation · " + record.Property.Type + " · " + record.Property.Location))
	s.WriteString("\n")
	s.WriteString(mutedStyle.Render(partyHeading(m.ctrl.Viewer()) + " · " + record.Client.Name))
	s.WriteString("\n\n")

	s.WriteString(labelStyle.Render("List Price"))
	s.WriteString(formatNaira(record.ListPrice))
	s.WriteString("\n")

	if record.IsLOI() {
		s.WriteString(labelStyle.Render("Letter of Intention"))
		if *record.LetterOfIntention == "" {
			s.WriteString(mutedStyle.Render("document pending upload"))
		} else {
			s.WriteString(*record.LetterOfIntention)
		}
		s.WriteString("\n")
	} else {
		s.WriteString(labelStyle.Render(m.ctrl.OfferLabel()))
		s.WriteString(amountStyle.Render(formatNaira(record.BuyOffer)))
		s.WriteString("\n")
	}

	s.WriteString(labelStyle.Render("Respond within"))
	s.WriteString(negotiation.CountdownLabel(record.CreatedAt, time.Now()))
	s.WriteString("\n\n")

	if m.enteringBid {
		s.WriteString("Counter amount: " + m.amountInput.View())
		s.WriteString("\n")
		s.WriteString(helpStyle.Render("Enter: Submit counter • Esc: Cancel"))
		return m.withStatusLine(s.String())
	}

	if m.submitting {
		s.WriteString(waitingStyle.Render("⟳ Submitting..."))
		s.WriteString("\n")
	} else if m.ctrl.Blocked() {
		s.WriteString(waitingStyle.Render(m.ctrl.WaitingMessage()))
		s.WriteString("\n")
		s.WriteString(helpStyle.Render("r: Refresh • q: Quit"))
		return m.withStatusLine(s.String())
	}

	help := []string{"a: Accept", "x: Reject"}
	if !record.IsLOI() {
		help = append(help, "c: Counter offer")
	}
	help = append(help, "r: Refresh", "q: Quit")
	s.WriteString(helpStyle.Render(strings.Join(help, " • ")))

	return m.withStatusLine(s.String())
}

func (m Model) withStatusLine(view string) string {
	if m.statusLine == "" {
		return view
	}
	style := mutedStyle
	if strings.HasPrefix(m.statusLine, "✗") {
		style = errorStyle
	}
	return view + "\n\n" + style.Render(m.statusLine)
}

func (m Model) handleNegotiationKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.submitting {
		return m, nil
	}

	switch msg.String() {
	case "a":
		if err := m.ctrl.AcceptOffer(); err != nil {
			m.statusLine = "✗ " + err.Error()
			return m, nil
		}
		m.statusLine = ""
		m.decisionPending = true
		m.logActivity(db.VerbAccepted, "")
	case "x":
		if err := m.ctrl.RejectOffer(); err != nil {
			m.statusLine = "✗ " + err.Error()
			return m, nil
		}
		m.statusLine = ""
		m.decisionPending = true
		m.logActivity(db.VerbRejected, "")
	case "c":
		record := m.ctrl.Record()
		if record == nil || record.IsLOI() || m.ctrl.Blocked() {
			return m, nil
		}
		m.enteringBid = true
		m.amountInput.SetValue("")
		m.amountInput.Focus()
		m.statusLine = ""
	case "r":
		return m, m.loadNegotiation()
	}

	return m, nil
}

func (m Model) handleBidEntryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.enteringBid = false
		m.amountInput.Blur()
		return m, nil
	case "enter":
		amount, err := strconv.ParseInt(strings.TrimSpace(m.amountInput.Value()), 10, 64)
		if err != nil {
			m.statusLine = "✗ Counter offer must be a number"
			return m, nil
		}
		m.enteringBid = false
		m.amountInput.Blur()
		return m.submitCounterOffer(amount)
	}

	var cmd tea.Cmd
	m.amountInput, cmd = m.amountInput.Update(msg)
	return m, cmd
}

func (m Model) submitCounterOffer(amount int64) (tea.Model, tea.Cmd) {
	m.submitting = true
	m.statusLine = ""
	return m, func() tea.Msg {
		err := m.ctrl.CounterOffer(context.Background(), amount)
		if err == nil {
			m.logActivity(db.VerbCountered, "countered at "+strconv.FormatInt(amount, 10))
			m.cacheSnapshot()
		}
		return submitCompleteMsg{action: "Counter offer", err: err}
	}
}
