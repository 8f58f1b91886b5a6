// ABOUTME: Terminal User Interface using bubbletea framework
// ABOUTME: Drives the negotiation screens for a single marketplace thread
package tui

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/haggle/db"
	"github.com/harperreed/haggle/models"
	"github.com/harperreed/haggle/negotiation"
)

// Model is the main bubbletea model. Screen selection lives in the
// controller; the model only holds presentation state.
type Model struct {
	ctrl          *negotiation.Controller
	database      *sql.DB
	negotiationID string

	// Counter-offer entry state
	amountInput textinput.Model
	enteringBid bool
	statusLine  string
	submitting  bool

	// Set when an accept/reject was recorded this session and still needs
	// to be sent. The server echo on load does not set it.
	decisionPending bool

	// Date picker state
	pickerOpen    bool
	pickerDays    []time.Time
	pickerDayIdx  int
	pickerSlots   []string
	pickerSlotIdx int

	// UI state
	width  int
	height int
}

// NewModel creates a TUI model for one negotiation thread. The database
// may be nil; activity logging is skipped when it is.
func NewModel(ctrl *negotiation.Controller, database *sql.DB, negotiationID string) Model {
	input := textinput.New()
	input.Placeholder = "Counter amount"
	input.CharLimit = 15
	input.Width = 20

	return Model{
		ctrl:          ctrl,
		database:      database,
		negotiationID: negotiationID,
		amountInput:   input,
		width:         80,
		height:        24,
	}
}

// loadCompleteMsg is sent when the initial fetch finishes.
type loadCompleteMsg struct {
	err error
}

// submitCompleteMsg is sent when a mutating call to the server finishes.
// decision marks the offer-response send so a failure re-arms it.
type submitCompleteMsg struct {
	action   string
	decision bool
	err      error
}

func (m Model) Init() tea.Cmd {
	return m.loadNegotiation()
}

func (m Model) loadNegotiation() tea.Cmd {
	return func() tea.Msg {
		err := m.ctrl.Initialize(context.Background(), m.negotiationID)
		if err == nil {
			m.logActivity(db.VerbFetched, "")
			m.cacheSnapshot()
		}
		return loadCompleteMsg{err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadCompleteMsg:
		if msg.err != nil {
			m.statusLine = "Could not load the negotiation: " + msg.err.Error()
		} else {
			m.statusLine = ""
		}
		return m, nil
	case submitCompleteMsg:
		m.submitting = false
		if msg.err != nil {
			if msg.decision {
				// The controller rolled back, so the offer response is
				// still unsent and the send action must come back.
				m.decisionPending = true
			}
			m.statusLine = fmt.Sprintf("✗ %s failed: %v", msg.action, msg.err)
		} else {
			m.statusLine = fmt.Sprintf("✓ %s sent", msg.action)
		}
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	if m.pickerOpen {
		return m.renderDatePicker()
	}

	switch m.ctrl.ResolveScreen() {
	case negotiation.ScreenNegotiation:
		return m.renderNegotiationView()
	case negotiation.ScreenConfirmDate:
		return m.renderConfirmDateView()
	case negotiation.ScreenSummary:
		return m.renderSummaryView()
	case negotiation.ScreenCancelledSummary:
		return m.renderCancelledSummaryView()
	case negotiation.ScreenLoadFailed:
		return m.renderLoadFailedView()
	}
	return ""
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The counter amount field swallows everything except its own controls.
	if m.enteringBid {
		return m.handleBidEntryKeys(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	}

	if m.pickerOpen {
		return m.handlePickerKeys(msg)
	}

	switch m.ctrl.ResolveScreen() {
	case negotiation.ScreenNegotiation:
		return m.handleNegotiationKeys(msg)
	case negotiation.ScreenConfirmDate:
		return m.handleConfirmDateKeys(msg)
	}

	return m, nil
}

// logActivity records an action in the local log. Best effort: the log is
// an audit trail, not part of the negotiation itself.
func (m Model) logActivity(verb db.Verb, detail string) {
	if m.database == nil {
		return
	}
	_, _ = db.LogActivity(m.database, m.negotiationID, m.ctrl.Viewer(), verb, detail)
}

// cacheSnapshot mirrors the current record locally. Best effort as well.
func (m Model) cacheSnapshot() {
	if m.database == nil {
		return
	}
	if record := m.ctrl.Record(); record != nil {
		_ = db.SaveSnapshot(m.database, record)
	}
}

// formatNaira renders an amount with thousands separators.
func formatNaira(amount int64) string {
	if amount < 0 {
		return "-" + formatNaira(-amount)
	}
	s := fmt.Sprintf("%d", amount)
	out := ""
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			out += ","
		}
		out += string(r)
	}
	return "₦" + out
}

func partyHeading(viewer models.Party) string {
	return viewer.Display() + " view"
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			MarginBottom(1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Underline(true)

	// Wide enough for the longest label ("Letter of Intention") plus a gap.
	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Width(21)

	amountStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("10"))

	waitingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11")).
			Italic(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	selectedStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			MarginTop(1)
)
