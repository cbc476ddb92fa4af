package cli

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dmitrijs2005/outreach-console/internal/client/models"
	"github.com/dmitrijs2005/outreach-console/internal/client/views"
	"github.com/dmitrijs2005/outreach-console/internal/common"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)

	badgeColors = map[string]lipgloss.Color{
		"active":      "42",
		"completed":   "42",
		"qualified":   "42",
		"converted":   "42",
		"new":         "39",
		"enrolled":    "39",
		"initiated":   "39",
		"ringing":     "39",
		"in_progress": "33",
		"contacted":   "214",
		"paused":      "214",
		"draft":       "245",
		"failed":      "196",
		"cancelled":   "196",
		"lost":        "196",
	}
)

func badge(status string) string {
	c, ok := badgeColors[status]
	if !ok {
		c = "245"
	}
	return lipgloss.NewStyle().Foreground(c).Render(status)
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

// renderList renders the header line, the loading/error banner and the
// visible records of a list screen.
func renderList[T any](title string, snap views.Snapshot[T], visible []T, headers []string, row func(T) []string) string {
	var b strings.Builder

	head := fmt.Sprintf("%s (%d of %d)", title, len(visible), len(snap.Records))
	meta := []string{"filter=" + snap.StatusFilter}
	if snap.SearchTerm != "" {
		meta = append(meta, fmt.Sprintf("search=%q", snap.SearchTerm))
	}
	if !snap.LastUpdated.IsZero() {
		meta = append(meta, "updated "+snap.LastUpdated.Format("15:04:05"))
	}
	b.WriteString(titleStyle.Render(head) + " " + mutedStyle.Render(strings.Join(meta, " ")) + "\n")

	if snap.Loading {
		b.WriteString(mutedStyle.Render("Loading...") + "\n")
	}
	if snap.Error != "" {
		b.WriteString(errorStyle.Render("Error: "+snap.Error) + "\n")
		b.WriteString(mutedStyle.Render("Type 'refresh' to try again.") + "\n")
	}
	if len(visible) == 0 {
		b.WriteString(mutedStyle.Render("No "+strings.ToLower(title)+" found") + "\n")
		return b.String()
	}

	t := newTable(headers...)
	for _, r := range visible {
		t.Row(row(r)...)
	}
	b.WriteString(t.Render() + "\n")
	return b.String()
}

func idCell(id int64) string { return strconv.FormatInt(id, 10) }

func leadRow(l models.Lead) []string {
	return []string{idCell(l.ID), l.Name, dash(l.Email), dash(l.Company), dash(l.Role), badge(l.Stage)}
}

var leadHeaders = []string{"ID", "Name", "Email", "Company", "Role", "Stage"}

func campaignRow(c models.Campaign) []string {
	return []string{idCell(c.ID), c.Name, dash(c.Offer), badge(c.Status), strconv.Itoa(len(c.Emails)), dash(c.CreatedAt)}
}

var campaignHeaders = []string{"ID", "Name", "Offer", "Status", "Emails", "Created"}

func callRow(c models.CallSession) []string {
	return []string{idCell(c.ID), dash(c.Phone), dash(c.Email), badge(c.Status), dash(c.Purpose), dash(c.CreatedAt)}
}

var callHeaders = []string{"ID", "Phone", "Email", "Status", "Purpose", "Created"}

func fields(pairs ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		fmt.Fprintf(&b, "%s %s\n", mutedStyle.Render(fmt.Sprintf("%-12s", pairs[i]+":")), dash(pairs[i+1]))
	}
	return b.String()
}

func renderLead(l models.Lead) string {
	return titleStyle.Render(fmt.Sprintf("Lead #%d", l.ID)) + "\n" + fields(
		"Name", l.Name,
		"Email", l.Email,
		"Company", l.Company,
		"Role", l.Role,
		"Stage", badge(l.Stage),
		"Source", l.Source,
		"Size", l.CompanySize,
		"Industry", l.Industry,
		"Location", l.Location,
		"LinkedIn", l.LinkedInURL,
		"Created", l.CreatedAt,
		"Updated", l.UpdatedAt,
	)
}

// renderNested renders a drill-down list: loading, empty or a table.
func renderNested[N any](title string, st views.DrillState[N], empty string, headers []string, row func(N) []string) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(title) + "\n")
	switch {
	case st.Loading:
		b.WriteString(mutedStyle.Render("Loading...") + "\n")
	case len(st.Records) == 0:
		b.WriteString(mutedStyle.Render(empty) + "\n")
	default:
		t := newTable(headers...)
		for _, r := range st.Records {
			t.Row(row(r)...)
		}
		b.WriteString(t.Render() + "\n")
	}
	return b.String()
}

func payloadCell(raw []byte) string {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return "-"
	}
	if len(s) > 60 {
		return s[:57] + "..."
	}
	return s
}

func renderCall(c models.CallSession, events views.DrillState[models.CallEvent]) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Call #%d", c.ID)) + "\n")
	b.WriteString(fields(
		"Phone", c.Phone,
		"Email", c.Email,
		"Status", badge(c.Status),
		"Purpose", c.Purpose,
		"Created", c.CreatedAt,
	))
	if len(c.Context) > 0 {
		keys := make([]string, 0, len(c.Context))
		for k := range c.Context {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "  %s = %v\n", k, c.Context[k])
		}
	}
	if len(c.Notes) > 0 {
		b.WriteString(titleStyle.Render("Notes") + "\n")
		for _, n := range c.Notes {
			fmt.Fprintf(&b, "  %s %s\n", mutedStyle.Render(dash(n.CreatedAt)), n.Content)
		}
	}
	b.WriteString(renderNested("Events", events, "No events", []string{"ID", "Type", "Payload", "At"},
		func(e models.CallEvent) []string {
			return []string{idCell(e.ID), e.EventType, payloadCell(e.Payload), dash(e.CreatedAt)}
		}))
	return b.String()
}

func renderCampaign(c models.Campaign, recipients views.DrillState[models.Recipient], counts map[string]int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Campaign #%d", c.ID)) + "\n")
	b.WriteString(fields(
		"Name", c.Name,
		"Offer", c.Offer,
		"Status", badge(c.Status),
		"Created", c.CreatedAt,
	))

	if len(c.Emails) > 0 {
		t := newTable("#", "Subject", "Delay (h)", "Follow-up")
		for _, e := range c.Emails {
			t.Row(strconv.Itoa(e.SequenceOrder), e.SubjectTemplate, strconv.Itoa(e.SendDelayHours), strconv.FormatBool(e.IsFollowUp))
		}
		b.WriteString(titleStyle.Render("Email sequence") + "\n" + t.Render() + "\n")
	}

	if !recipients.Loading {
		parts := make([]string, 0, len(views.RecipientStates))
		for _, s := range views.RecipientStates {
			parts = append(parts, fmt.Sprintf("%s=%d", s, counts[s]))
		}
		b.WriteString(mutedStyle.Render(strings.Join(parts, " ")) + "\n")
	}
	b.WriteString(renderNested("Recipients", recipients, "No recipients", []string{"ID", "Lead", "Email", "Step", "State", "Last sent", "Next send", "Variant"},
		func(r models.Recipient) []string {
			return []string{idCell(r.ID), idCell(r.LeadID), dash(r.Email), strconv.Itoa(r.CurrentStep), badge(r.State()),
				dash(r.LastSentAt), dash(r.NextSendAt), dash(r.VariantLabel)}
		}))
	return b.String()
}

func renderTimeline(recipientID int64, st views.DrillState[models.RecipientEvent]) string {
	return renderNested(fmt.Sprintf("Timeline of recipient #%d", recipientID), st, "No events",
		[]string{"ID", "Type", "Payload", "At"},
		func(e models.RecipientEvent) []string {
			return []string{idCell(e.ID), e.EventType, payloadCell(e.Payload), dash(e.CreatedAt)}
		})
}

// renderCounts prints known statuses in order, then any others alphabetically.
func renderCounts(title string, known []string, counts map[string]int) string {
	t := newTable("Status", "Count")
	seen := map[string]bool{common.StatusAll: true}
	for _, s := range known {
		seen[s] = true
		t.Row(badge(s), strconv.Itoa(counts[s]))
	}
	var extra []string
	for s := range counts {
		if !seen[s] {
			extra = append(extra, s)
		}
	}
	sort.Strings(extra)
	for _, s := range extra {
		t.Row(badge(dash(s)), strconv.Itoa(counts[s]))
	}
	t.Row(titleStyle.Render("total"), strconv.Itoa(counts[common.StatusAll]))
	return titleStyle.Render(title) + "\n" + t.Render() + "\n"
}
