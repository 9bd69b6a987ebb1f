package ui

import (
	"fmt"
	"strings"
)

const recentVisitCount = 8

// renderHistoryPanel renders the navigable history with the cursor marked,
// followed by the most recent entries from the visit log.
func (m *Model) renderHistoryPanel() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("History"))
	b.WriteString("\n")

	if len(m.historyEntries) == 0 {
		b.WriteString(m.styles.Dim.Render("  (empty)"))
		b.WriteString("\n")
	}
	for i, entry := range m.historyEntries {
		marker := "  "
		line := entry
		if i == m.historyCursor {
			marker = m.styles.Cursor.Render("> ")
			line = m.styles.Highlight.Render(entry)
		}
		b.WriteString(fmt.Sprintf("%s%s\n", marker, line))
	}

	if len(m.recentVisits) > 0 {
		b.WriteString("\n")
		b.WriteString(m.styles.Title.Render("Recent visits"))
		b.WriteString("\n")
		for _, v := range m.recentVisits {
			b.WriteString(fmt.Sprintf("  %s %s\n",
				m.styles.Dim.Render(v.VisitedAt.Format("Jan 02 15:04")),
				v.Path))
		}
	}

	return m.styles.Panel.Render(strings.TrimRight(b.String(), "\n"))
}

// refreshRecentVisits re-reads the visit log for the panel
func (m *Model) refreshRecentVisits() {
	if m.visits == nil {
		m.recentVisits = nil
		return
	}
	visits, err := m.visits.Recent(recentVisitCount)
	if err != nil {
		m.recentVisits = nil
		return
	}
	m.recentVisits = visits
}
