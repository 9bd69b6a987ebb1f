package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHelpContent renders the help information shown in the pager
func renderHelpContent() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	var help strings.Builder

	help.WriteString(titleStyle.Render("dirgrip Help"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Navigation"))
	help.WriteString("\n")
	help.WriteString(fmt.Sprintf("  %s  %s\n", keyStyle.Render("b, alt+←"), descStyle.Render("Back in directory history")))
	help.WriteString(fmt.Sprintf("  %s  %s\n", keyStyle.Render("f, alt+→"), descStyle.Render("Forward in directory history")))
	help.WriteString(fmt.Sprintf("  %s  %s\n", keyStyle.Render("u, alt+↑"), descStyle.Render("Go to parent directory")))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Path bar"))
	help.WriteString("\n")
	help.WriteString(fmt.Sprintf("  %s        %s\n", keyStyle.Render("o"), descStyle.Render("Edit the working directory path")))
	help.WriteString(fmt.Sprintf("  %s      %s\n", keyStyle.Render("Tab"), descStyle.Render("Cycle through directory completions")))
	help.WriteString(fmt.Sprintf("  %s    %s\n", keyStyle.Render("Enter"), descStyle.Render("Change to the typed directory")))
	help.WriteString(fmt.Sprintf("  %s      %s\n", keyStyle.Render("Esc"), descStyle.Render("Cancel editing")))
	help.WriteString("\n")
	help.WriteString(descStyle.Render("  A path that names a file opens the file in the pager;\n"))
	help.WriteString(descStyle.Render("  a trailing :<line> suffix is carried along.\n"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("History"))
	help.WriteString("\n")
	help.WriteString(fmt.Sprintf("  %s        %s\n", keyStyle.Render("h"), descStyle.Render("Toggle the history panel")))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Other"))
	help.WriteString("\n")
	help.WriteString(fmt.Sprintf("  %s        %s\n", keyStyle.Render("?"), descStyle.Render("Toggle this help")))
	help.WriteString(fmt.Sprintf("  %s        %s", keyStyle.Render("q"), descStyle.Render("Quit")))

	return help.String()
}
