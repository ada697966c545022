package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"reposync.dev/reposync/internal/git"
)

var (
	cleanStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	untrackedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	modifiedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	deletedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	conflictingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	dimStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// renderStatus formats a snapshot as one section per non-empty
// category.
func renderStatus(snap *git.StatusSnapshot) string {
	if snap.Clean {
		return cleanStyle.Render("working copy clean")
	}

	var sb strings.Builder
	section := func(style lipgloss.Style, label string, paths []string) {
		if len(paths) == 0 {
			return
		}
		fmt.Fprintln(&sb, style.Render(label+":"))
		for _, p := range paths {
			fmt.Fprintf(&sb, "  %s\n", p)
		}
	}
	section(untrackedStyle, "untracked", snap.Untracked)
	section(modifiedStyle, "modified", snap.Modified)
	section(deletedStyle, "deleted", snap.Deleted)
	section(conflictingStyle, "conflicting", snap.Conflicting)
	return strings.TrimRight(sb.String(), "\n")
}

// renderLog formats history entries, one line per commit.
func renderLog(entries []git.LogEntry) string {
	var sb strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&sb, "%s %s\n", dimStyle.Render(e.Commit), e.Message)
	}
	return strings.TrimRight(sb.String(), "\n")
}
