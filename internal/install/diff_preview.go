package install

import (
	"fmt"
	"strings"

	"github.com/aymanbagabas/go-udiff"

	"github.com/conn-castle/cylc-layer/internal/messages"
)

const (
	// DefaultDiffMaxLines is the default maximum number of diff lines shown for a link conflict.
	DefaultDiffMaxLines = 40
	// diffLineCapFlagName is the CLI flag name used to raise the diff line cap.
	diffLineCapFlagName = "--diff-lines"
)

func normalizeDiffMaxLines(value int) int {
	if value <= 0 {
		return DefaultDiffMaxLines
	}
	return value
}

// conflictDiff renders the installed and requested workflow definitions as a
// truncated unified diff. It returns "" when either side is unreadable.
func (m *Manager) conflictDiff(installed string, requested string) string {
	from, err := m.sys.ReadFile(installed)
	if err != nil {
		return ""
	}
	to, err := m.sys.ReadFile(requested)
	if err != nil {
		return ""
	}
	return renderTruncatedUnifiedDiff(
		installed+" (installed)",
		requested+" (requested)",
		string(from),
		string(to),
		m.diffMaxLines,
	)
}

// renderTruncatedUnifiedDiff keeps at most maxLines diff lines and appends a
// note naming the flag that raises the cap when lines were dropped.
func renderTruncatedUnifiedDiff(fromName string, toName string, fromContent string, toContent string, maxLines int) string {
	limit := normalizeDiffMaxLines(maxLines)
	diff := udiff.Unified(fromName, toName, fromContent, toContent)
	lines := splitDiffLines(diff)
	if len(lines) <= limit {
		return ensureTrailingNewline(strings.Join(lines, "\n"))
	}
	truncated := lines[:limit]
	truncated = append(truncated, fmt.Sprintf(messages.InstallDiffTruncatedFmt, limit, diffLineCapFlagName))
	return ensureTrailingNewline(strings.Join(truncated, "\n"))
}

func splitDiffLines(content string) []string {
	trimmed := strings.TrimRight(content, "\n")
	if trimmed == "" {
		return []string{}
	}
	return strings.Split(trimmed, "\n")
}

func ensureTrailingNewline(content string) string {
	if content == "" || strings.HasSuffix(content, "\n") {
		return content
	}
	return content + "\n"
}
