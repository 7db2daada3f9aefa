package cli

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/taskboard/internal/cli/formatter"
)

func newSpinner() spinner.Model {
	return spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(formatter.StylePurple),
	)
}

func loadingLine(s spinner.Model, text string) string {
	return "\n  " + s.View() + " " + formatter.Dim(text) + "\n"
}

func errorBlock(msg string) string {
	if msg == "" {
		return ""
	}
	return "\n  " + formatter.ErrorLine(msg) + "\n"
}

// updateSpinner advances s only while busy, so idle views stop ticking.
func updateSpinner(s *spinner.Model, busy bool, msg spinner.TickMsg) tea.Cmd {
	if !busy {
		return nil
	}
	var cmd tea.Cmd
	*s, cmd = s.Update(msg)
	return cmd
}

// cycleEnum steps through "" (no filter) and then every value in order.
func cycleEnum[T ~string](cur T, all []T) T {
	if cur == "" {
		return all[0]
	}
	for i, v := range all {
		if v == cur && i+1 < len(all) {
			return all[i+1]
		}
	}
	return ""
}

// moveCursor applies up/down keys to cursor over n rows.
func moveCursor(cursor *int, n int, key string) bool {
	switch key {
	case "up", "k":
		if *cursor > 0 {
			*cursor--
		}
		return true
	case "down", "j":
		if *cursor < n-1 {
			*cursor++
		}
		return true
	}
	return false
}

func clampCursor(cursor, n int) int {
	if cursor >= n {
		cursor = n - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	return cursor
}
