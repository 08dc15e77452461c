// Package render prints conversation lists for the command line tools.
package render

import (
	"fmt"
	"io"
	"time"

	"github.com/gookit/color"
)

const maxPreview = 48

type Row struct {
	CounterpartID string
	Name          string
	LastMessage   string
	At            time.Time
	Unread        bool
}

// Conversations writes one line per row, unread rows highlighted when
// colours is set.
func Conversations(w io.Writer, rows []Row, colours bool) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "No conversation yet")
		return
	}

	table := plainTable(w, "", "Counterpart", "Name", "Last message", "At")
	for _, row := range rows {
		marker := " "
		if row.Unread {
			marker = "●"
		}
		line := []string{marker, row.CounterpartID, row.Name, preview(row.LastMessage), row.At.Local().Format(time.DateTime)}
		if row.Unread && colours {
			for i := range line {
				line[i] = color.New(color.FgGreen, color.OpBold).Render(line[i])
			}
		}
		table.Append(line)
	}
	table.Render()
}

func preview(text string) string {
	r := []rune(text)
	if len(r) <= maxPreview {
		return text
	}
	return string(r[:maxPreview-1]) + "…"
}
