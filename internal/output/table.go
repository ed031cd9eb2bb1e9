package output

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/refig/refig/internal/layout"
)

// LatestMarker flags the snapshot whose content equals the latest copy.
const LatestMarker = "latest"

// historyHeaders are the columns of `refig history`.
var historyHeaders = []string{"TIMESTAMP", "REVISION", "SIZE", "DIGEST", "FILE", ""}

const (
	colFile   = 4
	colMarker = 5
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorBlue)
	borderStyle = lipgloss.NewStyle().Foreground(ColorDimGray)
)

// RenderHistoryTable renders the snapshots of one figure. Parsed timestamps
// are shown in UTC, unparsed tokens as they appear in the
// file name.
func RenderHistoryTable(snapshots []layout.Snapshot) string {
	rows := make([][]string, 0, len(snapshots))
	for _, s := range snapshots {
		ts := s.Timestamp
		if !s.Time.IsZero() {
			ts = s.Time.UTC().Format("2006-01-02 15:04:05")
		}
		marker := ""
		if s.Latest {
			marker = LatestMarker
		}
		rows = append(rows, []string{ts, s.Revision, strconv.FormatInt(s.Size, 10), s.ShortDigest(), s.Path, marker})
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(historyHeaders...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == colMarker:
				return StyleSummary.Foreground(ColorGreen)
			case col == colFile:
				return StyleDim
			default:
				return lipgloss.NewStyle()
			}
		}).
		String()
}
