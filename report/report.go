// Package report renders dataset check results for the terminal.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/soocke/pixel-label-go/domain/dataset"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	failStyle   = cellStyle.Foreground(lipgloss.Color("9"))
	warnStyle   = cellStyle.Foreground(lipgloss.Color("11"))
	summary     = lipgloss.NewStyle().Bold(true)
)

// Render writes rep as a table followed by a summary line.
func Render(w io.Writer, rep dataset.Report) {
	rows := make([][]string, 0, len(rep.Results))
	for _, r := range rep.Results {
		status := "ok"
		switch {
		case r.Err != nil:
			status = r.Err.Error()
		case r.UnknownClasses > 0:
			status = fmt.Sprintf("%d unknown class ids", r.UnknownClasses)
		}
		size := ""
		if r.Width > 0 {
			size = fmt.Sprintf("%dx%d", r.Width, r.Height)
		}
		rows = append(rows, []string{r.Image, size, strconv.Itoa(r.Boxes), status})
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("IMAGE", "SIZE", "BOXES", "STATUS").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			r := rep.Results[row]
			switch {
			case col == 3 && r.Err != nil:
				return failStyle
			case col == 3 && r.UnknownClasses > 0:
				return warnStyle
			}
			return cellStyle
		})
	fmt.Fprintln(w, t.Render())
	classes := "none"
	if p := rep.Classes.Path(); p != "" {
		classes = fmt.Sprintf("%s (%d)", p, rep.Classes.Len())
	}
	fmt.Fprintln(w, summary.Render(fmt.Sprintf("%d images, %d boxes, %d failed, classes: %s",
		len(rep.Results), rep.TotalBoxes(), rep.Failed(), classes)))
}
