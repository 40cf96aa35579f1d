package extract

import (
	"html"
	"math"
	"sort"
	"strings"
)

const (
	// Column starts within this distance count as the same column.
	columnTolerance = 12.0
	// Minimum rows and columns for a region to qualify as a table.
	minTableRows = 2
	minTableCols = 2
	// Vertical gap between candidate rows beyond which a table region ends.
	maxRowGap = 30.0
)

// Table is a detected grid of cell texts, one slice per row.
type Table struct {
	Rows [][]string
	BBox BBox
	// Lines indexes into the page's line slice for the rows consumed by
	// this table, so they can be excluded from paragraph output.
	Lines []int
}

// Text renders the table as pipe-separated rows, matching the persisted
// artifact convention.
func (t Table) Text() string {
	rows := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		rows[i] = strings.Join(row, " | ")
	}
	return strings.Join(rows, "\n")
}

// HTML renders the table as a plain <table> grid.
func (t Table) HTML() string {
	var sb strings.Builder
	sb.WriteString("<table>")
	for _, row := range t.Rows {
		sb.WriteString("<tr>")
		for _, cell := range row {
			sb.WriteString("<td>")
			sb.WriteString(html.EscapeString(cell))
			sb.WriteString("</td>")
		}
		sb.WriteString("</tr>")
	}
	sb.WriteString("</table>")
	return sb.String()
}

// detectTables finds column-aligned runs of multi-word lines. Detection is
// purely geometric: consecutive lines whose word starts fall into a shared
// set of column positions form a table region.
func detectTables(lines []Line) []Table {
	var tables []Table

	start := -1
	for i := 0; i <= len(lines); i++ {
		rowLike := i < len(lines) && len(lines[i].Words) >= minTableCols
		if rowLike && start >= 0 && lines[i-1].Y-lines[i].Y > maxRowGap {
			// Too far from the previous candidate row; close the region.
			if t, ok := buildTable(lines, start, i); ok {
				tables = append(tables, t)
			}
			start = -1
		}
		if rowLike {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			if t, ok := buildTable(lines, start, i); ok {
				tables = append(tables, t)
			}
			start = -1
		}
	}
	return tables
}

// buildTable checks a candidate region for consistent columns and produces
// the cell grid.
func buildTable(lines []Line, start, end int) (Table, bool) {
	if end-start < minTableRows {
		return Table{}, false
	}
	region := lines[start:end]

	cols := clusterColumns(region)
	if len(cols) < minTableCols {
		return Table{}, false
	}

	// Every row must populate at least two of the shared columns.
	for _, ln := range region {
		if alignedWords(ln, cols) < minTableCols {
			return Table{}, false
		}
	}

	t := Table{BBox: region[0].BBox}
	for i, ln := range region {
		row := make([]string, len(cols))
		for _, w := range ln.Words {
			c := nearestColumn(cols, w.BBox.X0)
			if row[c] == "" {
				row[c] = w.Text
			} else {
				row[c] += " " + w.Text
			}
		}
		t.Rows = append(t.Rows, row)
		t.BBox = t.BBox.Union(ln.BBox)
		t.Lines = append(t.Lines, start+i)
	}
	return t, true
}

// clusterColumns groups the region's word start positions into column
// centers shared by most rows.
func clusterColumns(region []Line) []float64 {
	var starts []float64
	for _, ln := range region {
		for _, w := range ln.Words {
			starts = append(starts, w.BBox.X0)
		}
	}
	sort.Float64s(starts)

	var cols []float64
	var members int
	for _, x := range starts {
		if len(cols) == 0 || x-cols[len(cols)-1] > columnTolerance {
			cols = append(cols, x)
			members = 1
			continue
		}
		// Running mean keeps the center stable as members accumulate.
		members++
		cols[len(cols)-1] += (x - cols[len(cols)-1]) / float64(members)
	}
	return cols
}

func alignedWords(ln Line, cols []float64) int {
	used := make(map[int]bool, len(cols))
	for _, w := range ln.Words {
		c := nearestColumn(cols, w.BBox.X0)
		if math.Abs(cols[c]-w.BBox.X0) <= columnTolerance {
			used[c] = true
		}
	}
	return len(used)
}

func nearestColumn(cols []float64, x float64) int {
	best := 0
	bestDist := math.Abs(cols[0] - x)
	for i := 1; i < len(cols); i++ {
		if d := math.Abs(cols[i] - x); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}
