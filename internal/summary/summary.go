// Package summary renders a console table describing a normalization run.
package summary

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
	"github.com/zgpcy/instance-normalizer/internal/normalizer"
)

var columns = []string{"Cloud", "Rows", "Kept", "Dropped", "Parse failures", "Cheapest", "Priciest"}

// numeric columns are right-aligned
var numeric = map[int]bool{1: true, 2: true, 3: true, 4: true}

// Write renders one line per provider plus a total as a markdown table.
func Write(w io.Writer, stats []normalizer.Stats) error {
	table := [][]string{columns}

	var total normalizer.Stats
	for _, s := range stats {
		table = append(table, row(string(s.Provider), s))

		total.RowsRead += s.RowsRead
		total.Kept += s.Kept
		total.Rejected += s.Rejected
		total.ParseFailures += s.ParseFailures
		if s.Cheapest.Known() && (!total.Cheapest.Known() || s.Cheapest.Compare(total.Cheapest) < 0) {
			total.Cheapest = s.Cheapest
		}
		if s.Priciest.Known() && (!total.Priciest.Known() || s.Priciest.Compare(total.Priciest) > 0) {
			total.Priciest = s.Priciest
		}
	}
	table = append(table, row("Total", total))

	widths := make([]int, len(columns))
	for _, r := range table {
		for i, cell := range r {
			if cw := runewidth.StringWidth(cell); cw > widths[i] {
				widths[i] = cw
			}
		}
	}

	var b strings.Builder
	for i, r := range table {
		writeRow(&b, r, widths)
		if i == 0 {
			writeSeparator(&b, widths)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func row(name string, s normalizer.Stats) []string {
	return []string{
		name,
		humanize.Comma(int64(s.RowsRead)),
		humanize.Comma(int64(s.Kept)),
		humanize.Comma(int64(s.Rejected)),
		humanize.Comma(int64(s.ParseFailures)),
		costCell(s.Cheapest.Known(), s.Cheapest.String()),
		costCell(s.Priciest.Known(), s.Priciest.String()),
	}
}

func costCell(known bool, s string) string {
	if !known {
		return "-"
	}
	return s
}

func writeRow(b *strings.Builder, cells []string, widths []int) {
	b.WriteString("|")
	for i, cell := range cells {
		pad := strings.Repeat(" ", widths[i]-runewidth.StringWidth(cell))
		if numeric[i] {
			fmt.Fprintf(b, " %s%s |", pad, cell)
		} else {
			fmt.Fprintf(b, " %s%s |", cell, pad)
		}
	}
	b.WriteString("\n")
}

func writeSeparator(b *strings.Builder, widths []int) {
	b.WriteString("|")
	for i, w := range widths {
		dashes := strings.Repeat("-", w)
		if numeric[i] {
			fmt.Fprintf(b, " %s:|", dashes)
		} else {
			fmt.Fprintf(b, " %s |", dashes)
		}
	}
	b.WriteString("\n")
}
