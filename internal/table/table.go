// Package table lays out plain-text reports in aligned columns.
package table

import (
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

// Table is a header row plus data rows. Cells must not contain formatting codes; widths are
// measured in terminal columns, so wide and ambiguous runes line up.
type Table struct {
	head  []string
	rows  [][]string
	right []bool
}

func New(head ...string) *Table { return &Table{head: head, right: make([]bool, len(head))} }

// AlignRight right-aligns the given columns, as suits numbers.
func (t *Table) AlignRight(cols ...int) *Table {
	for _, c := range cols {
		t.right[c] = true
	}
	return t
}

// Row appends a row; missing cells are blank and extra cells are dropped.
func (t *Table) Row(cells ...string) {
	row := make([]string, len(t.head))
	copy(row, cells)
	t.rows = append(t.rows, row)
}

func (t *Table) Len() int { return len(t.rows) }

func (t *Table) widths() []int {
	w := make([]int, len(t.head))
	for _, row := range append([][]string{t.head}, t.rows...) {
		for i, cell := range row {
			if cw := runewidth.StringWidth(cell); cw > w[i] {
				w[i] = cw
			}
		}
	}
	return w
}

func (t *Table) line(b *strings.Builder, row []string, w []int) {
	for i, cell := range row {
		if i > 0 {
			b.WriteString("  ")
		}
		switch {
		case t.right[i]:
			b.WriteString(runewidth.FillLeft(cell, w[i]))
		case i == len(row)-1:
			b.WriteString(cell) /* No trailing blanks */
		default:
			b.WriteString(runewidth.FillRight(cell, w[i]))
		}
	}
	b.WriteByte('\n')
}

// Header returns the header line and a rule beneath it; Body returns the data rows. They are
// separate so callers can color the header.
func (t *Table) Header() (head, rule string) {
	w := t.widths()
	var b strings.Builder
	t.line(&b, t.head, w)
	head = b.String()

	total := 0
	for _, cw := range w {
		total += cw
	}
	return head, strings.Repeat("─", total+2*(len(w)-1)) + "\n"
}

func (t *Table) Body() string {
	w := t.widths()
	var b strings.Builder
	for _, row := range t.rows {
		t.line(&b, row, w)
	}
	return b.String()
}

// WriteTo renders the whole table to w.
func (t *Table) WriteTo(w io.Writer) (int64, error) {
	head, rule := t.Header()
	n, err := io.WriteString(w, head+rule+t.Body())
	return int64(n), err
}
