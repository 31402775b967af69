/*
 * Copyright 2025 Google LLC
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *    https://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */
package analyzer

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	floatPrecision = 6
	columnGap      = "  "
)

// frame is a labelled grid printed with a left-aligned index and
// right-aligned value columns.
type frame struct {
	columns []string
	index   []string
	cells   [][]string // cells[col][row]
}

func newFrame(index []string) *frame {
	return &frame{index: index}
}

func (f *frame) addColumn(name string, values []string) {
	f.columns = append(f.columns, name)
	f.cells = append(f.cells, values)
}

func (f *frame) String() string {
	if len(f.columns) == 0 || len(f.index) == 0 {
		return "Empty DataFrame\n" +
			"Columns: [" + strings.Join(f.columns, ", ") + "]\n" +
			"Index: [" + strings.Join(f.index, ", ") + "]"
	}

	indexWidth := maxWidth(f.index)
	widths := make([]int, len(f.columns))
	for c, name := range f.columns {
		widths[c] = max(width(name), maxWidth(f.cells[c]))
	}

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", indexWidth))
	for c, name := range f.columns {
		b.WriteString(columnGap)
		b.WriteString(padLeft(name, widths[c]))
	}
	for r, label := range f.index {
		b.WriteString("\n")
		b.WriteString(padRight(label, indexWidth))
		for c := range f.columns {
			b.WriteString(columnGap)
			b.WriteString(padLeft(f.cells[c][r], widths[c]))
		}
	}
	return b.String()
}

// renderSeries prints labelled values one per line followed by the dtype
// footer.
func renderSeries(labels, values []string) string {
	if len(labels) == 0 {
		return "Series([], dtype: object)"
	}
	labelWidth := maxWidth(labels)
	valueWidth := maxWidth(values)

	var b strings.Builder
	for i, label := range labels {
		b.WriteString(padRight(label, labelWidth))
		b.WriteString(columnGap)
		b.WriteString(padLeft(values[i], valueWidth))
		b.WriteString("\n")
	}
	b.WriteString("dtype: object")
	return b.String()
}

// formatFloats renders a column of floats with a shared number of decimals:
// six, minus the trailing zeros every value has in common, keeping at least one.
func formatFloats(values []float64) []string {
	decimals := 1
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		s := strconv.FormatFloat(v, 'f', floatPrecision, 64)
		used := floatPrecision - (len(s) - len(strings.TrimRight(s, "0")))
		decimals = max(decimals, used)
	}

	out := make([]string, len(values))
	for i, v := range values {
		switch {
		case math.IsNaN(v):
			out[i] = "NaN"
		case math.IsInf(v, 1):
			out[i] = "inf"
		case math.IsInf(v, -1):
			out[i] = "-inf"
		default:
			out[i] = strconv.FormatFloat(v, 'f', decimals, 64)
		}
	}
	return out
}

func formatInts(values []int) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strconv.Itoa(v)
	}
	return out
}

func width(s string) int {
	return utf8.RuneCountInString(s)
}

func maxWidth(values []string) int {
	w := 0
	for _, v := range values {
		w = max(w, width(v))
	}
	return w
}

func padLeft(s string, w int) string {
	if n := w - width(s); n > 0 {
		return strings.Repeat(" ", n) + s
	}
	return s
}

func padRight(s string, w int) string {
	if n := w - width(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}
