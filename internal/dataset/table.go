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
package dataset

import (
	"fmt"
	"math"
)

// Kind is the inferred type of a column.
type Kind int

const (
	KindText Kind = iota
	KindInteger
	KindFloat
	KindBoolean
)

// String returns the dtype label printed in the report.
func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "int64"
	case KindFloat:
		return "float64"
	case KindBoolean:
		return "bool"
	default:
		return "object"
	}
}

// IsNumeric reports whether columns of this kind hold numbers.
func (k Kind) IsNumeric() bool {
	return k == KindInteger || k == KindFloat
}

// Column is one named column of a Table. Which value slice is populated
// depends on Kind: Numbers for numeric kinds, Texts for KindText and Bools for
// KindBoolean. Missing has one entry per row in every case.
type Column struct {
	Name    string
	Kind    Kind
	Numbers []float64
	Texts   []string
	Bools   []bool
	Missing []bool
}

// NewNumberColumn builds an integer or float column. NaN values are missing.
func NewNumberColumn(name string, kind Kind, values []float64) *Column {
	if !kind.IsNumeric() {
		kind = KindFloat
	}
	missing := make([]bool, len(values))
	for i, v := range values {
		missing[i] = math.IsNaN(v)
	}
	return &Column{Name: name, Kind: kind, Numbers: values, Missing: missing}
}

// NewTextColumn builds a text column with no missing entries. Use WithMissing to mark some.
func NewTextColumn(name string, values []string) *Column {
	return &Column{Name: name, Kind: KindText, Texts: values, Missing: make([]bool, len(values))}
}

// NewBoolColumn builds a boolean column with no missing entries.
func NewBoolColumn(name string, values []bool) *Column {
	return &Column{Name: name, Kind: KindBoolean, Bools: values, Missing: make([]bool, len(values))}
}

// WithMissing marks the given row indexes as missing and returns the column.
func (c *Column) WithMissing(rows ...int) *Column {
	for _, r := range rows {
		if r >= 0 && r < len(c.Missing) {
			c.Missing[r] = true
		}
	}
	return c
}

// Len returns the number of entries in the column.
func (c *Column) Len() int {
	return len(c.Missing)
}

// MissingCount returns the number of missing entries.
func (c *Column) MissingCount() int {
	count := 0
	for _, m := range c.Missing {
		if m {
			count++
		}
	}
	return count
}

// PresentNumbers returns the non-missing values of a numeric column.
func (c *Column) PresentNumbers() []float64 {
	values := make([]float64, 0, len(c.Numbers))
	for i, v := range c.Numbers {
		if !c.Missing[i] {
			values = append(values, v)
		}
	}
	return values
}

// PresentTexts returns the non-missing values of a text column, in row order.
func (c *Column) PresentTexts() []string {
	values := make([]string, 0, len(c.Texts))
	for i, v := range c.Texts {
		if !c.Missing[i] {
			values = append(values, v)
		}
	}
	return values
}

func (c *Column) valuesLen() int {
	switch {
	case c.Kind.IsNumeric():
		return len(c.Numbers)
	case c.Kind == KindBoolean:
		return len(c.Bools)
	default:
		return len(c.Texts)
	}
}

// Table is an in-memory dataset: ordered named columns of equal length.
type Table struct {
	Path    string
	rows    int
	columns []*Column
	index   map[string]int
}

// NewTable validates the columns and assembles them into a Table.
func NewTable(path string, rows int, columns ...*Column) (*Table, error) {
	index := make(map[string]int, len(columns))
	for i, col := range columns {
		if col == nil {
			return nil, fmt.Errorf("column %d is nil", i)
		}
		if _, exists := index[col.Name]; exists {
			return nil, fmt.Errorf("duplicate column name: %q", col.Name)
		}
		if col.Len() != rows || col.valuesLen() != rows {
			return nil, fmt.Errorf("column %q has %d entries, expected %d", col.Name, col.Len(), rows)
		}
		index[col.Name] = i
	}
	return &Table{Path: path, rows: rows, columns: columns, index: index}, nil
}

// Rows returns the row count at load time.
func (t *Table) Rows() int {
	return t.rows
}

// NumColumns returns the column count.
func (t *Table) NumColumns() int {
	return len(t.columns)
}

// Columns returns the columns in their original order.
func (t *Table) Columns() []*Column {
	return append([]*Column(nil), t.columns...)
}

// Names returns the column names in their original order.
func (t *Table) Names() []string {
	names := make([]string, len(t.columns))
	for i, col := range t.columns {
		names[i] = col.Name
	}
	return names
}

// Column looks up a column by name.
func (t *Table) Column(name string) (*Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return t.columns[i], true
}

// Select returns the columns whose kind satisfies keep, in original order.
func (t *Table) Select(keep func(Kind) bool) []*Column {
	var selected []*Column
	for _, col := range t.columns {
		if keep(col.Kind) {
			selected = append(selected, col)
		}
	}
	return selected
}
