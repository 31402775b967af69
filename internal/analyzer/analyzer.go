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
	"fmt"
	"io"
	"strconv"

	"github.com/GoogleCloudPlatform/dataset-analyzer/internal/dataset"
	"go.uber.org/zap"
)

// NoMissingValuesMessage replaces the missing-value table when it would be empty.
const NoMissingValuesMessage = "No missing values found in the dataset."

var (
	numericStatLabels     = []string{"count", "mean", "std", "min", "25%", "50%", "75%", "max"}
	categoricalStatLabels = []string{"count", "unique", "top", "freq"}
)

// Analyzer prints the descriptive report for a loaded table.
type Analyzer struct {
	out    io.Writer
	logger *zap.Logger
}

// New creates an Analyzer writing its report to out.
func New(out io.Writer, logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{out: out, logger: logger}
}

// Analyze writes the six report sections for t. The only error it returns
// is a failure to write to the output.
func (a *Analyzer) Analyze(t *dataset.Table) error {
	a.logger.Debug("Analyzing dataset",
		zap.String("path", t.Path),
		zap.Int("rows", t.Rows()),
		zap.Int("columns", t.NumColumns()),
	)
	p := &printer{w: a.out}

	p.println("===Number of rows and columns===")
	p.println(fmt.Sprintf("Number of rows: %d - This represents the total number of data entries in the dataset.", t.Rows()))
	p.println(fmt.Sprintf("Number of columns: %d - This represents the total number of features or attributes in the dataset.", t.NumColumns()))

	p.println("\n=== Column Names ===")
	p.println(columnNamesFrame(t).String())

	p.println("\n\n=== Data Types ===")
	p.println(dataTypesSeries(t))

	p.println("\n\n===Basic Statistics===")
	p.println(numericFrame(DescribeNumeric(t)).String())
	p.println("\n")
	p.println(categoricalFrame(DescribeCategorical(t)).String())

	p.println("\n\n=== Missing Values Summary ===")
	p.println(missingSection(MissingValues(t)))

	if p.err != nil {
		return fmt.Errorf("failed to write report: %w", p.err)
	}
	return nil
}

// AnalyzeMissing writes only the missing-value section.
func (a *Analyzer) AnalyzeMissing(t *dataset.Table) error {
	report := MissingValues(t)
	a.logger.Debug("Computed missing-value report",
		zap.String("path", t.Path),
		zap.Int("columns_with_missing", len(report)),
	)
	p := &printer{w: a.out}
	p.println("=== Missing Values Summary ===")
	p.println(missingSection(report))
	if p.err != nil {
		return fmt.Errorf("failed to write report: %w", p.err)
	}
	return nil
}

func columnNamesFrame(t *dataset.Table) *frame {
	names := t.Names()
	index := make([]string, len(names))
	for i := range names {
		index[i] = strconv.Itoa(i)
	}
	f := newFrame(index)
	if len(names) > 0 {
		f.addColumn("0", names)
	}
	return f
}

func dataTypesSeries(t *dataset.Table) string {
	columns := t.Columns()
	labels := make([]string, len(columns))
	dtypes := make([]string, len(columns))
	for i, col := range columns {
		labels[i] = col.Name
		dtypes[i] = col.Kind.String()
	}
	return renderSeries(labels, dtypes)
}

func numericFrame(summaries []NumericSummary) *frame {
	f := newFrame(numericStatLabels)
	for _, s := range summaries {
		f.addColumn(s.Column, formatFloats([]float64{
			float64(s.Count), s.Mean, s.Std, s.Min, s.Q25, s.Q50, s.Q75, s.Max,
		}))
	}
	return f
}

func categoricalFrame(summaries []CategoricalSummary) *frame {
	f := newFrame(categoricalStatLabels)
	for _, s := range summaries {
		top, freq := "NaN", "NaN"
		if s.HasTop {
			top, freq = s.Top, strconv.Itoa(s.Freq)
		}
		f.addColumn(s.Column, []string{strconv.Itoa(s.Count), strconv.Itoa(s.Unique), top, freq})
	}
	return f
}

func missingSection(report MissingReport) string {
	if len(report) == 0 {
		return NoMissingValuesMessage
	}
	index := make([]string, len(report))
	counts := make([]int, len(report))
	percents := make([]float64, len(report))
	for i, e := range report {
		index[i] = e.Column
		counts[i] = e.Count
		percents[i] = e.Percent
	}
	f := newFrame(index)
	f.addColumn("Missing Values", formatInts(counts))
	f.addColumn("Percentage Missing (%)", formatFloats(percents))
	return f.String()
}

// printer remembers the first write error so sections can be written
// without checking each one.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) println(s string) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintln(p.w, s)
}
