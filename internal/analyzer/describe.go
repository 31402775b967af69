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
	"sort"

	"github.com/GoogleCloudPlatform/dataset-analyzer/internal/dataset"
	"github.com/montanaflynn/stats"
)

// NumericSummary holds the descriptive statistics of one numeric column.
// Undefined statistics are NaN.
type NumericSummary struct {
	Column string
	Count  int
	Mean   float64
	Std    float64
	Min    float64
	Q25    float64
	Q50    float64
	Q75    float64
	Max    float64
}

// CategoricalSummary holds the descriptive statistics of one text column.
type CategoricalSummary struct {
	Column string
	Count  int
	Unique int
	Top    string
	Freq   int
	HasTop bool // false when the column has no values
}

// IsNumericColumn selects the columns described by DescribeNumeric.
func IsNumericColumn(k dataset.Kind) bool {
	return k.IsNumeric()
}

// IsCategoricalColumn selects the columns described by DescribeCategorical.
// Boolean columns belong to neither subset.
func IsCategoricalColumn(k dataset.Kind) bool {
	return k == dataset.KindText
}

// DescribeNumeric summarizes every numeric column of t, in table order.
func DescribeNumeric(t *dataset.Table) []NumericSummary {
	var summaries []NumericSummary
	for _, col := range t.Select(IsNumericColumn) {
		summaries = append(summaries, describeNumbers(col.Name, col.PresentNumbers()))
	}
	return summaries
}

// DescribeCategorical summarizes every text column of t, in table order.
func DescribeCategorical(t *dataset.Table) []CategoricalSummary {
	var summaries []CategoricalSummary
	for _, col := range t.Select(IsCategoricalColumn) {
		summaries = append(summaries, describeTexts(col.Name, col.PresentTexts()))
	}
	return summaries
}

func describeNumbers(name string, values []float64) NumericSummary {
	nan := math.NaN()
	summary := NumericSummary{
		Column: name,
		Count:  len(values),
		Mean:   nan, Std: nan, Min: nan, Q25: nan, Q50: nan, Q75: nan, Max: nan,
	}
	if len(values) == 0 {
		return summary
	}

	data := stats.Float64Data(values)
	summary.Mean, _ = stats.Mean(data)
	summary.Min, _ = stats.Min(data)
	summary.Max, _ = stats.Max(data)
	if len(values) > 1 {
		summary.Std, _ = stats.StandardDeviationSample(data)
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	summary.Q25 = quantile(sorted, 0.25)
	summary.Q50 = quantile(sorted, 0.50)
	summary.Q75 = quantile(sorted, 0.75)
	return summary
}

// quantile interpolates linearly between the closest ranks of sorted data,
// placing the p-quantile at position (n-1)*p.
func quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	pos := float64(n-1) * p
	lower := math.Floor(pos)
	i := int(lower)
	if i+1 >= n {
		return sorted[n-1]
	}
	return sorted[i] + (pos-lower)*(sorted[i+1]-sorted[i])
}

func describeTexts(name string, values []string) CategoricalSummary {
	summary := CategoricalSummary{Column: name, Count: len(values)}

	counts := make(map[string]int, len(values))
	var order []string
	for _, v := range values {
		if counts[v] == 0 {
			order = append(order, v)
		}
		counts[v]++
	}
	summary.Unique = len(order)

	for _, v := range order {
		if counts[v] > summary.Freq {
			summary.Top = v
			summary.Freq = counts[v]
			summary.HasTop = true
		}
	}
	return summary
}
