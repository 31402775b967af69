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
)

// MissingEntry is one row of the missing-value report
type MissingEntry struct {
	Column  string
	Count   int
	Percent float64 // share of rows missing, 0-100, one decimal
}

// MissingReport lists the columns with at least one missing entry, highest
// percentage first. Columns with equal percentages keep table order.
type MissingReport []MissingEntry

// MissingValues computes the missing-value report for t.
func MissingValues(t *dataset.Table) MissingReport {
	report := MissingReport{}
	rows := t.Rows()
	if rows == 0 {
		return report
	}

	for _, col := range t.Columns() {
		count := col.MissingCount()
		if count == 0 {
			continue
		}
		report = append(report, MissingEntry{
			Column:  col.Name,
			Count:   count,
			Percent: percentMissing(count, rows),
		})
	}

	sort.SliceStable(report, func(i, j int) bool {
		return report[i].Percent > report[j].Percent
	})
	return report
}

// percentMissing rounds half to even at one decimal, scaling by ten first.
func percentMissing(count, rows int) float64 {
	pct := float64(count) / float64(rows) * 100
	return math.RoundToEven(pct*10) / 10
}
