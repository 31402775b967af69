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
package cmd

import (
	"fmt"

	"github.com/GoogleCloudPlatform/dataset-analyzer/internal/analyzer"
	"github.com/spf13/cobra"
)

func newMissingValuesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "missing-values [path]",
		Short:   "Print the missing-value summary of a CSV dataset",
		Long:    `Loads a CSV file and prints, for each column with missing entries, the count and percentage of missing values.`,
		Example: `./dataset_analyzer missing-values ./data/sales.csv --na-values "NA,?"`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := opts.loadTable(cmd, args)
			if err != nil || table == nil {
				return err
			}
			if err := analyzer.New(cmd.OutOrStdout(), opts.logger).AnalyzeMissing(table); err != nil {
				return fmt.Errorf("failed to compute missing values: %w", err)
			}
			return nil
		},
	}
}
