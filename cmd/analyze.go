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
	"go.uber.org/zap"
)

func (o *options) runAnalyze(cmd *cobra.Command, args []string) error {
	table, err := o.loadTable(cmd, args)
	if err != nil || table == nil {
		return err
	}

	o.logger.Info("Starting analysis", zap.String("path", table.Path))
	if err := analyzer.New(cmd.OutOrStdout(), o.logger).Analyze(table); err != nil {
		return fmt.Errorf("failed to analyze dataset: %w", err)
	}
	o.logger.Info("Analysis completed")
	return nil
}
