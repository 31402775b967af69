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
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"unicode/utf8"

	"github.com/GoogleCloudPlatform/dataset-analyzer/internal/config"
	"github.com/GoogleCloudPlatform/dataset-analyzer/internal/dataset"
	"github.com/GoogleCloudPlatform/dataset-analyzer/internal/logging"
	"github.com/GoogleCloudPlatform/dataset-analyzer/internal/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const envPrefix = "DATASET_ANALYZER"

// ErrLoadFailed is returned with --fail-on-error when the dataset could not be
// loaded. The user-facing reason has already been printed.
var ErrLoadFailed = errors.New("dataset could not be loaded")

var rootCmd = newRootCmd()

// interruptContext scopes interrupt handling to the path prompt. Once stop
// is called an interrupt terminates the process again.
var interruptContext = func(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt)
}

// options carries the state shared by the root command and its subcommands.
type options struct {
	v      *viper.Viper
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	opts := &options{v: viper.New()}

	cmd := &cobra.Command{
		Use:   "dataset_analyzer [path]",
		Short: "Print a descriptive report for a CSV dataset",
		Long: `dataset_analyzer loads a CSV file and prints its shape, column names,
data types, basic statistics and a missing-value summary.
When no path is given it is read from standard input.`,
		Example:           `./dataset_analyzer ./data/sales.csv`,
		Args:              cobra.MaximumNArgs(1),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: opts.initFlagsAndConfig,
		PersistentPostRun: opts.syncLogger,
		RunE:              opts.runAnalyze,
	}

	flags := cmd.PersistentFlags()
	flags.String("na-values", "", "Comma separated tokens read as missing values, replacing the default set")
	flags.String("extra-na-values", "", "Comma separated tokens read as missing values in addition to the active set")
	flags.String("delimiter", ",", "Single character separating fields")
	flags.String("log-level", "error", "Diagnostic log level (debug, info, warn, error)")
	flags.Bool("fail-on-error", false, "Exit with a non-zero status when the dataset cannot be loaded")

	for _, name := range []string{"na-values", "extra-na-values", "delimiter", "log-level", "fail-on-error"} {
		_ = opts.v.BindPFlag(name, flags.Lookup(name))
	}
	opts.v.SetEnvPrefix(envPrefix)
	opts.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	opts.v.AutomaticEnv()

	cmd.AddCommand(newMissingValuesCmd(opts))
	return cmd
}

// initFlagsAndConfig builds the configuration and logger from flags and
// environment variables.
func (o *options) initFlagsAndConfig(cmd *cobra.Command, args []string) error {
	cfg := config.GetConfig()

	if naValues := utils.ParseListFlag(o.v.GetString("na-values")); naValues != nil {
		cfg.Loader.NAValues = naValues
	}
	cfg.Loader.NAValues = utils.MergeUnique(cfg.Loader.NAValues, utils.ParseListFlag(o.v.GetString("extra-na-values")))

	delimiter, err := parseDelimiter(o.v.GetString("delimiter"))
	if err != nil {
		return err
	}
	cfg.Loader.Delimiter = delimiter
	cfg.LogLevel = o.v.GetString("log-level")
	cfg.FailOnError = o.v.GetBool("fail-on-error")

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}

	config.SetConfig(cfg)
	o.logger = logger
	return nil
}

func parseDelimiter(value string) (rune, error) {
	if value == `\t` {
		return '\t', nil
	}
	r, size := utf8.DecodeRuneInString(value)
	if size == 0 || size != len(value) || r == utf8.RuneError || r == '"' || r == '\r' || r == '\n' {
		return 0, fmt.Errorf("invalid delimiter: %q (must be a single character other than a quote or line break)", value)
	}
	return r, nil
}

func (o *options) syncLogger(cmd *cobra.Command, args []string) {
	if o.logger != nil {
		_ = o.logger.Sync()
	}
}

// loadTable loads the dataset named by the first argument, or prompts for it.
// A nil table with a nil error means the failure was reported and the run
// should end quietly.
func (o *options) loadTable(cmd *cobra.Command, args []string) (*dataset.Table, error) {
	cfg := config.Current()
	loader := dataset.NewLoader(cfg.Loader, cmd.InOrStdin(), cmd.OutOrStdout(), o.logger)

	var table *dataset.Table
	if len(args) == 1 {
		table = loader.LoadPath(args[0])
	} else {
		ctx, stop := interruptContext(cmd.Context())
		path, ok := loader.Prompt(ctx)
		stop()
		if ok {
			table = loader.LoadPath(path)
		}
	}

	if table == nil && cfg.FailOnError {
		return nil, ErrLoadFailed
	}
	return table, nil
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, ErrLoadFailed) {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)
	}
	return err
}
