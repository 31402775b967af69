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
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/GoogleCloudPlatform/dataset-analyzer/internal/config"
	"github.com/GoogleCloudPlatform/dataset-analyzer/internal/utils"
	"go.uber.org/zap"
)

// PromptMessage is shown when the path is read interactively.
const PromptMessage = "Please enter the path to the CSV file you want to analyze: "

// Loader is the console-facing side of Read. It writes exactly one line to
// out for each failure or warning and returns a nil Table on failure.
type Loader struct {
	cfg    config.LoaderConfig
	in     io.Reader
	out    io.Writer
	logger *zap.Logger
}

// NewLoader creates a Loader reading prompted input from in and writing
// diagnostics to out.
func NewLoader(cfg config.LoaderConfig, in io.Reader, out io.Writer, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{cfg: cfg, in: in, out: out, logger: logger}
}

// Load prompts for a path and loads it. Cancelling ctx while the prompt is
// waiting is reported like an empty path.
func (l *Loader) Load(ctx context.Context) *Table {
	path, ok := l.Prompt(ctx)
	if !ok {
		return nil
	}
	return l.LoadPath(path)
}

// Prompt asks for a path. ok is false when the prompt was cancelled or input
// could not be read; the failure has been reported by then.
func (l *Loader) Prompt(ctx context.Context) (path string, ok bool) {
	path, err := utils.PromptLine(ctx, l.in, l.out, PromptMessage)
	if err != nil {
		msg := "failed to read file path"
		if errors.Is(err, utils.ErrPromptCancelled) {
			msg = "operation canceled by user"
		}
		l.fail(&LoadError{Kind: InputAbsent, Msg: msg, Err: err})
		return "", false
	}
	return path, true
}

// LoadPath loads the file at path without prompting.
func (l *Loader) LoadPath(path string) *Table {
	l.logger.Debug("Loading dataset", zap.String("path", path))

	table, warnings, err := Read(path, l.cfg)
	if err != nil {
		var loadErr *LoadError
		if !errors.As(err, &loadErr) {
			loadErr = &LoadError{Kind: ReadFailure, Path: path, Msg: "unexpected load failure", Err: err}
		}
		l.fail(loadErr)
		return nil
	}

	for _, w := range warnings {
		l.logger.Info("Dataset loaded with warning", zap.Strings("columns", w.Columns))
		fmt.Fprintln(l.out, w.UserMessage())
	}
	l.logger.Debug("Dataset loaded",
		zap.String("path", path),
		zap.Int("rows", table.Rows()),
		zap.Int("columns", table.NumColumns()),
	)
	return table
}

func (l *Loader) fail(err *LoadError) {
	l.logger.Debug("Dataset load failed",
		zap.Stringer("kind", err.Kind),
		zap.String("path", err.Path),
		zap.Error(err),
	)
	fmt.Fprintln(l.out, err.UserMessage())
}
