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
package utils

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrPromptCancelled is returned when the context is cancelled while waiting for input.
var ErrPromptCancelled = errors.New("prompt cancelled")

type lineResult struct {
	line string
	err  error
}

// PromptLine prints message to out and blocks until one line is read from in
// or ctx is done. The trailing line terminator is stripped; end of input
// without a newline returns whatever was read.
func PromptLine(ctx context.Context, in io.Reader, out io.Writer, message string) (string, error) {
	if _, err := fmt.Fprint(out, message); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}

	results := make(chan lineResult, 1)
	go func() {
		line, err := bufio.NewReader(in).ReadString('\n')
		results <- lineResult{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ErrPromptCancelled
	case res := <-results:
		if res.err != nil && !errors.Is(res.err, io.EOF) {
			return "", fmt.Errorf("failed to read input: %w", res.err)
		}
		return strings.TrimRight(res.line, "\r\n"), nil
	}
}

// ParseListFlag splits a comma separated flag value, trimming whitespace around
// each entry. An empty flag yields an empty list.
func ParseListFlag(flag string) []string {
	if strings.TrimSpace(flag) == "" {
		return nil
	}
	parts := strings.Split(flag, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		values = append(values, strings.TrimSpace(part))
	}
	return values
}

// MergeUnique appends the entries of extra that are not already in base,
// preserving order.
func MergeUnique(base, extra []string) []string {
	seen := make(map[string]bool, len(base)+len(extra))
	merged := make([]string, 0, len(base)+len(extra))
	for _, list := range [][]string{base, extra} {
		for _, v := range list {
			if seen[v] {
				continue
			}
			seen[v] = true
			merged = append(merged, v)
		}
	}
	return merged
}
