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
	"errors"
	"fmt"

	"github.com/GoogleCloudPlatform/dataset-analyzer/internal/utils"
)

// ErrorKind classifies the failures the loader reports to the user.
type ErrorKind int

const (
	// InputAbsent means no path was given, or the prompt was cancelled.
	InputAbsent ErrorKind = iota + 1
	// FileNotFound means the path does not resolve to an existing file.
	FileNotFound
	// EmptyFile means the file holds no parsable rows.
	EmptyFile
	// ParseFailure means the content is not well-formed delimited data.
	ParseFailure
	// EncodingFailure means the bytes are not valid UTF-8.
	EncodingFailure
	// ReadFailure covers the remaining OS errors: permissions, directories, I/O.
	ReadFailure
)

func (k ErrorKind) String() string {
	switch k {
	case InputAbsent:
		return "input absent"
	case FileNotFound:
		return "file not found"
	case EmptyFile:
		return "empty file"
	case ParseFailure:
		return "parse failure"
	case EncodingFailure:
		return "encoding failure"
	case ReadFailure:
		return "read failure"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// LoadError represents a failure to turn a path into a Table
type LoadError struct {
	Kind ErrorKind
	Path string
	Msg  string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// UserMessage returns the single console line shown for this failure.
func (e *LoadError) UserMessage() string {
	switch e.Kind {
	case InputAbsent:
		if errors.Is(e.Err, utils.ErrPromptCancelled) {
			return "\nOperation canceled by user."
		}
		return "Error: No file path provided."
	case FileNotFound:
		return "Error: The file was not found."
	case EmptyFile:
		return "Error: The file is empty."
	case ParseFailure:
		return "Error: The file could not be parsed."
	case EncodingFailure:
		return "Error: The file contains invalid characters."
	default:
		return "Error: The file could not be read."
	}
}

// KindOf returns the ErrorKind of err, or 0 when err is not a *LoadError.
func KindOf(err error) ErrorKind {
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		return loadErr.Kind
	}
	return 0
}

// WarningKind classifies non-fatal load conditions.
type WarningKind int

const (
	// MixedTypeWarning means a text column holds both numeric and non-numeric values.
	MixedTypeWarning WarningKind = iota + 1
)

// Warning is a non-fatal condition found while loading; the table is still usable.
type Warning struct {
	Kind    WarningKind
	Columns []string
}

// UserMessage returns the single console line shown for this warning.
func (w Warning) UserMessage() string {
	switch w.Kind {
	case MixedTypeWarning:
		return "Warning: Columns have mixed types."
	default:
		return "Warning: The file was loaded with warnings."
	}
}
