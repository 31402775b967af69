package dataset

import (
	"errors"
	"fmt"
	"testing"

	"github.com/GoogleCloudPlatform/dataset-analyzer/internal/utils"
	"github.com/stretchr/testify/assert"
)

func TestLoadErrorFormatting(t *testing.T) {
	cause := errors.New("disk on fire")
	err := &LoadError{Kind: ReadFailure, Msg: "failed to read file", Err: cause}
	assert.Equal(t, "read failure: failed to read file: disk on fire", err.Error())
	assert.ErrorIs(t, err, cause)

	bare := &LoadError{Kind: EmptyFile, Msg: "no columns to parse from file"}
	assert.Equal(t, "empty file: no columns to parse from file", bare.Error())
}

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", &LoadError{Kind: ParseFailure})
	assert.Equal(t, ParseFailure, KindOf(wrapped))
	assert.Equal(t, ErrorKind(0), KindOf(errors.New("plain")))
	assert.Equal(t, ErrorKind(0), KindOf(nil))
}

func TestUserMessageCancelled(t *testing.T) {
	cancelled := &LoadError{Kind: InputAbsent, Err: utils.ErrPromptCancelled}
	assert.Equal(t, "\nOperation canceled by user.", cancelled.UserMessage())

	empty := &LoadError{Kind: InputAbsent}
	assert.Equal(t, "Error: No file path provided.", empty.UserMessage())
}

func TestErrorKindString(t *testing.T) {
	assert.Equal(t, "file not found", FileNotFound.String())
	assert.Equal(t, "encoding failure", EncodingFailure.String())
	assert.Equal(t, "ErrorKind(42)", ErrorKind(42).String())
}
