package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/rdfc/internal/canon"
)

func TestOutputFormatter_JSONSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	err := formatter.Success(map[string]string{"result": "success"})
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.NotNil(t, resp.Data)
}

func TestOutputFormatter_JSONError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	require.NoError(t, formatter.Error("INVALID_TERM", "bad subject", nil))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_TERM", resp.Error.Code)
	assert.Equal(t, "bad subject", resp.Error.Message)
}

func TestOutputFormatter_TextErrorGoesToErrWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	errBuf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format:    "text",
		Writer:    buf,
		ErrWriter: errBuf,
		Verbose:   true,
	}

	require.NoError(t, formatter.Error("E001", "broken", "detail"))
	assert.Empty(t, buf.String())
	assert.Contains(t, errBuf.String(), "Error [E001]: broken")
	assert.Contains(t, errBuf.String(), "Details: detail")
}

func TestOutputFormatter_VerboseLog(t *testing.T) {
	buf := &bytes.Buffer{}
	quiet := &OutputFormatter{Format: "text", Writer: buf}
	quiet.VerboseLog("hidden %d", 1)
	assert.Empty(t, buf.String())

	loud := &OutputFormatter{Format: "text", Writer: buf, Verbose: true}
	loud.VerboseLog("shown %d", 2)
	assert.Equal(t, "shown 2\n", buf.String())
}

func TestOutputFormatter_Status(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "text", Writer: buf}

	formatter.Status(true, "case %s", "a")
	formatter.Status(false, "case %s", "b")
	assert.Contains(t, buf.String(), "PASS")
	assert.Contains(t, buf.String(), "case a")
	assert.Contains(t, buf.String(), "FAIL")
	assert.Contains(t, buf.String(), "case b")
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "x")))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))

	wrapped := WrapExitError(ExitFailure, "outer", errors.New("inner"))
	assert.Equal(t, "outer: inner", wrapped.Error())
	assert.Equal(t, "inner", errors.Unwrap(wrapped).Error())
}

func TestCanonFailureExitCodes(t *testing.T) {
	formatter := &OutputFormatter{Format: "text", Writer: &bytes.Buffer{}, ErrWriter: &bytes.Buffer{}}

	err := formatter.canonFailure(&canon.Error{Code: canon.ErrCodeAlgorithmNotSupported, Message: "nope"})
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	err = formatter.canonFailure(&canon.Error{Code: canon.ErrCodeDegreeLimitExceeded, Message: "too deep"})
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.True(t, canon.IsDegreeLimitExceeded(err))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestCanonFailureReportsWriteError(t *testing.T) {
	formatter := &OutputFormatter{Format: "json", Writer: failingWriter{}}

	err := formatter.canonFailure(&canon.Error{Code: canon.ErrCodeAlgorithmNotSupported, Message: "nope"})
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "canonicalization failed")
	assert.Contains(t, err.Error(), "disk full")
	assert.True(t, canon.IsAlgorithmNotSupported(err))
}
