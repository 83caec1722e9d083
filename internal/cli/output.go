package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"dinefinder/internal/client"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0
	ExitFailure      = 1 // the API rejected the request
	ExitCommandError = 2 // bad arguments, unreachable server
)

// ExitError carries the exit code a command should terminate with.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// requestError classifies a client error: API rejections are failures,
// everything else is a command error.
func requestError(message string, err error) *ExitError {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return &ExitError{Code: ExitFailure, Message: message, Err: err}
	}
	return &ExitError{Code: ExitCommandError, Message: message, Err: err}
}

// CLIResponse is the envelope for json and yaml output.
type CLIResponse struct {
	Status string    `json:"status" yaml:"status"`
	Data   any       `json:"data,omitempty" yaml:"data,omitempty"`
	Error  *CLIError `json:"error,omitempty" yaml:"error,omitempty"`
}

type CLIError struct {
	Code    string `json:"code" yaml:"code"`
	Message string `json:"message" yaml:"message"`
}

// OutputFormatter renders command results as text, json or yaml.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer
	Verbose   bool
}

func (f *OutputFormatter) encode(resp CLIResponse) error {
	switch f.Format {
	case "json":
		enc := json.NewEncoder(f.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	case "yaml":
		// Round-trip through JSON so yaml keys follow the json tags.
		raw, err := json.Marshal(resp)
		if err != nil {
			return err
		}
		var generic any
		if err := yaml.Unmarshal(raw, &generic); err != nil {
			return err
		}
		enc := yaml.NewEncoder(f.Writer)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(generic)
	}
	return fmt.Errorf("unsupported format %q", f.Format)
}

// Success writes data. In text mode text renders it instead.
func (f *OutputFormatter) Success(data any, text func(w io.Writer)) error {
	if f.Format == "text" {
		text(f.Writer)
		return nil
	}
	return f.encode(CLIResponse{Status: "ok", Data: data})
}

// Error writes err and returns it unchanged so commands can `return f.Error(...)`.
func (f *OutputFormatter) Error(err *ExitError) error {
	code := "E_COMMAND"
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Code != "" {
		code = apiErr.Code
	}

	if f.Format == "text" {
		fmt.Fprintf(f.errWriter(), "Error [%s]: %s\n", code, err.Error())
		return err
	}
	if encErr := f.encode(CLIResponse{Status: "error", Error: &CLIError{Code: code, Message: err.Error()}}); encErr != nil {
		return encErr
	}
	return err
}

func (f *OutputFormatter) errWriter() io.Writer {
	if f.ErrWriter != nil {
		return f.ErrWriter
	}
	return f.Writer
}
