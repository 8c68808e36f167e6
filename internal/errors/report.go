// Package errors provides the structured diagnostic type shared by every
// phase of the Zydeco pipeline: kind checking, type checking, linking, and
// the abstract machine. Every static error the checker raises is a *Report;
// the checker never recovers from the first one (spec §7).
package errors

import (
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/zydeco-lang/zydeco/internal/ast"
)

// Report is the canonical structured error type for Zydeco.
type Report struct {
	Schema  string         `json:"schema" yaml:"schema"` // always "zydeco.error/v1"
	Code    string         `json:"code" yaml:"code"`
	Phase   string         `json:"phase" yaml:"phase"`
	Message string         `json:"message" yaml:"message"`
	Span    *ast.Span      `json:"span,omitempty" yaml:"span,omitempty"`
	Data    map[string]any `json:"data,omitempty" yaml:"data,omitempty"`
}

// ReportError wraps a Report as an error so it survives errors.As unwrapping.
type ReportError struct {
	Rep *Report
}

func (e *ReportError) Error() string {
	if e.Rep == nil {
		return "unknown zydeco error"
	}
	return fmt.Sprintf("%s: %s", e.Rep.Code, e.Rep.Message)
}

// AsReport extracts a Report from an error chain.
func AsReport(err error) (*Report, bool) {
	var re *ReportError
	if errors.As(err, &re) {
		return re.Rep, true
	}
	return nil, false
}

// Wrap wraps a Report as an error.
func Wrap(r *Report) error {
	if r == nil {
		return nil
	}
	return &ReportError{Rep: r}
}

// New builds a Report for the given code/phase and formats Message from
// the given format string and args.
func New(code, phase string, span *ast.Span, data map[string]any, format string, args ...any) error {
	return Wrap(&Report{
		Schema:  "zydeco.error/v1",
		Code:    code,
		Phase:   phase,
		Message: fmt.Sprintf(format, args...),
		Span:    span,
		Data:    data,
	})
}

// ToJSON renders the report as JSON, indented unless compact is set.
func (r *Report) ToJSON(compact bool) (string, error) {
	var data []byte
	var err error
	if compact {
		data, err = json.Marshal(r)
	} else {
		data, err = json.MarshalIndent(r, "", "  ")
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ToYAML renders the report as YAML, the alternative output format for
// hosts that pipe `check --report yaml` into tooling that expects YAML
// rather than JSON diagnostics.
func (r *Report) ToYAML() (string, error) {
	data, err := yaml.Marshal(r)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
