// Package recommend defines the structured-recommendation backend.
//
// A Recommender asks a generative model for loans, subsidies, financial
// advice, government schemes and application roadmaps, and decodes the JSON
// embedded in the model's prose. Every failure is reported as *Error so the
// caller can substitute deterministic output.
package recommend

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/joyal-jij0/pragati/internal/finance"
)

// Recommender is the interface for structured financial recommendation backends.
type Recommender interface {
	// Name returns the backend identifier (e.g., "gemini").
	Name() string

	Loans(ctx context.Context, crop finance.CropResult, profile finance.FarmerProfile) ([]finance.Loan, error)
	LoansForProfile(ctx context.Context, profile finance.FarmerProfile) ([]finance.Loan, error)
	Subsidies(ctx context.Context, crop finance.CropResult, profile finance.FarmerProfile) ([]finance.Subsidy, error)
	Advice(ctx context.Context, crop finance.CropResult) (*finance.FinancialAdvice, error)

	// Schemes searches government schemes matching free-text criteria.
	Schemes(ctx context.Context, criteria string) ([]finance.Scheme, error)

	// Roadmap returns numbered application steps for a scheme in the given language.
	Roadmap(ctx context.Context, scheme finance.Scheme, lang string) ([]string, error)
}

// Error reports a failed structured recommendation.
type Error struct {
	Op         string // loans, subsidies, advice, schemes, roadmap
	StatusCode int    // 0 when no HTTP status was received
	Message    string
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("recommend %s (status %d): %s", e.Op, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("recommend %s: %s", e.Op, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Shape selects the JSON value ExtractJSON looks for.
type Shape int

const (
	Array Shape = iota
	Object
)

func (s Shape) String() string {
	if s == Object {
		return "object"
	}
	return "array"
}

// ExtractionError is returned when no valid JSON of the wanted shape is found.
type ExtractionError struct {
	Shape  Shape
	Reason string
	Err    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("no valid JSON %s in model output: %s", e.Shape, e.Reason)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// Greedy on purpose: first opening bracket to last closing bracket.
var (
	arrayPattern  = regexp.MustCompile(`(?s)\[.*\]`)
	objectPattern = regexp.MustCompile(`(?s)\{.*\}`)
)

// ExtractJSON isolates the JSON value of the given shape from surrounding
// prose or markdown fences and checks that it parses.
func ExtractJSON(text string, shape Shape) (json.RawMessage, error) {
	pattern := arrayPattern
	if shape == Object {
		pattern = objectPattern
	}

	match := pattern.FindString(text)
	if match == "" {
		return nil, &ExtractionError{Shape: shape, Reason: "no match"}
	}
	if !json.Valid([]byte(match)) {
		var v any
		err := json.Unmarshal([]byte(match), &v)
		return nil, &ExtractionError{Shape: shape, Reason: "invalid JSON", Err: err}
	}
	return json.RawMessage(match), nil
}

// Decode extracts JSON of the given shape and unmarshals it into out.
func Decode(text string, shape Shape, out any) error {
	raw, err := ExtractJSON(text, shape)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &ExtractionError{Shape: shape, Reason: "unexpected structure", Err: err}
	}
	return nil
}
