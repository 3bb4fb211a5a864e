// Package engine implements the sequential workflow execution
// engine: it validates a step sequence, runs each step through the
// catalog and the provider, and threads each step's output into the
// next step's input.
package engine

import (
	"context"
	"fmt"
	"strings"

	"workflow-auto/backend/internal/catalog"
	"workflow-auto/backend/internal/llm"
	"workflow-auto/backend/pkg/models"
)

const (
	minSteps = 2
	maxSteps = 4
)

// ValidationError reports a malformed workflow request. It is
// rejected at the boundary and never reaches execution.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// StepError wraps a provider-side failure with the step it occurred
// on.
type StepError struct {
	Step catalog.Step
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("failed to execute step %s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Engine executes workflows against a completion provider.
type Engine struct {
	completer llm.Completer
}

// New creates an Engine backed by completer. The completer is
// expected to carry its own retry policy.
func New(completer llm.Completer) *Engine {
	return &Engine{completer: completer}
}

// Validate checks a workflow request without executing it. It returns
// a ValidationError describing the first problem found, naming every
// unrecognized step identifier.
func (e *Engine) Validate(inputText string, steps []string) error {
	if strings.TrimSpace(inputText) == "" {
		return &ValidationError{Reason: "inputText is required"}
	}
	if len(steps) < minSteps || len(steps) > maxSteps {
		return &ValidationError{Reason: fmt.Sprintf("steps must contain between %d and %d items", minSteps, maxSteps)}
	}
	var invalid []string
	for _, s := range steps {
		if !catalog.IsValid(catalog.Step(s)) {
			invalid = append(invalid, s)
		}
	}
	if len(invalid) > 0 {
		return &ValidationError{Reason: "invalid steps: " + strings.Join(invalid, ", ")}
	}
	return nil
}

// Execute validates the request and runs the steps in order, feeding
// each step's output into the next. On the first failing step it
// appends an error-text output for that step and stops; steps after
// it are not attempted. The returned sequence is always a prefix of
// the requested steps.
func (e *Engine) Execute(ctx context.Context, inputText string, steps []string) ([]models.StepOutput, error) {
	if err := e.Validate(inputText, steps); err != nil {
		return nil, err
	}

	outputs := make([]models.StepOutput, 0, len(steps))
	currentText := inputText

	for _, s := range steps {
		step := catalog.Step(s)
		outputText, err := e.runStep(ctx, step, currentText)
		if err != nil {
			stepErr := &StepError{Step: step, Err: err}
			outputs = append(outputs, models.StepOutput{Step: s, OutputText: "Error: " + stepErr.Error()})
			break
		}
		outputs = append(outputs, models.StepOutput{Step: s, OutputText: outputText})
		currentText = outputText
	}

	return outputs, nil
}

func (e *Engine) runStep(ctx context.Context, step catalog.Step, inputText string) (string, error) {
	system, user, err := catalog.Render(step, inputText)
	if err != nil {
		return "", err
	}
	return e.completer.Complete(ctx, system, user)
}
