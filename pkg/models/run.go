// Package models defines the domain models for the workflow service
package models

import (
	"time"
)

// StepOutput holds the result of one attempted workflow step. When a
// step fails, OutputText carries the error message prefixed with
// "Error: " instead of model output.
type StepOutput struct {
	Step       string `json:"step"`
	OutputText string `json:"outputText"`
}

// WorkflowRun represents one execution of a workflow against a
// specific input. Outputs is ordered and may be shorter than Steps if
// a failing step truncated the run. Immutable after creation.
type WorkflowRun struct {
	ID        string       `json:"id"`
	InputText string       `json:"inputText"`
	Steps     []string     `json:"steps"`
	Outputs   []StepOutput `json:"outputs"`
	CreatedAt time.Time    `json:"createdAt"`
}
