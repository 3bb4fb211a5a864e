package engine

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workflow-auto/backend/internal/llm"
)

type recordedCall struct {
	system string
	user   string
}

// stubCompleter answers by matching a substring of the user prompt
// and records every call it receives.
type stubCompleter struct {
	responses map[string]string
	err       error
	failOn    string
	calls     []recordedCall
}

func (s *stubCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	s.calls = append(s.calls, recordedCall{system: system, user: user})
	if s.failOn != "" && strings.Contains(user, s.failOn) {
		return "", s.err
	}
	for marker, output := range s.responses {
		if strings.Contains(user, marker) {
			return output, nil
		}
	}
	return "", s.err
}

func TestExecuteChainsStepOutputs(t *testing.T) {
	stub := &stubCompleter{
		responses: map[string]string{
			"Clean the following text":     "hello world",
			"Summarize the following text": "A short greeting.",
		},
	}
	eng := New(stub)

	outputs, err := eng.Execute(context.Background(), "  hello   world  ", []string{"clean_text", "summarize"})
	require.NoError(t, err)

	require.Len(t, outputs, 2)
	assert.Equal(t, "clean_text", outputs[0].Step)
	assert.Equal(t, "hello world", outputs[0].OutputText)
	assert.Equal(t, "summarize", outputs[1].Step)
	assert.Equal(t, "A short greeting.", outputs[1].OutputText)

	// The second step must receive the cleaned output, not the raw input.
	require.Len(t, stub.calls, 2)
	assert.Contains(t, stub.calls[1].user, "hello world")
	assert.NotContains(t, stub.calls[1].user, "  hello   world  ")
}

func TestExecuteStopsOnFirstFailure(t *testing.T) {
	stub := &stubCompleter{
		responses: map[string]string{
			"Clean the following text": "cleaned",
		},
		failOn: "Summarize",
		err:    &llm.ProviderError{Message: "connection refused"},
	}
	eng := New(stub)

	outputs, err := eng.Execute(context.Background(), "input text", []string{"clean_text", "summarize", "tag_category"})
	require.NoError(t, err)

	// The failing step is recorded as error text and later steps are
	// not attempted.
	require.Len(t, outputs, 2)
	assert.Equal(t, "cleaned", outputs[0].OutputText)
	assert.Equal(t, "summarize", outputs[1].Step)
	assert.True(t, strings.HasPrefix(outputs[1].OutputText, "Error: failed to execute step summarize:"))
	assert.Contains(t, outputs[1].OutputText, "connection refused")
	assert.Len(t, stub.calls, 2)
}

func TestExecuteFirstStepFailure(t *testing.T) {
	stub := &stubCompleter{
		err: llm.ErrRateLimitExceeded,
	}
	eng := New(stub)

	outputs, err := eng.Execute(context.Background(), "input text", []string{"summarize", "tag_category"})
	require.NoError(t, err)

	require.Len(t, outputs, 1)
	assert.Equal(t, "summarize", outputs[0].Step)
	assert.Contains(t, outputs[0].OutputText, "Error: ")
	assert.Contains(t, outputs[0].OutputText, "wait a minute and retry")
	assert.Len(t, stub.calls, 1)
}

func TestExecuteOutputsArePrefixOfSteps(t *testing.T) {
	steps := []string{"clean_text", "summarize", "extract_key_points", "tag_category"}
	stub := &stubCompleter{
		responses: map[string]string{
			"Clean the following text":     "a",
			"Summarize the following text": "b",
		},
		err: &llm.ProviderError{Message: "boom"},
	}
	eng := New(stub)

	outputs, err := eng.Execute(context.Background(), "input", steps)
	require.NoError(t, err)

	require.LessOrEqual(t, len(outputs), len(steps))
	for i, out := range outputs {
		assert.Equal(t, steps[i], out.Step)
	}
}

func TestExecuteAllowsDuplicateSteps(t *testing.T) {
	stub := &stubCompleter{
		responses: map[string]string{
			"Summarize the following text": "shorter",
		},
	}
	eng := New(stub)

	outputs, err := eng.Execute(context.Background(), "a long text", []string{"summarize", "summarize"})
	require.NoError(t, err)
	require.Len(t, outputs, 2)
	assert.Len(t, stub.calls, 2)
}

func TestValidate(t *testing.T) {
	eng := New(&stubCompleter{})

	tests := []struct {
		name      string
		inputText string
		steps     []string
		wantErr   string
	}{
		{"valid", "text", []string{"clean_text", "summarize"}, ""},
		{"empty input", "", []string{"clean_text", "summarize"}, "inputText is required"},
		{"whitespace input", "   ", []string{"clean_text", "summarize"}, "inputText is required"},
		{"too few steps", "text", []string{"clean_text"}, "between 2 and 4"},
		{"too many steps", "text", []string{"clean_text", "summarize", "tag_category", "extract_key_points", "clean_text"}, "between 2 and 4"},
		{"no steps", "text", nil, "between 2 and 4"},
		{"unknown step", "text", []string{"clean_text", "bogus_step"}, "invalid steps: bogus_step"},
		{"multiple unknown steps", "text", []string{"bogus_step", "also_bad"}, "invalid steps: bogus_step, also_bad"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := eng.Validate(tt.inputText, tt.steps)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestExecuteRejectsInvalidRequestBeforeAnyCall(t *testing.T) {
	stub := &stubCompleter{}
	eng := New(stub)

	outputs, err := eng.Execute(context.Background(), "text", []string{"clean_text", "bogus_step"})
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Nil(t, outputs)
	assert.Empty(t, stub.calls)
}
