// Package catalog defines the fixed set of workflow steps and their
// prompt templates. The table is built at process start and never
// mutated; Render is a pure function.
package catalog

import (
	"fmt"
	"strings"
)

// Step identifies one named text transformation stage.
type Step string

const (
	StepCleanText        Step = "clean_text"
	StepSummarize        Step = "summarize"
	StepExtractKeyPoints Step = "extract_key_points"
	StepTagCategory      Step = "tag_category"
)

// inputPlaceholder is the single substitution marker in every user
// template.
const inputPlaceholder = "{input}"

type promptTemplate struct {
	system string
	user   string
}

var stepPrompts = map[Step]promptTemplate{
	StepCleanText: {
		system: "You are a text cleaning assistant. Remove extra whitespace, normalize formatting, and fix common typos. Return only the cleaned text without any markdown or explanations.",
		user:   "Clean the following text:\n\n{input}",
	},
	StepSummarize: {
		system: "You are a summarization assistant. Create a concise summary of the input text. Return only the summary text without any markdown or explanations.",
		user:   "Summarize the following text:\n\n{input}",
	},
	StepExtractKeyPoints: {
		system: "You are a key points extraction assistant. Extract the main points from the input text as a simple list, one point per line. Return only the key points without any markdown formatting or explanations.",
		user:   "Extract key points from the following text:\n\n{input}",
	},
	StepTagCategory: {
		system: "You are a categorization assistant. Assign a single category tag to the input text. Return only the category name without any markdown or explanations.",
		user:   "Categorize the following text with a single tag:\n\n{input}",
	},
}

// UnknownStepError reports a lookup for a step not present in the
// catalog. Upstream validation makes this unreachable in practice.
type UnknownStepError struct {
	Step Step
}

func (e *UnknownStepError) Error() string {
	return fmt.Sprintf("unknown step: %s", e.Step)
}

// IsValid reports whether step is a member of the catalog.
func IsValid(step Step) bool {
	_, ok := stepPrompts[step]
	return ok
}

// Steps returns the catalog members in a stable order.
func Steps() []Step {
	return []Step{StepCleanText, StepSummarize, StepExtractKeyPoints, StepTagCategory}
}

// Render looks up the prompt template for step and substitutes
// inputText into the user template's placeholder. It returns the
// system instruction and the rendered user message.
func Render(step Step, inputText string) (string, string, error) {
	tmpl, ok := stepPrompts[step]
	if !ok {
		return "", "", &UnknownStepError{Step: step}
	}
	return tmpl.system, strings.Replace(tmpl.user, inputPlaceholder, inputText, 1), nil
}
