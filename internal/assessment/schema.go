package assessment

import "github.com/abhisek/skillproof/internal/llm"

// QuestionBankSchema is the JSON schema for generated question banks:
// a flat array of answer-bearing question records.
var QuestionBankSchema = &llm.Schema{
	Name:        "question-bank",
	Description: "Skill assessment questions with their correct answers",
	Definition: map[string]any{
		"type": "array",
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"skill": map[string]any{
					"type":        "string",
					"description": "The skill this question tests",
				},
				"type": map[string]any{
					"type": "string",
					"enum": []any{TypeMCQ, TypeSyntax},
				},
				"question": map[string]any{
					"type":        "string",
					"description": "The question text (may contain a code snippet)",
				},
				"options": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "string"},
				},
				"correct_answer": map[string]any{
					"type":        "string",
					"description": "Exactly one of the options",
				},
			},
			"required":             []any{"skill", "type", "question", "options", "correct_answer"},
			"additionalProperties": false,
		},
	},
}
