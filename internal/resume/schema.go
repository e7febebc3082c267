package resume

import "github.com/abhisek/skillproof/internal/llm"

// AllowedSkills is the closed set of skills the parser may extract.
// Question generation quality degrades badly on free-form skill names,
// so everything outside this list is dropped at parse time.
var AllowedSkills = []string{
	"Python", "C++", "Java", "Scala", "JavaScript", "C", "C#", "Ruby",
	"PHP", "Swift", "Kotlin", "Go", "Rust", "TypeScript", "MySQL",
}

// ProfileSchema is the JSON schema for parsed resume profiles.
var ProfileSchema = &llm.Schema{
	Name:        "resume-profile",
	Description: "Structured profile extracted from resume text",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"skills": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Skills found in the resume, restricted to the allowed list",
			},
			"experience_years": map[string]any{
				"type":        "integer",
				"description": "Total years of professional experience",
			},
			"summary": map[string]any{
				"type":        "string",
				"description": "Brief summary of the candidate",
			},
		},
		"required":             []any{"skills", "experience_years", "summary"},
		"additionalProperties": false,
	},
}
