package assessment

import (
	"fmt"
	"strings"
)

const generatorSystemPrompt = `You are a technical interview question generator. You produce precise, unambiguous multiple-choice questions for verifying a job applicant's claimed skills.`

func buildGeneratorPrompt(skills []string) string {
	var b strings.Builder

	b.WriteString("Skills to assess:\n")
	for _, s := range skills {
		b.WriteString(fmt.Sprintf("- %s\n", s))
	}

	b.WriteString(fmt.Sprintf(`
Instructions:
For EACH skill above, generate exactly:
- %d multiple choice questions (type "MCQ") testing core concepts.
- %d syntax/snippet questions (type "SYNTAX") testing code understanding, MCQ style.

Total questions = %d.

Every question must have 4 options and exactly one correct answer, and
"correct_answer" must match one option verbatim. Keep code snippets short
and in plain ASCII.`,
		MCQPerSkill, SyntaxPerSkill, len(skills)*QuestionsPerSkill))

	return b.String()
}
