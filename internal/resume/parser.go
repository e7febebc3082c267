package resume

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/abhisek/skillproof/internal/llm"
	"github.com/abhisek/skillproof/internal/store"
)

// Resume text shorter than this is not worth an oracle call.
const minTextLen = 10

// Cap on how much resume text is sent to the LLM.
const maxTextLen = 8000

const parserSystemPrompt = `You are an expert resume analyzer. You extract structured candidate data from raw resume text.`

// Parser turns raw resume text into a structured profile via the LLM.
type Parser struct {
	provider  llm.Provider
	maxTokens int
	log       *zap.Logger
}

// NewParser creates a resume parser.
func NewParser(provider llm.Provider, maxTokens int, log *zap.Logger) *Parser {
	return &Parser{provider: provider, maxTokens: maxTokens, log: log}
}

// Parse extracts skills, experience, and a summary from resume text.
// Parsing never fails the upload: short input yields an empty profile,
// and an oracle failure yields an empty profile with the error noted in
// the summary. An empty skill list simply blocks test issuance later.
func (p *Parser) Parse(ctx context.Context, text string) store.ParsedResume {
	if len(strings.TrimSpace(text)) < minTextLen {
		return store.ParsedResume{Skills: []string{}}
	}

	profile, err := p.parse(ctx, text)
	if err != nil {
		p.log.Warn("resume parse failed", zap.Error(err))
		return store.ParsedResume{
			Skills:  []string{},
			Summary: fmt.Sprintf("Error parsing resume: %v", err),
		}
	}
	return profile
}

func (p *Parser) parse(ctx context.Context, text string) (store.ParsedResume, error) {
	ctx = llm.WithPurpose(ctx, "resume-parse")

	if len(text) > maxTextLen {
		text = text[:maxTextLen]
	}

	req := llm.Request{
		System:    parserSystemPrompt,
		Prompt:    buildParserPrompt(text),
		Schema:    ProfileSchema,
		MaxTokens: p.maxTokens,
	}

	resp, err := p.provider.Generate(ctx, req)
	if err != nil {
		return store.ParsedResume{}, err
	}

	var profile store.ParsedResume
	if err := json.Unmarshal(resp.Content, &profile); err != nil {
		return store.ParsedResume{}, fmt.Errorf("parse profile response: %w", err)
	}

	profile.Skills = filterAllowed(profile.Skills)
	return profile, nil
}

func buildParserPrompt(text string) string {
	var b strings.Builder

	b.WriteString("Allowed skills: ")
	b.WriteString(strings.Join(AllowedSkills, ", "))
	b.WriteString("\n\nInstructions:\n")
	b.WriteString("1. Extract 'skills' ONLY if they appear in the allowed list above.\n")
	b.WriteString("2. Calculate 'experience_years' as an integer.\n")
	b.WriteString("3. Write a brief 'summary' of the candidate.\n")
	b.WriteString("\nResume text:\n")
	b.WriteString(text)

	return b.String()
}

// filterAllowed drops anything the LLM extracted outside the allow-list
// and deduplicates, preserving order. The schema alone cannot enforce
// membership.
func filterAllowed(skills []string) []string {
	allowed := make(map[string]string, len(AllowedSkills))
	for _, s := range AllowedSkills {
		allowed[strings.ToLower(s)] = s
	}

	seen := make(map[string]bool)
	out := []string{}
	for _, s := range skills {
		canonical, ok := allowed[strings.ToLower(strings.TrimSpace(s))]
		if !ok || seen[canonical] {
			continue
		}
		seen[canonical] = true
		out = append(out, canonical)
	}
	return out
}
