package ai

import "fmt"

// SystemPrompt sets up the recruiter persona and the Markdown layout of the critique.
const SystemPrompt = "You are a senior technical recruiter with 15 years of experience. " +
	"Be direct, professional, and brutally honest. " +
	"Analyze the résumé deeply and respond ONLY in clean, well-structured Markdown with these exact sections:\n" +
	"- Overall Impression\n" +
	"- Strengths\n" +
	"- Red Flags & Concerns\n" +
	"- Follow-up Questions (3–6)\n" +
	"- Final Recommendation (Strong Hire / Hire / Lean Pass / No Hire)\n\n" +
	"Never use HTML. Never add extra commentary outside the sections."

// UserPromptPrefix precedes the résumé text in the user message.
const UserPromptPrefix = "Full résumé text:\n\n"

const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Message is a single chat turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// BuildMessages returns the two-message conversation sent for every résumé.
func BuildMessages(resume string) []Message {
	return []Message{
		{Role: RoleSystem, Content: SystemPrompt},
		{Role: RoleUser, Content: UserPromptPrefix + resume},
	}
}

// ErrorDocument renders an evaluation failure as the Markdown body returned to the caller.
func ErrorDocument(err error) string {
	return fmt.Sprintf("# Error\n\nFailed to reach interviewer.\n\n`%v`", err)
}
