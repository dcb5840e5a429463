package prompt

import "fmt"

// AuditorSystemPrompt fixes the verdict contract: one JSON object with an
// answer of Yes, No or Partial and a one-sentence explanation.
func AuditorSystemPrompt() string {
	return `You are an experienced compliance auditor. Answer the audit question based only on the provided document content. You must produce one valid JSON object only (no markdown, no commentary). Do not include code fences.

Requirements:
- "answer" MUST be exactly one of: "Yes", "No", "Partial".
- Answer "Yes" only when the documents clearly satisfy the question.
- Answer "Partial" when the documents address the question incompletely.
- Answer "No" when the documents do not address it or no documents were provided.
- "explanation" is one brief sentence citing the document that supports the answer.

Schema:
{
  "answer": "<Yes|No|Partial>",
  "explanation": "<string>"
}`
}

// AuditorUserPrompt wraps a question and its evidence text.
func AuditorUserPrompt(question, evidence string) string {
	return fmt.Sprintf("AUDIT QUESTION:\n%s\n\nDOCUMENT CONTENT:\n---\n%s\n---", question, evidence)
}
