package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bryanwahyu/auditronaut/internal/domain/audit"
)

// ParseVerdict decodes a provider's JSON verdict. Only Yes, No and Partial are
// accepted; N/A is reserved for manual edits.
func ParseVerdict(raw string) (Verdict, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")

	var body struct {
		Answer      string `json:"answer"`
		Explanation string `json:"explanation"`
	}
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &body); err != nil {
		return Verdict{}, fmt.Errorf("%w: %v", ErrMalformedVerdict, err)
	}
	a, err := audit.ParseAnswer(body.Answer)
	if err != nil || a == audit.AnswerNA {
		return Verdict{}, fmt.Errorf("%w: answer %q", ErrMalformedVerdict, body.Answer)
	}
	return Verdict{Answer: a, Explanation: strings.TrimSpace(body.Explanation)}, nil
}
