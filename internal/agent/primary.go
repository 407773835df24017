package agent

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
)

// systemPrompt is the fixed instruction sent with every message. It
// enumerates the four actions and their parameter shapes and demands a bare
// JSON reply.
const systemPrompt = `You are a financial health assistant. Help users track expenses, manage bills, and set savings goals.

Available actions:
- add_expense: Add a new expense. Parameters: amount (number), category (string), description (string), recurring (boolean)
- add_bill: Add a recurring bill. Parameters: name (string), amount (number), due_date (string, YYYY-MM-DD), category (string), recurring (boolean)
- set_savings_goal: Set a savings target. Parameters: name (string), target_amount (number), target_date (string, YYYY-MM-DD), monthly_contribution (number)
- get_summary: Get financial overview. Parameters: none

IMPORTANT: You must respond with ONLY valid JSON. No additional text or formatting.

Example response:
{"action": "add_expense", "parameters": {"amount": 50, "category": "food", "description": "groceries", "recurring": false}}`

// modelResolution mirrors the JSON object the model is instructed to return.
type modelResolution struct {
	Action     string `json:"action"`
	Parameters Params `json:"parameters"`
}

// resolvePrimary asks the completion capability to classify the message.
// Unavailability in any form (no client, transport error, unparsable reply,
// unrecognized action name) reports ok=false and is never fatal.
func (o *Orchestrator) resolvePrimary(ctx context.Context, message string) (Resolution, bool) {
	if o.llm == nil {
		return Resolution{}, false
	}

	reply, err := o.llm.Complete(ctx, systemPrompt, message)
	if err != nil {
		slog.WarnContext(ctx, "Primary resolver unavailable, falling back", "error", err)
		return Resolution{}, false
	}

	var out modelResolution
	if err := json.Unmarshal([]byte(extractJSONObject(reply)), &out); err != nil {
		slog.WarnContext(ctx, "Primary resolver reply unparsable, falling back",
			"error", err, "reply_len", len(reply))
		return Resolution{}, false
	}

	action, ok := ParseAction(out.Action)
	if !ok {
		slog.WarnContext(ctx, "Primary resolver returned unrecognized action, falling back",
			"action", out.Action)
		return Resolution{}, false
	}

	return Resolution{Action: action, Params: out.Parameters}, true
}

// extractJSONObject returns the first balanced {...} in the reply, which
// tolerates code fences and surrounding prose. Braces inside string literals
// are not accounted for; single-object replies don't need that.
func extractJSONObject(s string) string {
	start := strings.Index(s, "{")
	if start < 0 {
		return s
	}
	depth := 0
	for i := start; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return s[start:]
}
