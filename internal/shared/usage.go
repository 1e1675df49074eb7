package shared

// TokenUsage tracks the tokens consumed by a generation request.
type TokenUsage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
	Model            string
}

// Total returns TotalTokens, or the sum of prompt and completion tokens when
// the provider did not report a total.
func (u TokenUsage) Total() int {
	if u.TotalTokens > 0 {
		return u.TotalTokens
	}
	return u.PromptTokens + u.CompletionTokens
}
