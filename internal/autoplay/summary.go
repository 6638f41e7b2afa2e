package autoplay

import (
	"context"
	"fmt"
)

// SummaryPrompt asks for the post-run retrospective.
const SummaryPrompt = "You are an analyst for this run. Provide a concise (≤150 words) " +
	"retrospective of this event—strategy, key points and advice for the next run."

// QuitSummary is recorded for runs the model ended itself.
const QuitSummary = "Run ended by explicit quit (no summary)."

// Summarise asks p for a retrospective of a finished run, using the last
// window messages of its conversation. A failed call is reported inside the
// returned text rather than as an error.
func Summarise(ctx context.Context, p Provider, history []Message, n int) string {
	msgs := append([]Message(nil), window(history, n)...)
	msgs = append(msgs, Message{Role: RoleUser, Text: "Please summarise this run now."})

	callCtx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	text, err := p.Send(callCtx, SummaryPrompt, msgs)
	if err != nil {
		return fmt.Sprintf("[Summary generation failed: %v]", err)
	}
	return text
}
