package onboarding

import "strings"

const (
	// WelcomeMessage prefixes the first question once the bot is activated.
	WelcomeMessage = "Welcome to the onboarding process! Let's get started."
	// ActivationPrompt is returned to users who have not activated the bot yet.
	ActivationPrompt = "Type 'Hi' to activate the bot."
	// CompletionMessage accompanies the final answer set.
	CompletionMessage = "Thank you for completing the onboarding!"

	activationKeyword = "hi"
)

// Questions is the fixed intake sequence, asked in order.
var Questions = []string{
	"What is your company name?",
	"What industry are you in?",
	"What is your core offer?",
	"What is your ticket size?",
	"What is your current monthly revenue?",
	"What is your goal monthly revenue in 12 months?",
	"What technologies do your clients use (e.g., Shopify)?",
	"Any keywords you'd be looking for on your ideal client's website?",
	"What market/industry/niche do you work with?",
	"Are there any adjacent markets?",
	"What geography is your ideal clients based?",
	"What is the ideal company headcount of your ideal clients?",
	"What is the title of the avatar you target (e.g., CEO, CFO, CMO)?",
	"What are some problems your ideal clients have that you can solve?",
	"Link to your most recent case study and results achieved.",
	"Link to a landing page with a headline, VSL, and booking button.",
	"Link to your booking page (e.g., Calendly).",
	"Link to your thank you page and video.",
}

// QuestionList returns a copy of Questions so callers cannot mutate the sequence.
func QuestionList() []string {
	out := make([]string, len(Questions))
	copy(out, Questions)
	return out
}

// IsActivation reports whether message starts an onboarding session.
func IsActivation(message string) bool {
	return strings.ToLower(strings.TrimSpace(message)) == activationKeyword
}
