package suggestion

import "strings"

type category struct {
	keywords    []string
	suggestions []string
}

// Checked in order, first match wins.
var categories = []category{
	{
		keywords: []string{"planet"},
		suggestions: []string{
			"What is the atmosphere like?",
			"Is the surface habitable?",
			"/planets",
		},
	},
	{
		keywords: []string{"alien", "xenomorph", "hybrid"},
		suggestions: []string{
			"What are its weaknesses?",
			"Can the organism be contained?",
			"/aliens",
		},
	},
	{
		keywords: []string{"directive"},
		suggestions: []string{
			"What is Special Order 937?",
			"Who issued the directive?",
			"Is the crew expendable?",
		},
	},
	{
		keywords: []string{"system", "status"},
		suggestions: []string{
			"Run a full diagnostic.",
			"What is the status of the crew?",
			"show models",
		},
	},
}

// For returns follow-up suggestions for a completed reply, or nil.
func For(text string) []string {
	text = strings.ToLower(text)
	for _, category := range categories {
		for _, keyword := range category.keywords {
			if strings.Contains(text, keyword) {
				return append([]string(nil), category.suggestions...)
			}
		}
	}
	return nil
}
