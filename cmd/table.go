package cmd

import (
	"fmt"
	"strings"

	"jirafill/jira"
)

const summaryColumnWidth = 90

// renderIssuesTable formats the fetched issues as an ASCII table with an
// index column so the weight prompts can refer to rows by number.
func renderIssuesTable(issues []jira.Issue) string {
	keyWidth := len("Key")
	for _, issue := range issues {
		if len(issue.Key) > keyWidth {
			keyWidth = len(issue.Key)
		}
	}
	indexWidth := len(fmt.Sprintf("%d", len(issues)))
	if indexWidth < len("#") {
		indexWidth = len("#")
	}

	var b strings.Builder
	separator := "+" + strings.Repeat("-", indexWidth+2) +
		"+" + strings.Repeat("-", keyWidth+2) +
		"+" + strings.Repeat("-", summaryColumnWidth+2) + "+\n"

	b.WriteString(separator)
	fmt.Fprintf(&b, "| %-*s | %-*s | %-*s |\n", indexWidth, "#", keyWidth, "Key", summaryColumnWidth, "Summary")
	b.WriteString(separator)
	for i, issue := range issues {
		fmt.Fprintf(&b, "| %-*d | %-*s | %-*s |\n", indexWidth, i+1, keyWidth, issue.Key, summaryColumnWidth, truncateSummary(issue.Summary))
	}
	b.WriteString(separator)
	return b.String()
}

func truncateSummary(summary string) string {
	runes := []rune(summary)
	if len(runes) <= summaryColumnWidth {
		return summary
	}
	return string(runes[:summaryColumnWidth-3]) + "..."
}
