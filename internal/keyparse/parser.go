// Package keyparse extracts question-number to answer mappings from pasted
// answer-key text. Pasted keys arrive in inconsistent human-typed formats
// (grouped numbers, comma-separated alternatives, stray section headers), so
// the parser is deliberately permissive: lines it cannot make sense of
// contribute nothing rather than failing the whole paste.
package keyparse

import (
	"regexp"
	"strconv"
	"strings"
)

// questionLineRE matches "21 B", "21&22 A, E", "3) lake", "14- TRUE" style
// lines: digit groups joined by &, an optional trailing punctuation mark on
// the numbers token, then the answer payload.
var (
	questionLineRE  = regexp.MustCompile(`^(\d+(?:&\d+)*)(?:[.)-])?\s+(.*)$`)
	sectionHeaderRE = regexp.MustCompile(`(?i)^(part|passage)\b`)
	answerSplitRE   = regexp.MustCompile(`[,;]`)
)

// Parse scans text line by line and returns a mapping from question number to
// answer text. Numbers outside [1, maxQuestion] and unmatchable lines are
// dropped silently. A later line for the same number overwrites an earlier
// one. An empty result is valid; the caller decides whether to warn.
func Parse(text string, maxQuestion int) map[int]string {
	mapping := make(map[int]string)
	for _, rawLine := range strings.Split(text, "\n") {
		line := strings.TrimSpace(rawLine)
		if line == "" {
			continue
		}
		if sectionHeaderRE.MatchString(line) || strings.HasPrefix(line, "(") {
			continue
		}
		match := questionLineRE.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		tokens := strings.Split(match[1], "&")
		blob := strings.TrimSpace(match[2])
		if blob == "" {
			continue
		}
		answers := splitAnswers(blob)
		for idx, token := range tokens {
			num, err := strconv.Atoi(token)
			if err != nil {
				continue
			}
			if num < 1 || num > maxQuestion {
				continue
			}
			// A short answer list covers the remaining numbers with its
			// last entry ("21&22  A" gives both questions "A").
			answer := answers[len(answers)-1]
			if idx < len(answers) {
				answer = answers[idx]
			}
			mapping[num] = answer
		}
	}
	return mapping
}

func splitAnswers(blob string) []string {
	parts := answerSplitRE.Split(blob, -1)
	answers := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			answers = append(answers, trimmed)
		}
	}
	if len(answers) == 0 {
		return []string{blob}
	}
	return answers
}
