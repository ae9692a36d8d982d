package llm

import (
	"bufio"
	"strings"
)

// ExtractSection returns the text that follows the first line equal to marker
// (after trimming). Repeated marker lines are skipped. Every later line is trimmed; with JoinLines they are kept
// on separate lines, with JoinSpaces blank lines are dropped and the rest are
// joined by single spaces. The section runs to the end of the response. When
// the marker never appears the result is empty.
func ExtractSection(text, marker string, mode JoinMode) string {
	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), len(text)+1)

	found := false
	var lines []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == marker {
			found = true
			continue
		}
		if found {
			lines = append(lines, line)
		}
	}
	if !found {
		return ""
	}

	switch mode {
	case JoinSpaces:
		parts := lines[:0]
		for _, line := range lines {
			if line != "" {
				parts = append(parts, line)
			}
		}
		return strings.Join(parts, " ")
	default:
		return strings.TrimSpace(strings.Join(lines, "\n"))
	}
}
