package utils

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractJSONObject pulls the first well-formed JSON object out of an LLM
// response, tolerating markdown fences and surrounding prose.
func ExtractJSONObject(response string) (string, error) {
	response = strings.ReplaceAll(response, "```json", "")
	response = strings.ReplaceAll(response, "```JSON", "")
	response = strings.ReplaceAll(response, "```", "")
	response = strings.TrimSpace(response)

	start := strings.Index(response, "{")
	if start == -1 {
		return "", fmt.Errorf("no JSON object in response")
	}

	end := findMatchingBrace(response, start)
	if end == -1 {
		return "", fmt.Errorf("unbalanced JSON object in response")
	}

	candidate := response[start : end+1]
	if !json.Valid([]byte(candidate)) {
		return "", fmt.Errorf("extracted text is not valid JSON")
	}
	return candidate, nil
}

// findMatchingBrace finds the matching closing brace for an opening brace
func findMatchingBrace(s string, start int) int {
	if start >= len(s) || s[start] != '{' {
		return -1
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		char := s[i]

		if escaped {
			escaped = false
			continue
		}

		if char == '\\' && inString {
			escaped = true
			continue
		}

		if char == '"' {
			inString = !inString
			continue
		}

		if inString {
			continue
		}

		switch char {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}
