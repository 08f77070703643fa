package batch

import (
	"encoding/json"
	"errors"
	"strings"

	"recipebuilder/tools"
)

var ErrEmptyScript = errors.New("script contains no tool calls")

// ParseScript extracts tool calls from a script. A script is free text with
// embedded JSON objects of the form {"tool_calls":[{"name":...,"input":{...}}]};
// everything outside those objects is treated as commentary and ignored.
// Calls are returned in the order they appear.
func ParseScript(text string) ([]tools.Call, error) {
	s := strings.TrimSpace(text)

	var calls []tools.Call
	i := 0
	for i < len(s) {
		start := strings.IndexByte(s[i:], '{')
		if start == -1 {
			break
		}
		start += i

		end, ok := matchBrace(s, start)
		if !ok {
			// unterminated object, the rest is commentary
			break
		}

		var probe struct {
			ToolCalls []tools.Call `json:"tool_calls"`
		}
		if err := json.Unmarshal([]byte(s[start:end+1]), &probe); err == nil {
			for _, tc := range probe.ToolCalls {
				if tc.Input == nil {
					tc.Input = map[string]any{}
				}
				calls = append(calls, tc)
			}
		}

		i = end + 1
	}

	if len(calls) == 0 {
		return nil, ErrEmptyScript
	}
	return calls, nil
}

// matchBrace returns the index of the brace closing the object opened at start.
func matchBrace(s string, start int) (int, bool) {
	depth := 0
	inString := false
	escaped := false

	for end := start; end < len(s); end++ {
		c := s[end]
		if escaped {
			escaped = false
			continue
		}
		if c == '\\' && inString {
			escaped = true
			continue
		}
		if c == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}
		switch c {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return end, true
			}
		}
	}
	return 0, false
}
