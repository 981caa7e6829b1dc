package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/hammamikhairi/quickmeals/internal/domain"
)

var errNoJSON = errors.New("reply contains no JSON object")

// stripCodeFence removes ```json ... ``` wrappers that LLMs love to add.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		// Remove opening fence line.
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		}
		// Remove closing fence.
		if idx := strings.LastIndex(s, "```"); idx != -1 {
			s = s[:idx]
		}
	}
	return strings.TrimSpace(s)
}

// extractObject returns the first balanced {...} span of s that is valid
// JSON. Braces inside string literals are ignored.
func extractObject(s string) (string, error) {
	for start := strings.IndexByte(s, '{'); start != -1; {
		if end := matchBrace(s, start); end != -1 {
			candidate := s[start : end+1]
			if json.Valid([]byte(candidate)) {
				return candidate, nil
			}
		}
		next := strings.IndexByte(s[start+1:], '{')
		if next == -1 {
			break
		}
		start += next + 1
	}
	return "", errNoJSON
}

// matchBrace returns the index of the '}' closing the '{' at open, or -1.
func matchBrace(s string, open int) int {
	depth := 0
	inString, escaped := false, false
	for i := open; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
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

// rawSuggestion is the reply shape. Models are loose about types, so the
// text fields accept a string or a list and servings a number or a string.
type rawSuggestion struct {
	Name                  json.RawMessage `json:"name"`
	Instructions          json.RawMessage `json:"instructions"`
	AdditionalIngredients json.RawMessage `json:"additionalIngredients"`
	Tips                  json.RawMessage `json:"tips"`
	Difficulty            json.RawMessage `json:"difficulty"`
	Servings              json.RawMessage `json:"servings"`
}

// parseSuggestion turns a model reply into a Suggestion.
func parseSuggestion(reply string) (*domain.Suggestion, error) {
	obj, err := extractObject(stripCodeFence(reply))
	if err != nil {
		return nil, err
	}

	var raw rawSuggestion
	if err := json.Unmarshal([]byte(obj), &raw); err != nil {
		return nil, fmt.Errorf("decode reply: %w", err)
	}

	return &domain.Suggestion{
		Name:                  strings.TrimSpace(flexText(raw.Name, " ")),
		Instructions:          strings.TrimSpace(flexText(raw.Instructions, "\n")),
		AdditionalIngredients: flexText(raw.AdditionalIngredients, ", "),
		Tips:                  strings.TrimSpace(flexText(raw.Tips, "\n")),
		Difficulty:            domain.ParseDifficulty(flexText(raw.Difficulty, " ")),
		Servings:              flexInt(raw.Servings),
	}, nil
}

// flexText reads a JSON string, or a list of scalars joined with sep.
// Anything else is empty.
func flexText(raw json.RawMessage, sep string) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	var list []any
	if json.Unmarshal(raw, &list) == nil {
		parts := make([]string, 0, len(list))
		for _, v := range list {
			switch v := v.(type) {
			case string:
				parts = append(parts, v)
			case float64:
				parts = append(parts, strconv.FormatFloat(v, 'f', -1, 64))
			}
		}
		return strings.Join(parts, sep)
	}
	return ""
}

// maxCount bounds counts read from a reply so they fit any int.
const maxCount = math.MaxInt32

// flexInt reads a JSON number, or the leading integer of a string such as
// "4 servings". Missing, negative, out-of-range or unparseable values
// yield 0.
func flexInt(raw json.RawMessage) int {
	if len(raw) == 0 {
		return 0
	}
	var f float64
	if json.Unmarshal(raw, &f) == nil {
		if math.IsNaN(f) || f < 0 || f > maxCount {
			return 0
		}
		return int(f)
	}
	var s string
	if json.Unmarshal(raw, &s) != nil {
		return 0
	}
	s = strings.TrimSpace(s)
	end := strings.IndexFunc(s, func(r rune) bool { return !unicode.IsDigit(r) })
	if end == -1 {
		end = len(s)
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil || n > maxCount {
		return 0
	}
	return n
}
