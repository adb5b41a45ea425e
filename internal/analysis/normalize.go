package analysis

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// maxMissingKeywords caps the keyword list in a normalized result.
const maxMissingKeywords = 20

// Normalize parses raw model output into a Result. Missing or malformed
// fields default to their zero values so a partially usable completion still
// renders; only output with no JSON object at all fails, with ErrUnparsable.
func Normalize(raw json.RawMessage) (Result, error) {
	body := strings.TrimSpace(string(raw))
	if body == "" {
		return Result{}, fmt.Errorf("empty model output: %w", ErrUnparsable)
	}
	if !gjson.Valid(body) {
		return Result{}, fmt.Errorf("model output is not valid JSON: %w", ErrUnparsable)
	}
	root := gjson.Parse(body)
	if !root.IsObject() {
		return Result{}, fmt.Errorf("model output is not a JSON object: %w", ErrUnparsable)
	}

	return Result{
		MatchPercentage: clampScore(scoreField(root, "matchPercentage", "JD Match")),
		MissingKeywords: capList(listField(root, "missingKeywords", "MissingKeywords"), maxMissingKeywords),
		Strengths:       listField(root, "strengths", "Strengths"),
		Improvements:    listField(root, "improvements", "Improvements"),
		Summary:         summaryField(root, "summary", "Profile Summary"),
	}, nil
}

// Normalized returns a copy of the result with the same defaulting rules
// applied to values that arrived via JSON binding instead of a model call.
func (r Result) Normalized() Result {
	return Result{
		MatchPercentage: clampScore(r.MatchPercentage),
		MissingKeywords: capList(normalizeList(r.MissingKeywords), maxMissingKeywords),
		Strengths:       normalizeList(r.Strengths),
		Improvements:    normalizeList(r.Improvements),
		Summary:         strings.TrimSpace(r.Summary),
	}
}

// firstField returns the first key present on the object. The fallback keys
// match the result schema of an earlier version of the analysis prompt, and
// models occasionally reproduce them.
func firstField(root gjson.Result, keys ...string) gjson.Result {
	for _, key := range keys {
		if value := root.Get(key); value.Exists() {
			return value
		}
	}
	return gjson.Result{}
}

// scoreField reads a percentage that may arrive as a number or as a string
// like "75%". Anything unreadable counts as zero.
func scoreField(root gjson.Result, keys ...string) int {
	value := firstField(root, keys...)
	switch value.Type {
	case gjson.Number:
		return int(math.Round(value.Float()))
	case gjson.String:
		s := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(value.String()), "%"))
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		return int(math.Round(parsed))
	default:
		return 0
	}
}

// listField reads an array of strings. A field of any other shape counts as
// malformed and defaults to an empty list. Entries are flattened to single
// lines; blank entries are dropped.
func listField(root gjson.Result, keys ...string) []string {
	value := firstField(root, keys...)
	if !value.IsArray() {
		return []string{}
	}
	out := []string{}
	value.ForEach(func(_, item gjson.Result) bool {
		if item.Type != gjson.String {
			return true
		}
		if entry := singleLine(item.String()); entry != "" {
			out = append(out, entry)
		}
		return true
	})
	return out
}

func summaryField(root gjson.Result, keys ...string) string {
	value := firstField(root, keys...)
	if value.Type != gjson.String {
		return ""
	}
	return strings.TrimSpace(value.String())
}

func normalizeList(value []string) []string {
	out := []string{}
	for _, item := range value {
		if entry := singleLine(item); entry != "" {
			out = append(out, entry)
		}
	}
	return out
}

func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func capList(value []string, limit int) []string {
	if len(value) > limit {
		return value[:limit]
	}
	return value
}

func clampScore(value int) int {
	if value < 0 {
		return 0
	}
	if value > 100 {
		return 100
	}
	return value
}
