package llm

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// ParseError reports an LLM reply that could not be decoded as the expected JSON.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("decode llm json: %v (raw: %s)", e.Err, snippet(e.Raw))
}

func (e *ParseError) Unwrap() error { return e.Err }

// DecodeJSON fence-strips raw and unmarshals the first top-level JSON value
// in it that fits v. Brackets in surrounding prose are skipped.
// Any failure is returned as a *ParseError carrying the raw reply.
func DecodeJSON(raw string, v any) error {
	target := reflect.ValueOf(v)
	if target.Kind() != reflect.Pointer || target.IsNil() {
		return &ParseError{Raw: raw, Err: fmt.Errorf("decode target must be a non-nil pointer, got %T", v)}
	}

	cleaned := StripFences(raw)
	if cleaned == "" {
		return &ParseError{Raw: raw, Err: fmt.Errorf("empty response")}
	}

	var firstErr error
	for _, candidate := range jsonValues(cleaned) {
		fresh := reflect.New(target.Elem().Type())
		err := json.Unmarshal([]byte(candidate), fresh.Interface())
		if err == nil {
			target.Elem().Set(fresh.Elem())
			return nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	if firstErr == nil {
		firstErr = fmt.Errorf("no json object or array found")
	}
	return &ParseError{Raw: raw, Err: firstErr}
}

// StripFences removes a surrounding markdown code fence (```json ... ``` or ``` ... ```).
func StripFences(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		if nl := strings.IndexByte(content, '\n'); nl >= 0 && !strings.ContainsAny(content[:nl], "{[") {
			content = content[nl+1:]
		} else {
			content = strings.TrimPrefix(content, "json")
		}
	}
	content = strings.TrimSpace(content)
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content)
}

// CleanJSONResponse strips fences and returns the first complete JSON object or
// array in content. Without one, the fence-stripped text is returned.
func CleanJSONResponse(content string) string {
	content = StripFences(content)
	if values := jsonValues(content); len(values) > 0 {
		return values[0]
	}
	return content
}

// jsonValues returns every complete top-level object or array in content, in
// order. Openers that do not start a valid value are skipped; values nested in
// an accepted one are not reported separately.
func jsonValues(content string) []string {
	var out []string
	for i := 0; i < len(content); {
		j := strings.IndexAny(content[i:], "{[")
		if j < 0 {
			break
		}
		start := i + j

		dec := json.NewDecoder(strings.NewReader(content[start:]))
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			i = start + 1
			continue
		}
		end := start + int(dec.InputOffset())
		out = append(out, content[start:end])
		i = end
	}
	return out
}

func snippet(s string) string {
	const maxLen = 256
	s = strings.TrimSpace(s)
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	if s == "" {
		return "<empty>"
	}
	return s
}
