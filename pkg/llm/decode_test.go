package llm

import (
	"errors"
	"testing"
)

func TestCleanJSONResponse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain JSON unchanged",
			input: `{"summary":"test"}`,
			want:  `{"summary":"test"}`,
		},
		{
			name:  "strips json fenced block",
			input: "```json\n{\"summary\":\"test\"}\n```",
			want:  `{"summary":"test"}`,
		},
		{
			name:  "strips plain fenced block",
			input: "```\n{\"summary\":\"test\"}\n```",
			want:  `{"summary":"test"}`,
		},
		{
			name:  "strips fence without newline",
			input: "```json{\"summary\":\"test\"}```",
			want:  `{"summary":"test"}`,
		},
		{
			name:  "fenced array",
			input: "```json\n[\"a\", \"b\"]\n```",
			want:  `["a", "b"]`,
		},
		{
			name:  "prose around object",
			input: "Here is the analysis:\n```json\n{\"summary\":\"x\"}\n```\nHope it helps.",
			want:  `{"summary":"x"}`,
		},
		{
			name:  "bracketed prose before fenced object",
			input: "Here is the analysis [JSON format]:\n```json\n{\"summary\":\"Apple beat.\",\"companies\":[\"Apple Inc.\"]}\n```",
			want:  `{"summary":"Apple beat.","companies":["Apple Inc."]}`,
		},
		{
			name:  "array followed by bracketed note",
			input: "[\"Apple bearish outlook\", \"iPhone demand slump\"]\nNote: replace [company] as needed.",
			want:  `["Apple bearish outlook", "iPhone demand slump"]`,
		},
		{
			name:  "unbalanced opener in prose",
			input: "Result (see [1: {\"summary\":\"x\"}",
			want:  `{"summary":"x"}`,
		},
		{
			name:  "trims surrounding whitespace",
			input: "  [\"q\"]  ",
			want:  `["q"]`,
		},
		{
			name:  "no json passes through",
			input: "Similar perspective.",
			want:  "Similar perspective.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CleanJSONResponse(tt.input)
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecodeJSONReturnsParseError(t *testing.T) {
	var out map[string]any
	err := DecodeJSON("I could not analyze this article.", &out)
	if err == nil {
		t.Fatalf("expected error")
	}

	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if perr.Raw != "I could not analyze this article." {
		t.Fatalf("raw text not preserved: %q", perr.Raw)
	}
}

func TestDecodeJSONEmptyResponse(t *testing.T) {
	var out []string
	var perr *ParseError
	if err := DecodeJSON("```json\n```", &out); !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError for empty payload, got %v", err)
	}
}

func TestDecodeJSONFencedArray(t *testing.T) {
	var out []string
	if err := DecodeJSON("```json\n[\"bearish apple outlook\", \"inflation risk\"]\n```", &out); err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}
	if len(out) != 2 || out[0] != "bearish apple outlook" {
		t.Fatalf("unexpected result %v", out)
	}
}

func TestDecodeJSONSkipsBracketedProse(t *testing.T) {
	var out struct {
		Summary   string   `json:"summary"`
		Companies []string `json:"companies"`
	}
	raw := "Here is the analysis [JSON format]:\n```json\n{\"summary\":\"Apple beat.\",\"companies\":[\"Apple Inc.\"]}\n```"
	if err := DecodeJSON(raw, &out); err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}
	if out.Summary != "Apple beat." || len(out.Companies) != 1 || out.Companies[0] != "Apple Inc." {
		t.Fatalf("unexpected result %+v", out)
	}
}

func TestDecodeJSONArrayWithTrailingNote(t *testing.T) {
	var out []string
	raw := "[\"Apple bearish outlook\", \"iPhone demand slump\", \"tech inflation risk\"]\nNote: replace [company] as needed."
	if err := DecodeJSON(raw, &out); err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}
	if len(out) != 3 || out[2] != "tech inflation risk" {
		t.Fatalf("unexpected result %v", out)
	}
}

func TestDecodeJSONPicksValueMatchingTarget(t *testing.T) {
	var out struct {
		Summary string `json:"summary"`
	}
	// A valid array in the prose does not fit the struct; the object after it does.
	if err := DecodeJSON("See note [1].\n{\"summary\":\"Rates held.\"}", &out); err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}
	if out.Summary != "Rates held." {
		t.Fatalf("unexpected summary %q", out.Summary)
	}
}

func TestDecodeJSONDoesNotDescendIntoObjects(t *testing.T) {
	var out []string
	var perr *ParseError
	if err := DecodeJSON(`{"queries":["a","b"]}`, &out); !errors.As(err, &perr) {
		t.Fatalf("nested array must not satisfy a top-level array target, got %v (%v)", err, out)
	}
}

func TestDecodeJSONRejectsNonPointer(t *testing.T) {
	var out []string
	var perr *ParseError
	if err := DecodeJSON(`["a"]`, out); !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError for non-pointer target, got %v", err)
	}
}
