package analysis

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/samvad-hq/echohub-buster/internal/domain"
	"github.com/samvad-hq/echohub-buster/pkg/llm"
)

// fakeGenerator returns canned replies in order and records prompts.
type fakeGenerator struct {
	replies []string
	errs    []error
	prompts []string
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	idx := len(f.prompts)
	f.prompts = append(f.prompts, prompt)
	var reply string
	var err error
	if idx < len(f.replies) {
		reply = f.replies[idx]
	}
	if idx < len(f.errs) {
		err = f.errs[idx]
	}
	return reply, err
}

func TestExtractParsesFencedReply(t *testing.T) {
	gen := &fakeGenerator{replies: []string{"```json\n" + `{"summary":" Apple beat estimates. ","companies":["Apple Inc."],"industries":["Technology"],"themes":["Q3 Earnings","Inflation"]}` + "\n```"}}
	e := NewExtractor(gen, nil)

	got, err := e.Extract(context.Background(), "Apple reported record Q3 earnings.")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	want := domain.OriginalAnalysis{
		Summary:    "Apple beat estimates.",
		Companies:  []string{"Apple Inc."},
		Industries: []string{"Technology"},
		Themes:     []string{"Q3 Earnings", "Inflation"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v want %+v", got, want)
	}
	if !strings.Contains(gen.prompts[0], `"Apple reported record Q3 earnings."`) {
		t.Fatalf("article text missing from prompt: %q", gen.prompts[0])
	}
}

func TestExtractNormalizesArrayFields(t *testing.T) {
	gen := &fakeGenerator{replies: []string{`{"summary":"Rates held.","companies":null,"industries":"Banking","themes":["Rates", 4, ""]}`}}
	got, err := NewExtractor(gen, nil).Extract(context.Background(), "text")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got.Companies == nil || len(got.Companies) != 0 {
		t.Fatalf("companies should be an empty non-nil slice, got %#v", got.Companies)
	}
	if !reflect.DeepEqual(got.Industries, []string{"Banking"}) {
		t.Fatalf("unexpected industries %#v", got.Industries)
	}
	if !reflect.DeepEqual(got.Themes, []string{"Rates"}) {
		t.Fatalf("unexpected themes %#v", got.Themes)
	}
}

func TestExtractFailures(t *testing.T) {
	boom := errors.New("quota exceeded")
	cases := map[string]struct {
		gen  *fakeGenerator
		want error
	}{
		"llm error":     {gen: &fakeGenerator{errs: []error{boom}}, want: boom},
		"not json":      {gen: &fakeGenerator{replies: []string{"I cannot help with that."}}},
		"empty reply":   {gen: &fakeGenerator{replies: []string{"  "}}},
		"empty summary": {gen: &fakeGenerator{replies: []string{`{"summary":"","companies":["Apple"]}`}}, want: ErrMissingSummary},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewExtractor(tc.gen, nil).Extract(context.Background(), "text")
			if err == nil {
				t.Fatalf("expected error")
			}
			if tc.want != nil && !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if tc.want == nil {
				var perr *llm.ParseError
				if !errors.As(err, &perr) {
					t.Fatalf("expected parse error, got %v", err)
				}
			}
		})
	}
}

func TestCombineKeywords(t *testing.T) {
	got := CombineKeywords(
		[]string{"Apple Inc.", " ", "apple inc."},
		[]string{"Technology"},
		[]string{"Q3 Earnings", "Inflation", "Supply Chain", "Rates"},
	)
	want := []string{"Apple Inc.", "Technology", "Q3 Earnings", "Inflation", "Supply Chain"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
	if got := CombineKeywords(nil, nil, nil); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestGenerateQueriesUsesLLMReply(t *testing.T) {
	gen := &fakeGenerator{replies: []string{`Sure: ["Apple bearish outlook", " ", "iPhone demand slump", "inflation risk tech", "extra"]`}}
	got := NewQueryGenerator(gen, nil).Generate(context.Background(), []string{"Apple Inc.", "Technology"})

	want := []string{"Apple bearish outlook", "iPhone demand slump", "inflation risk tech"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
	if !strings.Contains(gen.prompts[0], "Keywords: Apple Inc., Technology") {
		t.Fatalf("keywords missing from prompt: %q", gen.prompts[0])
	}
}

func TestGenerateQueriesFallback(t *testing.T) {
	keywords := []string{"Apple Inc.", "Technology", "Inflation"}
	want := []string{"Apple Inc. outlook", "Technology debate"}

	cases := map[string]*fakeGenerator{
		"llm error":     {errs: []error{errors.New("timeout")}},
		"not an array":  {replies: []string{`{"queries":["a"]}`}},
		"mixed types":   {replies: []string{`["a", 2]`}},
		"garbage reply": {replies: []string{"no idea"}},
	}
	for name, gen := range cases {
		t.Run(name, func(t *testing.T) {
			got := NewQueryGenerator(gen, nil).Generate(context.Background(), keywords)
			if !reflect.DeepEqual(got, want) {
				t.Fatalf("got %v want %v", got, want)
			}
		})
	}
}

func TestGenerateQueriesAcceptsEmptyArray(t *testing.T) {
	for name, reply := range map[string]string{
		"empty array": `[]`,
		"only blanks": `["", "  "]`,
	} {
		t.Run(name, func(t *testing.T) {
			gen := &fakeGenerator{replies: []string{reply}}
			got := NewQueryGenerator(gen, nil).Generate(context.Background(), []string{"Apple Inc.", "Technology"})
			if got == nil || len(got) != 0 {
				t.Fatalf("a valid string array must be used as given, got %#v", got)
			}
		})
	}
}

func TestGenerateQueriesWithoutKeywords(t *testing.T) {
	gen := &fakeGenerator{}
	got := NewQueryGenerator(gen, nil).Generate(context.Background(), nil)
	if len(got) != 0 {
		t.Fatalf("expected no queries, got %v", got)
	}
	if len(gen.prompts) != 0 {
		t.Fatalf("llm should not be called without keywords")
	}
}

func TestFallbackQueriesSkipsMissingKeywords(t *testing.T) {
	if got := FallbackQueries([]string{"Tesla"}); !reflect.DeepEqual(got, []string{"Tesla outlook"}) {
		t.Fatalf("unexpected %v", got)
	}
	if got := FallbackQueries(nil); len(got) != 0 {
		t.Fatalf("unexpected %v", got)
	}
}

func TestDivergenceAnalyze(t *testing.T) {
	original := domain.OriginalAnalysis{
		Summary:   "Apple beat estimates.",
		Companies: []string{"Apple Inc."},
		Themes:    []string{"Q3 Earnings"},
	}
	article := domain.RetrievedArticle{Title: "Analysts warn on iPhone", URL: "https://x.example/a", ContentSnippet: "Demand is slowing."}

	gen := &fakeGenerator{replies: []string{"  The new article questions demand durability.  "}}
	got := NewDivergenceAnalyzer(gen, nil).Analyze(context.Background(), original, article)
	if got != "The new article questions demand durability." {
		t.Fatalf("unexpected %q", got)
	}
	prompt := gen.prompts[0]
	for _, want := range []string{`"Apple beat estimates."`, "Apple Inc., Q3 Earnings", `"Analysts warn on iPhone"`, `"Demand is slowing."`} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q: %s", want, prompt)
		}
	}
}

func TestDivergenceAnalyzeFailureText(t *testing.T) {
	for name, gen := range map[string]*fakeGenerator{
		"error": {errs: []error{errors.New("boom")}},
		"empty": {replies: []string{"   "}},
	} {
		t.Run(name, func(t *testing.T) {
			got := NewDivergenceAnalyzer(gen, nil).Analyze(context.Background(), domain.OriginalAnalysis{}, domain.RetrievedArticle{})
			if got != DivergenceFailure {
				t.Fatalf("unexpected %q", got)
			}
		})
	}
}
