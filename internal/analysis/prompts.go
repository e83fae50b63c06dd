package analysis

import (
	"fmt"
	"strings"
)

const extractPrompt = `Analyze the following financial news article and extract key information.
1. Provide a concise summary of the article (around 3-5 sentences).
2. Identify the main companies (e.g., Apple Inc., Google), industries (e.g., Technology, Automotive), and financial themes (e.g., Inflation, Interest Rates, Q3 Earnings) discussed.
If a company/industry/theme is not explicitly mentioned or clearly implied, omit it from the respective array.
Format your response as a JSON object with 'summary' (string), 'companies' (array of strings), 'industries' (array of strings), and 'themes' (array of strings).
Ensure the JSON is perfectly valid and ready for parsing.

Article:
"%s"`

const queriesPrompt = `Given the following key entities and themes from a financial news article:
Keywords: %s

Generate 3 short, distinct search queries (2-5 words each) for a news API to find articles with *contrasting* or *alternative perspectives*.
Focus on different viewpoints (e.g., "bearish outlook [company]", "economic recession warning", "unexpected market impact", "alternative investment strategies").
Output as a JSON array of strings: ["query1", "query2", "query3"].
Ensure the JSON is perfectly valid.`

const divergencePrompt = `Analyze the following new article and compare its perspective to the provided original news analysis.
Highlight the main differences, new insights, or contrasting arguments in 2-4 sentences.
If the perspective is largely similar or adds no significant new information, state "Similar perspective."
Focus on how this new article specifically challenges or provides a different angle from the original.

Original Article Summary: "%s"
Original Article Companies/Themes: %s.

New Article Title: "%s"
New Article Content Snippet: "%s"`

func buildExtractPrompt(article string) string {
	return fmt.Sprintf(extractPrompt, article)
}

func buildQueriesPrompt(keywords []string) string {
	return fmt.Sprintf(queriesPrompt, strings.Join(keywords, ", "))
}

func buildDivergencePrompt(summary string, keywords []string, title, snippet string) string {
	return fmt.Sprintf(divergencePrompt, summary, strings.Join(keywords, ", "), title, snippet)
}
