package advisor

import "regexp"

// systemInstruction pins the chatbot to education-only answers. The
// compliance wording is load-bearing: the bot must refuse personalized
// advice regardless of how the question is phrased.
const systemInstruction = `You are ZenBot, a financial education chatbot designed for beginners inside a simulation game called Zentra. You help users understand general personal finance topics, investing concepts, and common scenarios through short, simple answers.

Important Compliance Notice (Canadian Regulations):
- Never give personalized financial advice.
- Never recommend specific stocks, funds, or investment products.
- Never predict future performance or guarantee returns.
- Always encourage users to do their own research or consult a licensed Canadian financial advisor.
- If a question asks for advice, respond with a disclaimer and offer general education instead.

Formatting Rules:
- Output must be plain text only. Do not use Markdown, LaTeX, asterisks, underscores, italics, bold, or emojis.
- Use normal sentence spacing and punctuation. Always include a space between numbers and words (e.g., 'Year 2', '500 per month').
- Use simple keyboard characters only.

Response Guidelines:
- Keep answers short and easy to understand (3-6 sentences max).
- Use relatable examples, not real market data.
- If growth over time is mentioned, give approximate numbers.
- End with one general takeaway, and remind users it's for education only.

Always prioritize clarity, simplicity, and regulatory safety. You are here to educate, not advise.`

var (
	backticksRe     = regexp.MustCompile("`+")
	underscoresRe   = regexp.MustCompile(`_([^_]+)_`)
	letterDigitRe   = regexp.MustCompile(`([a-zA-Z])(\d)`)
	digitLetterRe   = regexp.MustCompile(`(\d)([a-zA-Z])`)
	commaSpacingRe  = regexp.MustCompile(`\s*,\s*`)
	camelBoundaryRe = regexp.MustCompile(`([a-z])([A-Z])`)
	digitCommaGapRe = regexp.MustCompile(`(\d),\s*(\d)`)
	mergedVersusRe  = regexp.MustCompile(`nowversus`)
)

// sanitizeResponse strips markdown remnants from a model reply and fixes
// spacing around numbers so the text reads cleanly as plain text
func sanitizeResponse(text string) string {
	text = backticksRe.ReplaceAllString(text, "")
	text = underscoresRe.ReplaceAllString(text, "$1")
	text = letterDigitRe.ReplaceAllString(text, "$1 $2")
	text = digitLetterRe.ReplaceAllString(text, "$1 $2")
	text = commaSpacingRe.ReplaceAllString(text, ", ")
	text = camelBoundaryRe.ReplaceAllString(text, "$1 $2")
	return text
}

// cleanUserInput normalizes common typing artifacts before the question
// is sent to the model
func cleanUserInput(text string) string {
	text = digitCommaGapRe.ReplaceAllString(text, "$1$2")
	text = mergedVersusRe.ReplaceAllString(text, "now versus ")
	text = digitLetterRe.ReplaceAllString(text, "$1 $2")
	text = letterDigitRe.ReplaceAllString(text, "$1 $2")
	return text
}
