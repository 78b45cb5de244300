package registry

// ToolProfile is the fixed prompt/parameter configuration for a single
// writing tool. Profiles are defined at process start and never change at
// runtime.
type ToolProfile struct {
	// ID is the tool identifier (e.g., "improve", "grammar").
	ID string

	// SystemPrompt is the system message sent to the upstream model.
	SystemPrompt string

	// MaxTokens is the completion token budget. Always positive; 16000 for
	// long-form tools, 4000 for most, 1000 for short analytical output.
	MaxTokens int

	// Temperature is the sampling temperature in [0, 1]. Low for precise
	// tasks (grammar), high for creative ones (humanize).
	Temperature float64
}

// Tool identifiers for the supported writing tools.
const (
	ToolImprove    = "improve"
	ToolSEOWrite   = "seo-write"
	ToolParaphrase = "paraphrase"
	ToolHumanize   = "humanize"
	ToolDetect     = "detect"
	ToolGrammar    = "grammar"
)

// DefaultMaxTokens is the token budget used when a profile override does not
// specify one.
const DefaultMaxTokens = 4000

// defaultProfiles returns the built-in profiles for the six supported tools.
func defaultProfiles() []ToolProfile {
	return []ToolProfile{
		{
			ID: ToolImprove,
			SystemPrompt: "Enhance this text for maximum clarity, fluency, and professionalism " +
				"while maintaining the core message. Improve readability, engagement, and flow. " +
				"Make it more compelling and polished without changing the fundamental meaning. " +
				"Add sophistication where appropriate and ensure it sounds authoritative and well-written.",
			MaxTokens:   4000,
			Temperature: 0.5,
		},
		{
			ID: ToolSEOWrite,
			SystemPrompt: "You are a top-tier SEO content writer. Write a comprehensive 5000-10000 word " +
				"article on the topic. Use H2/H3 headings, bullet points, natural keyword integration, " +
				"and human-like tone. Avoid AI patterns. Sound like a real expert writing for " +
				"professionals in the field. Include practical examples, actionable insights, and " +
				"current industry trends.",
			MaxTokens:   16000,
			Temperature: 0.7,
		},
		{
			ID: ToolParaphrase,
			SystemPrompt: "Rewrite this text to be 100% unique and undetectable as AI-generated. Use " +
				"completely different sentence structures, synonyms, and phrasing while preserving the " +
				"exact meaning. Make it fresh, engaging, and natural. Vary the writing style and tone " +
				"to sound distinctly different from the original while maintaining all key information " +
				"and context.",
			MaxTokens:   4000,
			Temperature: 0.6,
		},
		{
			ID: ToolHumanize,
			SystemPrompt: "Transform this AI text to sound 100% human. Add contractions, minor " +
				"imperfections, personal tone, conversational flow, and natural language patterns. " +
				"Remove robotic phrasing, vary sentence structure, and make it completely undetectable " +
				"as AI-generated content. Maintain the core message while making it sound like it was " +
				"written by a knowledgeable human expert.",
			MaxTokens:   4000,
			Temperature: 0.8,
		},
		{
			ID: ToolDetect,
			SystemPrompt: "Analyze this text carefully and estimate the probability it was AI-generated. " +
				"Look for patterns like repetitive phrasing, unnatural flow, overly formal tone, generic " +
				"statements, and lack of personal insights. Respond with: \"AI Probability: X%\" followed " +
				"by a detailed 2-3 sentence explanation of your reasoning, highlighting specific " +
				"indicators that led to your assessment.",
			MaxTokens:   1000,
			Temperature: 0.3,
		},
		{
			ID: ToolGrammar,
			SystemPrompt: "Fix all grammar, spelling, punctuation, and syntax errors in this text. " +
				"Correct awkward phrasing, improve sentence structure, and ensure proper formatting. " +
				"Return only the corrected version with no explanations or markup - just the clean, " +
				"error-free text that maintains the original meaning and tone.",
			MaxTokens:   4000,
			Temperature: 0.2,
		},
	}
}
