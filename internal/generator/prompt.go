package generator

import (
	"fmt"
	"strings"
)

const systemPrompt = "You are an experienced social media copywriter. " +
	"Reply with the post text only: no preamble, no quotes, no explanations."

var platformGuidance = map[string]string{
	"twitter":   "Keep it under 280 characters. One or two hashtags at most.",
	"linkedin":  "Aim for 3-5 short paragraphs with a clear takeaway. Hashtags go at the end.",
	"facebook":  "Conversational, 1-3 short paragraphs, end with a question or call to action.",
	"instagram": "Open with a strong hook, use line breaks, finish with 5-10 relevant hashtags.",
	"threads":   "Keep it under 500 characters and conversational.",
}

func clipText(text string, limit int) string {
	text = strings.TrimSpace(text)
	if limit <= 0 || len(text) <= limit {
		return text
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}

func describeChoice(kind, value string) string {
	value = strings.TrimSpace(value)
	if value == "" || value == "auto" {
		return fmt.Sprintf("Pick the %s that best fits the platform and topic.", kind)
	}
	return fmt.Sprintf("Use a %s %s.", value, kind)
}

func buildPostPrompt(r Request) string {
	platform := strings.TrimSpace(r.Platform)
	if platform == "" {
		platform = "twitter"
	}
	var b strings.Builder
	b.WriteString("Write a social media post for ")
	b.WriteString(platform)
	b.WriteString(".\n")
	if guidance, ok := platformGuidance[platform]; ok {
		b.WriteString(guidance)
		b.WriteRune('\n')
	}
	b.WriteString(describeChoice("tone", r.Tone))
	b.WriteRune('\n')
	// The completions variant calls this group "formality".
	b.WriteString(describeChoice("formality", r.Style))
	b.WriteString("\n\nTopic:\n")
	b.WriteString(strings.TrimSpace(r.Topic))
	return b.String()
}
