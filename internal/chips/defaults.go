package chips

var (
	PlatformOptions = []Option{
		{Value: "twitter", Label: "Twitter/X"},
		{Value: "linkedin", Label: "LinkedIn"},
		{Value: "facebook", Label: "Facebook"},
		{Value: "instagram", Label: "Instagram"},
		{Value: "threads", Label: "Threads"},
	}
	ToneOptions = []Option{
		{Value: "friendly", Label: "Friendly"},
		{Value: "professional", Label: "Professional"},
		{Value: "casual", Label: "Casual"},
		{Value: "humorous", Label: "Humorous"},
		{Value: "inspirational", Label: "Inspirational"},
		{Value: "auto", Label: "Auto"},
	}
	StyleOptions = []Option{
		{Value: "informative", Label: "Informative"},
		{Value: "promotional", Label: "Promotional"},
		{Value: "storytelling", Label: "Storytelling"},
		{Value: "educational", Label: "Educational"},
		{Value: "question", Label: "Question"},
		{Value: "auto", Label: "Auto"},
	}
)

// DefaultSelection is the pre-seeded chip state of a fresh form.
var DefaultSelection = Selection{
	GroupPlatform: "twitter",
	GroupTone:     "friendly",
	GroupStyle:    "informative",
}

// NewDefaultSet builds the platform, tone and style groups and applies overrides
// on top of DefaultSelection.
func NewDefaultSet(overrides Selection) (*Set, error) {
	platform, err := NewGroup(GroupPlatform, "Platform", PlatformOptions, DefaultSelection.Platform())
	if err != nil {
		return nil, err
	}
	tone, err := NewGroup(GroupTone, "Tone", ToneOptions, DefaultSelection.Tone())
	if err != nil {
		return nil, err
	}
	style, err := NewGroup(GroupStyle, "Style", StyleOptions, DefaultSelection.Style())
	if err != nil {
		return nil, err
	}
	set, err := NewSet(platform, tone, style)
	if err != nil {
		return nil, err
	}
	if err := set.Apply(overrides); err != nil {
		return nil, err
	}
	return set, nil
}
