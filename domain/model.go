package domain

import "strings"

type LinkType string

const (
	LinkTypeCourse     LinkType = "course"
	LinkTypeCoaching   LinkType = "coaching"
	LinkTypeProduct    LinkType = "product"
	LinkTypeNewsletter LinkType = "newsletter"
	LinkTypeBlog       LinkType = "blog"
	LinkTypeVideo      LinkType = "video"
	LinkTypeSocial     LinkType = "social"
	LinkTypeWebsite    LinkType = "website"
)

// ExtractedContent is the normalized result of scraping a destination URL.
// It is immutable once produced; the orchestrator caches its ContextSummary
// on the owning link so repeat runs skip re-fetching.
type ExtractedContent struct {
	Title           string
	MetaDescription string
	PreviewText     string
	FullText        string
	LinkType        LinkType
}

// ContextSummary renders the fields present in a fixed order for prompt
// context. Empty fields are omitted, the preview is capped at 100 words.
func (e ExtractedContent) ContextSummary() string {
	var parts []string
	if e.Title != "" {
		parts = append(parts, "Title: "+e.Title)
	}
	if e.MetaDescription != "" {
		parts = append(parts, "Description: "+e.MetaDescription)
	}
	parts = append(parts, "Link Type: "+string(e.LinkType))
	if e.PreviewText != "" {
		words := strings.Fields(e.PreviewText)
		if len(words) > 100 {
			words = words[:100]
		}
		parts = append(parts, "Preview: "+strings.Join(words, " "))
	}
	return strings.Join(parts, "\n")
}

type VariationKind string

const (
	VariationBrief          VariationKind = "brief"
	VariationStandard       VariationKind = "standard"
	VariationConversational VariationKind = "conversational"
)

// Variations lists the candidate kinds in generation order. Position in a
// generated batch maps onto this slice.
var Variations = []VariationKind{VariationBrief, VariationStandard, VariationConversational}

type ScriptCandidate struct {
	Text      string        `json:"script"`
	WordCount int           `json:"word_count"`
	Variation VariationKind `json:"variation"`
}

// AudioArtifact is a synthesized audio file, identified by its path relative
// to the audio root, together with the text it was generated from.
type AudioArtifact struct {
	RelativePath string `json:"audio_path"`
	Text         string `json:"text"`
}

type Link struct {
	ID      string
	OwnerID string
	Title   string
	URL     string

	// ScrapedContent caches the context summary of the last extraction.
	// Not auto-invalidated when URL changes; the route layer clears it
	// when a link is edited.
	ScrapedContent string

	ScriptBrief          string
	ScriptStandard       string
	ScriptConversational string
	SelectedScript       string

	VoiceMessageText  string
	VoiceMessageAudio string

	Active   bool
	Position int
}

// ScriptFor returns the cached candidate text for a variation kind.
func (l Link) ScriptFor(kind VariationKind) string {
	switch kind {
	case VariationBrief:
		return l.ScriptBrief
	case VariationStandard:
		return l.ScriptStandard
	case VariationConversational:
		return l.ScriptConversational
	}
	return ""
}

type User struct {
	ID          string
	Username    string
	DisplayName string
	Bio         string

	VoiceCloneID    string
	VoiceSamplePath string

	WelcomeMessageText  string
	WelcomeMessageAudio string

	IsPublished bool
}

// ImportedProfile is the result of importing an external link-in-bio page.
type ImportedProfile struct {
	Username    string
	DisplayName string
	Bio         string
	Links       []ImportedLink
}

type ImportedLink struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// VoiceSample is one uploaded recording used for clone creation.
type VoiceSample struct {
	Filename    string
	ContentType string
	Data        []byte
}
