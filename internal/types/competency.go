package types

// Category groups competencies by the kind of evidence that satisfies them.
// Each category carries its own base weight and match threshold.
type Category string

// Competency categories
const (
	CategoryMLAI          Category = "ML_AI"
	CategoryTechnicalCore Category = "TECHNICAL_CORE"
	CategoryPlatform      Category = "PLATFORM"
	CategoryReliability   Category = "RELIABILITY"
	CategoryProcess       Category = "PROCESS"
	CategoryCollaboration Category = "COLLABORATION"
	CategoryGeneral       Category = "GENERAL"
)

// Importance marks whether a competency is a hard requirement or a
// nice-to-have. Optional competencies earn points at a reduced multiplier
// so they can never outweigh required ones.
type Importance string

// Importance levels
const (
	ImportanceRequired Importance = "REQUIRED"
	ImportanceOptional Importance = "OPTIONAL"
)

// Competency is a fully normalized job requirement. Weight is clamped to
// [0.3, 1.2] and MatchThreshold to [0.25, 0.5]; no raw entry is ever
// scored directly.
type Competency struct {
	Name           string     `json:"name"`
	CanonicalName  string     `json:"canonical_name"`
	Description    string     `json:"description,omitempty"`
	Category       Category   `json:"category"`
	Weight         float64    `json:"weight"`
	MatchThreshold float64    `json:"match_threshold"`
	Importance     Importance `json:"importance"`
}

// EmbeddingText returns the text embedded in query mode for this
// competency: name and description joined as a sentence.
func (c Competency) EmbeddingText() string {
	if c.Description == "" {
		return c.Name
	}
	if c.Name == "" {
		return c.Description
	}
	return c.Name + ". " + c.Description
}
