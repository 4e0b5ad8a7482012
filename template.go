package chaff

// PlaceholderKind classifies what a template placeholder stands for,
// inferred from the literal tokens around the varying digit run.
type PlaceholderKind string

// Placeholder kinds.
const (
	// PlaceholderCount marks quantities ("42 comments", "999 points").
	PlaceholderCount PlaceholderKind = "count"

	// PlaceholderTime marks relative-time values ("16 hours ago").
	PlaceholderTime PlaceholderKind = "time"

	// PlaceholderValue marks digit runs with no recognized context.
	PlaceholderValue PlaceholderKind = "value"
)

// TemplateToken is one segment of a template pattern: either a literal
// shared verbatim by every occurrence, or a placeholder standing in for a
// digit run that varies between occurrences.
type TemplateToken struct {
	// Literal text; meaningful only when Placeholder is false.
	Literal string `json:"literal,omitempty"`

	// Kind of the placeholder; meaningful only when Placeholder is true.
	Kind PlaceholderKind `json:"kind,omitempty"`

	Placeholder bool `json:"placeholder,omitempty"`
}

// TemplatePattern is a text skeleton derived by aligning the texts of a
// duplicate group's occurrences. It is transient: it exists to produce the
// generalized string stamped onto each occurrence's TemplateText.
type TemplatePattern struct {
	Tokens []TemplateToken `json:"tokens"`
}

// String renders the pattern, with placeholders as "{count}", "{time}" or
// "{value}".
func (p *TemplatePattern) String() string {
	var out []byte
	for _, tok := range p.Tokens {
		if tok.Placeholder {
			out = append(out, '{')
			out = append(out, tok.Kind...)
			out = append(out, '}')
		} else {
			out = append(out, tok.Literal...)
		}
	}
	return string(out)
}
