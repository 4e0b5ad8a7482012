package analyze

import (
	"sort"
	"strings"

	"github.com/chaffhq/chaff"
)

// timeUnits are literal words that mark an adjacent digit run as a
// relative-time value.
var timeUnits = map[string]bool{
	"second": true, "seconds": true,
	"minute": true, "minutes": true,
	"hour": true, "hours": true,
	"day": true, "days": true,
	"week": true, "weeks": true,
	"month": true, "months": true,
	"year": true, "years": true,
}

// countDescriptors are literal words that mark an adjacent digit run as a
// quantity.
var countDescriptors = map[string]bool{
	"comment": true, "comments": true,
	"reply": true, "replies": true,
	"like": true, "likes": true,
	"view": true, "views": true,
	"share": true, "shares": true,
	"point": true, "points": true,
	"upvote": true, "upvotes": true,
	"item": true, "items": true,
}

// Recognizer aligns the texts of nodes within a duplicate group and stamps
// a generalized template string when variation is confined to digit runs.
type Recognizer struct {
	// WithinPage additionally generalizes page-local repeated-signature
	// clusters that were not flagged as cross-page duplicates. Off by
	// default: template emission is conservatively restricted to flagged
	// groups.
	WithinPage bool
}

// Recognize processes each duplicate group, and, when WithinPage is set,
// each page-local repeated-signature cluster. For every group whose
// occurrence texts align to a common literal skeleton with at least one
// differing digit run, it sets TemplateText on all occurrences and counts
// one template. Groups with diverging literal tokens are left untouched:
// that divergence is genuinely different content, not a variable slot.
// Returns the number of templates emitted.
func (r *Recognizer) Recognize(pages []*chaff.Page, groups []chaff.DuplicateGroup) int {
	count := 0

	for _, group := range groups {
		var nodes []*chaff.Node
		for _, ref := range group.Occurrences {
			if ref.Page < 0 || ref.Page >= len(pages) || pages[ref.Page] == nil || pages[ref.Page].Tree == nil {
				continue
			}
			if n := ref.Resolve(pages[ref.Page].Tree); n != nil {
				nodes = append(nodes, n)
			}
		}
		if stampTemplate(nodes) {
			count++
		}
	}

	if r.WithinPage {
		count += r.recognizeWithinPage(pages)
	}

	return count
}

// recognizeWithinPage generalizes signature clusters repeated within a
// single page, skipping nodes already templated by a cross-page group.
func (r *Recognizer) recognizeWithinPage(pages []*chaff.Page) int {
	count := 0
	for _, page := range pages {
		if page == nil || page.Tree == nil {
			continue
		}
		chaff.ComputeSignatures(page.Tree)

		clusters := make(map[string][]*chaff.Node)
		page.Tree.Walk(func(n *chaff.Node) {
			if n.TemplateText != "" {
				return
			}
			clusters[n.Signature] = append(clusters[n.Signature], n)
		})

		sigs := make([]string, 0, len(clusters))
		for sig, nodes := range clusters {
			if len(nodes) >= 2 {
				sigs = append(sigs, sig)
			}
		}
		sort.Strings(sigs)

		for _, sig := range sigs {
			if stampTemplate(clusters[sig]) {
				count++
			}
		}
	}
	return count
}

// stampTemplate aligns the nodes' texts and, on success, stamps the
// rendered pattern onto every node. The original Text is retained.
func stampTemplate(nodes []*chaff.Node) bool {
	if len(nodes) < 2 {
		return false
	}
	texts := make([]string, len(nodes))
	for i, n := range nodes {
		texts[i] = n.Text
	}

	pattern, ok := Align(texts)
	if !ok {
		return false
	}

	rendered := pattern.String()
	for _, n := range nodes {
		n.TemplateText = rendered
	}
	return true
}

// token is one maximal run of digits or non-digits.
type token struct {
	text   string
	digits bool
}

// tokenize splits text into alternating maximal runs of digits and
// non-digits. The empty string yields no tokens.
func tokenize(s string) []token {
	var tokens []token
	start := 0
	for i := 1; i < len(s); i++ {
		if isDigit(s[i]) != isDigit(s[i-1]) {
			tokens = append(tokens, token{text: s[start:i], digits: isDigit(s[i-1])})
			start = i
		}
	}
	if len(s) > 0 {
		tokens = append(tokens, token{text: s[start:], digits: isDigit(s[len(s)-1])})
	}
	return tokens
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// Align derives a template pattern from two or more occurrence texts.
//
// The texts are template-compatible iff they tokenize to the same number of
// tokens, every non-digit token is byte-identical across all texts, and at
// least one digit-run position differs somewhere. Differing digit positions
// become placeholders; digit positions identical everywhere stay literal.
// Any literal divergence, token-count mismatch, or all-identical texts
// returns ok=false.
func Align(texts []string) (*chaff.TemplatePattern, bool) {
	if len(texts) < 2 {
		return nil, false
	}

	base := tokenize(texts[0])
	if len(base) == 0 {
		return nil, false
	}

	varies := make([]bool, len(base))
	for _, text := range texts[1:] {
		tokens := tokenize(text)
		if len(tokens) != len(base) {
			return nil, false
		}
		for i, tok := range tokens {
			if tok.digits != base[i].digits {
				return nil, false
			}
			if tok.text == base[i].text {
				continue
			}
			if !tok.digits {
				// Literal divergence: genuinely different content.
				return nil, false
			}
			varies[i] = true
		}
	}

	anyVaries := false
	for _, v := range varies {
		anyVaries = v || anyVaries
	}
	if !anyVaries {
		return nil, false
	}

	pattern := &chaff.TemplatePattern{Tokens: make([]chaff.TemplateToken, 0, len(base))}
	for i, tok := range base {
		if tok.digits && varies[i] {
			pattern.Tokens = append(pattern.Tokens, chaff.TemplateToken{
				Placeholder: true,
				Kind:        classifyPlaceholder(base, i),
			})
		} else {
			pattern.Tokens = append(pattern.Tokens, chaff.TemplateToken{Literal: tok.text})
		}
	}
	return pattern, true
}

// classifyPlaceholder infers the placeholder kind from the literal tokens
// around the digit run at idx.
func classifyPlaceholder(tokens []token, idx int) chaff.PlaceholderKind {
	if idx+1 < len(tokens) && !tokens[idx+1].digits {
		words := literalWords(tokens[idx+1].text)
		if len(words) > 0 {
			if timeUnits[words[0]] {
				return chaff.PlaceholderTime
			}
			if countDescriptors[words[0]] {
				return chaff.PlaceholderCount
			}
			if len(words) > 1 && words[1] == "ago" {
				return chaff.PlaceholderTime
			}
		}
	}
	if idx > 0 && !tokens[idx-1].digits {
		words := literalWords(tokens[idx-1].text)
		if len(words) > 0 {
			last := words[len(words)-1]
			if last == "page" || last == "item" {
				return chaff.PlaceholderCount
			}
		}
	}
	return chaff.PlaceholderValue
}

// literalWords lowercases a literal token and splits it into words with
// non-letter edges trimmed.
func literalWords(s string) []string {
	fields := strings.Fields(strings.ToLower(s))
	words := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimFunc(f, func(r rune) bool {
			return r < 'a' || r > 'z'
		})
		if f != "" {
			words = append(words, f)
		}
	}
	return words
}
