package markup

import (
	"regexp"
	"strings"
)

const (
	RuleFencedCode = "fenced_code"
	RuleBold       = "bold"
	RuleItalic     = "italic"
	RuleInlineCode = "inline_code"
	RuleLineBreak  = "line_break"
)

// Rule is a single global substitution pass. Replace receives the full match
// followed by its capture groups, as returned by FindAllStringSubmatch.
type Rule struct {
	Name    string
	Pattern *regexp.Regexp
	Replace func(match []string) string
}

// Apply runs the rule once over text. Matches never overlap and replacement
// output is not rescanned by the same rule.
func (r Rule) Apply(text string) string {
	if r.Pattern == nil || r.Replace == nil || text == "" {
		return text
	}
	locs := r.Pattern.FindAllStringSubmatchIndex(text, -1)
	if len(locs) == 0 {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for _, loc := range locs {
		b.WriteString(text[last:loc[0]])
		b.WriteString(r.Replace(submatches(text, loc)))
		last = loc[1]
	}
	b.WriteString(text[last:])
	return b.String()
}

func submatches(text string, loc []int) []string {
	out := make([]string, len(loc)/2)
	for i := range out {
		start, end := loc[2*i], loc[2*i+1]
		if start >= 0 && end >= 0 {
			out[i] = text[start:end]
		}
	}
	return out
}

var (
	fencedCodePattern = regexp.MustCompile("(?s)```(\\w*)\\n(.*?)```")
	boldPattern       = regexp.MustCompile(`\*\*(.*?)\*\*`)
	italicPattern     = regexp.MustCompile(`\*(.*?)\*`)
	inlineCodePattern = regexp.MustCompile("`(.*?)`")
	lineBreakPattern  = regexp.MustCompile(`\n`)
)

var codeEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// FencedCodeRule extracts ```lang\nbody``` blocks into a code-block wrapper.
// The body is HTML escaped; the language tag may be empty.
func FencedCodeRule() Rule {
	return Rule{
		Name:    RuleFencedCode,
		Pattern: fencedCodePattern,
		Replace: func(m []string) string {
			return `<div class="code-block"><span class="language">` + m[1] +
				`</span><pre><code>` + escapeCode(m[2]) + `</code></pre></div>`
		},
	}
}

// BoldRule wraps **text** in <strong>.
func BoldRule() Rule {
	return wrapRule(RuleBold, boldPattern, "strong")
}

// ItalicRule wraps *text* in <em>. It must run after BoldRule.
func ItalicRule() Rule {
	return wrapRule(RuleItalic, italicPattern, "em")
}

// InlineCodeRule wraps `text` in <code>.
func InlineCodeRule() Rule {
	return wrapRule(RuleInlineCode, inlineCodePattern, "code")
}

// LineBreakRule replaces every newline with <br>.
func LineBreakRule() Rule {
	return Rule{
		Name:    RuleLineBreak,
		Pattern: lineBreakPattern,
		Replace: func([]string) string { return "<br>" },
	}
}

func wrapRule(name string, pattern *regexp.Regexp, tag string) Rule {
	openTag, closeTag := "<"+tag+">", "</"+tag+">"
	return Rule{
		Name:    name,
		Pattern: pattern,
		Replace: func(m []string) string { return openTag + m[1] + closeTag },
	}
}

// escapeCode escapes &, < and > in that order. strings.Replacer does a single
// pass, so an escaped ampersand is never escaped twice.
func escapeCode(code string) string {
	return codeEscaper.Replace(code)
}

// DefaultRules returns the course dialect in application order.
func DefaultRules() []Rule {
	return []Rule{
		FencedCodeRule(),
		BoldRule(),
		ItalicRule(),
		InlineCodeRule(),
		LineBreakRule(),
	}
}

// Pipeline applies an ordered rule list. It holds no mutable state and is
// safe for concurrent use.
type Pipeline struct {
	rules []Rule
}

// NewPipeline builds a pipeline. With no rules it uses DefaultRules.
func NewPipeline(rules ...Rule) *Pipeline {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Pipeline{rules: append([]Rule(nil), rules...)}
}

// Rules returns a copy of the configured rule list.
func (p *Pipeline) Rules() []Rule {
	if p == nil {
		return nil
	}
	return append([]Rule(nil), p.rules...)
}

func (p *Pipeline) Render(text string) string {
	if p == nil || text == "" {
		return text
	}
	for _, rule := range p.rules {
		text = rule.Apply(text)
	}
	return text
}

var defaultPipeline = NewPipeline()

// Render converts text with the default course dialect.
func Render(text string) string {
	return defaultPipeline.Render(text)
}
