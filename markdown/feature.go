// Copyright (c) 2026 Kyradjis
// released under the MIT license

package markdown

import (
	"regexp"

	"github.com/kyradjis/bluelib/text"
)

// grammar selects how a feature recognizes its spans.
type grammar int

const (
	// grammarDelimiter matches prefix + content + suffix, e.g. **bold**.
	grammarDelimiter grammar = iota
	// grammarHyperlink matches prefix + text + suffix + (url), e.g. [text](url).
	grammarHyperlink
	// grammarColor matches prefix + #RRGGBB + suffix + (text), e.g. -#FF0000-(text).
	grammarColor
	// grammarClipboard doesn't scan at all; it walks the composed message.
	grammarClipboard
)

// matchSpan is one recognized span of a feature's pattern within a single
// node's text. It only lives for the duration of one scan.
type matchSpan struct {
	raw     string // the full matched text, delimiters included
	inner   string // first captured group: span content, or the color code
	payload string // second captured group: the url, or the text to color
}

// content returns the group the empty-span no-op rule applies to.
func (span matchSpan) content(g grammar) string {
	if g == grammarColor {
		return span.payload
	}
	return span.inner
}

type applyFunc func(p *Pipeline, f *feature, span matchSpan, style text.Style) []*text.StyledText

// feature is one formatting rule of the pipeline. All eight features share
// the scan and escape logic below and differ only in their grammar,
// delimiters and apply transform.
type feature struct {
	name    string
	grammar grammar
	prefix  string
	suffix  string
	enabled bool
	pattern *regexp.Regexp
	apply   applyFunc
}

func newFeature(name string, g grammar, prefix, suffix string, apply applyFunc) *feature {
	f := &feature{
		name:    name,
		grammar: g,
		prefix:  prefix,
		suffix:  suffix,
		enabled: true,
		apply:   apply,
	}
	f.recompile()
	return f
}

// recompile rebuilds the match pattern; it runs at construction time and
// whenever a delimiter override is applied. Delimiters are quoted, so they
// are always matched literally.
func (f *feature) recompile() {
	switch f.grammar {
	case grammarDelimiter:
		f.pattern = regexp.MustCompile(regexp.QuoteMeta(f.prefix) + "(.*?)" + regexp.QuoteMeta(f.suffix))
	case grammarHyperlink:
		f.pattern = regexp.MustCompile(regexp.QuoteMeta(f.prefix) + "(.*?)" + regexp.QuoteMeta(f.suffix) + `\((.*?)\)`)
	case grammarColor:
		f.pattern = regexp.MustCompile(regexp.QuoteMeta(f.prefix) + "(#[0-9A-Fa-f]{6})" + regexp.QuoteMeta(f.suffix) + `\((.*?)\)`)
	case grammarClipboard:
		f.pattern = nil
	}
}

// process runs one feature pass over one message tree.
func (f *feature) process(p *Pipeline, node *text.StyledText, original string) *text.StyledText {
	if !f.enabled {
		p.logger.Info(logType, f.name, "feature disabled, skipping")
		return node
	}
	if f.grammar == grammarClipboard {
		return f.attachClipboard(node, original)
	}
	if node.IsLeaf() {
		return text.Composite(f.scanText(p, node.Text, node.Style)...)
	}
	return text.Composite(f.processSiblings(p, node)...)
}

// processSiblings handles a node with children: only each child's own text
// is rescanned; the node's own text (normally empty for composites) is
// carried through without another scan.
func (f *feature) processSiblings(p *Pipeline, node *text.StyledText) []*text.StyledText {
	var pieces []*text.StyledText
	if node.Text != "" {
		pieces = append(pieces, text.Styled(node.Text, node.Style))
	}
	for _, child := range node.Children {
		if child.IsLeaf() {
			pieces = append(pieces, f.scanText(p, child.Text, child.Style)...)
		} else {
			pieces = append(pieces, f.processSiblings(p, child)...)
		}
	}
	return pieces
}

// scanText walks the pattern's matches over one text run, left to right:
//   - an empty content group (prefix immediately followed by suffix) is a
//     no-op span, emitted literally;
//   - a match immediately preceded by a backslash has the backslash dropped
//     and the raw matched text (delimiters included) emitted without the
//     transform;
//   - any other match goes through the feature's apply transform;
//   - the stretches between matches keep the run's original style.
func (f *feature) scanText(p *Pipeline, s string, style text.Style) []*text.StyledText {
	matches := f.pattern.FindAllStringSubmatchIndex(s, -1)
	if len(matches) == 0 {
		return []*text.StyledText{text.Styled(s, style)}
	}

	var pieces []*text.StyledText
	emit := func(piece *text.StyledText) {
		if piece.Text != "" {
			pieces = append(pieces, piece)
		}
	}

	last := 0
	for _, m := range matches {
		start, end := m[0], m[1]
		span := matchSpan{raw: s[start:end], inner: s[m[2]:m[3]]}
		if len(m) >= 6 && m[4] != -1 {
			span.payload = s[m[4]:m[5]]
		}

		switch {
		case span.content(f.grammar) == "":
			// no formatting on empty content
			emit(text.Styled(s[last:start], style))
			emit(text.Styled(span.raw, style))
		case start > last && s[start-1] == '\\':
			// escaped: drop the backslash, keep the delimiters visible
			emit(text.Styled(s[last:start-1], style))
			emit(text.Styled(span.raw, style))
		default:
			emit(text.Styled(s[last:start], style))
			for _, piece := range f.apply(p, f, span, style) {
				emit(piece)
			}
		}
		last = end
	}
	emit(text.Styled(s[last:], style))
	return pieces
}

// attachClipboard implements the copy-to-clipboard feature. It runs last in
// the pipeline and walks the sibling list of the composed message, giving a
// copy-the-original-text click action to every span that doesn't already
// carry a click action (so hyperlink clicks are never overwritten).
func (f *feature) attachClipboard(node *text.StyledText, original string) *text.StyledText {
	result := node.Clone()
	if result.IsLeaf() {
		if result.Style.Click == nil {
			result.Style = result.Style.WithClick(text.ClickCopyToClipboard, original)
		}
		return result
	}
	for _, child := range result.Children {
		if child.Style.Click == nil {
			child.Style = child.Style.WithClick(text.ClickCopyToClipboard, original)
		}
	}
	return result
}
