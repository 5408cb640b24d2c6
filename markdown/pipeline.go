// Copyright (c) 2026 Kyradjis
// released under the MIT license

// Package markdown implements the chat-message Markdown formatter: a fixed
// pipeline of independent feature processors that turn delimiter syntax
// (**bold**, *italic*, [text](url), ...) into a styled rich-text tree.
//
// The engine never fails: malformed payloads degrade to literal text, and a
// disabled feature simply skips its pass.
package markdown

import (
	"errors"
	"sync"

	"github.com/kyradjis/bluelib/logger"
	"github.com/kyradjis/bluelib/text"
)

const logType = "bluelib.markdown"

// Feature names, as accepted by the pipeline's configuration surface.
const (
	FeatureBold            = "bold"
	FeatureItalic          = "italic"
	FeatureUnderline       = "underline"
	FeatureStrikethrough   = "strikethrough"
	FeatureSpoiler         = "spoiler"
	FeatureHyperlink       = "hyperlink"
	FeatureColor           = "color"
	FeatureCopyToClipboard = "copy-to-clipboard"
)

// HyperlinkColor is the fixed blue applied to valid hyperlinks.
const HyperlinkColor = 0x1F5FE1

var (
	errUnknownFeature = errors.New("unknown markdown feature")
	errNoDelimiters   = errors.New("feature has no delimiters")
)

// Pipeline applies all formatting features to a message in a fixed order:
// bold, italic, underline, strikethrough, spoiler, hyperlink, color,
// copy-to-clipboard. The order matters: hyperlink runs after the simple
// style features so link text can carry their styling, and copy-to-clipboard
// runs last so it never clobbers a hyperlink's click action.
//
// A Pipeline is safe for concurrent Format calls; configuration mutation is
// expected from a single writer (the host's main thread) and is serialized
// against in-flight Format calls.
type Pipeline struct {
	// mu guards the feature slice contents and the enabled flag
	mu       sync.RWMutex
	enabled  bool
	features []*feature
	byName   map[string]*feature
	logger   *logger.Manager
}

// NewPipeline returns a pipeline with all eight features enabled and their
// default delimiters. A nil manager falls back to stderr logging.
func NewPipeline(lm *logger.Manager) *Pipeline {
	if lm == nil {
		lm = logger.NewDefault(logger.LogInfo)
	}
	p := &Pipeline{
		enabled: true,
		logger:  lm,
	}
	p.features = []*feature{
		newFeature(FeatureBold, grammarDelimiter, "**", "**", styleApply(text.Style.WithBold)),
		newFeature(FeatureItalic, grammarDelimiter, "*", "*", styleApply(text.Style.WithItalic)),
		newFeature(FeatureUnderline, grammarDelimiter, "__", "__", styleApply(text.Style.WithUnderline)),
		newFeature(FeatureStrikethrough, grammarDelimiter, "~~", "~~", styleApply(text.Style.WithStrikethrough)),
		newFeature(FeatureSpoiler, grammarDelimiter, "||", "||", styleApply(text.Style.WithObfuscated)),
		newFeature(FeatureHyperlink, grammarHyperlink, "[", "]", applyHyperlink),
		newFeature(FeatureColor, grammarColor, "-", "-", applyColor),
		newFeature(FeatureCopyToClipboard, grammarClipboard, "", "", nil),
	}
	p.byName = make(map[string]*feature, len(p.features))
	for _, f := range p.features {
		p.byName[f.name] = f
	}
	return p
}

// styleApply wraps a single-bit style mutation as a feature transform.
func styleApply(mutate func(text.Style) text.Style) applyFunc {
	return func(p *Pipeline, f *feature, span matchSpan, style text.Style) []*text.StyledText {
		return []*text.StyledText{text.Styled(span.inner, mutate(style))}
	}
}

// applyHyperlink turns [text](url) into a blue, underlined span that opens
// the URL when clicked. An invalid URL renders the raw bracketed text.
func applyHyperlink(p *Pipeline, f *feature, span matchSpan, style text.Style) []*text.StyledText {
	if !IsValidURL(span.payload) {
		p.logger.Info(logType, f.name, "invalid url, rendering literally", span.payload)
		return []*text.StyledText{text.Styled(span.raw, style)}
	}
	linkStyle := style.WithColor(HyperlinkColor).WithUnderline().WithClick(text.ClickOpenURL, span.payload)
	return []*text.StyledText{text.Styled(span.inner, linkStyle)}
}

// applyColor turns -#RRGGBB-(text) into text colored with the given code.
// An invalid code leaves the text in its original style.
func applyColor(p *Pipeline, f *feature, span matchSpan, style text.Style) []*text.StyledText {
	if !IsValidColor(span.inner) {
		p.logger.Warning(logType, f.name, "invalid color code, leaving text unstyled", span.inner)
		return []*text.StyledText{text.Styled(span.payload, style)}
	}
	return []*text.StyledText{text.Styled(span.payload, style.WithColor(ParseColor(span.inner)))}
}

// Format runs every enabled feature over the message, in order, and returns
// the formatted tree. The input tree is not modified. If the pipeline is
// globally disabled the result is a structural copy of the input.
func (p *Pipeline) Format(message *text.StyledText) *text.StyledText {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if !p.enabled {
		p.logger.Info(logType, "markdown globally disabled, message unchanged")
		return message.Clone()
	}

	// the clipboard feature copies the message as the user typed it,
	// delimiters included
	original := message.Flatten()
	result := message
	for _, f := range p.features {
		result = f.process(p, result, original)
	}
	return result
}

// FormatString treats s as a single unstyled message and formats it.
func (p *Pipeline) FormatString(s string) *text.StyledText {
	return p.Format(text.Leaf(s))
}

// SetEnabled flips the global enable flag; when false, Format returns its
// input unchanged regardless of the per-feature flags.
func (p *Pipeline) SetEnabled(enabled bool) *Pipeline {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.enabled = enabled
	return p
}

// Enabled reports the global enable flag.
func (p *Pipeline) Enabled() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.enabled
}

// Enable turns a single feature on by name. An unknown name is logged and
// ignored, keeping the configuration surface chainable.
func (p *Pipeline) Enable(name string) *Pipeline {
	return p.setFeatureEnabled(name, true)
}

// Disable turns a single feature off by name.
func (p *Pipeline) Disable(name string) *Pipeline {
	return p.setFeatureEnabled(name, false)
}

// EnableAll turns every feature on.
func (p *Pipeline) EnableAll() *Pipeline {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, f := range p.features {
		f.enabled = true
	}
	return p
}

// DisableAll turns every feature off (the global flag is unaffected).
func (p *Pipeline) DisableAll() *Pipeline {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, f := range p.features {
		f.enabled = false
	}
	return p
}

func (p *Pipeline) setFeatureEnabled(name string, enabled bool) *Pipeline {
	p.mu.Lock()
	defer p.mu.Unlock()
	f, ok := p.byName[name]
	if !ok {
		p.logger.Warning(logType, "no such feature", name)
		return p
	}
	f.enabled = enabled
	return p
}

// FeatureEnabled reports whether the named feature is enabled.
func (p *Pipeline) FeatureEnabled(name string) (bool, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	f, ok := p.byName[name]
	if !ok {
		return false, errUnknownFeature
	}
	return f.enabled, nil
}

// SetDelimiters overrides a feature's prefix and suffix and recompiles its
// pattern. Empty delimiters and features without delimiter grammars
// (copy-to-clipboard) are rejected with a log line, not an error, per the
// never-break-the-message policy.
func (p *Pipeline) SetDelimiters(name, prefix, suffix string) *Pipeline {
	p.mu.Lock()
	defer p.mu.Unlock()
	f, ok := p.byName[name]
	if !ok {
		p.logger.Warning(logType, "no such feature", name)
		return p
	}
	if f.grammar == grammarClipboard {
		p.logger.Warning(logType, f.name, "feature has no delimiters to override")
		return p
	}
	if prefix == "" || suffix == "" {
		p.logger.Warning(logType, f.name, "refusing empty delimiter override")
		return p
	}
	f.prefix, f.suffix = prefix, suffix
	f.recompile()
	return p
}

// SetPrefix overrides only the prefix of the named feature.
func (p *Pipeline) SetPrefix(name, prefix string) *Pipeline {
	suffix, err := p.Suffix(name)
	if err != nil {
		p.logger.Warning(logType, name, err.Error())
		return p
	}
	return p.SetDelimiters(name, prefix, suffix)
}

// SetSuffix overrides only the suffix of the named feature.
func (p *Pipeline) SetSuffix(name, suffix string) *Pipeline {
	prefix, err := p.Prefix(name)
	if err != nil {
		p.logger.Warning(logType, name, err.Error())
		return p
	}
	return p.SetDelimiters(name, prefix, suffix)
}

// Prefix returns the current prefix of the named feature.
func (p *Pipeline) Prefix(name string) (string, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	f, ok := p.byName[name]
	if !ok {
		return "", errUnknownFeature
	}
	if f.grammar == grammarClipboard {
		return "", errNoDelimiters
	}
	return f.prefix, nil
}

// Suffix returns the current suffix of the named feature.
func (p *Pipeline) Suffix(name string) (string, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	f, ok := p.byName[name]
	if !ok {
		return "", errUnknownFeature
	}
	if f.grammar == grammarClipboard {
		return "", errNoDelimiters
	}
	return f.suffix, nil
}

// FeatureNames returns the feature names in pipeline order.
func (p *Pipeline) FeatureNames() []string {
	names := make([]string, len(p.features))
	for i, f := range p.features {
		names[i] = f.name
	}
	return names
}
