// Copyright (c) 2026 Kyradjis
// released under the MIT license

// Package text implements the styled rich-text tree that chat messages are
// formatted into, along with renderers for several display surfaces.
package text

import "strings"

// ColorUnset marks a node as carrying no color of its own.
const ColorUnset = -1

// ClickAction is the kind of click behavior attached to a span.
type ClickAction string

const (
	// ClickOpenURL opens the click value as a URL.
	ClickOpenURL ClickAction = "open_url"
	// ClickCopyToClipboard copies the click value to the clipboard.
	ClickCopyToClipboard ClickAction = "copy_to_clipboard"
)

// ClickEvent is a click behavior plus its payload.
type ClickEvent struct {
	Action ClickAction
	Value  string
}

// Style is the resolved visual style of a single node. Children do not
// inherit their parent's style; every node carries its final style already.
type Style struct {
	Bold          bool
	Italic        bool
	Underline     bool
	Strikethrough bool
	Obfuscated    bool
	Color         int // 24-bit RGB, or ColorUnset
	Click         *ClickEvent
}

// DefaultStyle returns the style of unformatted text.
func DefaultStyle() Style {
	return Style{Color: ColorUnset}
}

// HasColor reports whether the style carries an explicit color.
func (s Style) HasColor() bool {
	return s.Color != ColorUnset
}

// WithBold returns a copy of the style with the bold bit set.
func (s Style) WithBold() Style {
	s.Bold = true
	return s
}

// WithItalic returns a copy of the style with the italic bit set.
func (s Style) WithItalic() Style {
	s.Italic = true
	return s
}

// WithUnderline returns a copy of the style with the underline bit set.
func (s Style) WithUnderline() Style {
	s.Underline = true
	return s
}

// WithStrikethrough returns a copy of the style with the strikethrough bit set.
func (s Style) WithStrikethrough() Style {
	s.Strikethrough = true
	return s
}

// WithObfuscated returns a copy of the style with the obfuscated bit set.
func (s Style) WithObfuscated() Style {
	s.Obfuscated = true
	return s
}

// WithColor returns a copy of the style with the given 24-bit RGB color.
func (s Style) WithColor(color int) Style {
	s.Color = color
	return s
}

// WithClick returns a copy of the style with the given click event attached.
func (s Style) WithClick(action ClickAction, value string) Style {
	s.Click = &ClickEvent{Action: action, Value: value}
	return s
}

// Equal compares two styles, including the pointed-to click event.
func (s Style) Equal(other Style) bool {
	if s.Bold != other.Bold || s.Italic != other.Italic ||
		s.Underline != other.Underline || s.Strikethrough != other.Strikethrough ||
		s.Obfuscated != other.Obfuscated || s.Color != other.Color {
		return false
	}
	if (s.Click == nil) != (other.Click == nil) {
		return false
	}
	return s.Click == nil || *s.Click == *other.Click
}

// StyledText is one node of a rich-text tree: its own literal text under its
// own style, followed by an ordered list of children, each rendered under
// that child's own style. A node is a leaf (no children) or a composite
// (children present, own text conventionally empty).
type StyledText struct {
	Text     string
	Style    Style
	Children []*StyledText
}

// Leaf returns an unstyled leaf node.
func Leaf(content string) *StyledText {
	return &StyledText{Text: content, Style: DefaultStyle()}
}

// Styled returns a leaf node with the given style.
func Styled(content string, style Style) *StyledText {
	return &StyledText{Text: content, Style: style}
}

// Composite returns a node with empty own text and the given children.
func Composite(children ...*StyledText) *StyledText {
	return &StyledText{Style: DefaultStyle(), Children: children}
}

// Append adds children to the node and returns it for chaining.
func (t *StyledText) Append(children ...*StyledText) *StyledText {
	t.Children = append(t.Children, children...)
	return t
}

// IsLeaf reports whether the node has no children.
func (t *StyledText) IsLeaf() bool {
	return len(t.Children) == 0
}

// Flatten returns the visible text of the node and all its children, in
// rendering order, with all styling discarded.
func (t *StyledText) Flatten() string {
	var out strings.Builder
	t.flattenInto(&out)
	return out.String()
}

func (t *StyledText) flattenInto(out *strings.Builder) {
	out.WriteString(t.Text)
	for _, child := range t.Children {
		child.flattenInto(out)
	}
}

// Clone returns a deep copy of the node; styles are copied by value,
// including any click event.
func (t *StyledText) Clone() *StyledText {
	result := &StyledText{Text: t.Text, Style: t.Style}
	if t.Style.Click != nil {
		click := *t.Style.Click
		result.Style.Click = &click
	}
	if len(t.Children) != 0 {
		result.Children = make([]*StyledText, len(t.Children))
		for i, child := range t.Children {
			result.Children[i] = child.Clone()
		}
	}
	return result
}

// Equal compares two trees structurally.
func (t *StyledText) Equal(other *StyledText) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.Text != other.Text || !t.Style.Equal(other.Style) || len(t.Children) != len(other.Children) {
		return false
	}
	for i, child := range t.Children {
		if !child.Equal(other.Children[i]) {
			return false
		}
	}
	return true
}
