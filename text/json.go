// Copyright (c) 2026 Kyradjis
// released under the MIT license

package text

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// jsonComponent is the wire shape of a StyledText node: the text-component
// JSON object that game clients and the websocket host exchange.
type jsonComponent struct {
	Text          string           `json:"text"`
	Bold          *bool            `json:"bold,omitempty"`
	Italic        *bool            `json:"italic,omitempty"`
	Underlined    *bool            `json:"underlined,omitempty"`
	Strikethrough *bool            `json:"strikethrough,omitempty"`
	Obfuscated    *bool            `json:"obfuscated,omitempty"`
	Color         string           `json:"color,omitempty"`
	ClickEvent    *jsonClickEvent  `json:"clickEvent,omitempty"`
	Extra         []*jsonComponent `json:"extra,omitempty"`
}

type jsonClickEvent struct {
	Action string `json:"action"`
	Value  string `json:"value"`
}

func optionalFlag(b bool) *bool {
	if !b {
		return nil
	}
	return &b
}

func toJSONComponent(t *StyledText) *jsonComponent {
	component := &jsonComponent{
		Text:          t.Text,
		Bold:          optionalFlag(t.Style.Bold),
		Italic:        optionalFlag(t.Style.Italic),
		Underlined:    optionalFlag(t.Style.Underline),
		Strikethrough: optionalFlag(t.Style.Strikethrough),
		Obfuscated:    optionalFlag(t.Style.Obfuscated),
	}
	if t.Style.HasColor() {
		component.Color = fmt.Sprintf("#%06X", t.Style.Color)
	}
	if t.Style.Click != nil {
		component.ClickEvent = &jsonClickEvent{
			Action: string(t.Style.Click.Action),
			Value:  t.Style.Click.Value,
		}
	}
	for _, child := range t.Children {
		component.Extra = append(component.Extra, toJSONComponent(child))
	}
	return component
}

func fromJSONComponent(component *jsonComponent) (*StyledText, error) {
	style := DefaultStyle()
	if component.Bold != nil {
		style.Bold = *component.Bold
	}
	if component.Italic != nil {
		style.Italic = *component.Italic
	}
	if component.Underlined != nil {
		style.Underline = *component.Underlined
	}
	if component.Strikethrough != nil {
		style.Strikethrough = *component.Strikethrough
	}
	if component.Obfuscated != nil {
		style.Obfuscated = *component.Obfuscated
	}
	if component.Color != "" {
		hex := strings.TrimPrefix(component.Color, "#")
		value, err := strconv.ParseUint(hex, 16, 32)
		if err != nil || len(hex) != 6 {
			return nil, fmt.Errorf("invalid color %q in text component", component.Color)
		}
		style.Color = int(value)
	}
	if component.ClickEvent != nil {
		switch action := ClickAction(component.ClickEvent.Action); action {
		case ClickOpenURL, ClickCopyToClipboard:
			style.Click = &ClickEvent{Action: action, Value: component.ClickEvent.Value}
		default:
			return nil, fmt.Errorf("unknown click action %q in text component", component.ClickEvent.Action)
		}
	}
	result := Styled(component.Text, style)
	for _, childComponent := range component.Extra {
		child, err := fromJSONComponent(childComponent)
		if err != nil {
			return nil, err
		}
		result.Append(child)
	}
	return result, nil
}

// MarshalJSON renders the node as a text-component JSON object.
func (t *StyledText) MarshalJSON() ([]byte, error) {
	return json.Marshal(toJSONComponent(t))
}

// UnmarshalJSON parses a text-component JSON object into the node.
func (t *StyledText) UnmarshalJSON(data []byte) error {
	var component jsonComponent
	if err := json.Unmarshal(data, &component); err != nil {
		return err
	}
	parsed, err := fromJSONComponent(&component)
	if err != nil {
		return err
	}
	*t = *parsed
	return nil
}
