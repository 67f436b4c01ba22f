package model

import (
	"bytes"
	"encoding/json"
	"strings"
)

// TechStack is a project's technology list. At rest it is comma-separated text; editors may
// hold it as tokens until it is serialized.
type TechStack struct {
	text   string
	tokens []string
	list   bool
}

// TechText builds a TechStack from comma-separated text.
func TechText(text string) TechStack {
	return TechStack{text: text}
}

// TechList builds a TechStack from tokens.
func TechList(tokens ...string) TechStack {
	return TechStack{tokens: append([]string(nil), tokens...), list: true}
}

// IsList reports whether the value is held as tokens.
func (t TechStack) IsList() bool { return t.list }

// String collapses the value to its persisted text form.
func (t TechStack) String() string {
	if t.list {
		return strings.Join(t.tokens, ", ")
	}
	return t.text
}

// Technologies splits the value into trimmed, non-empty tokens. Text and list sources yield the
// same result for the same technologies.
func (t TechStack) Technologies() []string {
	out := []string{}
	for _, part := range strings.Split(t.String(), ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func (t TechStack) IsEmpty() bool {
	return strings.TrimSpace(t.String()) == ""
}

func (t TechStack) clone() TechStack {
	if t.tokens != nil {
		t.tokens = append([]string(nil), t.tokens...)
	}
	return t
}

func (t TechStack) MarshalJSON() ([]byte, error) {
	if t.list {
		tokens := t.tokens
		if tokens == nil {
			tokens = []string{}
		}
		return json.Marshal(tokens)
	}
	return json.Marshal(t.text)
}

// UnmarshalJSON accepts a string, an array of strings or null. Non-string array items are dropped.
func (t *TechStack) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = TechStack{}
		return nil
	}
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*t = techStackFrom(raw)
	return nil
}

func techStackFrom(raw any) TechStack {
	switch v := raw.(type) {
	case string:
		return TechText(v)
	case []string:
		return TechList(v...)
	case []any:
		tokens := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				tokens = append(tokens, s)
			}
		}
		return TechList(tokens...)
	default:
		return TechStack{}
	}
}
