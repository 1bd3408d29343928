// Package schema is the static registry of editable attributes per node kind.
// External form builders read it; the entity factory uses its defaults.
package schema

import (
	vo "whiteboard/domain/core/valueobjects"
)

// InputType tells a form builder which control to render for a field.
type InputType string

const (
	InputString   InputType = "string"
	InputTextArea InputType = "textArea"
	InputRichText InputType = "richText"
	InputSelect   InputType = "select"
)

// Field names
const (
	FieldTitle      = "title"
	FieldText       = vo.FieldText
	FieldURL        = vo.FieldURL
	FieldContent    = vo.FieldContent
	FieldLayoutMode = "layoutMode"
)

// FieldDefinition describes one editable attribute.
type FieldDefinition struct {
	Name         string    `json:"name"`
	Label        string    `json:"label"`
	InputType    InputType `json:"input_type"`
	DefaultValue string    `json:"default_value"`
	Options      []string  `json:"options,omitempty"`
}

const (
	loremIpsum = "Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do eiusmod tempor " +
		"incididunt ut labore et dolore magna aliqua. Ut enim ad minim veniam, quis nostrud " +
		"exercitation ullamco laboris nisi ut aliquip ex ea commodo consequat. Duis aute irure " +
		"dolor in reprehenderit in voluptate velit esse cillum dolore eu fugiat nulla pariatur. " +
		"Excepteur sint occaecat cupidatat non proident, sunt in culpa qui officia deserunt " +
		"mollit anim id est laborum."
	sampleVideoURL = "http://cs.brown.edu/people/peichman/downloads/cted.mp4"
)

// defaultTitles seeds the inherited title field of every kind.
var defaultTitles = map[vo.NodeKind]string{
	vo.KindText:       "New Text Node",
	vo.KindVideo:      "New Video Node",
	vo.KindImage:      "New Image Node",
	vo.KindWebsite:    "New Website Node",
	vo.KindRichText:   "Text Node Editor",
	vo.KindCollection: "New Collection Node",
	vo.KindScrapbook:  "My Scrapbook",
}

// kindFields holds the fields each kind declares on top of the base entries.
var kindFields = map[vo.NodeKind][]FieldDefinition{
	vo.KindText: {
		{Name: FieldText, Label: "Text Content", InputType: InputTextArea, DefaultValue: loremIpsum},
	},
	vo.KindVideo: {
		{Name: FieldURL, Label: "Video URL", InputType: InputString, DefaultValue: sampleVideoURL},
	},
	vo.KindImage: {
		{Name: FieldURL, Label: "Image URL", InputType: InputString},
	},
	vo.KindWebsite: {
		{Name: FieldURL, Label: "Website URL", InputType: InputString},
	},
	vo.KindRichText: {
		{Name: FieldContent, Label: "Content", InputType: InputRichText},
	},
	vo.KindCollection: {
		{
			Name:         FieldLayoutMode,
			Label:        "Layout",
			InputType:    InputSelect,
			DefaultValue: string(vo.LayoutFreeform),
			Options:      []string{string(vo.LayoutFreeform), string(vo.LayoutGrid), string(vo.LayoutTree)},
		},
	},
}

// FieldDefinitions returns the ordered field list for kind: the inherited
// title entry followed by the kind's own entries. Composite nodes are built
// only by merging and have no form, so the list is empty for them.
func FieldDefinitions(kind vo.NodeKind) []FieldDefinition {
	title, ok := defaultTitles[kind]
	if !ok {
		return []FieldDefinition{}
	}

	defs := []FieldDefinition{
		{Name: FieldTitle, Label: "Title", InputType: InputString, DefaultValue: title},
	}
	for _, f := range kindFields[kind] {
		f.Options = append([]string(nil), f.Options...)
		defs = append(defs, f)
	}
	return defs
}

// Defaults returns field name -> default value for kind.
func Defaults(kind vo.NodeKind) map[string]string {
	defs := FieldDefinitions(kind)
	out := make(map[string]string, len(defs))
	for _, d := range defs {
		out[d.Name] = d.DefaultValue
	}
	return out
}

// DefaultTitle returns the title a new node of kind receives.
func DefaultTitle(kind vo.NodeKind) string {
	return defaultTitles[kind]
}

// IsCreatable reports whether kind can be built through the form path.
func IsCreatable(kind vo.NodeKind) bool {
	_, ok := defaultTitles[kind]
	return ok
}
