package valueobjects

import "strings"

// ContentFormat represents the format of a node's payload
type ContentFormat string

const (
	FormatNone      ContentFormat = ""
	FormatPlainText ContentFormat = "text"
	FormatURL       ContentFormat = "url"
	FormatHTML      ContentFormat = "html"
)

// Payload field names shared with the field schema.
const (
	FieldText    = "text"
	FieldURL     = "url"
	FieldContent = "content"
)

// NodeContent is the kind-specific payload of a node: the body text of a Text
// node, the source URL of Video/Image/Website nodes or the HTML of a RichText
// node. Container kinds carry no content.
type NodeContent struct {
	format ContentFormat
	value  string
}

// ContentFormatFor returns the payload format of a kind
func ContentFormatFor(kind NodeKind) ContentFormat {
	switch kind {
	case KindText:
		return FormatPlainText
	case KindVideo, KindImage, KindWebsite:
		return FormatURL
	case KindRichText:
		return FormatHTML
	default:
		return FormatNone
	}
}

// ContentFieldFor returns the schema field that stores the payload of a kind.
func ContentFieldFor(kind NodeKind) string {
	switch ContentFormatFor(kind) {
	case FormatPlainText:
		return FieldText
	case FormatURL:
		return FieldURL
	case FormatHTML:
		return FieldContent
	default:
		return ""
	}
}

// NewNodeContent creates content of the given format. URLs are trimmed.
func NewNodeContent(format ContentFormat, value string) NodeContent {
	if format == FormatURL {
		value = strings.TrimSpace(value)
	}
	if format == FormatNone {
		value = ""
	}
	return NodeContent{format: format, value: value}
}

// Format returns the payload format
func (c NodeContent) Format() ContentFormat {
	return c.format
}

// Value returns the raw payload
func (c NodeContent) Value() string {
	return c.value
}

// IsEmpty checks if there is no payload
func (c NodeContent) IsEmpty() bool {
	return c.value == ""
}

// Equals checks if two contents are equal
func (c NodeContent) Equals(other NodeContent) bool {
	return c.format == other.format && c.value == other.value
}
