package valueobjects

import (
	"fmt"
	"strings"

	pkgerrors "whiteboard/pkg/errors"
)

// NodeKind is the closed set of widget kinds a node can take.
type NodeKind string

const (
	KindText       NodeKind = "text"
	KindVideo      NodeKind = "video"
	KindImage      NodeKind = "image"
	KindWebsite    NodeKind = "website"
	KindRichText   NodeKind = "richtext"
	KindCollection NodeKind = "collection"
	KindComposite  NodeKind = "composite"
	KindScrapbook  NodeKind = "scrapbook"
)

// AllKinds lists every kind in display order.
func AllKinds() []NodeKind {
	return []NodeKind{
		KindText, KindVideo, KindImage, KindWebsite,
		KindRichText, KindCollection, KindComposite, KindScrapbook,
	}
}

// ParseNodeKind accepts the canonical lower-case name, case-insensitively.
func ParseNodeKind(s string) (NodeKind, error) {
	k := NodeKind(strings.ToLower(strings.TrimSpace(s)))
	if !k.IsValid() {
		return "", fmt.Errorf("%q: %w", s, pkgerrors.ErrUnknownKind)
	}
	return k, nil
}

// IsValid reports whether k is one of the declared kinds
func (k NodeKind) IsValid() bool {
	switch k {
	case KindText, KindVideo, KindImage, KindWebsite,
		KindRichText, KindCollection, KindComposite, KindScrapbook:
		return true
	}
	return false
}

// IsComposite reports whether nodes of this kind hold stacked children.
func (k NodeKind) IsComposite() bool {
	return k == KindComposite || k == KindScrapbook
}

func (k NodeKind) String() string {
	return string(k)
}

// LayoutMode selects how a collection arranges its children.
type LayoutMode string

const (
	LayoutFreeform LayoutMode = "freeform"
	LayoutGrid     LayoutMode = "grid"
	LayoutTree     LayoutMode = "tree"
)

// ParseLayoutMode parses a layout mode name.
func ParseLayoutMode(s string) (LayoutMode, error) {
	m := LayoutMode(strings.ToLower(strings.TrimSpace(s)))
	switch m {
	case LayoutFreeform, LayoutGrid, LayoutTree:
		return m, nil
	}
	return "", fmt.Errorf("%q: %w", s, pkgerrors.ErrUnknownLayoutMode)
}

func (m LayoutMode) String() string {
	return string(m)
}
