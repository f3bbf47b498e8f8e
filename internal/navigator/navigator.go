// Package navigator turns inbound callback tokens into rendered views.
package navigator

import (
	"github.com/m3rciful/specialtybot/internal/content"
	"github.com/m3rciful/specialtybot/internal/menu"
	"github.com/m3rciful/specialtybot/internal/view"
)

// Navigator resolves tokens against a fixed content tree. It holds no mutable
// state and is safe for concurrent use.
type Navigator struct {
	content *content.Content
}

// New returns a Navigator serving c.
func New(c *content.Content) *Navigator {
	return &Navigator{content: c}
}

// Content returns the tree the navigator serves.
func (n *Navigator) Content() *content.Content {
	return n.content
}

// Start returns the session-start view.
func (n *Navigator) Start() view.View {
	return view.Welcome()
}

// Handle returns the view for token, falling back to the invalid-option view.
func (n *Navigator) Handle(token string) view.View {
	v, _, _ := n.Resolve(token)
	return v
}

// Resolve is Handle plus the decoded screen and the error, if any, that made
// it fall back. The returned view is always displayable; a non-nil error only
// explains why it is the invalid-option view.
func (n *Navigator) Resolve(token string) (view.View, menu.Screen, error) {
	screen, err := menu.Decode(token)
	if err != nil {
		return view.Invalid(), screen, err
	}
	v, err := view.Render(screen, n.content)
	if err != nil {
		return view.Invalid(), screen, err
	}
	return v, screen, nil
}
