package model

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownIcon = errors.New("model: unknown icon")

type Category struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("model: category name is required")
	}
	if c.Name != NormalizeCategoryName(c.Name) {
		return fmt.Errorf("model: category name %q must be lowercase and trimmed", c.Name)
	}
	if c.Name == AllCategories {
		return fmt.Errorf("model: category name %q is reserved", c.Name)
	}
	if !IsKnownIcon(c.Icon) {
		return fmt.Errorf("%w: %q", ErrUnknownIcon, c.Icon)
	}
	return nil
}

// Title is the display form of the name.
func (c Category) Title() string { return TitleCase(c.Name) }

func (c Category) Glyph() string { return Glyph(c.Icon) }

func NormalizeCategoryName(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

func DefaultCategories() []Category {
	return []Category{
		{Name: "work", Icon: "briefcase"},
		{Name: "personal", Icon: "home"},
		{Name: "health", Icon: "heartbeat"},
	}
}

type Icon struct {
	Name  string
	Glyph string
}

const (
	DefaultIcon   = "briefcase"
	fallbackGlyph = "•"
)

var icons = []Icon{
	{Name: "briefcase", Glyph: "💼"},
	{Name: "home", Glyph: "🏠"},
	{Name: "heartbeat", Glyph: "💓"},
	{Name: "shopping-cart", Glyph: "🛒"},
	{Name: "book", Glyph: "📚"},
	{Name: "graduation-cap", Glyph: "🎓"},
	{Name: "plane", Glyph: "✈"},
	{Name: "dumbbell", Glyph: "🏋"},
	{Name: "utensils", Glyph: "🍴"},
	{Name: "music", Glyph: "🎵"},
	{Name: "code", Glyph: "⌨"},
	{Name: "star", Glyph: "★"},
}

// Icons returns the icon catalogue in picker order.
func Icons() []Icon {
	out := make([]Icon, len(icons))
	copy(out, icons)
	return out
}

func IconIndex(name string) int {
	for i, ic := range icons {
		if ic.Name == name {
			return i
		}
	}
	return -1
}

func IsKnownIcon(name string) bool {
	return IconIndex(name) >= 0
}

func Glyph(name string) string {
	if i := IconIndex(name); i >= 0 {
		return icons[i].Glyph
	}
	return fallbackGlyph
}
