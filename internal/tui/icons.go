package tui

// IconResolver maps an icon identifier to a printable glyph. The engine
// only ever stores the identifier string; resolution is a presentation
// concern with a guaranteed fallback.
type IconResolver interface {
	Resolve(name string) string
}

// glyphResolver resolves from a fixed table with a default fallback.
type glyphResolver struct {
	glyphs   map[string]string
	fallback string
}

// DefaultIconResolver returns the built-in glyph table.
func DefaultIconResolver() IconResolver {
	return glyphResolver{
		glyphs: map[string]string{
			"folder":    "🗀",
			"briefcase": "💼",
			"star":      "★",
			"book":      "📖",
			"heart":     "♥",
			"home":      "⌂",
			"code":      "⌨",
			"music":     "♪",
		},
		fallback: "🗀",
	}
}

func (r glyphResolver) Resolve(name string) string {
	if glyph, ok := r.glyphs[name]; ok {
		return glyph
	}
	return r.fallback
}
