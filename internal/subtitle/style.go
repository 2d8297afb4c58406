package subtitle

// StyleSpec describes how one niche's captions look and how fast its
// narration is assumed to be spoken. Colours are ASS &HAABBGGRR values.
type StyleSpec struct {
	Name          string
	FontName      string
	FontSize      int
	PrimaryColour string
	OutlineColour string
	Outline       int // Outline width in pixels.
	Bold          int // 1 for bold, 0 otherwise.
	// WordsPerSecond is the speaking-rate estimate used for chunk timing:
	// slower for reflective content, faster for information-dense content.
	WordsPerSecond float64
}

// styles is the closed set of niche styles. Unknown tags fall back to
// "default" rather than erroring.
var styles = map[string]StyleSpec{
	"default": {
		Name:           "default",
		FontName:       "Arial Bold",
		FontSize:       18,
		PrimaryColour:  "&H00FFFFFF", // White.
		OutlineColour:  "&H00000000", // Black.
		Outline:        1,
		Bold:           1,
		WordsPerSecond: 2.5,
	},
	"motivation": {
		Name:           "motivation",
		FontName:       "Arial Bold",
		FontSize:       18,
		PrimaryColour:  "&H00FFFFFF",
		OutlineColour:  "&H00000000",
		Outline:        1,
		Bold:           1,
		WordsPerSecond: 2.2, // Slower for emphasis.
	},
	"finance": {
		Name:           "finance",
		FontName:       "Arial Bold",
		FontSize:       18,
		PrimaryColour:  "&H0000FFFF", // Yellow.
		OutlineColour:  "&H00000000",
		Outline:        1,
		Bold:           1,
		WordsPerSecond: 2.5,
	},
	"facts": {
		Name:           "facts",
		FontName:       "Arial",
		FontSize:       18,
		PrimaryColour:  "&H00FFFFFF",
		OutlineColour:  "&H00FF0000", // Blue.
		Outline:        2,
		Bold:           0,
		WordsPerSecond: 2.8, // Faster for information.
	},
}

// StyleFor resolves a style tag, falling back to the default style for
// unrecognized tags.
func StyleFor(tag string) StyleSpec {
	if s, ok := styles[tag]; ok {
		return s
	}
	return styles["default"]
}
