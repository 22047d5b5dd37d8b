package ragview

// Theme defines semantic color mappings using ANSI color indices (0-15).
// The user's terminal theme determines the actual RGB values, so the app
// automatically matches any color scheme.
type Theme struct {
	Error   int // Error status and messages
	Success int // Success status
	Muted   int // Meta line, spinner, rules
	Accent  int // Headings
	Link    int // Source titles and URLs
}

// DefaultTheme returns the default ANSI color mapping.
func DefaultTheme() Theme {
	return Theme{
		Error:   1,
		Success: 2,
		Muted:   8,
		Accent:  5,
		Link:    4,
	}
}
