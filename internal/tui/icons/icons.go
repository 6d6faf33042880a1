// ABOUTME: Icon system with Nerd Font detection and Unicode fallback
// ABOUTME: Provides consistent iconography across different terminal capabilities

package icons

import (
	"os"
	"strings"
	"sync"
)

var (
	useNerdFonts     bool
	nerdFontDetected sync.Once
)

// detectNerdFonts checks if Nerd Fonts should be used
func detectNerdFonts() bool {
	// Explicit override via environment variable
	if env := os.Getenv("RESUME_NERD_FONTS"); env != "" {
		return env == "1" || strings.ToLower(env) == "true"
	}

	term := os.Getenv("TERM")
	termProgram := os.Getenv("TERM_PROGRAM")

	nerdFontTerminals := []string{
		"iTerm.app",
		"alacritty",
		"WezTerm",
		"kitty",
		"ghostty",
	}

	for _, t := range nerdFontTerminals {
		if strings.Contains(termProgram, t) || strings.Contains(term, strings.ToLower(t)) {
			return true
		}
	}

	if os.Getenv("NERD_FONTS") == "1" {
		return true
	}

	return false
}

// HasNerdFonts returns true if Nerd Fonts are available
func HasNerdFonts() bool {
	nerdFontDetected.Do(func() {
		useNerdFonts = detectNerdFonts()
	})
	return useNerdFonts
}

// Icon represents an icon with Nerd Font and Unicode fallback variants
type Icon struct {
	NerdFont string
	Fallback string
}

// String returns the appropriate icon based on font availability
func (i Icon) String() string {
	if HasNerdFonts() {
		return i.NerdFont
	}
	return i.Fallback
}

// Icon definitions - Nerd Font codepoints with Unicode fallbacks
var (
	// Content
	Document = Icon{"󰈙", "▤"} // nf-md-file_document
	Repo     = Icon{"", "▣"} // nf-oct-repo
	Star     = Icon{"", "★"} // nf-oct-star
	Code     = Icon{"", "‹›"} // nf-oct-code
	Tag      = Icon{"", "#"} // nf-oct-tag

	// Status indicators
	CheckOK  = Icon{"", "✓"} // nf-oct-check_circle
	Warning  = Icon{"", "⚠"} // nf-oct-alert
	Critical = Icon{"", "✗"} // nf-oct-x_circle
	Info     = Icon{"", "ℹ"} // nf-oct-info

	// Actions
	Refresh  = Icon{"󰑓", "↻"} // nf-md-refresh
	Generate = Icon{"󰂓", "★"} // nf-md-auto_fix
	Export   = Icon{"󰈝", "⇩"} // nf-md-file_export
	Print    = Icon{"󰐪", "⎙"} // nf-md-printer
	Delete   = Icon{"󰆴", "✗"} // nf-md-delete
	Back     = Icon{"󰁍", "←"} // nf-md-arrow_left
	Login    = Icon{"󰍂", "→"} // nf-md-login
	Logout   = Icon{"󰍃", "⇥"} // nf-md-logout
	Quit     = Icon{"󰗼", "×"} // nf-md-exit_to_app

	// Application
	App = Icon{"󰈙", "◈"} // nf-md-file_document
)
