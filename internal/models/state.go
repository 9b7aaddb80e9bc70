package models

// Activity types offered when a session is saved. Stored entries may carry
// any other type string.
const (
	TypeKicks    = "Kicks"
	TypeRoll     = "Roll"
	TypeMovement = "Movement"
)

var ActivityTypes = []string{TypeKicks, TypeRoll, TypeMovement}

// Moods is the fixed palette, worst to best.
var Moods = []string{"😫", "😕", "😐", "🙂", "😄"}

// BuiltinContexts are always offered before the user's custom ones.
var BuiltinContexts = []string{"Walking", "Resting", "After Food", "Listening to Music"}

// Theme is the persisted colour scheme.
type Theme string

const (
	ThemeBlue  Theme = "blue"
	ThemePink  Theme = "pink"
	ThemeGreen Theme = "green"
)

var Themes = []Theme{ThemeBlue, ThemePink, ThemeGreen}

func (t Theme) Valid() bool {
	switch t {
	case ThemeBlue, ThemePink, ThemeGreen:
		return true
	}
	return false
}

// Color is the accent colour of the theme.
func (t Theme) Color() string {
	switch t {
	case ThemePink:
		return "#ec4899"
	case ThemeGreen:
		return "#10b981"
	default:
		return "#6366f1"
	}
}

// Emoji is the accent marker used in chat output.
func (t Theme) Emoji() string {
	switch t {
	case ThemePink:
		return "🩷"
	case ThemeGreen:
		return "🟢"
	default:
		return "🔵"
	}
}
