package entities

// ThemeMode selects one of the two palettes. There is no third mode.
type ThemeMode string

const (
	ThemeModeLight ThemeMode = "light"
	ThemeModeDark  ThemeMode = "dark"
)

func (m ThemeMode) IsValid() bool {
	return m == ThemeModeLight || m == ThemeModeDark
}

// ParseThemeMode validates a client-supplied mode string.
func ParseThemeMode(s string) (ThemeMode, error) {
	mode := ThemeMode(s)
	if !mode.IsValid() {
		return "", ErrInvalidThemeMode
	}
	return mode, nil
}

// ThemePalette is the fixed-shape color record the client renders with.
// Immutable once selected for a render pass.
type ThemePalette struct {
	Primary        string `json:"primary"`
	Secondary      string `json:"secondary"`
	Calm           string `json:"calm"`
	Success        string `json:"success"`
	Warning        string `json:"warning"`
	Background     string `json:"background"`
	Surface        string `json:"surface"`
	SurfaceHover   string `json:"surface_hover"`
	Text           string `json:"text"`
	TextLight      string `json:"text_light"`
	TextMuted      string `json:"text_muted"`
	Border         string `json:"border"`
	CardShadow     string `json:"card_shadow"`
	Accent1        string `json:"accent1"`
	Accent2        string `json:"accent2"`
	Accent3        string `json:"accent3"`
	ModalOverlay   string `json:"modal_overlay"`
	IconBackground string `json:"icon_background"`
	GradientStart  string `json:"gradient_start"`
	GradientEnd    string `json:"gradient_end"`
}

var lightPalette = ThemePalette{
	Primary:        "#7C3AED",
	Secondary:      "#9333EA",
	Calm:           "#4F46E5",
	Success:        "#059669",
	Warning:        "#D97706",
	Background:     "#FAFAFA",
	Surface:        "#FFFFFF",
	SurfaceHover:   "#F9FAFB",
	Text:           "#1F2937",
	TextLight:      "#6B7280",
	TextMuted:      "#9CA3AF",
	Border:         "#E5E7EB",
	CardShadow:     "rgba(0, 0, 0, 0.05)",
	Accent1:        "#F0FDFA",
	Accent2:        "#FDF2F8",
	Accent3:        "#EFF6FF",
	ModalOverlay:   "rgba(0, 0, 0, 0.5)",
	IconBackground: "#F0FDFA",
	GradientStart:  "#7C3AED",
	GradientEnd:    "#9333EA",
}

var darkPalette = ThemePalette{
	Primary:        "#A78BFA",
	Secondary:      "#C084FC",
	Calm:           "#818CF8",
	Success:        "#34D399",
	Warning:        "#FBBF24",
	Background:     "#111827",
	Surface:        "#1F2937",
	SurfaceHover:   "#374151",
	Text:           "#F9FAFB",
	TextLight:      "#E5E7EB",
	TextMuted:      "#9CA3AF",
	Border:         "#374151",
	CardShadow:     "rgba(0, 0, 0, 0.3)",
	Accent1:        "#042F2E",
	Accent2:        "#831843",
	Accent3:        "#172554",
	ModalOverlay:   "rgba(0, 0, 0, 0.7)",
	IconBackground: "#374151",
	GradientStart:  "#7C3AED",
	GradientEnd:    "#C084FC",
}

// Palette returns the complete palette for the mode. Total over both modes;
// anything that is not dark renders light.
func Palette(mode ThemeMode) ThemePalette {
	if mode == ThemeModeDark {
		return darkPalette
	}
	return lightPalette
}

// Icon and color lookup tables. All lookups go through a closed map with a
// defined fallback so an unexpected key can never leak to the client.

const fallbackIcon = "help-outline"

var messageStatusIcons = map[MessageStatus]string{
	MessageStatusSent:      "check",
	MessageStatusDelivered: "done-all",
	MessageStatusRead:      "done-all",
}

// MessageStatusIcon resolves the status tick shown beside a parent message.
func MessageStatusIcon(status MessageStatus) string {
	if icon, ok := messageStatusIcons[status]; ok {
		return icon
	}
	return fallbackIcon
}

var scheduleStatusIcons = map[ScheduleStatus]string{
	ScheduleStatusUpcoming:   "schedule",
	ScheduleStatusInProgress: "pending",
	ScheduleStatusCompleted:  "check-circle",
}

// ScheduleStatusIcon resolves the trailing icon on a routine card.
func ScheduleStatusIcon(status ScheduleStatus) string {
	if icon, ok := scheduleStatusIcons[status]; ok {
		return icon
	}
	return fallbackIcon
}

var moodIcons = map[Mood]string{
	MoodFocused: "psychology",
	MoodCalm:    "spa",
	MoodHappy:   "sentiment-very-satisfied",
}

// MoodIcon resolves the mood tag icon on a progress card. Unknown moods fall
// back to the happy face, matching the client's default branch.
func MoodIcon(mood Mood) string {
	if icon, ok := moodIcons[mood]; ok {
		return icon
	}
	return "sentiment-very-satisfied"
}

var knownCardIcons = map[string]bool{
	"school":           true,
	"people":           true,
	"stars":            true,
	"self-improvement": true,
	"restaurant":       true,
	"edit":             true,
}

// CardIcon validates a stored icon name against the set the client bundles.
func CardIcon(name string) string {
	if knownCardIcons[name] {
		return name
	}
	return fallbackIcon
}

var priorityColors = map[Priority]string{
	PriorityHigh:   "#ff4444",
	PriorityMedium: "#ffaa00",
	PriorityLow:    "#00c851",
}

// PriorityColor resolves the priority indicator strip color. The fallback is
// the palette's text color for the requested mode.
func PriorityColor(priority Priority, mode ThemeMode) string {
	if color, ok := priorityColors[priority]; ok {
		return color
	}
	return Palette(mode).Text
}

// HomeworkStatusColor resolves the completion toggle color.
func HomeworkStatusColor(status HomeworkStatus, mode ThemeMode) string {
	switch status {
	case HomeworkStatusCompleted:
		return "#00c851"
	case HomeworkStatusOverdue:
		return "#ff4444"
	default:
		return Palette(mode).Primary
	}
}
