package config

const CurrentVersion = 1

// Config holds persisted viewer preferences. Zero values and nil pointers
// mean "use the built-in default"; the limits are pointers because 0 is a
// meaningful value for them (no limit). Command-line flags override
// whatever is set here.
type Config struct {
	Version     int    `json:"version"`
	Numbering   *bool  `json:"numbering,omitempty"`
	NumberWidth int    `json:"numberWidth,omitempty"`
	MaxLines    *int   `json:"maxLines,omitempty"`
	MaxBytes    *int64 `json:"maxBytes,omitempty"`
	TabWidth    int    `json:"tabWidth,omitempty"`
	Color       *bool  `json:"color,omitempty"`
	EastAsian   *bool  `json:"eastAsian,omitempty"`
	Mode        string `json:"mode,omitempty"`
	Encoding    string `json:"encoding,omitempty"`
	Poll        string `json:"poll,omitempty"`
}

const (
	ModeAuto = "auto"
	ModeWide = "wide"
	ModeByte = "byte"
)
