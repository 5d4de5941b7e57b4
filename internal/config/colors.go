package config

// ColorScheme holds the hex colors used across the dashboard
type ColorScheme struct {
	Primary   string `yaml:"primary"`
	Secondary string `yaml:"secondary"`
	Accent    string `yaml:"accent"`
	Muted     string `yaml:"muted"`
	Success   string `yaml:"success"`
	Warning   string `yaml:"warning"`
	Danger    string `yaml:"danger"`
	Border    string `yaml:"border"`
}

// DefaultColorScheme returns the default color scheme
func DefaultColorScheme() ColorScheme {
	return ColorScheme{
		Primary:   "#7C3AED",
		Secondary: "#2563EB",
		Accent:    "#F59E0B",
		Muted:     "#6B7280",
		Success:   "#22C55E",
		Warning:   "#EAB308",
		Danger:    "#EF4444",
		Border:    "#4B5563",
	}
}

// applyDefaults fills in missing colors with defaults
func (c *ColorScheme) applyDefaults() {
	defaults := DefaultColorScheme()

	if c.Primary == "" {
		c.Primary = defaults.Primary
	}
	if c.Secondary == "" {
		c.Secondary = defaults.Secondary
	}
	if c.Accent == "" {
		c.Accent = defaults.Accent
	}
	if c.Muted == "" {
		c.Muted = defaults.Muted
	}
	if c.Success == "" {
		c.Success = defaults.Success
	}
	if c.Warning == "" {
		c.Warning = defaults.Warning
	}
	if c.Danger == "" {
		c.Danger = defaults.Danger
	}
	if c.Border == "" {
		c.Border = defaults.Border
	}
}
