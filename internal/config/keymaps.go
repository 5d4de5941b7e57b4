package config

// KeyMappings defines all configurable key bindings
type KeyMappings struct {
	// Records
	Add       string `yaml:"add"`
	Edit      string `yaml:"edit"`
	Delete    string `yaml:"delete"`
	View      string `yaml:"view"`
	SetStatus string `yaml:"set_status"`

	// Time tracking
	StartTimer string `yaml:"start_timer"`
	StopTimer  string `yaml:"stop_timer"`
	LogTime    string `yaml:"log_time"`

	// Tags
	AddTag    string `yaml:"add_tag"`
	RemoveTag string `yaml:"remove_tag"`

	// Forms
	SaveForm string `yaml:"save_form"`

	// Navigation
	PrevTab     string `yaml:"prev_tab"`
	NextTab     string `yaml:"next_tab"`
	PrevItem    string `yaml:"prev_item"`
	NextItem    string `yaml:"next_item"`
	NextProject string `yaml:"next_project"`
	PrevProject string `yaml:"prev_project"`

	// Other
	ToggleTimeFormat string `yaml:"toggle_time_format"`
	ShowHelp         string `yaml:"show_help"`
	Quit             string `yaml:"quit"`
}

// DefaultKeyMappings returns the default key mappings
func DefaultKeyMappings() KeyMappings {
	return KeyMappings{
		Add:       "a",
		Edit:      "e",
		Delete:    "d",
		View:      " ",
		SetStatus: "s",

		StartTimer: "t",
		StopTimer:  "T",
		LogTime:    "m",

		AddTag:    "g",
		RemoveTag: "G",

		SaveForm: "ctrl+s",

		PrevTab:     "h",
		NextTab:     "l",
		PrevItem:    "k",
		NextItem:    "j",
		NextProject: "}",
		PrevProject: "{",

		ToggleTimeFormat: "f",
		ShowHelp:         "?",
		Quit:             "q",
	}
}

// applyDefaults fills in missing key mappings with defaults
func (k *KeyMappings) applyDefaults() {
	defaults := DefaultKeyMappings()

	if k.Add == "" {
		k.Add = defaults.Add
	}
	if k.Edit == "" {
		k.Edit = defaults.Edit
	}
	if k.Delete == "" {
		k.Delete = defaults.Delete
	}
	if k.View == "" {
		k.View = defaults.View
	}
	if k.SetStatus == "" {
		k.SetStatus = defaults.SetStatus
	}
	if k.StartTimer == "" {
		k.StartTimer = defaults.StartTimer
	}
	if k.StopTimer == "" {
		k.StopTimer = defaults.StopTimer
	}
	if k.LogTime == "" {
		k.LogTime = defaults.LogTime
	}
	if k.AddTag == "" {
		k.AddTag = defaults.AddTag
	}
	if k.RemoveTag == "" {
		k.RemoveTag = defaults.RemoveTag
	}
	if k.SaveForm == "" {
		k.SaveForm = defaults.SaveForm
	}
	if k.PrevTab == "" {
		k.PrevTab = defaults.PrevTab
	}
	if k.NextTab == "" {
		k.NextTab = defaults.NextTab
	}
	if k.PrevItem == "" {
		k.PrevItem = defaults.PrevItem
	}
	if k.NextItem == "" {
		k.NextItem = defaults.NextItem
	}
	if k.NextProject == "" {
		k.NextProject = defaults.NextProject
	}
	if k.PrevProject == "" {
		k.PrevProject = defaults.PrevProject
	}
	if k.ToggleTimeFormat == "" {
		k.ToggleTimeFormat = defaults.ToggleTimeFormat
	}
	if k.ShowHelp == "" {
		k.ShowHelp = defaults.ShowHelp
	}
	if k.Quit == "" {
		k.Quit = defaults.Quit
	}
}
