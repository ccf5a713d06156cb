package config

// Settings holds player preferences read by the game and the terminal front end.
type Settings struct {
	ScreenShake bool    `yaml:"screen_shake"`
	MouseOnly   bool    `yaml:"mouse_only"`
	LetterOrder bool    `yaml:"show_letter_order"`
	Muted       bool    `yaml:"muted"`
	Volume      float64 `yaml:"volume"` // 0.0 to 1.0
}

// ScreenShakeEnabled reports whether mistakes should shake the screen.
func (s Settings) ScreenShakeEnabled() bool { return s.ScreenShake }

// MouseOnlyMode reports whether letters are selected by clicking instead of typing.
func (s Settings) MouseOnlyMode() bool { return s.MouseOnly }

// ShowLetterOrder reports whether letters display their phrase index.
func (s Settings) ShowLetterOrder() bool { return s.LetterOrder }

// IsMuted reports whether sound is disabled.
func (s Settings) IsMuted() bool { return s.Muted || s.Volume <= 0 }

// Level returns the volume clamped to [0, 1].
func (s Settings) Level() float64 { return clampF(s.Volume, 0, 1) }
