// Package config provides YAML-based tuning for the crusher game and
// difficulty preset management.
package config

// CrusherConfig contains all tuning for the crusher game.
// Every percentage is expressed against the runway (the distance between the
// crusher's start position and the fail line), which keeps values
// independent of terminal size.
type CrusherConfig struct {
	Arena        ArenaConfig                             `yaml:"arena"`
	Physics      PhysicsConfig                           `yaml:"physics"`
	Motion       MotionConfig                            `yaml:"motion"`
	Combo        ComboConfig                             `yaml:"combo"`
	Scoring      ScoringConfig                           `yaml:"scoring"`
	Difficulties map[DifficultyPreset]DifficultyProfile `yaml:"difficulties"`
	Settings     Settings                                `yaml:"settings"`
}

// ArenaConfig defines the play-area layout.
type ArenaConfig struct {
	HUDRows       int     `yaml:"hud_rows"`       // Rows reserved above the arena for the phrase and stats
	StagingRows   int     `yaml:"staging_rows"`   // Rows between the arena top and the plate at round start
	FailLineRatio float64 `yaml:"fail_line_ratio"` // Fail line position as a fraction of arena height
	MaxWidth      int     `yaml:"max_width"`      // Arena width cap in cells
	SpawnAttempts int     `yaml:"spawn_attempts"` // Non-overlapping placement attempts per letter
	PanicPercent  float64 `yaml:"panic_percent"`  // Runway percent at which the crusher is "panicking"
}

// PhysicsConfig defines the letter arena physics.
type PhysicsConfig struct {
	Gravity      float64 `yaml:"gravity"`       // Cells per second squared
	LetterMass   float64 `yaml:"letter_mass"`   // Mass of a phrase letter
	PenaltyMass  float64 `yaml:"penalty_mass"`  // Mass of a penalty letter
	PenaltyForce float64 `yaml:"penalty_force"` // Constant downward force on penalty letters
	Damping      float64 `yaml:"damping"`       // Fraction of velocity lost per second
	MaxSpeed     float64 `yaml:"max_speed"`     // Velocity cap in cells per second
	MaxSpin      float64 `yaml:"max_spin"`      // Angular velocity cap after a collision (rad/s)
	Restitution  float64 `yaml:"restitution"`   // Bounce factor on impact
}

// MotionConfig defines crusher motion outside the difficulty profile.
type MotionConfig struct {
	ShovePercent         float64 `yaml:"shove_percent"`          // Instant drop on every mistake
	SlidePercent         float64 `yaml:"slide_percent"`          // Total slide distance after a shove
	SlideRatePercent     float64 `yaml:"slide_rate_percent"`     // Slide speed per second
	PauseSeconds         float64 `yaml:"pause_seconds"`          // Relief pause after a correct key
	StageSpeedMultiplier float64 `yaml:"stage_speed_multiplier"` // Extra speed per campaign stage
	CompressSeconds      float64 `yaml:"compress_seconds"`       // Terminal compression animation length
}

// ComboConfig defines the streak counter and overdrive.
type ComboConfig struct {
	Cap                   int     `yaml:"cap"`
	BonusPercent          float64 `yaml:"bonus_percent"`           // Extra lift per combo point
	OverdriveThreshold    int     `yaml:"overdrive_threshold"`     // Combo that triggers overdrive
	OverdriveSeconds      float64 `yaml:"overdrive_seconds"`       // Overdrive duration
	OverdrivePulsePercent float64 `yaml:"overdrive_pulse_percent"` // One-off lift when overdrive starts
	OverdriveDirection    float64 `yaml:"overdrive_direction"`     // Descent factor while overdrive is active
}

// ScoringConfig defines the score formula weights.
type ScoringConfig struct {
	TypedWeight     float64 `yaml:"typed_weight"`
	AccuracyWeight  float64 `yaml:"accuracy_weight"`
	ComboWeight     float64 `yaml:"combo_weight"`
	FastBonus       float64 `yaml:"fast_bonus"`
	FastSeconds     float64 `yaml:"fast_seconds"`
	LossTypedWeight float64 `yaml:"loss_typed_weight"`
}

// DifficultyProfile holds the per-difficulty crusher tuning.
type DifficultyProfile struct {
	BaseDescentPercent float64 `yaml:"base_descent_percent"` // Awakened descent per second
	WeightAccelPercent float64 `yaml:"weight_accel_percent"` // Speed-up per penalty letter
	LiftPercent        float64 `yaml:"lift_percent"`         // Lift per correct key
	AwakeningThreshold int     `yaml:"awakening_threshold"`  // Mistakes until the crusher is awake
}
