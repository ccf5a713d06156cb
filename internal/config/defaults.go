package config

import (
	_ "embed"
)

//go:embed defaults/crusher.yaml
var defaultCrusherYAML []byte

// DefaultCrusherConfig returns the default crusher configuration.
func DefaultCrusherConfig() CrusherConfig {
	return CrusherConfig{
		Arena: ArenaConfig{
			HUDRows:       3,
			StagingRows:   3,
			FailLineRatio: 0.55,
			MaxWidth:      72,
			SpawnAttempts: 40,
			PanicPercent:  70,
		},
		Physics: PhysicsConfig{
			Gravity:      30,
			LetterMass:   1,
			PenaltyMass:  3,
			PenaltyForce: 40,
			Damping:      0.8,
			MaxSpeed:     40,
			MaxSpin:      2.5,
			Restitution:  0.2,
		},
		Motion: MotionConfig{
			ShovePercent:         2,
			SlidePercent:         3,
			SlideRatePercent:     6,
			PauseSeconds:         0.4,
			StageSpeedMultiplier: 0.15,
			CompressSeconds:      0.6,
		},
		Combo: ComboConfig{
			Cap:                   999,
			BonusPercent:          0.1,
			OverdriveThreshold:    20,
			OverdriveSeconds:      5,
			OverdrivePulsePercent: 15,
			OverdriveDirection:    -0.3,
		},
		Scoring: ScoringConfig{
			TypedWeight:     10,
			AccuracyWeight:  5,
			ComboWeight:     20,
			FastBonus:       500,
			FastSeconds:     30,
			LossTypedWeight: 25,
		},
		Difficulties: DefaultProfiles(),
		Settings: Settings{
			ScreenShake: true,
			Volume:      0.6,
		},
	}
}

// DefaultProfiles returns the built-in difficulty table.
func DefaultProfiles() map[DifficultyPreset]DifficultyProfile {
	return map[DifficultyPreset]DifficultyProfile{
		DifficultyEasy:   {BaseDescentPercent: 1.5, WeightAccelPercent: 5, LiftPercent: 3.0, AwakeningThreshold: 4},
		DifficultyNormal: {BaseDescentPercent: 2.5, WeightAccelPercent: 8, LiftPercent: 2.5, AwakeningThreshold: 3},
		DifficultyHard:   {BaseDescentPercent: 3.5, WeightAccelPercent: 12, LiftPercent: 2.0, AwakeningThreshold: 2},
		DifficultyExpert: {BaseDescentPercent: 5.0, WeightAccelPercent: 15, LiftPercent: 1.5, AwakeningThreshold: 1},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "crusher", "crusher_campaign":
		return defaultCrusherYAML
	default:
		return nil
	}
}
