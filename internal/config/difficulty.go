package config

import (
	"fmt"
	"math"
	"strings"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyExpert DifficultyPreset = "expert"
)

// Presets lists the difficulty presets from easiest to hardest.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyExpert}
}

// ParsePreset converts a user-supplied name into a preset.
// An empty name selects normal.
func ParsePreset(name string) (DifficultyPreset, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return DifficultyNormal, nil
	}
	for _, p := range Presets() {
		if string(p) == name {
			return p, nil
		}
	}
	return DifficultyNormal, fmt.Errorf("unknown difficulty %q (want easy, normal, hard or expert)", name)
}

// Valid reports whether p is one of the known presets.
func (p DifficultyPreset) Valid() bool {
	_, err := ParsePreset(string(p))
	return err == nil && p != ""
}

// Profile returns the tuning for a preset, falling back to normal for
// unknown names.
func (c CrusherConfig) Profile(preset DifficultyPreset) DifficultyProfile {
	if p, ok := c.Difficulties[preset]; ok {
		return p
	}
	if p, ok := c.Difficulties[DifficultyNormal]; ok {
		return p
	}
	return DefaultProfiles()[DifficultyNormal]
}

// StageFactor returns the speed multiplier for a campaign stage.
// Stage 1 and below run at base speed.
func (m MotionConfig) StageFactor(stage int) float64 {
	if stage <= 1 {
		return 1
	}
	return 1 + float64(stage-1)*m.StageSpeedMultiplier
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
