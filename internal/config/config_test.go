package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := parseCrusher(defaultCrusherYAML)
	if err != nil {
		t.Fatalf("embedded yaml: %v", err)
	}
	if diff := cmp.Diff(DefaultCrusherConfig(), cfg); diff != "" {
		t.Errorf("embedded defaults drifted from DefaultCrusherConfig (-want +got):\n%s", diff)
	}
}

func TestLoadCrusherCustomPathOverlaysDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "crusher.yaml")
	data := []byte("motion:\n  shove_percent: 4\nsettings:\n  muted: true\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadCrusher(path)
	if err != nil {
		t.Fatalf("LoadCrusher: %v", err)
	}
	if cfg.Motion.ShovePercent != 4 {
		t.Errorf("ShovePercent = %v, want 4", cfg.Motion.ShovePercent)
	}
	if cfg.Motion.SlidePercent != 3 {
		t.Errorf("SlidePercent = %v, want default 3", cfg.Motion.SlidePercent)
	}
	if !cfg.Settings.IsMuted() {
		t.Error("expected muted settings")
	}
	if got := cfg.Profile(DifficultyExpert).AwakeningThreshold; got != 1 {
		t.Errorf("expert threshold = %d, want 1", got)
	}
}

func TestLoadCrusherErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadCrusher(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("arena:\n  fail_line_ratio: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadCrusher(bad); err == nil {
		t.Error("expected validation error for fail_line_ratio 2")
	}
}

func TestLoadCrusherUserDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(home, ".crusher", "configs", "crusher.yaml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("combo:\n  overdrive_threshold: 10\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadCrusher("")
	if err != nil {
		t.Fatalf("LoadCrusher: %v", err)
	}
	if cfg.Combo.OverdriveThreshold != 10 {
		t.Errorf("OverdriveThreshold = %d, want 10", cfg.Combo.OverdriveThreshold)
	}
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in      string
		want    DifficultyPreset
		wantErr bool
	}{
		{"", DifficultyNormal, false},
		{"easy", DifficultyEasy, false},
		{" HARD ", DifficultyHard, false},
		{"expert", DifficultyExpert, false},
		{"nightmare", DifficultyNormal, true},
	}
	for _, tt := range tests {
		got, err := ParsePreset(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePreset(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParsePreset(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestProfileFallsBackToNormal(t *testing.T) {
	cfg := DefaultCrusherConfig()
	got := cfg.Profile("unknown")
	want := cfg.Difficulties[DifficultyNormal]
	if got != want {
		t.Errorf("Profile(unknown) = %+v, want %+v", got, want)
	}

	cfg.Difficulties = nil
	if got := cfg.Profile(DifficultyHard); got != DefaultProfiles()[DifficultyNormal] {
		t.Errorf("Profile with empty table = %+v", got)
	}
}

func TestStageFactor(t *testing.T) {
	m := MotionConfig{StageSpeedMultiplier: 0.15}
	tests := []struct {
		stage int
		want  float64
	}{
		{0, 1},
		{1, 1},
		{2, 1.15},
		{5, 1.6},
	}
	for _, tt := range tests {
		got := m.StageFactor(tt.stage)
		if d := got - tt.want; d > 1e-9 || d < -1e-9 {
			t.Errorf("StageFactor(%d) = %v, want %v", tt.stage, got, tt.want)
		}
	}
}

func TestSettingsLevel(t *testing.T) {
	tests := []struct {
		s     Settings
		level float64
		muted bool
	}{
		{Settings{Volume: 0.5}, 0.5, false},
		{Settings{Volume: 2}, 1, false},
		{Settings{Volume: 0}, 0, true},
		{Settings{Volume: 0.5, Muted: true}, 0.5, true},
	}
	for _, tt := range tests {
		if got := tt.s.Level(); got != tt.level {
			t.Errorf("%+v Level() = %v, want %v", tt.s, got, tt.level)
		}
		if got := tt.s.IsMuted(); got != tt.muted {
			t.Errorf("%+v IsMuted() = %v, want %v", tt.s, got, tt.muted)
		}
	}
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "crusher.yaml")
	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault: %v", err)
	}
	if err := WriteDefault(path); err == nil {
		t.Error("expected error when file exists")
	}
	if _, err := LoadCrusher(path); err != nil {
		t.Errorf("written default does not load: %v", err)
	}
}
