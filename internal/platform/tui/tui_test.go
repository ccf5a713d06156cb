package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"github.com/vovakirdan/tui-crusher/internal/config"
	"github.com/vovakirdan/tui-crusher/internal/core"
	"github.com/vovakirdan/tui-crusher/internal/games/crusher"
	"github.com/vovakirdan/tui-crusher/internal/storage"
)

// scriptedGame records what the platform feeds it and ends on demand.
type scriptedGame struct {
	resets  int
	frames  []core.InputFrame
	state   core.GameState
	pending []core.Event
}

func (g *scriptedGame) ID() string    { return "scripted" }
func (g *scriptedGame) Title() string { return "Scripted" }

func (g *scriptedGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.state = core.GameState{}
}

func (g *scriptedGame) Step(in core.InputFrame) core.StepResult {
	g.frames = append(g.frames, in.Clone())
	events := g.pending
	g.pending = nil
	return core.StepResult{State: g.state, Events: events}
}

func (g *scriptedGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "scripted") }
func (g *scriptedGame) State() core.GameState   { return g.state }

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKeyToFrame(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		name     string
		msg      tea.KeyMsg
		gameOver bool
		action   core.Action
		keys     []string
	}{
		{"letter", runes("a"), false, core.ActionNone, []string{"a"}},
		{"q is typed", runes("q"), false, core.ActionNone, []string{"q"}},
		{"pasted runes", runes("hi"), false, core.ActionNone, []string{"h", "i"}},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, false, core.ActionNone, []string{" "}},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, false, core.ActionQuit, nil},
		{"esc pauses", tea.KeyMsg{Type: tea.KeyEsc}, false, core.ActionPause, nil},
		{"esc leaves after game over", tea.KeyMsg{Type: tea.KeyEsc}, true, core.ActionBack, nil},
		{"enter restarts", tea.KeyMsg{Type: tea.KeyEnter}, true, core.ActionRestart, nil},
		{"enter during play", tea.KeyMsg{Type: tea.KeyEnter}, false, core.ActionNone, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame := core.NewInputFrame()
			if got := km.MapKeyToFrame(tt.msg, &frame, tt.gameOver); got != tt.action {
				t.Errorf("action = %v, want %v", got, tt.action)
			}
			if tt.action != core.ActionNone && !frame.Has(tt.action) {
				t.Errorf("frame missing %v", tt.action)
			}
			if diff := cmp.Diff(tt.keys, frame.Keys, cmp.Comparer(func(a, b []string) bool {
				return strings.Join(a, ",") == strings.Join(b, ",")
			})); diff != "" {
				t.Errorf("keys (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMapMouseToFrame(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()
	km.MapMouseToFrame(tea.MouseMsg{X: 3, Y: 9, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}, &frame)
	km.MapMouseToFrame(tea.MouseMsg{X: 4, Y: 9, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}, &frame)
	km.MapMouseToFrame(tea.MouseMsg{X: 5, Y: 9, Action: tea.MouseActionPress, Button: tea.MouseButtonRight}, &frame)
	if diff := cmp.Diff([]core.Point{{X: 3, Y: 9}}, frame.Clicks); diff != "" {
		t.Errorf("clicks (-want +got):\n%s", diff)
	}
}

func TestModelMeasuresElapsedTime(t *testing.T) {
	g := &scriptedGame{}
	m := NewModel(g, Deps{}, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1})
	m.Init()

	start := time.Unix(100, 0)
	next, _ := m.Update(runes("c"))
	next, _ = next.Update(TickMsg(start))
	next, _ = next.Update(TickMsg(start.Add(40 * time.Millisecond)))
	_ = next

	if len(g.frames) != 2 {
		t.Fatalf("steps = %d, want 2", len(g.frames))
	}
	if g.frames[0].Elapsed != 0 {
		t.Errorf("first frame elapsed = %v, want 0", g.frames[0].Elapsed)
	}
	if g.frames[1].Elapsed != 40*time.Millisecond {
		t.Errorf("second frame elapsed = %v, want 40ms", g.frames[1].Elapsed)
	}
	if diff := cmp.Diff([]string{"c"}, g.frames[0].Keys); diff != "" {
		t.Errorf("typed keys (-want +got):\n%s", diff)
	}
	if len(g.frames[1].Keys) != 0 {
		t.Errorf("keys leaked into the next frame: %v", g.frames[1].Keys)
	}
}

func TestModelSavesRoundEnd(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	g := &scriptedGame{}
	m := NewModel(g, Deps{Store: store}, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1})
	m.Init()

	g.state = core.GameState{GameOver: true, Won: true, Score: 700}
	g.pending = []core.Event{{Name: crusher.EventRoundEnd, Data: crusher.Result{
		Score:      700,
		Won:        true,
		Difficulty: config.DifficultyHard,
		Phrase:     crusher.Phrase{Text: "GO"},
	}}}
	next, _ := m.Update(TickMsg(time.Unix(1, 0)))

	rounds, err := store.TopRounds("hard", 10)
	if err != nil {
		t.Fatalf("TopRounds() failed: %v", err)
	}
	if len(rounds) != 1 || rounds[0].Score != 700 || rounds[0].GameID != "scripted" {
		t.Fatalf("rounds = %+v", rounds)
	}

	// Enter after game over restarts on the next tick.
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter})
	next.Update(TickMsg(time.Unix(2, 0)))
	if g.resets != 2 {
		t.Errorf("resets = %d, want 2", g.resets)
	}
}

func TestModelBackToMenu(t *testing.T) {
	g := &scriptedGame{}
	m := NewModel(g, Deps{}, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1})
	m.Init()

	g.state = core.GameState{GameOver: true}
	next, _ := m.Update(TickMsg(time.Unix(1, 0)))
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(Model).BackToMenu() {
		t.Error("esc after game over should return to the menu")
	}
}

func TestMenuDifficultyPicker(t *testing.T) {
	m := NewMenuModel(nil, core.RuntimeConfig{ScreenW: 100, ScreenH: 30}, config.DifficultyHard)
	if m.Difficulty() != config.DifficultyHard {
		t.Fatalf("preselected = %v", m.Difficulty())
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = next.(MenuModel)
	if m.Difficulty() != config.DifficultyExpert {
		t.Errorf("right = %v, want expert", m.Difficulty())
	}
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = next.(MenuModel)
	if m.Difficulty() != config.DifficultyEasy {
		t.Errorf("right wraps to %v, want easy", m.Difficulty())
	}
	if !strings.Contains(m.View(), "[EASY]") {
		t.Error("view does not highlight the difficulty")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(MenuModel)
	if m.Selected() == nil || m.Selected().GameID == "" {
		t.Errorf("selected = %+v", m.Selected())
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(10, 2)
	s.DrawTextColored(0, 0, "CRUSH", core.ColorDanger)
	s.DrawText(0, 1, "ok")

	out := NewStyles(nil).RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	if !strings.Contains(lines[0], "CRUSH") || !strings.Contains(lines[1], "ok") {
		t.Errorf("rendered = %q", out)
	}
}
