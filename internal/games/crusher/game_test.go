package crusher

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-crusher/internal/config"
	"github.com/vovakirdan/tui-crusher/internal/core"
)

// isolate keeps user config files and earlier package settings out of a test.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Cleanup(func() {
		SetSettingsOverride(nil)
		SetDifficultyPreset("")
		SetStage(1)
		SetPersistence(nil)
	})
}

var testRuntime = core.RuntimeConfig{Seed: 12345, ScreenW: 80, ScreenH: 24}

// phraseKeys returns the typeable characters of the current phrase.
func phraseKeys(g *Game) []string {
	var keys []string
	for _, ch := range g.Round().Phrase().Text {
		if isTypeable(ch) {
			keys = append(keys, string(ch))
		}
	}
	return keys
}

func countEvents(events []core.Event, name string) int {
	n := 0
	for _, e := range events {
		if e.Name == name {
			n++
		}
	}
	return n
}

func TestDeterminism(t *testing.T) {
	isolate(t)

	g1 := New()
	g1.Reset(testRuntime)
	g2 := New()
	g2.Reset(testRuntime)

	if g1.Round().Phrase() != g2.Round().Phrase() {
		t.Fatalf("phrase mismatch: %q vs %q", g1.Round().Phrase().Text, g2.Round().Phrase().Text)
	}

	keys := phraseKeys(g1)
	input := core.NewInputFrame()
	for i := 0; i < 300; i++ {
		input.Clear()
		input.Elapsed = 16 * time.Millisecond
		if i%10 == 5 {
			input.Type("9")
		}
		if i%15 == 0 && i/15 < len(keys) {
			input.Type(keys[i/15])
		}
		g1.Step(input)
		g2.Step(input)
	}

	s1, s2 := g1.Snapshot(), g2.Snapshot()
	if s1.Hash() != s2.Hash() {
		t.Errorf("snapshot mismatch:\n%+v\n%+v", s1, s2)
	}
	if s1.Errors == 0 {
		t.Error("expected the 9 key to count as errors")
	}
}

func TestWinEmitsRoundEndOnce(t *testing.T) {
	isolate(t)

	g := New()
	g.Reset(testRuntime)

	input := core.NewInputFrame()
	for _, k := range phraseKeys(g) {
		input.Type(k)
	}
	res := g.Step(input)
	if !res.State.GameOver || !res.State.Won {
		t.Fatalf("state = %+v, want won", res.State)
	}
	if n := countEvents(res.Events, EventRoundEnd); n != 1 {
		t.Errorf("round_end events = %d, want 1", n)
	}
	if n := countEvents(res.Events, string(EventCorrectLetter)); n != len(phraseKeys(g)) {
		t.Errorf("correct_letter events = %d, want %d", n, len(phraseKeys(g)))
	}
	result, _ := g.Round().Result()
	if res.State.Score != result.Score {
		t.Errorf("state score %d, result score %d", res.State.Score, result.Score)
	}

	input.Clear()
	for range 10 {
		if n := countEvents(g.Step(input).Events, EventRoundEnd); n != 0 {
			t.Fatal("round_end repeated")
		}
	}
}

func TestLiveScoreCountsTypedLetters(t *testing.T) {
	isolate(t)

	g := New()
	g.Reset(testRuntime)
	keys := phraseKeys(g)

	input := core.NewInputFrame()
	input.Type(keys[0])
	input.Type(keys[1])
	st := g.Step(input).State
	if st.GameOver {
		t.Fatal("round over after two letters")
	}
	want := g.Round().State().TypedIndex * 10
	if st.Score != want {
		t.Errorf("score = %d, want %d", st.Score, want)
	}
}

func TestCampaignAdvancesStage(t *testing.T) {
	isolate(t)

	g := NewCampaignGame()
	g.Reset(testRuntime)
	if g.Round().Stage() != 1 {
		t.Fatalf("first stage = %d", g.Round().Stage())
	}

	input := core.NewInputFrame()
	for _, k := range phraseKeys(g) {
		input.Type(k)
	}
	g.Step(input)
	if g.Campaign().Stage() != 2 {
		t.Fatalf("stage after win = %d, want 2", g.Campaign().Stage())
	}

	g.Reset(testRuntime)
	if g.Round().Stage() != 2 {
		t.Errorf("next round stage = %d, want 2", g.Round().Stage())
	}

	g.Round().lose()
	input.Clear()
	for range 60 {
		input.Elapsed = 50 * time.Millisecond
		g.Step(input)
	}
	if g.Campaign().Stage() != 1 || g.Campaign().Best() != 2 {
		t.Errorf("after loss stage=%d best=%d, want 1 and 2", g.Campaign().Stage(), g.Campaign().Best())
	}
}

func TestPauseFreezesRound(t *testing.T) {
	isolate(t)
	SetDifficultyPreset("expert")

	g := New()
	g.Reset(testRuntime)
	input := core.NewInputFrame()
	input.Type("9")
	g.Step(input)

	input.Clear()
	input.Set(core.ActionPause)
	if !g.Step(input).State.Paused {
		t.Fatal("not paused")
	}
	y := g.Round().State().CrusherY

	input.Clear()
	input.Type(phraseKeys(g)[0])
	input.Elapsed = 100 * time.Millisecond
	for range 20 {
		g.Step(input)
	}
	if st := g.Round().State(); st.CrusherY != y || st.LettersTyped != 0 {
		t.Errorf("round moved while paused: %+v", st)
	}

	input.Clear()
	input.Set(core.ActionPause)
	if g.Step(input).State.Paused {
		t.Fatal("still paused")
	}
}

func TestMouseOnlyIgnoresKeys(t *testing.T) {
	isolate(t)
	SetSettingsOverride(func(s *config.Settings) { s.MouseOnly = true })

	g := New()
	g.Reset(testRuntime)
	keys := phraseKeys(g)

	input := core.NewInputFrame()
	input.Type(keys[0])
	input.Type("9")
	g.Step(input)
	if st := g.Round().State(); st.LettersTyped != 0 || st.Errors != 0 {
		t.Fatalf("keys reached the round in mouse-only mode: %+v", st)
	}

	var target *LetterView
	for _, v := range g.Round().Letters().Visible() {
		if string(v.Char) == keys[0] {
			target = &v
			break
		}
	}
	if target == nil {
		t.Fatal("first letter not visible")
	}
	c := target.Pos.Cell()
	input.Clear()
	input.Click(c.X+g.shakeOffset(), c.Y)
	g.Step(input)
	if got := g.Round().State().LettersTyped; got != 1 {
		t.Errorf("letters typed after click = %d, want 1", got)
	}
}

func TestWrongKeyShakesAndExplains(t *testing.T) {
	isolate(t)

	g := New()
	g.Reset(testRuntime)
	input := core.NewInputFrame()
	input.Type("9")
	res := g.Step(input)

	if countEvents(res.Events, string(EventWrongLetter)) != 1 {
		t.Errorf("events = %+v", res.Events)
	}
	if g.shake == 0 {
		t.Error("wrong key did not start a shake")
	}
	if !strings.HasPrefix(g.feedback, "expected ") {
		t.Errorf("feedback = %q", g.feedback)
	}
}

func TestRenderShowsPhrase(t *testing.T) {
	isolate(t)

	g := New()
	g.Reset(testRuntime)
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	if row := screen.Row(1); !strings.Contains(row, g.Round().Phrase().Text) {
		t.Errorf("row 1 = %q, want the phrase", row)
	}
	if row := screen.Row(0); !strings.Contains(row, "NORMAL") || !strings.Contains(row, "DORMANT") {
		t.Errorf("HUD = %q", row)
	}
	fail := int(g.Round().Layout().FailLineY)
	if !strings.ContainsRune(screen.Row(fail), FailLineChar) {
		t.Errorf("fail line missing from row %d: %q", fail, screen.Row(fail))
	}
}

func TestResetTearsDownPreviousRound(t *testing.T) {
	isolate(t)

	g := New()
	g.Reset(testRuntime)
	old := g.world
	g.Reset(testRuntime)
	if old.Len() != 0 {
		t.Errorf("%d bodies left in the previous world", old.Len())
	}
	if g.Round().State().TypedIndex != 0 {
		t.Error("new round not fresh")
	}
}
