package sound

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/tui-crusher/internal/config"
	"github.com/vovakirdan/tui-crusher/internal/core"
	"github.com/vovakirdan/tui-crusher/internal/games/crusher"
)

// drain streams s to the end and returns the sample count and peak amplitude.
func drain(t *testing.T, s beep.Streamer) (int, float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	total, peak := 0, 0.0
	for range 10000 {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			peak = math.Max(peak, math.Abs(buf[i][0]))
			if buf[i][0] != buf[i][1] {
				t.Fatalf("sample %d: channels differ", total+i)
			}
		}
		total += n
		if !ok {
			return total, peak
		}
	}
	t.Fatal("stream never ended")
	return 0, 0
}

func TestEffectsLength(t *testing.T) {
	rate := beep.SampleRate(8000)
	for _, e := range []Effect{EffectClick, EffectBuzz, EffectWhoosh, EffectCrunch, EffectFanfare} {
		t.Run(e.String(), func(t *testing.T) {
			n, peak := drain(t, Build(e, rate, 1))
			if want := rate.N(Duration(e)); n != want {
				t.Errorf("samples = %d, want %d", n, want)
			}
			if peak <= 0 || peak > 1 {
				t.Errorf("peak = %f, want in (0, 1]", peak)
			}
		})
	}
}

func TestEffectSilentAtZeroLevel(t *testing.T) {
	_, peak := drain(t, Build(EffectBuzz, 8000, 0))
	if peak != 0 {
		t.Errorf("peak = %f at level 0", peak)
	}
}

func TestEffectLevelScales(t *testing.T) {
	_, full := drain(t, Build(EffectClick, 8000, 1))
	_, half := drain(t, Build(EffectClick, 8000, 0.5))
	if math.Abs(half-full/2) > 1e-9 {
		t.Errorf("half level peak = %f, want %f", half, full/2)
	}
}

func TestToneEnvelope(t *testing.T) {
	tn := newTone(1000, 0, WaveSquare, 100*time.Millisecond, 10*time.Millisecond, 20*time.Millisecond, 1)
	buf := make([][2]float64, 100)
	n, _ := tn.Stream(buf)
	if n != 100 {
		t.Fatalf("streamed %d", n)
	}
	if buf[0][0] != 0 {
		t.Errorf("first sample = %f, want 0 (attack starts silent)", buf[0][0])
	}
	if buf[50][0] != 1 {
		t.Errorf("sustain sample = %f, want 1", buf[50][0])
	}
	if buf[99][0] >= 0.1 {
		t.Errorf("last sample = %f, want near 0", buf[99][0])
	}
}

func TestEffectFor(t *testing.T) {
	tests := []struct {
		event core.Event
		want  Effect
		ok    bool
	}{
		{core.Event{Name: string(crusher.EventCorrectLetter)}, EffectClick, true},
		{core.Event{Name: string(crusher.EventWrongLetter)}, EffectBuzz, true},
		{core.Event{Name: string(crusher.EventOverdrive)}, EffectWhoosh, true},
		{core.Event{Name: crusher.EventRoundEnd, Data: crusher.Result{Won: true}}, EffectFanfare, true},
		{core.Event{Name: crusher.EventRoundEnd, Data: crusher.Result{}}, EffectCrunch, true},
		{core.Event{Name: "something_else"}, 0, false},
	}
	for _, tt := range tests {
		got, ok := EffectFor(tt.event)
		if got != tt.want || ok != tt.ok {
			t.Errorf("EffectFor(%s) = %v, %v; want %v, %v", tt.event.Name, got, ok, tt.want, tt.ok)
		}
	}
}

func TestPlayerWithoutDevice(t *testing.T) {
	p := NewPlayer(config.Settings{Volume: 0.5}, nil)
	if p.Enabled() {
		t.Fatal("player enabled before Init")
	}

	// Everything is a no-op until Init succeeds.
	p.Play(EffectBuzz)
	p.HandleEvents([]core.Event{{Name: string(crusher.EventWrongLetter)}})
	p.SetLevel(2)
	p.SetMuted(true)
	p.Close()

	if p.level != 1 || !p.muted {
		t.Errorf("level=%f muted=%v, want 1 and true", p.level, p.muted)
	}
}

func TestPlayerRespectsSettings(t *testing.T) {
	muted := NewPlayer(config.Settings{Volume: 0.8, Muted: true}, nil)
	if !muted.muted {
		t.Error("Muted setting ignored")
	}
	silent := NewPlayer(config.Settings{Volume: 0}, nil)
	if !silent.muted {
		t.Error("zero volume should count as muted")
	}
}
