package sound

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Effect names a synthesized sound.
type Effect int

const (
	EffectClick   Effect = iota // Correct letter
	EffectBuzz                  // Wrong letter
	EffectWhoosh                // Overdrive
	EffectCrunch                // Crushed
	EffectFanfare               // Phrase complete
)

// String returns the effect name.
func (e Effect) String() string {
	switch e {
	case EffectClick:
		return "click"
	case EffectBuzz:
		return "buzz"
	case EffectWhoosh:
		return "whoosh"
	case EffectCrunch:
		return "crunch"
	case EffectFanfare:
		return "fanfare"
	default:
		return "unknown"
	}
}

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// tone is a single enveloped oscillator voice.
type tone struct {
	rate    beep.SampleRate
	freq    float64
	wave    Wave
	phase   float64
	pos     int
	total   int
	attack  int
	release int
	amp     float64
	rng     *rand.Rand
}

// newTone creates a voice lasting d with linear attack and release ramps.
func newTone(rate beep.SampleRate, freq float64, wave Wave, d, attack, release time.Duration, amp float64) *tone {
	return &tone{
		rate:    rate,
		freq:    freq,
		wave:    wave,
		total:   rate.N(d),
		attack:  rate.N(attack),
		release: rate.N(release),
		amp:     amp,
		rng:     rand.New(rand.NewSource(int64(freq*1000) + int64(d))),
	}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.pos >= t.total {
			return i, i > 0
		}

		var v float64
		switch t.wave {
		case WaveSine:
			v = math.Sin(2 * math.Pi * t.phase)
		case WaveSquare:
			v = 1
			if t.phase >= 0.5 {
				v = -1
			}
		case WaveSaw:
			v = 2 * (t.phase - 0.5)
		case WaveNoise:
			v = t.rng.Float64()*2 - 1
		}
		v *= t.amp * t.envelope()

		samples[i][0] = v
		samples[i][1] = v

		t.phase += t.freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.pos++
	}
	return len(samples), true
}

func (t *tone) envelope() float64 {
	switch {
	case t.attack > 0 && t.pos < t.attack:
		return float64(t.pos) / float64(t.attack)
	case t.release > 0 && t.pos >= t.total-t.release:
		return float64(t.total-t.pos) / float64(t.release)
	default:
		return 1
	}
}

func (t *tone) Err() error { return nil }

// withVolume scales s by a linear level in [0, 1].
// math.Log2(0) is -Inf, so zero is handled as silence.
func withVolume(s beep.Streamer, level float64) beep.Streamer {
	if level <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(level)}
}

// Duration returns how long an effect plays.
func Duration(e Effect) time.Duration {
	switch e {
	case EffectClick:
		return 30 * time.Millisecond
	case EffectBuzz:
		return 150 * time.Millisecond
	case EffectWhoosh:
		return 350 * time.Millisecond
	case EffectCrunch:
		return 450 * time.Millisecond
	case EffectFanfare:
		return 3 * fanfareNote
	default:
		return 0
	}
}

const fanfareNote = 90 * time.Millisecond

// Build synthesizes an effect at the given linear level.
func Build(e Effect, rate beep.SampleRate, level float64) beep.Streamer {
	d := Duration(e)
	var s beep.Streamer
	switch e {
	case EffectClick:
		s = newTone(rate, 1400, WaveSine, d, 2*time.Millisecond, 20*time.Millisecond, 0.5)
	case EffectBuzz:
		s = newTone(rate, 100, WaveSaw, d, 10*time.Millisecond, 60*time.Millisecond, 0.6)
	case EffectWhoosh:
		s = beep.Mix(
			newTone(rate, 0, WaveNoise, d, 120*time.Millisecond, 200*time.Millisecond, 0.3),
			newTone(rate, 220, WaveSine, d, 50*time.Millisecond, 250*time.Millisecond, 0.3),
		)
	case EffectCrunch:
		s = beep.Mix(
			newTone(rate, 0, WaveNoise, d, 5*time.Millisecond, 400*time.Millisecond, 0.5),
			newTone(rate, 60, WaveSquare, d, 5*time.Millisecond, 350*time.Millisecond, 0.3),
		)
	case EffectFanfare:
		s = beep.Seq(
			newTone(rate, 523.25, WaveSine, fanfareNote, 5*time.Millisecond, 30*time.Millisecond, 0.5),
			newTone(rate, 659.25, WaveSine, fanfareNote, 5*time.Millisecond, 30*time.Millisecond, 0.5),
			newTone(rate, 783.99, WaveSine, fanfareNote, 5*time.Millisecond, 40*time.Millisecond, 0.5),
		)
	default:
		s = beep.Silence(0)
	}
	return withVolume(s, level)
}
