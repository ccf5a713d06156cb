// Package phrases loads the phrase corpus and picks a phrase per round.
package phrases

import (
	_ "embed"
	"fmt"
	"math/rand"
	"os"
	"slices"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-crusher/internal/config"
)

//go:embed corpus.yaml
var defaultCorpus []byte

// Entry is one phrase in the corpus. An empty Difficulty matches every preset.
type Entry struct {
	Text       string                  `yaml:"text"`
	Category   string                  `yaml:"category"`
	Difficulty config.DifficultyPreset `yaml:"difficulty"`
	Tag        string                  `yaml:"tag"`
}

// Matches reports whether the entry may be played at preset d.
func (e Entry) Matches(d config.DifficultyPreset) bool {
	return e.Difficulty == "" || e.Difficulty == d
}

type corpusFile struct {
	Phrases []Entry `yaml:"phrases"`
}

// Parse decodes a YAML corpus. Texts are trimmed and upper-cased.
func Parse(data []byte) ([]Entry, error) {
	var f corpusFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("phrases: parse corpus: %w", err)
	}
	entries := make([]Entry, 0, len(f.Phrases))
	for i, e := range f.Phrases {
		e.Text = strings.ToUpper(strings.TrimSpace(e.Text))
		if !strings.ContainsFunc(e.Text, isTypeable) {
			return nil, fmt.Errorf("phrases: entry %d has no letters or digits", i+1)
		}
		if e.Difficulty != "" && !e.Difficulty.Valid() {
			return nil, fmt.Errorf("phrases: entry %d: unknown difficulty %q", i+1, e.Difficulty)
		}
		if e.Category == "" {
			e.Category = "misc"
		}
		entries = append(entries, e)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("phrases: corpus is empty")
	}
	return entries, nil
}

func isTypeable(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Provider picks phrases at random.
type Provider struct {
	entries []Entry
	rng     *rand.Rand
	last    int
}

// NewProvider creates a provider over entries seeded with seed.
func NewProvider(entries []Entry, seed int64) *Provider {
	return &Provider{
		entries: entries,
		rng:     rand.New(rand.NewSource(seed)),
		last:    -1,
	}
}

// Default returns a provider over the built-in corpus.
func Default(seed int64) *Provider {
	entries, err := Parse(defaultCorpus)
	if err != nil {
		// The embedded corpus is covered by tests.
		panic(err)
	}
	return NewProvider(entries, seed)
}

// Load reads a corpus file. An empty path selects the built-in corpus.
func Load(path string, seed int64) (*Provider, error) {
	if path == "" {
		return Default(seed), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("phrases: read %s: %w", path, err)
	}
	entries, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return NewProvider(entries, seed), nil
}

// Pick returns a random phrase for difficulty d. When no entry matches d
// the whole corpus is used. The previous pick is avoided when possible.
func (p *Provider) Pick(d config.DifficultyPreset) Entry {
	if len(p.entries) == 0 {
		return Entry{Text: "TYPE", Category: "misc"}
	}
	candidates := p.indexes(d)
	if len(candidates) == 0 {
		candidates = make([]int, len(p.entries))
		for i := range candidates {
			candidates[i] = i
		}
	}
	if len(candidates) > 1 {
		candidates = slices.DeleteFunc(candidates, func(i int) bool { return i == p.last })
	}
	p.last = candidates[p.rng.Intn(len(candidates))]
	return p.entries[p.last]
}

// Entries returns the phrases playable at difficulty d.
func (p *Provider) Entries(d config.DifficultyPreset) []Entry {
	idx := p.indexes(d)
	out := make([]Entry, 0, len(idx))
	for _, i := range idx {
		out = append(out, p.entries[i])
	}
	return out
}

// All returns every phrase in the corpus.
func (p *Provider) All() []Entry {
	return slices.Clone(p.entries)
}

// Categories returns the sorted distinct categories.
func (p *Provider) Categories() []string {
	var cats []string
	for _, e := range p.entries {
		if !slices.Contains(cats, e.Category) {
			cats = append(cats, e.Category)
		}
	}
	slices.Sort(cats)
	return cats
}

func (p *Provider) indexes(d config.DifficultyPreset) []int {
	var idx []int
	for i, e := range p.entries {
		if e.Matches(d) {
			idx = append(idx, i)
		}
	}
	return idx
}
