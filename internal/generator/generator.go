// Package generator builds typing word sequences.
package generator

import (
	"math/rand"
	"time"
)

// RepeatCount is how many times each word appears in a practice set.
const RepeatCount = 5

// Generator produces randomized word sequences.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a Generator with a fixed seed.
func NewSeeded(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Pick shuffles words and cycles through them until count words are chosen.
func (g *Generator) Pick(words []string, count int) []string {
	if len(words) == 0 || count <= 0 {
		return nil
	}
	shuffled := g.shuffle(words)
	result := make([]string, 0, count)
	for len(result) < count {
		result = append(result, shuffled[len(result)%len(shuffled)])
	}
	return result
}

// Repeat returns each word n times in shuffled order.
func (g *Generator) Repeat(words []string, n int) []string {
	if len(words) == 0 || n <= 0 {
		return nil
	}
	result := make([]string, 0, len(words)*n)
	for _, word := range words {
		for i := 0; i < n; i++ {
			result = append(result, word)
		}
	}
	g.rnd.Shuffle(len(result), func(i, j int) { result[i], result[j] = result[j], result[i] })
	return result
}

// PickWeighted selects words with a bias toward weak characters.
func (g *Generator) PickWeighted(words []string, count int, weakSet map[rune]struct{}, factor float64) []string {
	if len(words) == 0 || count <= 0 {
		return nil
	}
	if len(weakSet) == 0 || factor <= 0 {
		return g.Pick(words, count)
	}
	weights := make([]float64, len(words))
	total := 0.0
	for i, word := range words {
		weakCount := 0
		for _, r := range word {
			if _, ok := weakSet[r]; ok {
				weakCount++
			}
		}
		w := 1.0 + float64(weakCount)*factor
		weights[i] = w
		total += w
	}

	result := make([]string, 0, count)
	for i := 0; i < count; i++ {
		r := g.rnd.Float64() * total
		acc := 0.0
		idx := len(words) - 1
		for j, w := range weights {
			acc += w
			if r <= acc {
				idx = j
				break
			}
		}
		result = append(result, words[idx])
	}
	return result
}

func (g *Generator) shuffle(words []string) []string {
	out := append([]string(nil), words...)
	g.rnd.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}
