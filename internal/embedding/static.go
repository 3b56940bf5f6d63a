package embedding

import (
	"context"
	"hash/fnv"
	"strings"
	"unicode"
)

// staticDim is the vector length produced by the StaticEncoder
const staticDim = 256

// StaticEncoder is a deterministic, offline Encoder. It hashes lowercased
// word tokens into a fixed-length bag-of-words vector, so texts sharing
// vocabulary score high cosine similarity. Used by tests and by CLI runs
// with --offline; not a substitute for the semantic model in production.
type StaticEncoder struct{}

// Encode embeds the non-blank texts deterministically. The asQuery flag
// is accepted for interface parity; the static encoding is symmetric.
func (StaticEncoder) Encode(_ context.Context, texts []string, _ bool) ([][]float32, error) {
	kept := FilterBlank(texts)
	vectors := make([][]float32, 0, len(kept))
	for _, text := range kept {
		vectors = append(vectors, encodeStatic(text))
	}
	return vectors, nil
}

func encodeStatic(text string) []float32 {
	v := make([]float32, staticDim)
	for _, token := range tokenize(text) {
		h := fnv.New32a()
		_, _ = h.Write([]byte(token))
		v[h.Sum32()%staticDim]++
	}
	return Normalize(v)
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}
