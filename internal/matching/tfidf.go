package matching

import (
	"math"
	"strings"
	"unicode"
)

// tfidfModel is an immutable fitted vocabulary with inverse document
// frequencies. Fitting builds a fresh model; scoring never mutates
// one, so a model pointer can be shared freely across goroutines.
type tfidfModel struct {
	vocab map[string]int
	idf   []float64
}

// fitTFIDF learns a vocabulary and smoothed IDF weights from the
// corpus. An empty corpus yields no model.
func fitTFIDF(docs []string) *tfidfModel {
	if len(docs) == 0 {
		return nil
	}

	vocab := make(map[string]int)
	docFreq := make(map[string]int)

	for _, doc := range docs {
		seen := make(map[string]bool)
		for _, term := range tfidfTokens(doc) {
			if _, ok := vocab[term]; !ok {
				vocab[term] = len(vocab)
			}
			if !seen[term] {
				seen[term] = true
				docFreq[term]++
			}
		}
	}
	if len(vocab) == 0 {
		return nil
	}

	n := float64(len(docs))
	idf := make([]float64, len(vocab))
	for term, idx := range vocab {
		idf[idx] = math.Log((1+n)/(1+float64(docFreq[term]))) + 1
	}

	return &tfidfModel{vocab: vocab, idf: idf}
}

// vectorize maps text onto the fitted vocabulary as an L2-normalized
// TF-IDF vector. Out-of-vocabulary terms are dropped.
func (m *tfidfModel) vectorize(text string) []float64 {
	vec := make([]float64, len(m.vocab))
	for _, term := range tfidfTokens(text) {
		if idx, ok := m.vocab[term]; ok {
			vec[idx]++
		}
	}

	var norm float64
	for i := range vec {
		vec[i] *= m.idf[i]
		norm += vec[i] * vec[i]
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}

func cosine(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0.0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0.0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// tfidfTokens lowercases and keeps alphanumeric runs of two or more
// characters.
func tfidfTokens(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	tokens := fields[:0]
	for _, f := range fields {
		if len(f) >= 2 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}
