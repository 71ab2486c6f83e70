// Package similarity implements cosine similarity over embedding vectors and
// greedy semantic deduplication on top of it. Vectors are float32 as stored;
// accumulation runs in float64 so results are stable across input ordering.
package similarity

import (
	"math"

	"github.com/coursemesh/nlp-preprocess/schema"
)

// CosineSimilarity returns the cosine of the angle between a and b, in
// [-1, 1]. Mismatched lengths and zero-magnitude vectors both return exactly
// 0.0 rather than an error, so a malformed embedding degrades to "not
// similar" instead of failing the call.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0.0
	}
	var dot, normA, normB float64
	for i := range a {
		av, bv := float64(a[i]), float64(b[i])
		dot += av * bv
		normA += av * av
		normB += bv * bv
	}
	if normA == 0 || normB == 0 {
		return 0.0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// BatchSimilarity computes the similarity of query against each vector.
func BatchSimilarity(query []float32, vectors [][]float32) []float64 {
	out := make([]float64, len(vectors))
	for i, v := range vectors {
		out[i] = CosineSimilarity(query, v)
	}
	return out
}

// FindDuplicatePairs compares every pair of embeddings and returns only the
// pairs whose similarity is strictly above threshold, ordered by
// (Index1, Index2) with Index1 < Index2.
func FindDuplicatePairs(embeddings [][]float32, threshold float64) []schema.SemanticSimilarity {
	var pairs []schema.SemanticSimilarity
	for i := 0; i < len(embeddings); i++ {
		for j := i + 1; j < len(embeddings); j++ {
			sim := CosineSimilarity(embeddings[i], embeddings[j])
			if sim <= threshold {
				continue
			}
			pairs = append(pairs, schema.SemanticSimilarity{
				Index1:      i,
				Index2:      j,
				Similarity:  sim,
				IsDuplicate: true,
			})
		}
	}
	return pairs
}

// Deduplicate returns the indices to keep, ascending. The scan is greedy:
// each vector is compared only against already-kept vectors, so in a chain
// a-b-c where b duplicates a and c duplicates b but not a, b is dropped and c
// survives. Index 0 is always kept. Duplicate means strictly above threshold.
func Deduplicate(embeddings [][]float32, threshold float64) []int {
	kept := make([]int, 0, len(embeddings))
	for i := range embeddings {
		dup := false
		for _, k := range kept {
			if CosineSimilarity(embeddings[i], embeddings[k]) > threshold {
				dup = true
				break
			}
		}
		if !dup {
			kept = append(kept, i)
		}
	}
	return kept
}
