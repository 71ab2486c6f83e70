package similarity

import (
	"math"
	"math/rand"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestCosineSimilarityIdentical(t *testing.T) {
	v := []float32{0.3, -0.5, 0.8, 0.1}
	if got := CosineSimilarity(v, v); !almostEqual(got, 1.0) {
		t.Errorf("CosineSimilarity(v, v) = %v, want 1.0", got)
	}
}

func TestCosineSimilarityOrthogonal(t *testing.T) {
	a := []float32{1, 0, 0}
	b := []float32{0, 1, 0}
	if got := CosineSimilarity(a, b); !almostEqual(got, 0.0) {
		t.Errorf("orthogonal similarity = %v, want 0", got)
	}
}

func TestCosineSimilarityOpposite(t *testing.T) {
	a := []float32{1, 2, 3}
	b := []float32{-1, -2, -3}
	if got := CosineSimilarity(a, b); !almostEqual(got, -1.0) {
		t.Errorf("opposite similarity = %v, want -1", got)
	}
}

func TestCosineSimilaritySymmetric(t *testing.T) {
	a := []float32{0.1, 0.9, -0.4}
	b := []float32{0.7, 0.2, 0.5}
	if CosineSimilarity(a, b) != CosineSimilarity(b, a) {
		t.Error("similarity is not symmetric")
	}
}

func TestCosineSimilarityZeroVector(t *testing.T) {
	a := []float32{0, 0, 0}
	b := []float32{1, 2, 3}
	if got := CosineSimilarity(a, b); got != 0.0 {
		t.Errorf("zero vector similarity = %v, want exactly 0.0", got)
	}
	if got := CosineSimilarity(a, a); got != 0.0 {
		t.Errorf("zero-zero similarity = %v, want exactly 0.0", got)
	}
}

func TestCosineSimilarityMismatchedLengths(t *testing.T) {
	a := []float32{1, 2, 3}
	b := []float32{1, 2}
	if got := CosineSimilarity(a, b); got != 0.0 {
		t.Errorf("mismatched lengths = %v, want exactly 0.0", got)
	}
	if got := CosineSimilarity(nil, nil); got != 0.0 {
		t.Errorf("empty vectors = %v, want exactly 0.0", got)
	}
}

func TestCosineSimilarityBounds(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 100; i++ {
		a := make([]float32, 16)
		b := make([]float32, 16)
		for j := range a {
			a[j] = r.Float32()*2 - 1
			b[j] = r.Float32()*2 - 1
		}
		got := CosineSimilarity(a, b)
		if got < -1.0000001 || got > 1.0000001 {
			t.Fatalf("similarity %v outside [-1, 1]", got)
		}
	}
}

func TestBatchSimilarity(t *testing.T) {
	query := []float32{1, 0}
	vectors := [][]float32{{1, 0}, {0, 1}, {-1, 0}}
	got := BatchSimilarity(query, vectors)
	want := []float64{1, 0, -1}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if !almostEqual(got[i], want[i]) {
			t.Errorf("got[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestFindDuplicatePairs(t *testing.T) {
	embeddings := [][]float32{
		{1, 0, 0},
		{1, 0, 0},
		{0, 1, 0},
	}
	pairs := FindDuplicatePairs(embeddings, 0.95)
	if len(pairs) != 1 {
		t.Fatalf("expected only the duplicate pair, got %d: %+v", len(pairs), pairs)
	}
	got := pairs[0]
	if got.Index1 != 0 || got.Index2 != 1 {
		t.Errorf("pair = (%d,%d), want (0,1)", got.Index1, got.Index2)
	}
	if !got.IsDuplicate {
		t.Errorf("pair not flagged duplicate: %+v", got)
	}
	if !almostEqual(got.Similarity, 1.0) {
		t.Errorf("Similarity = %v, want 1.0", got.Similarity)
	}
}

func TestFindDuplicatePairsNoneAboveThreshold(t *testing.T) {
	embeddings := [][]float32{
		{1, 0},
		{0, 1},
	}
	if pairs := FindDuplicatePairs(embeddings, 0.95); len(pairs) != 0 {
		t.Errorf("expected no pairs, got %+v", pairs)
	}
}

func TestDeduplicateExactDuplicates(t *testing.T) {
	embeddings := [][]float32{
		{1, 0, 0},
		{1, 0, 0},
		{0, 1, 0},
	}
	kept := Deduplicate(embeddings, 0.95)
	if len(kept) != 2 || kept[0] != 0 || kept[1] != 2 {
		t.Errorf("kept = %v, want [0 2]", kept)
	}
}

func TestDeduplicateThresholdIsStrict(t *testing.T) {
	a := []float32{1, 0}
	b := []float32{0.9, 0.1}
	sim := CosineSimilarity(a, b)

	// At threshold == similarity, nothing is a duplicate.
	kept := Deduplicate([][]float32{a, b}, sim)
	if len(kept) != 2 {
		t.Errorf("kept = %v, want both at exact-threshold boundary", kept)
	}
	// Just below, b duplicates a.
	kept = Deduplicate([][]float32{a, b}, sim-1e-9)
	if len(kept) != 1 || kept[0] != 0 {
		t.Errorf("kept = %v, want [0]", kept)
	}
}

func TestDeduplicateComparesAgainstKeptOnly(t *testing.T) {
	// Three unit vectors at 0, 15 and 30 degrees. Adjacent pairs are above a
	// cos(15deg) - epsilon threshold; the 0-30 pair is below it. The middle
	// vector is dropped as a duplicate of the first, and the third survives
	// because it is compared against the kept first vector only.
	angle := func(deg float64) []float32 {
		rad := deg * math.Pi / 180
		return []float32{float32(math.Cos(rad)), float32(math.Sin(rad))}
	}
	embeddings := [][]float32{angle(0), angle(15), angle(30)}
	threshold := math.Cos(15*math.Pi/180) - 1e-4

	kept := Deduplicate(embeddings, threshold)
	if len(kept) != 2 || kept[0] != 0 || kept[1] != 2 {
		t.Errorf("kept = %v, want [0 2]", kept)
	}
}

func TestDeduplicateEmptyAndSingle(t *testing.T) {
	if kept := Deduplicate(nil, 0.95); len(kept) != 0 {
		t.Errorf("kept = %v, want empty", kept)
	}
	if kept := Deduplicate([][]float32{{1, 0}}, 0.95); len(kept) != 1 || kept[0] != 0 {
		t.Errorf("kept = %v, want [0]", kept)
	}
}

func TestDeduplicateIdempotent(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	embeddings := make([][]float32, 8)
	for i := range embeddings {
		v := make([]float32, 32)
		for j := range v {
			v[j] = r.Float32()
		}
		embeddings[i] = v
	}
	embeddings[3] = embeddings[1]
	embeddings[6] = embeddings[2]

	first := Deduplicate(embeddings, 0.99)
	surviving := make([][]float32, len(first))
	for i, idx := range first {
		surviving[i] = embeddings[idx]
	}
	second := Deduplicate(surviving, 0.99)
	if len(second) != len(first) {
		t.Errorf("second pass dropped more: %d -> %d", len(first), len(second))
	}
}

func BenchmarkCosineSimilarity384(b *testing.B) {
	r := rand.New(rand.NewSource(1))
	x := make([]float32, 384)
	y := make([]float32, 384)
	for i := range x {
		x[i] = r.Float32()
		y[i] = r.Float32()
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		CosineSimilarity(x, y)
	}
}

func BenchmarkDeduplicate50x384(b *testing.B) {
	r := rand.New(rand.NewSource(2))
	embeddings := make([][]float32, 50)
	for i := range embeddings {
		v := make([]float32, 384)
		for j := range v {
			v[j] = r.Float32()
		}
		embeddings[i] = v
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Deduplicate(embeddings, 0.95)
	}
}
