package biometric

import (
	"math"
	"testing"

	"veriface.io/infrastructure/biometric/types"
)

func TestCompareEmbeddings(t *testing.T) {
	tests := []struct {
		name string
		a    types.EmbeddingVector
		b    types.EmbeddingVector
		want float64
	}{
		{
			name: "identical unit vectors",
			a:    types.EmbeddingVector{1, 0, 0},
			b:    types.EmbeddingVector{1, 0, 0},
			want: 1,
		},
		{
			name: "orthogonal vectors",
			a:    types.EmbeddingVector{1, 0, 0},
			b:    types.EmbeddingVector{0, 1, 0},
			want: 0,
		},
		{
			name: "opposite vectors clamp to zero",
			a:    types.EmbeddingVector{1, 0, 0},
			b:    types.EmbeddingVector{-1, 0, 0},
			want: 0,
		},
		{
			name: "scaled copies still score one",
			a:    types.EmbeddingVector{2, 2, 0},
			b:    types.EmbeddingVector{4, 4, 0},
			want: 1,
		},
		{
			name: "zero norm yields zero",
			a:    types.EmbeddingVector{0, 0, 0},
			b:    types.EmbeddingVector{1, 0, 0},
			want: 0,
		},
		{
			name: "length mismatch yields zero",
			a:    types.EmbeddingVector{1, 0},
			b:    types.EmbeddingVector{1, 0, 0},
			want: 0,
		},
		{
			name: "empty vectors yield zero",
			a:    types.EmbeddingVector{},
			b:    types.EmbeddingVector{},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CompareEmbeddings(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("CompareEmbeddings() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCompareEmbeddingsIsSymmetric(t *testing.T) {
	pairs := [][2]types.EmbeddingVector{
		{{1, 0, 0}, {0.5, 0.5, 0}},
		{{0.3, 0.4, 0.5}, {0.9, 0.1, 0.2}},
		{{1, 2, 3}, {3, 2, 1}},
		{{0, 0, 0}, {1, 1, 1}},
	}
	for _, pair := range pairs {
		forward := CompareEmbeddings(pair[0], pair[1])
		backward := CompareEmbeddings(pair[1], pair[0])
		if forward != backward {
			t.Errorf("CompareEmbeddings() not symmetric: %v vs %v", forward, backward)
		}
	}
}

func TestFindBestMatch(t *testing.T) {
	gallery := []types.GalleryEntry{
		{Identity: "U1", Vectors: []types.EmbeddingVector{{1, 0, 0}}},
		{Identity: "U2", Vectors: []types.EmbeddingVector{{0, 1, 0}}},
		{Identity: "U3", Vectors: []types.EmbeddingVector{{0, 0, 1}}},
	}

	tests := []struct {
		name         string
		probe        types.EmbeddingVector
		gallery      []types.GalleryEntry
		threshold    float64
		wantIdentity string
		wantNone     bool
	}{
		{
			name:         "exact enrollment match scores one",
			probe:        types.EmbeddingVector{1, 0, 0},
			gallery:      gallery,
			threshold:    0.45,
			wantIdentity: "U1",
		},
		{
			name:      "nothing clears the threshold",
			probe:     types.EmbeddingVector{0.577, 0.577, 0.577},
			gallery:   gallery,
			threshold: 0.9,
			wantNone:  true,
		},
		{
			name:      "empty gallery",
			probe:     types.EmbeddingVector{1, 0, 0},
			gallery:   nil,
			threshold: 0.45,
			wantNone:  true,
		},
		{
			name:      "empty probe",
			probe:     nil,
			gallery:   gallery,
			threshold: 0.45,
			wantNone:  true,
		},
		{
			name:  "tie keeps the first enrolled identity",
			probe: types.EmbeddingVector{1, 0, 0},
			gallery: []types.GalleryEntry{
				{Identity: "first", Vectors: []types.EmbeddingVector{{1, 0, 0}}},
				{Identity: "second", Vectors: []types.EmbeddingVector{{1, 0, 0}}},
			},
			threshold:    0.45,
			wantIdentity: "first",
		},
		{
			name:  "multi enrollment takes the best vector",
			probe: types.EmbeddingVector{1, 0, 0},
			gallery: []types.GalleryEntry{
				{Identity: "multi", Vectors: []types.EmbeddingVector{{0, 1, 0}, {1, 0, 0}}},
				{Identity: "single", Vectors: []types.EmbeddingVector{{0.7, 0.7, 0}}},
			},
			threshold:    0.45,
			wantIdentity: "multi",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matcher := NewFaceMatcher(tt.threshold)
			got := matcher.FindBestMatch(tt.probe, tt.gallery)

			if tt.wantNone {
				if got != nil {
					t.Errorf("FindBestMatch() = %+v, want nil", got)
				}
				return
			}
			if got == nil {
				t.Fatalf("FindBestMatch() returned nil, want %s", tt.wantIdentity)
			}
			if got.Identity != tt.wantIdentity {
				t.Errorf("FindBestMatch() identity = %s, want %s", got.Identity, tt.wantIdentity)
			}
			if got.Similarity < tt.threshold {
				t.Errorf("FindBestMatch() similarity %v below threshold %v", got.Similarity, tt.threshold)
			}
		})
	}
}

func TestFindBestMatchNeverBeaten(t *testing.T) {
	gallery := []types.GalleryEntry{
		{Identity: "a", Vectors: []types.EmbeddingVector{{0.9, 0.1, 0}}},
		{Identity: "b", Vectors: []types.EmbeddingVector{{0.5, 0.5, 0}}},
		{Identity: "c", Vectors: []types.EmbeddingVector{{0.1, 0.9, 0}}},
	}
	probe := types.EmbeddingVector{1, 0, 0}

	matcher := NewFaceMatcher(0.45)
	got := matcher.FindBestMatch(probe, gallery)
	if got == nil {
		t.Fatal("FindBestMatch() returned nil for a probe with clear matches")
	}
	for _, entry := range gallery {
		for _, vector := range entry.Vectors {
			if similarity := CompareEmbeddings(probe, vector); similarity > got.Similarity {
				t.Errorf("FindBestMatch() chose %s (%v) but %s scores %v", got.Identity, got.Similarity, entry.Identity, similarity)
			}
		}
	}
}
