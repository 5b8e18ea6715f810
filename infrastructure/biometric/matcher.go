package biometric

import (
	"gonum.org/v1/gonum/floats"

	"veriface.io/infrastructure/biometric/types"
)

// DefaultMatchThreshold is the minimum cosine similarity an enrolled identity
// must reach before it is reported as a match.
const DefaultMatchThreshold = 0.45

// FaceMatcher compares probe embeddings against an enrolled gallery.
type FaceMatcher struct {
	Threshold float64
}

func NewFaceMatcher(threshold float64) *FaceMatcher {
	if threshold <= 0 {
		threshold = DefaultMatchThreshold
	}
	return &FaceMatcher{Threshold: threshold}
}

// CompareEmbeddings returns the cosine similarity of two embeddings clamped
// to [0,1]. Enrolled vectors are unit-normalized, so the negative half of the
// cosine range never describes a meaningful match and is collapsed to zero.
// Zero-norm or length-mismatched inputs yield 0 rather than an error.
func CompareEmbeddings(a, b types.EmbeddingVector) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	normA := floats.Norm(a, 2)
	normB := floats.Norm(b, 2)
	if normA == 0 || normB == 0 {
		return 0
	}
	return clamp01(floats.Dot(a, b) / (normA * normB))
}

// FindBestMatch scans the gallery in order and returns the identity with the
// highest similarity at or above the matcher threshold, or nil when nothing
// clears it. Identities enrolled with several vectors score their maximum.
// The running best only advances on strictly greater similarity, so ties keep
// the first-seen entry.
func (fm *FaceMatcher) FindBestMatch(probe types.EmbeddingVector, gallery []types.GalleryEntry) *types.MatchCandidate {
	if len(probe) == 0 || len(gallery) == 0 {
		return nil
	}

	var best *types.MatchCandidate
	bestSimilarity := -1.0
	for _, entry := range gallery {
		similarity := 0.0
		for _, vector := range entry.Vectors {
			if s := CompareEmbeddings(probe, vector); s > similarity {
				similarity = s
			}
		}
		if similarity >= fm.Threshold && similarity > bestSimilarity {
			bestSimilarity = similarity
			best = &types.MatchCandidate{Identity: entry.Identity, Similarity: similarity}
		}
	}
	return best
}
