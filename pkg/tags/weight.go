// Package tags computes display weights for tag clouds.
package tags

// Tier bounds for the tag cloud. A tag's weight is derived from its
// usage count relative to the most used tag.
const (
	MinTier = 1
	MaxTier = 5
)

// TagCount pairs a tag name with its usage count.
type TagCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// WeightFor maps a single count onto a tier given the maximum count
// across all tags. Thresholds are exclusive: a tag at exactly 80% of
// the maximum lands in tier 4, not 5.
func WeightFor(count, maxCount int) int {
	if maxCount < 1 {
		maxCount = 1
	}
	relative := float64(count) / float64(maxCount) * 100

	switch {
	case relative > 80:
		return 5
	case relative > 60:
		return 4
	case relative > 40:
		return 3
	case relative > 20:
		return 2
	default:
		return MinTier
	}
}

// ComputeWeights assigns a tier from 1 to 5 to every tag based on its
// count relative to the most used tag. An empty input yields an empty
// map. The result depends only on the input, so recomputing over the
// same counts always yields the same weights.
func ComputeWeights(counts map[string]int) map[string]int {
	weights := make(map[string]int, len(counts))
	if len(counts) == 0 {
		return weights
	}

	maxCount := 0
	for _, count := range counts {
		if count > maxCount {
			maxCount = count
		}
	}

	for name, count := range counts {
		weights[name] = WeightFor(count, maxCount)
	}
	return weights
}
