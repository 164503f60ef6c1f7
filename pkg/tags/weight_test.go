package tags

import (
	"reflect"
	"testing"
)

func TestComputeWeightsEmpty(t *testing.T) {
	weights := ComputeWeights(nil)
	if len(weights) != 0 {
		t.Errorf("Expected empty weights, got %v", weights)
	}

	weights = ComputeWeights(map[string]int{})
	if len(weights) != 0 {
		t.Errorf("Expected empty weights, got %v", weights)
	}
}

func TestComputeWeightsTiers(t *testing.T) {
	counts := map[string]int{
		"go":     10,
		"badger": 5,
		"bleve":  20,
	}

	weights := ComputeWeights(counts)

	// 10/20 = 50% -> tier 3, 5/20 = 25% -> tier 2, 20/20 = 100% -> tier 5
	expected := map[string]int{
		"go":     3,
		"badger": 2,
		"bleve":  5,
	}
	if !reflect.DeepEqual(weights, expected) {
		t.Errorf("Expected %v, got %v", expected, weights)
	}
}

func TestComputeWeightsExclusiveBoundaries(t *testing.T) {
	// A count at exactly a boundary percentage falls into the lower tier
	cases := []struct {
		count    int
		maxCount int
		want     int
	}{
		{80, 100, 4},
		{81, 100, 5},
		{60, 100, 3},
		{61, 100, 4},
		{40, 100, 2},
		{41, 100, 3},
		{20, 100, 1},
		{21, 100, 2},
		{0, 100, 1},
		{100, 100, 5},
	}

	for _, tc := range cases {
		got := WeightFor(tc.count, tc.maxCount)
		if got != tc.want {
			t.Errorf("WeightFor(%d, %d) = %d, want %d", tc.count, tc.maxCount, got, tc.want)
		}
	}
}

func TestComputeWeightsSingleTag(t *testing.T) {
	weights := ComputeWeights(map[string]int{"solo": 1})
	if weights["solo"] != 5 {
		t.Errorf("Expected the only tag to get the top tier, got %d", weights["solo"])
	}
}

func TestComputeWeightsZeroCounts(t *testing.T) {
	// All-zero counts must not divide by zero and land in tier 1
	weights := ComputeWeights(map[string]int{"a": 0, "b": 0})
	for name, w := range weights {
		if w != 1 {
			t.Errorf("Expected tier 1 for %q, got %d", name, w)
		}
	}
}

func TestComputeWeightsIdempotent(t *testing.T) {
	counts := map[string]int{"x": 7, "y": 3, "z": 9}
	first := ComputeWeights(counts)
	second := ComputeWeights(counts)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Expected identical weights across runs, got %v then %v", first, second)
	}
}
