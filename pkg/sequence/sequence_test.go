package sequence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterPreservesOrder(t *testing.T) {
	got := From([]int{5, 2, 8, 3, 6}).Filter(func(v int) bool { return v%2 == 0 }).Collect()
	assert.Equal(t, []int{2, 8, 6}, got)
}

func TestCountAndAll(t *testing.T) {
	it := From([]int{1, 2, 3})
	assert.Equal(t, 3, it.Count())
	assert.True(t, it.All(func(v int) bool { return v > 0 }))
	assert.False(t, it.All(func(v int) bool { return v > 1 }))
	assert.True(t, From([]int(nil)).All(func(int) bool { return false }))
}

func TestMap(t *testing.T) {
	got := Map(From([]int{1, 2, 3}), func(v int) float64 { return float64(v) / 2 }).Collect()
	assert.Equal(t, []float64{0.5, 1, 1.5}, got)
}

func TestEarlyBreak(t *testing.T) {
	seen := 0
	for v := range From([]int{1, 2, 3, 4}).Seq() {
		seen++
		if v == 2 {
			break
		}
	}
	assert.Equal(t, 2, seen)
}
