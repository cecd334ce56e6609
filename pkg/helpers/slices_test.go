package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafeFirstN(t *testing.T) {
	assert.Equal(t, []int{1, 2}, SafeFirstN([]int{1, 2, 3}, 2))
	assert.Equal(t, []int{1, 2, 3}, SafeFirstN([]int{1, 2, 3}, 5))
	assert.Empty(t, SafeFirstN([]int{1, 2, 3}, 0))
}

func TestBatch(t *testing.T) {
	batches := Batch([]int{1, 2, 3, 4, 5}, 2)
	assert.Len(t, batches, 3)
	assert.Equal(t, []int{1, 2}, batches[0])
	assert.Equal(t, []int{5}, batches[2])

	assert.Empty(t, Batch([]int{}, 2))
}
