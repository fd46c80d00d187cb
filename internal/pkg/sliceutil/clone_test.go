package sliceutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClone(t *testing.T) {
	assert.Nil(t, Clone([]string{}))
	assert.Nil(t, Clone[int](nil))

	src := []int{1, 2, 3}
	dst := Clone(src)
	dst[0] = 9
	assert.Equal(t, []int{1, 2, 3}, src)
	assert.Equal(t, []int{9, 2, 3}, dst)
}
