package internal

import (
	"maps"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIterSeq2Concat(t *testing.T) {
	assert := assert.New(t)

	first := map[string]int{"a": 1}
	second := map[string]int{"b": 2, "c": 3}

	merged := map[string]int{}
	for key, value := range IterSeq2Concat(maps.All(first), maps.All(second)) {
		merged[key] = value
	}
	assert.Equal(map[string]int{"a": 1, "b": 2, "c": 3}, merged)

	// early termination
	count := 0
	for range IterSeq2Concat(maps.All(first), maps.All(second)) {
		count++
		break
	}
	assert.Equal(1, count)
}
