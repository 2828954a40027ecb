package ident_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/loom-ml/loom/internal/ident"
)

func TestNew_Distinct(t *testing.T) {
	seen := make(map[ident.ID]bool)
	for i := 0; i < 1000; i++ {
		id := ident.New()
		assert.False(t, seen[id], "duplicate ID after %d draws", i)
		seen[id] = true
	}
}

func TestID_StableAndComparable(t *testing.T) {
	id := ident.New()
	copied := id
	assert.Equal(t, id, copied)
	assert.Equal(t, id.String(), copied.String())
	assert.NotEmpty(t, id.String())
}
