package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDFromContent_Deterministic(t *testing.T) {
	id1 := IDFromContent("some hadith text")
	id2 := IDFromContent("some hadith text")

	assert.Equal(t, id1, id2, "same content should produce the same ID")
}

func TestIDFromContent_DistinctContent(t *testing.T) {
	id1 := IDFromContent("first hadith")
	id2 := IDFromContent("second hadith")

	assert.NotEqual(t, id1, id2, "different content should produce different IDs")
}

func TestIDFromContent_EmptyContent(t *testing.T) {
	// Empty content is still hashable; the mapper never produces it for
	// well-formed rows but the ID function must not panic.
	id := IDFromContent("")
	assert.NotZero(t, id)
}
