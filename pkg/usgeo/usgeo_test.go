package usgeo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateName(t *testing.T) {
	name, ok := StateName("fl")
	assert.True(t, ok)
	assert.Equal(t, "Florida", name)

	_, ok = StateName("zz")
	assert.False(t, ok)
}

func TestAbbreviationFor(t *testing.T) {
	abbr, ok := AbbreviationFor("Florida")
	assert.True(t, ok)
	assert.Equal(t, "FL", abbr)

	abbr, ok = AbbreviationFor("  new hampshire ")
	assert.True(t, ok)
	assert.Equal(t, "NH", abbr)

	_, ok = AbbreviationFor("atlantis")
	assert.False(t, ok)
}

func TestNormalizeState(t *testing.T) {
	assert.Equal(t, "FL", NormalizeState(" fl "))
	assert.Equal(t, "FL", NormalizeState("Florida"))
	assert.Equal(t, "XX", NormalizeState("xx"))
}

func TestAdjacency_Symmetric(t *testing.T) {
	for state, neighbors := range stateAdjacency {
		for _, n := range neighbors {
			assert.Containsf(t, stateAdjacency[n], state,
				"%s lists %s but not the reverse", state, n)
		}
	}
}

func TestAdjacency_NonContiguousStatesEmpty(t *testing.T) {
	assert.Empty(t, AdjacentStates("AK"))
	assert.Empty(t, AdjacentStates("HI"))
}

func TestAdjacency_ReturnsCopy(t *testing.T) {
	adj := AdjacentStates("FL")
	adj[0] = "XX"
	assert.NotContains(t, AdjacentStates("FL"), "XX")
}

func TestIsZipCode(t *testing.T) {
	assert.True(t, IsZipCode("33101"))
	assert.False(t, IsZipCode("3310"))
	assert.False(t, IsZipCode("331011"))
	assert.False(t, IsZipCode("3310a"))
	assert.False(t, IsZipCode(""))
}

func TestZipPrefix(t *testing.T) {
	assert.Equal(t, "331", ZipPrefix("33101"))
	assert.Equal(t, "", ZipPrefix("33"))
}
