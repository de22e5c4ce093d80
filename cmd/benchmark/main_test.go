package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/limaJavier/coursegrid/pkg/model"
)

func TestMeasure(t *testing.T) {
	//** Arrange
	tests, inputs := getTests(filepath.Join("..", "..", "pkg", "model", "testdata"))
	require.Len(t, tests, 1)

	//** Act
	result, err := measure(model.CoreEngine, model.ExhaustiveStrategy, 3, tests[0], inputs[0])

	//** Assert
	require.NoError(t, err)
	assert.Equal(t, "core", result.Engine)
	assert.Equal(t, "exhaustive", result.Strategy)
	assert.Equal(t, uint64(3), result.Seed)
	assert.True(t, result.Verified)
	assert.Equal(t, 4, tests[0].Sections)
}

func TestAggregate(t *testing.T) {
	results := []*BenchmarkResult{
		{Engine: "core", Strategy: "random", SuccessRate: 90, Verified: true},
		{Engine: "core", Strategy: "random", SuccessRate: 100, Verified: false},
		{Engine: "core", Strategy: "exhaustive", SuccessRate: 100, Verified: true},
	}

	lines := aggregate(results)

	assert.Equal(t, []string{
		"core/exhaustive: runs 1, success rate 100.00% (std dev 0.00), unverified 0",
		"core/random: runs 2, success rate 95.00% (std dev 7.07), unverified 1",
	}, lines)
}
