package graphics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFinishOrdersShutdownBeforeRelease(t *testing.T) {
	var calls []string
	finish(
		func() { calls = append(calls, "loop") },
		func() { calls = append(calls, "shutdown") },
		func() { calls = append(calls, "release") },
	)
	assert.Equal(t, []string{"loop", "shutdown", "release"}, calls)
}

func TestFinishWithoutShutdown(t *testing.T) {
	var calls []string
	finish(
		func() { calls = append(calls, "loop") },
		nil,
		func() { calls = append(calls, "release") },
	)
	assert.Equal(t, []string{"loop", "release"}, calls)
}
