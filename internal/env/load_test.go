package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "# comment\n\nPLAIN=value\nQUOTED=\"with spaces\"\nSINGLE='single'\n  SPACED = padded \nBROKEN_LINE\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	for _, key := range []string{"PLAIN", "QUOTED", "SINGLE", "SPACED"} {
		t.Setenv(key, "")
	}
	require.NoError(t, Load(path))

	assert.Equal(t, "value", os.Getenv("PLAIN"))
	assert.Equal(t, "with spaces", os.Getenv("QUOTED"))
	assert.Equal(t, "single", os.Getenv("SINGLE"))
	assert.Equal(t, "padded", os.Getenv("SPACED"))
}

func TestLoadMissingFileIsNotAnError(t *testing.T) {
	assert.NoError(t, Load(filepath.Join(t.TempDir(), "absent.env")))
}

func TestParseLine(t *testing.T) {
	_, _, ok := parseLine("# comment")
	assert.False(t, ok)

	_, _, ok = parseLine("no-equals-here")
	assert.False(t, ok)

	key, value, ok := parseLine("KEY=a=b")
	assert.True(t, ok)
	assert.Equal(t, "KEY", key)
	assert.Equal(t, "a=b", value, "only the first = splits")
}
