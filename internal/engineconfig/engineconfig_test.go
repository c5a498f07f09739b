package engineconfig

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	p, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), p)
}

func TestLoadCorruptFileGivesDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	require.NoError(t, os.MkdirAll("config", 0755))
	require.NoError(t, os.WriteFile(Path, []byte("{not json"), 0644))

	p, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), p)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	chdir(t, t.TempDir())

	want := Prefs{
		ShowFPS:           true,
		ShowMemAlloc:      false,
		OrbitRingsVisible: false,
		BloomEnabled:      true,
		AIModel:           "llama-3.3-70b-versatile",
	}
	require.NoError(t, Save(want))

	got, err := Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
