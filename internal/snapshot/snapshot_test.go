package snapshot

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"starsystem/internal/body"
)

const sampleDoc = `bodies:
  - id: cinder
    name: Cinder
    class: rocky
    visual:
      primary: "#b0643c"
      secondary: "#3a1f14"
      rings: false
  - id: halcyon
    name: Halcyon
    class: gas giant
    visual:
      primary: "#d8b878"
      secondary: "#7a5a34"
      atmosphere: "#e8c890"
      rings: true
`

func TestParse(t *testing.T) {
	records, err := Parse([]byte(sampleDoc))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "cinder", records[0].ID)
	assert.Equal(t, "rocky", records[0].Class)
	assert.False(t, records[0].Visual.Rings)

	assert.Equal(t, "halcyon", records[1].ID)
	assert.True(t, records[1].Visual.Rings)
	assert.Equal(t, "#e8c890", records[1].Visual.Atmosphere)
}

func TestParseMalformed(t *testing.T) {
	_, err := Parse([]byte("bodies: [unclosed"))
	assert.Error(t, err)
}

func TestParseEmptyDocument(t *testing.T) {
	records, err := Parse([]byte(""))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bodies.yaml")
	in := []body.Record{
		{ID: "veil", Name: "Veil", Class: "ice", Visual: body.VisualParams{Primary: "#9fd8e8", Rings: false}},
		{ID: "pyre", Name: "Pyre", Class: "lava", Visual: body.VisualParams{Primary: "#e85a28", Rings: true}},
	}
	require.NoError(t, Save(path, in))

	out, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestWatcherDeliversOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bodies.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleDoc), 0644))

	w, err := Watch(path)
	require.NoError(t, err)
	defer w.Close()

	updated := sampleDoc + `  - id: murmur
    name: Murmur
    class: gas dwarf
`
	require.NoError(t, os.WriteFile(path, []byte(updated), 0644))

	select {
	case records := <-w.C:
		require.Len(t, records, 3)
		assert.Equal(t, "murmur", records[2].ID)
	case <-time.After(3 * time.Second):
		t.Fatal("no snapshot delivered after file change")
	}
}

func TestWatcherReportsMalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bodies.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleDoc), 0644))

	w, err := Watch(path)
	require.NoError(t, err)
	defer w.Close()

	errs := make(chan error, 1)
	w.OnError = func(err error) {
		select {
		case errs <- err:
		default:
		}
	}
	require.NoError(t, os.WriteFile(path, []byte("bodies: [broken"), 0644))

	select {
	case err := <-errs:
		assert.Error(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("parse failure was not reported")
	}
	// The bad write must not have delivered a snapshot.
	select {
	case records := <-w.C:
		t.Fatalf("unexpected snapshot delivered: %v", records)
	default:
	}
}

func TestWatcherIgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bodies.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleDoc), 0644))

	w, err := Watch(path)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("bodies: []"), 0644))

	select {
	case records := <-w.C:
		t.Fatalf("unexpected snapshot delivered: %v", records)
	case <-time.After(300 * time.Millisecond):
	}
}
