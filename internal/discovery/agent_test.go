package discovery

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"starsystem/internal/body"
	"starsystem/internal/snapshot"
)

const sampleReply = `{"id":"kepler-veil","name":"Kepler Veil","class":"ice",` +
	`"visual":{"primary":"#9fd8e8","secondary":"#3c6b8a","atmosphere":"#6fb4d8","rings":false}}`

func TestParseRecordPlain(t *testing.T) {
	rec, err := ParseRecord(sampleReply)
	require.NoError(t, err)
	assert.Equal(t, "kepler-veil", rec.ID)
	assert.Equal(t, "Kepler Veil", rec.Name)
	assert.Equal(t, "ice", rec.Class)
	assert.Equal(t, "#9fd8e8", rec.Visual.Primary)
	assert.False(t, rec.Visual.Rings)
}

func TestParseRecordToleratesMarkdownFence(t *testing.T) {
	rec, err := ParseRecord("```json\n" + sampleReply + "\n```")
	require.NoError(t, err)
	assert.Equal(t, "kepler-veil", rec.ID)
}

func TestParseRecordToleratesSurroundingProse(t *testing.T) {
	rec, err := ParseRecord("Here is your body:\n" + sampleReply + "\nEnjoy!")
	require.NoError(t, err)
	assert.Equal(t, "kepler-veil", rec.ID)
}

func TestParseRecordDefaults(t *testing.T) {
	rec, err := ParseRecord(`{"id":"bare"}`)
	require.NoError(t, err)
	assert.Equal(t, "bare", rec.Name, "name defaults to id")
	assert.Equal(t, "rocky", rec.Class)
}

func TestParseRecordRejectsBadReplies(t *testing.T) {
	_, err := ParseRecord("I cannot help with that.")
	assert.Error(t, err)

	_, err = ParseRecord(`{"name":"No ID"}`)
	assert.Error(t, err)

	_, err = ParseRecord(`{"id":"broken"`)
	assert.Error(t, err)
}

type fakeClient struct {
	reply string
	err   error

	gotModel  string
	gotPrompt string
}

func (f *fakeClient) Complete(ctx context.Context, model, systemPrompt, userMessage string) (string, error) {
	f.gotModel = model
	f.gotPrompt = userMessage
	return f.reply, f.err
}

func TestDiscoverAppendsToSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bodies.yaml")
	require.NoError(t, snapshot.Save(path, []body.Record{{ID: "cinder", Name: "Cinder", Class: "rocky"}}))

	client := &fakeClient{reply: sampleReply}
	a := New(client, func() string { return "test-model" }, path)

	summary, err := a.Discover(context.Background(), "an icy veiled world")
	require.NoError(t, err)
	assert.Contains(t, summary, "Kepler Veil")
	assert.Equal(t, "test-model", client.gotModel)
	assert.Equal(t, "an icy veiled world", client.gotPrompt)

	records, err := snapshot.Load(path)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "kepler-veil", records[1].ID)
}

func TestDiscoverRenamesCollidingID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bodies.yaml")
	require.NoError(t, snapshot.Save(path, []body.Record{{ID: "kepler-veil", Name: "Original"}}))

	a := New(&fakeClient{reply: sampleReply}, func() string { return "" }, path)
	_, err := a.Discover(context.Background(), "another one")
	require.NoError(t, err)

	records, err := snapshot.Load(path)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "kepler-veil-2", records[1].ID)
}

func TestDiscoverPropagatesClientError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bodies.yaml")
	require.NoError(t, snapshot.Save(path, nil))

	a := New(&fakeClient{err: context.DeadlineExceeded}, func() string { return "" }, path)
	_, err := a.Discover(context.Background(), "anything")
	assert.Error(t, err)

	records, loadErr := snapshot.Load(path)
	require.NoError(t, loadErr)
	assert.Empty(t, records, "a failed request must not touch the file")
}

func TestFallbackUsesSecondaryOnError(t *testing.T) {
	primary := &fakeClient{err: context.DeadlineExceeded}
	secondary := &fakeClient{reply: "ok"}
	f := &Fallback{Primary: primary, Secondary: secondary}

	out, err := f.Complete(context.Background(), "m", "s", "u")
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
}
