package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/scribe-cli/internal/adapters/driving/watch"
	"github.com/custodia-labs/scribe-cli/internal/core/domain"
)

func writeAudio(t *testing.T, dir string, names ...string) []string {
	t.Helper()
	paths := make([]string, len(names))
	for i, name := range names {
		p := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte("RIFF"), 0644))
		paths[i] = p
	}
	return paths
}

// syncBuffer is a bytes.Buffer safe for a writer goroutine and a reader.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestTranscribeCmd_Flags(t *testing.T) {
	w := transcribeCmd.Flags().Lookup("watch")
	require.NotNil(t, w)
	assert.Equal(t, "w", w.Shorthand)

	quiet := transcribeCmd.Flags().Lookup("quiet-period")
	require.NotNil(t, quiet)
	assert.Equal(t, watch.DefaultQuietPeriod.String(), quiet.DefValue)
}

func TestTranscribeCmd_Success(t *testing.T) {
	api := &mockAPI{}
	cleanup := setupTestServicesWith(api)
	defer cleanup()

	paths := writeAudio(t, t.TempDir(), "a.wav", "b.mp3")

	out, err := execute("transcribe", paths[0], paths[1])

	require.NoError(t, err)
	assert.Contains(t, out, "Uploading 2 file(s)...")
	assert.Contains(t, out, "Transcription: Success")
	assert.Equal(t, [][]string{{"a.wav", "b.mp3"}}, api.Uploads())
}

func TestTranscribeCmd_Glob(t *testing.T) {
	api := &mockAPI{}
	cleanup := setupTestServicesWith(api)
	defer cleanup()

	dir := t.TempDir()
	writeAudio(t, dir, "calls/one.wav", "calls/deep/two.wav", "notes.txt")

	_, err := execute("transcribe", filepath.Join(dir, "**", "*.wav"))

	require.NoError(t, err)
	require.Len(t, api.Uploads(), 1)
	assert.ElementsMatch(t, []string{"one.wav", "two.wav"}, api.Uploads()[0])
}

func TestTranscribeCmd_APIError(t *testing.T) {
	api := &mockAPI{transcribeErr: fmt.Errorf("upload: %w", domain.ErrProtocol)}
	cleanup := setupTestServicesWith(api)
	defer cleanup()

	paths := writeAudio(t, t.TempDir(), "a.wav")

	out, err := execute("transcribe", paths[0])

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrProtocol)
	assert.Contains(t, out, "Transcription: Error")
}

func TestTranscribeCmd_NoArgs(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute("transcribe")

	assert.ErrorIs(t, err, domain.ErrNoFiles)
}

func TestTranscribeCmd_NoMatch(t *testing.T) {
	api := &mockAPI{}
	cleanup := setupTestServicesWith(api)
	defer cleanup()

	_, err := execute("transcribe", filepath.Join(t.TempDir(), "*.wav"))

	assert.ErrorIs(t, err, domain.ErrNoFiles)
	assert.Empty(t, api.Uploads())
}

func TestTranscribeCmd_RequiresAPI(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	SetServices(&Services{APIErr: domain.ErrAPIURLNotConfigured})

	_, err := execute("transcribe", "a.wav")

	assert.ErrorIs(t, err, domain.ErrAPIURLNotConfigured)
}

func TestTranscribeCmd_WatchMissingDir(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute("transcribe", "--watch", filepath.Join(t.TempDir(), "missing"))

	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWatchAndUpload(t *testing.T) {
	api := &mockAPI{}
	cleanup := setupTestServicesWith(api)
	defer cleanup()

	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out := &syncBuffer{}
	done := make(chan error, 1)
	go func() {
		done <- watchAndUpload(ctx, out, watch.New(dir, 20*time.Millisecond))
	}()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "Watching")
	}, 2*time.Second, 10*time.Millisecond)

	writeAudio(t, dir, "new.wav", "ignored.txt")

	assert.Eventually(t, func() bool {
		return len(api.Uploads()) > 0
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, []string{"new.wav"}, api.Uploads()[0])

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watchAndUpload did not return after cancel")
	}
	assert.Contains(t, out.String(), "Transcription: Success")
}
