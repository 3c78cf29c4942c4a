//go:build unit

package workingcopy_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/notesync/internal/infrastructure/repositories/workingcopy"
)

func TestFsnotifyWorkingCopyRepositoryReadWrite(t *testing.T) {
	t.Parallel()

	t.Run("should write and read back the content", func(t *testing.T) {
		t.Parallel()

		// given
		repo := workingcopy.NewFsnotifyWorkingCopyRepository()
		path := filepath.Join(t.TempDir(), "idea.md")

		// when
		err := repo.Write(path, "# idea\n")
		content, readErr := repo.Read(path)

		// then
		require.NoError(t, err)
		require.NoError(t, readErr)
		assert.Equal(t, "# idea\n", content)
		info, statErr := os.Stat(path)
		require.NoError(t, statErr)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	})

	t.Run("should fail to read a missing file", func(t *testing.T) {
		t.Parallel()

		// given
		repo := workingcopy.NewFsnotifyWorkingCopyRepository()

		// when
		_, err := repo.Read(filepath.Join(t.TempDir(), "missing.md"))

		// then
		require.Error(t, err)
	})
}

func TestFsnotifyWorkingCopyRepositoryWatch(t *testing.T) {
	t.Parallel()

	t.Run("should report changed content and stop with the context", func(t *testing.T) {
		t.Parallel()

		// given
		repo := workingcopy.NewFsnotifyWorkingCopyRepository()
		dir := t.TempDir()
		path := filepath.Join(dir, "idea.md")
		other := filepath.Join(dir, "other.md")
		require.NoError(t, repo.Write(path, "v1"))

		ctx, cancel := context.WithCancel(context.Background())
		changes := make(chan string, 256)
		done := make(chan error, 1)
		go func() {
			done <- repo.Watch(ctx, path, func(content string) {
				select {
				case changes <- content:
				default:
				}
			})
		}()

		// when
		var got string
		attempt := 1
		assert.Eventually(t, func() bool {
			// keep writing fresh content until the watcher has been registered
			attempt++
			_ = os.WriteFile(other, []byte("ignored"), 0o600)
			_ = os.WriteFile(path, []byte(fmt.Sprintf("v%d", attempt)), 0o600)
			for {
				select {
				case content := <-changes:
					if content != "" {
						got = content
						return true
					}
				default:
					return false
				}
			}
		}, 5*time.Second, 50*time.Millisecond)
		cancel()

		// then
		assert.Regexp(t, `^v[0-9]+$`, got)
		assert.NotEqual(t, "v1", got)
		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("watcher did not stop after cancel")
		}
	})
}
