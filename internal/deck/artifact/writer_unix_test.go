//go:build unix

package artifact

import (
	"context"
	"os"
	"syscall"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yungbote/deckgen-backend/internal/deck/pptx"
)

// crossDeviceOnce fails the first rename with EXDEV and hands later calls
// to next.
func crossDeviceOnce(next func(string, string) error) func(string, string) error {
	calls := 0
	return func(oldpath, newpath string) error {
		calls++
		if calls == 1 {
			return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: syscall.EXDEV}
		}
		return next(oldpath, newpath)
	}
}

func TestPersistStagesInDestinationAcrossDevices(t *testing.T) {
	t.Parallel()
	dest := t.TempDir()
	scratch := t.TempDir()

	w := NewWriter(pptx.New(), WithScratchDir(scratch), WithRename(crossDeviceOnce(os.Rename)))
	art, err := w.Persist(context.Background(), testDoc(2), dest)
	require.NoError(t, err)

	require.Equal(t, []string{art.Name}, listDir(t, dest))
	require.Empty(t, listDir(t, scratch))
	info, err := os.Stat(art.Path)
	require.NoError(t, err)
	require.Equal(t, info.Size(), art.Bytes)
	require.Equal(t, 2, art.Pages)
}

func TestPersistCrossDeviceRetryFailureCleansUp(t *testing.T) {
	t.Parallel()
	dest := t.TempDir()
	scratch := t.TempDir()

	failing := func(oldpath, newpath string) error {
		return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: syscall.EIO}
	}
	w := NewWriter(pptx.New(), WithScratchDir(scratch), WithRename(crossDeviceOnce(failing)))
	_, err := w.Persist(context.Background(), testDoc(1), dest)

	var pe *Error
	require.ErrorAs(t, err, &pe)
	require.Equal(t, KindIO, pe.Kind)
	require.Equal(t, "rename", pe.Op)
	require.Empty(t, listDir(t, dest))
	require.Empty(t, listDir(t, scratch))
}
