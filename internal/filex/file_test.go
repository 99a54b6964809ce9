package filex

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) func() {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	return func() { _ = os.Chdir(old) }
}

func TestEnsureParentDir_CreatesNestedDirectories(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "data", "shop", "footcap.db")

	got, err := EnsureParentDir(path)
	require.NoError(t, err)
	require.Equal(t, path, got)

	fi, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	require.True(t, fi.IsDir(), "should create a directory")

	if runtime.GOOS != "windows" {
		require.Equal(t, os.FileMode(0o700), fi.Mode().Perm()&0o700)
	}

	_, err = os.Stat(path)
	require.True(t, os.IsNotExist(err), "the file itself is left to the caller")
}

func TestEnsureParentDir_RelativeName(t *testing.T) {
	tmp := t.TempDir()
	defer chdir(t, tmp)()

	got, err := EnsureParentDir("footcap.db")
	require.NoError(t, err)

	want, err := filepath.Abs("footcap.db")
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestEnsureParentDir_Idempotent(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "data", "footcap.db")

	first, err := EnsureParentDir(path)
	require.NoError(t, err)
	second, err := EnsureParentDir(path)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestEnsureParentDir_FailsIfFileBlocksDirectory(t *testing.T) {
	tmp := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "data"), []byte("x"), 0o660))

	_, err := EnsureParentDir(filepath.Join(tmp, "data", "footcap.db"))
	require.Error(t, err, "should fail when a file exists where the directory should be")
}
