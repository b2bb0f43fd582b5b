package filesystem

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMockFileSystem_MkdirRequiresParent(t *testing.T) {
	mfs := NewMockFileSystem()
	mfs.AddDir("/workspace")

	err := mfs.Mkdir("/workspace/build/debug", 0755)
	require.ErrorIs(t, err, fs.ErrNotExist)

	require.NoError(t, mfs.Mkdir("/workspace/build", 0755))
	require.NoError(t, mfs.Mkdir("/workspace/build/debug", 0755))
	require.True(t, mfs.IsDir("/workspace/build/debug"))

	err = mfs.Mkdir("/workspace/build", 0755)
	require.ErrorIs(t, err, fs.ErrExist)
}

func TestMockFileSystem_FailMkdir(t *testing.T) {
	mfs := NewMockFileSystem()
	mfs.AddDir("/workspace")
	mfs.FailMkdir("/workspace/build", nil)

	err := mfs.Mkdir("/workspace/build", 0755)
	require.Error(t, err)
	require.True(t, errors.Is(err, fs.ErrPermission))
	require.False(t, mfs.Exists("/workspace/build"))
}

func TestMockFileSystem_MkdirAll(t *testing.T) {
	mfs := NewMockFileSystem()
	mfs.AddDir("/workspace")

	require.NoError(t, mfs.MkdirAll("/workspace/out/build/debug", 0755))
	require.Equal(t, []string{
		"/workspace/out",
		"/workspace/out/build",
		"/workspace/out/build/debug",
	}, mfs.Dirs("/workspace/out"))

	// existing directories are fine
	require.NoError(t, mfs.MkdirAll("/workspace/out/build", 0755))

	mfs.AddFile("/workspace/main.c", []byte("int main(void) { return 0; }"))
	require.Error(t, mfs.MkdirAll("/workspace/main.c/obj", 0755))

	mfs.FailMkdir("/workspace/deps", nil)
	err := mfs.MkdirAll("/workspace/deps/ext", 0755)
	require.ErrorIs(t, err, fs.ErrPermission)
	require.False(t, mfs.Exists("/workspace/deps/ext"))
}

func TestMockFileSystem_ReadDirSorted(t *testing.T) {
	mfs := NewMockFileSystem()
	mfs.AddFile("/workspace/src/b.c", []byte("int b;"))
	mfs.AddFile("/workspace/src/a.c", []byte("int a;"))
	mfs.AddDir("/workspace/src/nested")

	entries, err := mfs.ReadDir("/workspace/src")
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	require.Equal(t, []string{"a.c", "b.c", "nested"}, names)
}

func TestRootedFileSystem_ResolvesRelativePaths(t *testing.T) {
	mfs := NewMockFileSystem()
	mfs.AddFile("/workspace/main.c", []byte("int main(void) { return 0; }"))

	rooted := NewRooted(mfs, "/workspace")
	require.True(t, rooted.Exists("main.c"))
	require.True(t, rooted.Exists("./main.c"))
	require.True(t, rooted.Exists("/workspace/main.c"))

	require.NoError(t, rooted.Mkdir("build", 0755))
	require.True(t, mfs.IsDir("/workspace/build"))

	wd, err := rooted.Getwd()
	require.NoError(t, err)
	require.Equal(t, "/workspace", wd)
}
