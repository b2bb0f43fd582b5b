package git

import (
	"context"
	"testing"

	"github.com/jakoblorz/go-factory/internal/filesystem"
	"github.com/stretchr/testify/require"
)

func TestMockGitClient_Clone(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddDir("/workspace/ext")

	client := NewMockGitClient(fs, "/workspace")
	client.AddRemote("https://example.com/zlib.git", map[string][]byte{
		"factory.json":   []byte(`{"name":"zlib"}`),
		"include/zlib.h": []byte("#pragma once"),
		"src/deflate.c":  []byte("int deflate;"),
	})

	require.NoError(t, client.Clone("https://example.com/zlib.git", "ext/zlib"))
	require.True(t, fs.Exists("/workspace/ext/zlib/factory.json"))
	require.True(t, fs.IsDir("/workspace/ext/zlib/include"))

	err := client.Clone("https://example.com/missing.git", "ext/missing")
	require.Error(t, err)
	require.False(t, fs.Exists("/workspace/ext/missing"))

	clones := client.Clones()
	require.Len(t, clones, 2)
	require.True(t, clones[0].Succeeded)
	require.False(t, clones[1].Succeeded)
}

func TestMockGitClient_CanceledContext(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	client := NewMockGitClient(fs, "/workspace")
	client.AddRemote("https://example.com/zlib.git", map[string][]byte{"factory.json": []byte(`{}`)})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := client.WithContext(ctx).Clone("https://example.com/zlib.git", "ext/zlib")
	require.ErrorIs(t, err, context.Canceled)
}
