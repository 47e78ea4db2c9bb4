package wiregen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeGoFile(t *testing.T, dir, name, src string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(src), 0666))
}

func TestFindTypes(t *testing.T) {
	dir := t.TempDir()
	writeGoFile(t, dir, "types.go", `package content

type EncryptedFile struct {
	URL string
}

type helper int
`)
	writeGoFile(t, dir, "content.gen.go", `package content

type AudioInfo struct{}
`)

	names, err := FindTypes(dir, "content", []string{"content.gen.go"})
	require.NoError(t, err)
	assert.Equal(t, []string{"EncryptedFile", "helper"}, names)

	names, err = FindTypes(dir, "content", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"AudioInfo", "EncryptedFile", "helper"}, names)
}

func TestFindTypesUnknownPackage(t *testing.T) {
	dir := t.TempDir()
	writeGoFile(t, dir, "types.go", "package content\n")
	_, err := FindTypes(dir, "other", nil)
	require.Error(t, err)
}
