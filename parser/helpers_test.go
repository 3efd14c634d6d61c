package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "registry.xml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))
	return path
}
