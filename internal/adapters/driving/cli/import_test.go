package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportCmd_Use(t *testing.T) {
	assert.Equal(t, "import <corpus.yaml>", importCmd.Use)
}

func TestImportCmd_Imports(t *testing.T) {
	env, cleanup := setupTestServices()
	defer cleanup()

	out, _, err := execute("import", "corpus.yaml")

	require.NoError(t, err)
	assert.Equal(t, []string{"corpus.yaml"}, env.imported)
	assert.Contains(t, out, "Imported 2 documents and 2 categories from corpus.yaml")
}

func TestImportCmd_Error(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	svc.Import = func(context.Context, string) (ImportSummary, error) {
		return ImportSummary{}, errors.New("decoding corpus")
	}

	_, _, err := execute("import", "bad.yaml")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "import failed")
}

func TestImportCmd_NotConfigured(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	svc.Import = nil

	_, _, err := execute("import", "corpus.yaml")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "import not configured")
}

func TestImportCmd_RequiresPath(t *testing.T) {
	_, _, err := execute("import")

	require.Error(t, err)
}
