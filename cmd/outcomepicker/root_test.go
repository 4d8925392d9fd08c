package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"outcomepicker/internal/catalog"
	"outcomepicker/internal/domain"
)

func TestPrintIDs(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printIDs(&buf, []string{"a", "b"}, false))
	assert.Equal(t, "a\nb\n", buf.String())

	buf.Reset()
	require.NoError(t, printIDs(&buf, []string{"a", "b"}, true))
	assert.Equal(t, "[\"a\",\"b\"]\n", buf.String())

	buf.Reset()
	require.NoError(t, printIDs(&buf, nil, true))
	assert.Equal(t, "[]\n", buf.String())
}

func TestKnownIDsDropsUnknown(t *testing.T) {
	src := catalog.NewMemorySource([]domain.Outcome{
		{ID: "a", Title: "A"},
		{ID: "b", Title: "B"},
	})

	ids, err := knownIDs(context.Background(), src, []string{"a", " ", "zz", "b"}, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids)

	ids, err = knownIDs(context.Background(), src, nil, 0)
	require.NoError(t, err)
	assert.Nil(t, ids)
}

func TestImportAndList(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)
	file := filepath.Join(dir, "outcomes.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`outcomes:
  - id: m1
    label: MATH.1
    title: Add fractions
  - id: m2
    label: MATH.2
    title: Multiply decimals
`), 0644))
	db := filepath.Join(dir, "catalog.db")
	cfgFile := filepath.Join(dir, "config.toml")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"--config", cfgFile, "import", "--db", db, file})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "Imported 2 outcomes")

	out.Reset()
	rootCmd.SetArgs([]string{"--config", cfgFile, "--source", "sqlite", "--path", db, "list", "fractions"})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "Add fractions")
	assert.NotContains(t, out.String(), "Multiply decimals")
}
