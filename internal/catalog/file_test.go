package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFileYAMLList(t *testing.T) {
	path := writeFile(t, "outcomes.yaml", `
- id: m1
  label: MATH.1
  title: Add fractions
  description: Add fractions with like denominators
- label: SCI.1
  title: Photosynthesis
`)
	outcomes, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, outcomes, 2)
	assert.Equal(t, "m1", outcomes[0].ID)
	assert.Equal(t, "Add fractions with like denominators", outcomes[0].Description)

	_, err = uuid.Parse(outcomes[1].ID)
	assert.NoError(t, err, "missing ids are generated")
}

func TestLoadFileYAMLDocument(t *testing.T) {
	path := writeFile(t, "outcomes.yml", `
outcomes:
  - id: a
    title: Alpha
  - id: a
    title: Alpha again
  - id: b
    title: Beta
`)
	outcomes, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, outcomes, 2)
	assert.Equal(t, "Alpha again", outcomes[0].Title, "duplicates keep the last occurrence")
	assert.Equal(t, "b", outcomes[1].ID)
}

func TestLoadFileJSON(t *testing.T) {
	list := writeFile(t, "list.json", `[{"id":"a","title":"Alpha"},{"id":" b ","title":"Beta"}]`)
	outcomes, err := LoadFile(list)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, []string{outcomes[0].ID, outcomes[1].ID})

	doc := writeFile(t, "doc.json", `{"outcomes":[{"id":"c","label":"C.1","title":"Gamma"}]}`)
	outcomes, err = LoadFile(doc)
	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	assert.Equal(t, "C.1", outcomes[0].Label)
}

func TestLoadFileErrors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "read catalog file")

	_, err = LoadFile(writeFile(t, "outcomes.csv", "id,title"))
	assert.ErrorContains(t, err, "unsupported extension")

	_, err = LoadFile(writeFile(t, "broken.json", "[{"))
	assert.ErrorContains(t, err, "parse catalog file")
}

func TestLoadFileEmptyYAML(t *testing.T) {
	outcomes, err := LoadFile(writeFile(t, "empty.yaml", ""))
	require.NoError(t, err)
	assert.Empty(t, outcomes)
}
