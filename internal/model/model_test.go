package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeModelDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

const businessLayer = `businessServices:
  - id: service-1
    name: Order Service
    motivation:
      supports-goals:
        - goal-1
    relationships:
      - targetId: service-2
        predicate: depends-on
  - id: service-2
    name: Billing Service
`

const motivationLayer = `goals:
  - id: goal-1
    type: goal
    name: Fast checkout
`

func TestLoad(t *testing.T) {
	dir := writeModelDir(t, map[string]string{
		"02-business-layer.yaml": businessLayer,
		"01-motivation.yml":      motivationLayer,
		"README.md":              "ignored",
	})

	store, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"01-motivation", "02-business-layer"}, store.Layers())
	assert.Equal(t, 3, store.ElementCount())
	assert.Equal(t, dir, store.Dir())
}

func TestLoad_MissingDirectory(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read model directory")
}

func TestLoad_MalformedYAML(t *testing.T) {
	dir := writeModelDir(t, map[string]string{
		"02-business-layer.yaml": "businessServices:\n  - id: [broken",
	})

	_, err := Load(dir)
	require.Error(t, err)
}

func TestGetElement(t *testing.T) {
	dir := writeModelDir(t, map[string]string{
		"02-business-layer.yaml": businessLayer,
	})

	store, err := Load(dir)
	require.NoError(t, err)

	e := store.GetElement("service-1")
	require.NotNil(t, e)
	assert.Equal(t, "02-business-layer", e.Layer)
	assert.Equal(t, "Order Service", e.Data["name"])

	assert.Nil(t, store.GetElement("service-99"))
}

func TestRelationships(t *testing.T) {
	dir := writeModelDir(t, map[string]string{
		"02-business-layer.yaml": businessLayer,
	})

	store, err := Load(dir)
	require.NoError(t, err)

	rels := store.GetElement("service-1").Relationships()
	require.Len(t, rels, 1)
	assert.Equal(t, Relationship{TargetID: "service-2", Predicate: "depends-on"}, rels[0])

	assert.Empty(t, store.GetElement("service-2").Relationships())
}

func TestRelationships_SkipsMalformedEntries(t *testing.T) {
	e := &Element{
		ID: "x",
		Data: map[string]any{
			"relationships": []any{
				map[string]any{"targetId": "a", "predicate": "depends-on"},
				map[string]any{"targetId": "b"},
				map[string]any{"predicate": "depends-on"},
				"not a mapping",
			},
		},
	}

	rels := e.Relationships()
	require.Len(t, rels, 1)
	assert.Equal(t, "a", rels[0].TargetID)
}

func TestSnapshot(t *testing.T) {
	dir := writeModelDir(t, map[string]string{
		"02-business-layer.yaml": businessLayer,
		"01-motivation.yaml":     motivationLayer,
	})

	store, err := Load(dir)
	require.NoError(t, err)

	snapshot := store.Snapshot()
	require.Contains(t, snapshot, "02-business-layer")
	require.Len(t, snapshot["02-business-layer"]["businessServices"], 2)
	assert.Equal(t, "service-1", snapshot["02-business-layer"]["businessServices"][0]["id"])
}

func TestElements_Sorted(t *testing.T) {
	dir := writeModelDir(t, map[string]string{
		"02-business-layer.yaml": businessLayer,
		"01-motivation.yaml":     motivationLayer,
	})

	store, err := Load(dir)
	require.NoError(t, err)

	elements := store.Elements()
	require.Len(t, elements, 3)
	assert.Equal(t, "goal-1", elements[0].ID)
	assert.Equal(t, "service-1", elements[1].ID)
	assert.Equal(t, "service-2", elements[2].ID)
}
