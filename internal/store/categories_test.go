package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/quickspend/internal/logging"
	"fjacquet/quickspend/internal/models"
	"fjacquet/quickspend/internal/parsererror"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func TestNewCategoryRegistry_Defaults(t *testing.T) {
	tests := []struct {
		name    string
		content *string
		warns   bool
	}{
		{name: "in memory"},
		{name: "missing file", content: nil},
		{name: "empty file", content: ptr("")},
		{name: "malformed file", content: ptr("categories: [oops"), warns: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := ""
			if tt.name != "in memory" {
				path = filepath.Join(t.TempDir(), "categories.yaml")
			}
			if tt.content != nil {
				writeFile(t, path, *tt.content)
			}
			logger := logging.NewMockLogger()

			r := NewCategoryRegistry(path, logger)

			assert.Equal(t, models.DefaultCategories, r.ListCategories())
			assert.Equal(t, tt.warns, len(logger.EntriesByLevel("WARN")) > 0)
		})
	}
}

func TestCategoryRegistry_LoadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "categories.yaml")
	writeFile(t, path, `categories:
  - id: 2
    name: Groceries
  - id: 15
    name: Miscellaneous
  - id: 21
    name: " Pets "
  - id: 0
    name: broken
`)

	r := NewCategoryRegistry(path, logging.NewMockLogger())

	assert.Equal(t, []models.Category{{ID: 2, Name: "Groceries"}, {ID: 15, Name: "Miscellaneous"}, {ID: 21, Name: "Pets"}}, r.ListCategories())
	assert.Equal(t, 21, r.ResolveIDByName("Pets"))
	assert.Equal(t, models.MiscellaneousCategoryID, r.ResolveIDByName("Food"))
	assert.Equal(t, models.MiscellaneousCategoryID, r.ResolveIDByName("pets"), "lookup is exact")
	assert.Equal(t, "Unknown", r.NameByID(3))
}

func TestCategoryRegistry_AddRenameRemove(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "categories.yaml")
	r := NewCategoryRegistry(path, logging.NewMockLogger())

	pets, err := r.Add("  Pets ")
	require.NoError(t, err)
	assert.Equal(t, models.Category{ID: 16, Name: "Pets"}, pets)

	travel, err := r.Add("Travel")
	require.NoError(t, err)
	assert.Equal(t, 17, travel.ID)

	require.NoError(t, r.Rename(16, "Animals"))
	assert.Equal(t, "Animals", r.NameByID(16))

	require.NoError(t, r.Remove(17))
	_, ok := r.Lookup(17)
	assert.False(t, ok)

	reloaded := NewCategoryRegistry(path, logging.NewMockLogger())
	assert.Equal(t, r.ListCategories(), reloaded.ListCategories())

	next, err := reloaded.Add("Hobbies")
	require.NoError(t, err)
	assert.Equal(t, 18, next.ID, "removed ids are not reused")
}

func TestCategoryRegistry_RemovedIDNotReusedAfterReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "categories.yaml")
	r := NewCategoryRegistry(path, logging.NewMockLogger())

	pets, err := r.Add("Pets")
	require.NoError(t, err)
	require.Equal(t, 16, pets.ID)
	require.NoError(t, r.Remove(pets.ID))

	reloaded := NewCategoryRegistry(path, logging.NewMockLogger())
	travel, err := reloaded.Add("Travel")
	require.NoError(t, err)
	assert.Equal(t, 17, travel.ID)
	assert.Equal(t, models.UnknownCategoryName, reloaded.NameByID(16))
}

func TestCategoryRegistry_LastIDFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "categories.yaml")
	writeFile(t, path, `categories:
  - id: 15
    name: Miscellaneous
  - id: 20
    name: Pets
last_id: 30
`)

	c, err := NewCategoryRegistry(path, logging.NewMockLogger()).Add("Travel")
	require.NoError(t, err)
	assert.Equal(t, 31, c.ID)
}

func TestCategoryRegistry_IDsNeverReuseReserved(t *testing.T) {
	r := NewCategoryRegistry("", nil)
	for _, c := range models.DefaultCategories {
		if c.ID != models.MiscellaneousCategoryID {
			require.NoError(t, r.Remove(c.ID))
		}
	}

	c, err := r.Add("Fresh")
	require.NoError(t, err)
	assert.Equal(t, 16, c.ID)
}

func TestCategoryRegistry_ValidationErrors(t *testing.T) {
	r := NewCategoryRegistry("", nil)

	tests := []struct {
		name string
		run  func() error
	}{
		{name: "add empty", run: func() error { _, err := r.Add("   "); return err }},
		{name: "add duplicate", run: func() error { _, err := r.Add("Food"); return err }},
		{name: "rename empty", run: func() error { return r.Rename(3, " ") }},
		{name: "rename to existing", run: func() error { return r.Rename(3, "Groceries") }},
		{name: "rename missing", run: func() error { return r.Rename(99, "X") }},
		{name: "remove missing", run: func() error { return r.Remove(99) }},
		{name: "remove fallback", run: func() error { return r.Remove(models.MiscellaneousCategoryID) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var verr *parsererror.ValidationError
			assert.ErrorAs(t, tt.run(), &verr)
		})
	}

	require.NoError(t, r.Rename(3, "Food"), "renaming to its own name is allowed")
	assert.Len(t, r.ListCategories(), 15)
}

func TestCategoryRegistry_WriteFailureKeepsState(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	writeFile(t, blocker, "x")

	r := NewCategoryRegistry(filepath.Join(blocker, "categories.yaml"), logging.NewMockLogger())
	_, err := r.Add("Pets")

	var serr *parsererror.StoreError
	require.ErrorAs(t, err, &serr)
	assert.Len(t, r.ListCategories(), 15)
}

func ptr(s string) *string { return &s }

func TestCategoryRegistry_FindByName(t *testing.T) {
	r := NewCategoryRegistry("", logging.NewMockLogger())

	c, ok := r.FindByName("  groceries ")
	require.True(t, ok)
	assert.Equal(t, 2, c.ID)
	assert.Equal(t, "Groceries", c.Name)

	_, ok = r.FindByName("Yachts")
	assert.False(t, ok)
}
