package migration

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreate_WritesUpDownPair(t *testing.T) {
	dir := t.TempDir()

	mf, err := Create(dir, "add review tables")
	require.NoError(t, err)

	assert.Len(t, mf.Version, 14)
	assert.True(t, strings.HasSuffix(mf.UpPath, "_add_review_tables.up.sql"))
	assert.True(t, strings.HasSuffix(mf.DownPath, "_add_review_tables.down.sql"))

	up, err := os.ReadFile(mf.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(up), "-- add review tables")

	_, err = os.Stat(mf.DownPath)
	assert.NoError(t, err)
}

func TestCreate_MakesMissingDirectory(t *testing.T) {
	dir := t.TempDir() + "/nested/migrations"

	_, err := Create(dir, "init")
	require.NoError(t, err)

	names, err := List(dir)
	require.NoError(t, err)
	assert.Len(t, names, 1)
}

func TestList_MissingDirectoryIsEmpty(t *testing.T) {
	names, err := List(t.TempDir() + "/does-not-exist")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestList_IgnoresNonMigrationFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(dir+"/000001_init.up.sql", nil, 0644))
	require.NoError(t, os.WriteFile(dir+"/000001_init.down.sql", nil, 0644))
	require.NoError(t, os.WriteFile(dir+"/README.md", nil, 0644))

	names, err := List(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"000001_init"}, names)
}

func TestSanitizeName(t *testing.T) {
	cases := map[string]string{
		"Add Promo Codes":    "add_promo_codes",
		"add--promo  codes":  "add_promo_codes",
		"  spaced out  ":     "spaced_out",
		"MixedCase123":       "mixedcase123",
		"drop!legacy@tables": "droplegacytables",
	}
	for input, want := range cases {
		assert.Equal(t, want, sanitizeName(input), "input %q", input)
	}
}
