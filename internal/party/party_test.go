package party

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeParty(t *testing.T, dir, id, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, id+".json"), []byte(content), 0o644))
}

func TestPartyLookup(t *testing.T) {
	dir := t.TempDir()
	writeParty(t, dir, "acme", `{"name": "ACME Corp", "address": "1 Main St", "tax_id": "CZ123"}`)

	store := NewStore(dir)
	fields, err := store.Party("acme")
	require.NoError(t, err)
	assert.Equal(t, "ACME Corp", fields["name"])
	assert.Equal(t, "CZ123", fields["tax_id"])
}

func TestPartyUnknown(t *testing.T) {
	store := NewStore(t.TempDir())
	_, err := store.Party("nobody")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownParty)
}

func TestPartyList(t *testing.T) {
	dir := t.TempDir()
	writeParty(t, dir, "zeta", `{}`)
	writeParty(t, dir, "acme", `{}`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	store := NewStore(dir)
	ids, err := store.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"acme", "zeta"}, ids)
}
