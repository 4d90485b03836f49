package book

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rolo-cli/rolo/internal/contact"
	"github.com/rolo-cli/rolo/internal/interchange"
)

// memStore is an in-memory Store double. writes counts WriteAll calls
// so tests can assert that failed operations never reach the store.
type memStore struct {
	contacts []contact.Contact
	writes   int
	readErr  error
	writeErr error
}

func (m *memStore) EnsureExists() error { return nil }

func (m *memStore) ReadAll() ([]contact.Contact, error) {
	if m.readErr != nil {
		return nil, m.readErr
	}
	out := make([]contact.Contact, len(m.contacts))
	copy(out, m.contacts)
	return out, nil
}

func (m *memStore) WriteAll(contacts []contact.Contact) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.writes++
	m.contacts = make([]contact.Contact, len(contacts))
	copy(m.contacts, contacts)
	return nil
}

// recorder is an audit.Logger double collecting formatted entries.
type recorder struct {
	infos  []string
	errors []string
}

func (r *recorder) Info(msg string)  { r.infos = append(r.infos, msg) }
func (r *recorder) Error(msg string) { r.errors = append(r.errors, msg) }

func seeded() *memStore {
	return &memStore{contacts: []contact.Contact{
		{Name: "Ada Lovelace", Phone: "111", Email: "ada@example.org"},
		{Name: "Grace Hopper", Phone: "222", Email: "grace@example.org"},
		{Name: "ada lovelace", Phone: "333", Email: "ada2@example.org"},
	}}
}

func TestAdd_AppendsAndLogs(t *testing.T) {
	st := seeded()
	log := &recorder{}
	b := New(st, log)

	require.NoError(t, b.Add("  Alan Turing ", " 444 ", " alan@example.org "))

	require.Len(t, st.contacts, 4)
	assert.Equal(t, contact.Contact{Name: "Alan Turing", Phone: "444", Email: "alan@example.org"}, st.contacts[3])
	assert.Equal(t, []string{"Added contact: Alan Turing"}, log.infos)
}

func TestAdd_BlankFieldWritesNothing(t *testing.T) {
	st := seeded()
	log := &recorder{}
	b := New(st, log)

	err := b.Add("Alan", "   ", "alan@example.org")

	assert.ErrorIs(t, err, contact.ErrBlankField)
	assert.Zero(t, st.writes, "validation failure must not reach the store")
	assert.Len(t, st.contacts, 3)
	assert.Empty(t, log.infos)
	assert.Empty(t, log.errors)
}

func TestSearch_CaseInsensitiveSubstring(t *testing.T) {
	b := New(seeded(), nil)

	found, err := b.Search("  LOVEL ")
	require.NoError(t, err)

	require.Len(t, found, 2)
	assert.Equal(t, "Ada Lovelace", found[0].Name)
	assert.Equal(t, "ada lovelace", found[1].Name)
}

func TestSearch_EmptyTermMatchesAll(t *testing.T) {
	b := New(seeded(), nil)

	found, err := b.Search("")
	require.NoError(t, err)

	assert.Len(t, found, 3)
}

func TestGet_FirstExactMatch(t *testing.T) {
	b := New(seeded(), nil)

	c, err := b.Get("ADA LOVELACE")
	require.NoError(t, err)

	// Two contacts share the name; the first in file order wins.
	assert.Equal(t, "111", c.Phone)
}

func TestGet_NotFound(t *testing.T) {
	b := New(seeded(), nil)

	_, err := b.Get("Babbage")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdate_FirstMatchOnlyBlankKeeps(t *testing.T) {
	st := seeded()
	log := &recorder{}
	b := New(st, log)

	// When only the email is supplied
	updated, err := b.Update("ada lovelace", "", "new@example.org")
	require.NoError(t, err)

	// Then the first match changes email only
	assert.Equal(t, "111", updated.Phone)
	assert.Equal(t, "new@example.org", updated.Email)
	assert.Equal(t, "Ada Lovelace", st.contacts[0].Name, "name is immutable")
	assert.Equal(t, "new@example.org", st.contacts[0].Email)
	assert.Equal(t, "111", st.contacts[0].Phone)

	// And the second matching contact is untouched
	assert.Equal(t, "ada2@example.org", st.contacts[2].Email)
	assert.Equal(t, []string{"Updated contact: ada lovelace"}, log.infos)
}

func TestUpdate_NotFoundWritesNothing(t *testing.T) {
	st := seeded()
	log := &recorder{}
	b := New(st, log)

	_, err := b.Update("Babbage", "999", "")

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Zero(t, st.writes)
	assert.Empty(t, log.infos)
}

func TestDelete_RemovesAllMatchesPreservingOrder(t *testing.T) {
	st := seeded()
	log := &recorder{}
	b := New(st, log)

	removed, err := b.Delete("Ada Lovelace")
	require.NoError(t, err)

	// Delete is whole-set: both case variants go, unlike Update.
	assert.Equal(t, 2, removed)
	require.Len(t, st.contacts, 1)
	assert.Equal(t, "Grace Hopper", st.contacts[0].Name)
	assert.Equal(t, []string{"Deleted contact: Ada Lovelace"}, log.infos)
}

func TestDelete_NotFoundWritesNothing(t *testing.T) {
	st := seeded()
	log := &recorder{}
	b := New(st, log)

	_, err := b.Delete("Babbage")

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Zero(t, st.writes)
	assert.Empty(t, log.infos)
}

func TestExport_EmptySetWritesNothing(t *testing.T) {
	st := &memStore{}
	log := &recorder{}
	b := New(st, log)
	path := filepath.Join(t.TempDir(), "contacts.json")

	n, err := b.Export(path)

	require.NoError(t, err)
	assert.Zero(t, n)
	assert.NoFileExists(t, path)
	assert.Empty(t, log.infos)
}

func TestExportImport_RoundTrip(t *testing.T) {
	st := seeded()
	log := &recorder{}
	b := New(st, log)
	path := filepath.Join(t.TempDir(), "contacts.json")

	exported, err := b.Export(path)
	require.NoError(t, err)
	assert.Equal(t, 3, exported)

	// Mutate, then import the snapshot back.
	_, err = b.Delete("Grace Hopper")
	require.NoError(t, err)

	imported, err := b.Import(path)
	require.NoError(t, err)
	assert.Equal(t, 3, imported)

	want := seeded().contacts
	assert.Equal(t, want, st.contacts, "import fully replaces the store with the exported tuples in order")
	assert.Contains(t, log.infos, "Exported 3 contacts to JSON.")
	assert.Contains(t, log.infos, "Imported 3 contacts from JSON.")
}

func TestImport_MissingFileNotLogged(t *testing.T) {
	st := seeded()
	log := &recorder{}
	b := New(st, log)

	_, err := b.Import(filepath.Join(t.TempDir(), "absent.json"))

	assert.ErrorIs(t, err, interchange.ErrNotFound)
	assert.Zero(t, st.writes)
	assert.Empty(t, log.errors, "a missing interchange file is a user error, not an audit event")
}

func TestImport_BadFormatLogsOneErrorStoreUntouched(t *testing.T) {
	st := seeded()
	log := &recorder{}
	b := New(st, log)

	// A top-level object is not a sequence of objects.
	path := filepath.Join(t.TempDir(), "contacts.json")
	writeFile(t, path, `{"Name": "Ada"}`)

	_, err := b.Import(path)

	assert.ErrorIs(t, err, interchange.ErrBadFormat)
	assert.Zero(t, st.writes)
	assert.Len(t, st.contacts, 3)
	require.Len(t, log.errors, 1)
	assert.Contains(t, log.errors[0], "Import JSON failed:")
}

func TestImport_NullDocumentLogsErrorStoreUntouched(t *testing.T) {
	st := seeded()
	log := &recorder{}
	b := New(st, log)

	// A null document decodes cleanly into a nil slice; it must still
	// be rejected rather than replace the store with an empty set.
	path := filepath.Join(t.TempDir(), "contacts.json")
	writeFile(t, path, `null`)

	n, err := b.Import(path)

	assert.ErrorIs(t, err, interchange.ErrBadFormat)
	assert.Zero(t, n)
	assert.Zero(t, st.writes)
	assert.Len(t, st.contacts, 3)
	require.Len(t, log.errors, 1)
	assert.Contains(t, log.errors[0], "Import JSON failed:")
}

func TestImport_NullElementLogsErrorStoreUntouched(t *testing.T) {
	st := seeded()
	log := &recorder{}
	b := New(st, log)

	path := filepath.Join(t.TempDir(), "contacts.json")
	writeFile(t, path, `[{"Name": "Ada"}, null]`)

	_, err := b.Import(path)

	assert.ErrorIs(t, err, interchange.ErrBadFormat)
	assert.Zero(t, st.writes)
	require.Len(t, log.errors, 1)
}

func TestImport_PermissiveCoercionAllowsBlanks(t *testing.T) {
	st := seeded()
	b := New(st, &recorder{})

	path := filepath.Join(t.TempDir(), "contacts.json")
	writeFile(t, path, `[{"Name": "Ghost"}]`)

	n, err := b.Import(path)
	require.NoError(t, err)

	// Import bypasses the strict creation policy.
	assert.Equal(t, 1, n)
	require.Len(t, st.contacts, 1)
	assert.Equal(t, contact.Contact{Name: "Ghost"}, st.contacts[0])
}

func TestOperations_PropagateStoreErrors(t *testing.T) {
	readErr := errors.New("disk gone")
	b := New(&memStore{readErr: readErr}, nil)

	_, err := b.List()
	assert.ErrorIs(t, err, readErr)

	_, err = b.Search("x")
	assert.ErrorIs(t, err, readErr)

	err = b.Add("a", "b", "c")
	assert.ErrorIs(t, err, readErr)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}
