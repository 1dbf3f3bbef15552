package search

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pders01/overview/internal/storage"
)

type recordingLauncher struct {
	launched []string
}

func (l *recordingLauncher) Launch(item *storage.Item) error {
	l.launched = append(l.launched, item.ID)
	return nil
}

func setupCatalogStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.NewStore(filepath.Join(t.TempDir(), "search.db"), 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	cat, err := storage.DefaultCatalog()
	require.NoError(t, err)
	require.NoError(t, store.SaveItems(cat.Items))
	return store
}

// fakeProvider records which entry point the system used.
type fakeProvider struct {
	name     string
	ids      []string
	err      error
	initial  int
	sub      int
	lastPrev []string
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) InitialResults(terms []string) ([]string, error) {
	f.initial++
	return f.ids, f.err
}

func (f *fakeProvider) SubsearchResults(previous []string, terms []string) ([]string, error) {
	f.sub++
	f.lastPrev = previous
	return previous, f.err
}

func (f *fakeProvider) ResultMeta(id string) (*ResultMeta, error) {
	return &ResultMeta{ID: id, Name: strings.ToUpper(id)}, nil
}

func (f *fakeProvider) Activate(id string) error { return nil }

func TestIsSubsearch(t *testing.T) {
	tests := []struct {
		name     string
		previous []string
		terms    []string
		want     bool
	}{
		{"no previous", nil, []string{"a"}, false},
		{"longer term", []string{"te"}, []string{"ter"}, true},
		{"extra term", []string{"te"}, []string{"te", "ed"}, true},
		{"fewer terms", []string{"te", "ed"}, []string{"te"}, false},
		{"different prefix", []string{"te"}, []string{"fi"}, false},
		{"shorter term", []string{"ter"}, []string{"te"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSubsearch(tt.previous, tt.terms))
		})
	}
}

func TestTerms(t *testing.T) {
	assert.Equal(t, []string{"text", "edit"}, Terms("  Text   EDIT "))
	assert.Empty(t, Terms("   "))
}

func TestSystem_UsesSubsearchForRefinements(t *testing.T) {
	sys := NewSystem()
	p := &fakeProvider{name: "fake", ids: []string{"x", "y"}}
	sys.RegisterProvider(p)

	res := sys.UpdateSearch("te")
	require.Len(t, res, 1)
	assert.Equal(t, []string{"x", "y"}, res[0].IDs)
	assert.Equal(t, 1, p.initial)

	sys.UpdateSearch("ter")
	assert.Equal(t, 1, p.sub)
	assert.Equal(t, []string{"x", "y"}, p.lastPrev)

	sys.UpdateSearch("fi")
	assert.Equal(t, 2, p.initial)
}

func TestSystem_EmptyTextResets(t *testing.T) {
	sys := NewSystem()
	p := &fakeProvider{name: "fake", ids: []string{"x"}}
	sys.RegisterProvider(p)

	sys.UpdateSearch("te")
	assert.Nil(t, sys.UpdateSearch("  "))

	sys.UpdateSearch("ter")
	assert.Equal(t, 2, p.initial, "a reset search starts fresh")
	assert.Equal(t, 0, p.sub)
}

func TestSystem_ProviderErrorIsReported(t *testing.T) {
	sys := NewSystem()
	broken := &fakeProvider{name: "broken", err: errors.New("boom")}
	ok := &fakeProvider{name: "ok", ids: []string{"a"}}
	sys.RegisterProvider(broken)
	sys.RegisterProvider(ok)

	res := sys.UpdateSearch("a")
	require.Len(t, res, 2)
	assert.Error(t, res[0].Err)
	assert.Equal(t, []string{"a"}, res[1].IDs)

	sys.UpdateSearch("ab")
	assert.Equal(t, 2, broken.initial, "a failed provider is not narrowed")
	assert.Equal(t, 1, ok.sub)
}

func TestCatalogProvider_Ranking(t *testing.T) {
	store := setupCatalogStore(t)
	p := NewCatalogProvider("Applications", storage.KindApplication, store, &recordingLauncher{})

	ids, err := p.InitialResults([]string{"files"})
	require.NoError(t, err)
	require.NotEmpty(t, ids)
	assert.Equal(t, "files", ids[0], "name matches outrank description matches")
	assert.Contains(t, ids, "text-editor")

	ids, err = p.InitialResults([]string{"term"})
	require.NoError(t, err)
	assert.Equal(t, []string{"terminal"}, ids)

	ids, err = p.InitialResults([]string{"zzz"})
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestCatalogProvider_AllTermsMustMatch(t *testing.T) {
	store := setupCatalogStore(t)
	p := NewCatalogProvider("Applications", storage.KindApplication, store, &recordingLauncher{})

	ids, err := p.InitialResults([]string{"sys", "mon"})
	require.NoError(t, err)
	assert.Equal(t, []string{"system-monitor"}, ids)

	ids, err = p.InitialResults([]string{"sys", "calc"})
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestCatalogProvider_KeywordsMatch(t *testing.T) {
	store := setupCatalogStore(t)
	p := NewCatalogProvider("Applications", storage.KindApplication, store, &recordingLauncher{})

	ids, err := p.InitialResults([]string{"shell"})
	require.NoError(t, err)
	assert.Equal(t, []string{"terminal"}, ids)
}

func TestCatalogProvider_SubsearchNarrows(t *testing.T) {
	store := setupCatalogStore(t)
	p := NewCatalogProvider("Applications", storage.KindApplication, store, &recordingLauncher{})

	first, err := p.InitialResults([]string{"te"})
	require.NoError(t, err)
	require.Contains(t, first, "text-editor")

	narrowed, err := p.SubsearchResults(first, []string{"tex"})
	require.NoError(t, err)
	assert.Contains(t, narrowed, "text-editor")
	assert.NotContains(t, narrowed, "terminal")
	for _, id := range narrowed {
		assert.Contains(t, first, id)
	}
}

func TestCatalogProvider_MetaAndActivate(t *testing.T) {
	store := setupCatalogStore(t)
	launcher := &recordingLauncher{}
	p := NewCatalogProvider("Places", storage.KindPlace, store, launcher)

	meta, err := p.ResultMeta("home")
	require.NoError(t, err)
	assert.Equal(t, "Home", meta.Name)
	assert.Equal(t, storage.KindPlace, meta.Kind)

	require.NoError(t, p.Activate("home"))
	assert.Equal(t, []string{"home"}, launcher.launched)

	assert.ErrorIs(t, p.Activate("missing"), storage.ErrNotFound)
}

func TestScoreField(t *testing.T) {
	exact := scoreField("Files", "files", 1.0)
	prefix := scoreField("Files", "fil", 1.0)
	inner := scoreField("Profiles", "fil", 1.0)

	assert.Greater(t, exact, prefix)
	assert.Greater(t, prefix, inner)
	assert.Greater(t, inner, 0.0)
	assert.Zero(t, scoreField("Files", "xyz", 1.0))
	assert.Zero(t, scoreField("", "a", 1.0))
}

func TestBleveProvider_Documents(t *testing.T) {
	store := setupCatalogStore(t)
	launcher := &recordingLauncher{}
	p, err := NewBleveProvider("Documents", storage.KindDocument, store, launcher, "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })

	count, err := p.DocCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), count)

	ids, err := p.InitialResults([]string{"keyboard"})
	require.NoError(t, err)
	assert.Equal(t, []string{"keyboard-shortcuts"}, ids)

	// Content is indexed, prefixes match.
	ids, err = p.InitialResults([]string{"printab"})
	require.NoError(t, err)
	assert.Equal(t, []string{"getting-started"}, ids)

	ids, err = p.SubsearchResults(nil, []string{"keyboard", "nothinglikethis"})
	require.NoError(t, err)
	assert.Empty(t, ids)

	require.NoError(t, p.Activate("getting-started"))
	assert.Equal(t, []string{"getting-started"}, launcher.launched)
}

func TestBleveProvider_PersistentIndex(t *testing.T) {
	store := setupCatalogStore(t)
	path := filepath.Join(t.TempDir(), "index", "documents.bleve")

	p, err := NewBleveProvider("Documents", storage.KindDocument, store, &recordingLauncher{}, path)
	require.NoError(t, err)
	require.NoError(t, p.Close())

	p, err = NewBleveProvider("Documents", storage.KindDocument, store, &recordingLauncher{}, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })

	ids, err := p.InitialResults([]string{"getting"})
	require.NoError(t, err)
	assert.Equal(t, []string{"getting-started"}, ids)
}
