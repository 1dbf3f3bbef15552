package search

import "github.com/pders01/overview/internal/storage"

// ResultMeta is what the result display needs to render one result.
type ResultMeta struct {
	ID          string
	Name        string
	Description string
	Kind        storage.Kind
}

// Provider produces result ids for a set of search terms. Terms are
// lowercased and non-empty.
type Provider interface {
	// Name is the section title shown above the provider's results.
	Name() string
	// InitialResults runs a fresh search.
	InitialResults(terms []string) ([]string, error)
	// SubsearchResults narrows previous results for terms that refine the
	// previous terms.
	SubsearchResults(previous []string, terms []string) ([]string, error)
	ResultMeta(id string) (*ResultMeta, error)
	// Activate opens the result.
	Activate(id string) error
}

// ItemSource is the part of storage.Store the providers read from.
type ItemSource interface {
	GetItems(kind storage.Kind) ([]*storage.Item, error)
	GetItem(kind storage.Kind, id string) (*storage.Item, error)
}

// Launcher opens catalog items.
type Launcher interface {
	Launch(item *storage.Item) error
}

func metaFor(item *storage.Item) *ResultMeta {
	return &ResultMeta{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Kind:        item.Kind,
	}
}
