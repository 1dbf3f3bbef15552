package search

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"
	bleveQuery "github.com/blevesearch/bleve/v2/search/query"

	"github.com/pders01/overview/internal/storage"
)

const bleveResultLimit = 50

// BleveProvider searches catalog items of one kind through a full-text
// index. Documents are its natural use: their content is indexed too.
type BleveProvider struct {
	name     string
	kind     storage.Kind
	source   ItemSource
	launcher Launcher
	idx      bleve.Index
}

// NewBleveProvider opens or creates the index at indexPath and indexes the
// current items. An empty indexPath keeps the index in memory.
func NewBleveProvider(name string, kind storage.Kind, source ItemSource, launcher Launcher, indexPath string) (*BleveProvider, error) {
	idx, err := openIndex(indexPath)
	if err != nil {
		return nil, err
	}
	p := &BleveProvider{name: name, kind: kind, source: source, launcher: launcher, idx: idx}
	if err := p.Reindex(); err != nil {
		_ = idx.Close()
		return nil, err
	}
	return p, nil
}

func openIndex(indexPath string) (bleve.Index, error) {
	if indexPath == "" {
		return bleve.NewMemOnly(buildIndexMapping())
	}
	if idx, err := bleve.Open(indexPath); err == nil {
		return idx, nil
	}
	if err := os.MkdirAll(filepath.Dir(indexPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}
	idx, err := bleve.New(indexPath, buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("creating index: %w", err)
	}
	return idx, nil
}

func buildIndexMapping() mapping.IndexMapping {
	im := bleve.NewIndexMapping()
	im.DefaultAnalyzer = standard.Name

	dm := bleve.NewDocumentMapping()
	for _, field := range []string{"name", "description", "keywords", "content"} {
		fm := bleve.NewTextFieldMapping()
		fm.Analyzer = standard.Name
		fm.Store = field != "content"
		dm.AddFieldMappingsAt(field, fm)
	}
	im.DefaultMapping = dm
	return im
}

// Reindex replaces the indexed documents with the source's current items.
func (p *BleveProvider) Reindex() error {
	items, err := p.source.GetItems(p.kind)
	if err != nil {
		return err
	}
	batch := p.idx.NewBatch()
	for _, item := range items {
		if err := batch.Index(item.ID, map[string]any{
			"name":        item.Name,
			"description": item.Description,
			"keywords":    item.Keywords,
			"content":     item.Content,
		}); err != nil {
			return fmt.Errorf("indexing %s: %w", item.ID, err)
		}
	}
	return p.idx.Batch(batch)
}

func (p *BleveProvider) Name() string { return p.name }

func (p *BleveProvider) InitialResults(terms []string) ([]string, error) {
	if len(terms) == 0 {
		return nil, nil
	}
	// Every term must match one of the fields, by word or by prefix.
	perTerm := make([]bleveQuery.Query, 0, len(terms))
	for _, term := range terms {
		var qs []bleveQuery.Query
		for field, boost := range map[string]float64{"name": 4.0, "keywords": 2.0, "description": 1.5, "content": 1.0} {
			mq := bleve.NewMatchQuery(term)
			mq.SetField(field)
			mq.SetBoost(boost)
			pq := bleve.NewPrefixQuery(term)
			pq.SetField(field)
			pq.SetBoost(boost * 0.8)
			qs = append(qs, mq, pq)
		}
		perTerm = append(perTerm, bleve.NewDisjunctionQuery(qs...))
	}

	req := bleve.NewSearchRequestOptions(bleve.NewConjunctionQuery(perTerm...), bleveResultLimit, 0, false)
	res, err := p.idx.Search(req)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(res.Hits))
	for _, h := range res.Hits {
		ids = append(ids, h.ID)
	}
	return ids, nil
}

// SubsearchResults re-queries the index; bleve is fast enough that
// narrowing by hand buys nothing.
func (p *BleveProvider) SubsearchResults(_ []string, terms []string) ([]string, error) {
	return p.InitialResults(terms)
}

func (p *BleveProvider) ResultMeta(id string) (*ResultMeta, error) {
	item, err := p.source.GetItem(p.kind, id)
	if err != nil {
		return nil, err
	}
	return metaFor(item), nil
}

func (p *BleveProvider) Activate(id string) error {
	item, err := p.source.GetItem(p.kind, id)
	if err != nil {
		return err
	}
	return p.launcher.Launch(item)
}

// DocCount reports the number of indexed documents.
func (p *BleveProvider) DocCount() (uint64, error) {
	return p.idx.DocCount()
}

func (p *BleveProvider) Close() error {
	return p.idx.Close()
}
