package search

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/pders01/overview/internal/storage"
)

// CatalogProvider matches items of one kind by name, description and
// keywords. Every term has to match somewhere for an item to qualify.
type CatalogProvider struct {
	name     string
	kind     storage.Kind
	source   ItemSource
	launcher Launcher
}

func NewCatalogProvider(name string, kind storage.Kind, source ItemSource, launcher Launcher) *CatalogProvider {
	return &CatalogProvider{name: name, kind: kind, source: source, launcher: launcher}
}

func (p *CatalogProvider) Name() string { return p.name }

func (p *CatalogProvider) InitialResults(terms []string) ([]string, error) {
	items, err := p.source.GetItems(p.kind)
	if err != nil {
		return nil, err
	}
	return p.rank(items, terms), nil
}

func (p *CatalogProvider) SubsearchResults(previous []string, terms []string) ([]string, error) {
	items := make([]*storage.Item, 0, len(previous))
	for _, id := range previous {
		item, err := p.source.GetItem(p.kind, id)
		if err != nil {
			continue
		}
		items = append(items, item)
	}
	return p.rank(items, terms), nil
}

func (p *CatalogProvider) ResultMeta(id string) (*ResultMeta, error) {
	item, err := p.source.GetItem(p.kind, id)
	if err != nil {
		return nil, err
	}
	return metaFor(item), nil
}

func (p *CatalogProvider) Activate(id string) error {
	item, err := p.source.GetItem(p.kind, id)
	if err != nil {
		return err
	}
	return p.launcher.Launch(item)
}

type scored struct {
	item  *storage.Item
	score float64
}

func (p *CatalogProvider) rank(items []*storage.Item, terms []string) []string {
	var hits []scored
	for _, item := range items {
		if s := scoreItem(item, terms); s > 0 {
			hits = append(hits, scored{item: item, score: s})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}
		return strings.ToLower(hits[i].item.Name) < strings.ToLower(hits[j].item.Name)
	})
	ids := make([]string, len(hits))
	for i, h := range hits {
		ids[i] = h.item.ID
	}
	return ids
}

// scoreItem returns zero unless every term matches at least one field.
func scoreItem(item *storage.Item, terms []string) float64 {
	keywords := strings.Join(item.Keywords, " ")
	var total float64
	for _, term := range terms {
		s := scoreField(item.Name, term, 4.0) +
			scoreField(keywords, term, 2.0) +
			scoreField(item.Description, term, 1.0)
		if s == 0 {
			return 0
		}
		total += s
	}
	return total
}

// scoreField rates one term against a field: whole words beat word
// prefixes, which beat matches inside a word.
func scoreField(text, term string, weight float64) float64 {
	if text == "" || term == "" {
		return 0
	}
	lower := strings.ToLower(text)
	if !strings.Contains(lower, term) {
		return 0
	}

	words := splitWords(lower)
	score := 0.5
	for _, word := range words {
		switch {
		case word == term:
			score += 2.0
		case strings.HasPrefix(word, term):
			score += 1.0
		}
	}
	if strings.HasPrefix(lower, term) {
		score += 1.0
	}
	// Short fields where the term covers more of the text rank higher.
	coverage := float64(len(term)) / float64(len(lower))
	score *= 1.0 + math.Log(1.0+coverage)
	return score * weight
}

func splitWords(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}
