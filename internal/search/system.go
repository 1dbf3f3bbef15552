// Package search runs a search string against every registered provider.
package search

import (
	"strings"

	"github.com/pders01/overview/internal/debuglog"
)

// ProviderResults holds one provider's answer to a search.
type ProviderResults struct {
	Provider Provider
	IDs      []string
	Err      error
}

// System fans a search out to its providers and remembers the previous
// terms so that refinements can be answered by narrowing old results.
type System struct {
	providers     []Provider
	previousTerms []string
	previous      map[Provider][]string
}

func NewSystem() *System {
	return &System{previous: make(map[Provider][]string)}
}

func (s *System) RegisterProvider(p Provider) {
	s.providers = append(s.providers, p)
}

func (s *System) Providers() []Provider {
	return s.providers
}

// Reset forgets the previous search.
func (s *System) Reset() {
	s.previousTerms = nil
	s.previous = make(map[Provider][]string)
}

// Terms splits a search string into lowercase terms.
func Terms(text string) []string {
	return strings.Fields(strings.ToLower(text))
}

// IsSubsearch reports whether terms refine previous: at least as many
// terms, each previous term a prefix of the term at the same position.
func IsSubsearch(previous, terms []string) bool {
	if len(previous) == 0 || len(terms) < len(previous) {
		return false
	}
	for i, prev := range previous {
		if !strings.HasPrefix(terms[i], prev) {
			return false
		}
	}
	return true
}

// UpdateSearch runs text against every provider. An empty text resets
// the system and returns nil.
func (s *System) UpdateSearch(text string) []ProviderResults {
	terms := Terms(text)
	if len(terms) == 0 {
		s.Reset()
		return nil
	}

	sub := IsSubsearch(s.previousTerms, terms)
	s.previousTerms = terms

	out := make([]ProviderResults, 0, len(s.providers))
	for _, p := range s.providers {
		var ids []string
		var err error
		if prev, ok := s.previous[p]; sub && ok {
			ids, err = p.SubsearchResults(prev, terms)
		} else {
			ids, err = p.InitialResults(terms)
		}
		if err != nil {
			debuglog.Warnf("search: provider %s failed: %v", p.Name(), err)
			delete(s.previous, p)
		} else {
			s.previous[p] = ids
		}
		out = append(out, ProviderResults{Provider: p, IDs: ids, Err: err})
	}

	debuglog.WithFields(map[string]any{"terms": len(terms), "subsearch": sub}).Debugf("search: %q", text)
	return out
}
