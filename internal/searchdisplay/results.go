// Package searchdisplay holds and renders the results of the current search,
// one section per provider, with a selection that wraps across sections.
package searchdisplay

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pders01/overview/internal/debuglog"
	"github.com/pders01/overview/internal/search"
)

const (
	noResultsText = "No matching results"
	searchingText = "Searching..."
)

// Section is one provider's group of results.
type Section struct {
	Provider search.Provider
	Title    string
	Results  []*search.ResultMeta
	Err      error
}

// Styles used by View. Zero values render unstyled.
type Styles struct {
	Header   lipgloss.Style
	Item     lipgloss.Style
	Selected lipgloss.Style
	Muted    lipgloss.Style
	Error    lipgloss.Style
}

type Results struct {
	system     *search.System
	maxResults int
	styles     Styles

	sections  []*Section
	searching bool
	text      string
	// selected is a flat index over every section's results, -1 for none.
	selected int
}

// New creates a display over system's providers. maxResults caps each
// section; zero or less means no cap.
func New(system *search.System, maxResults int) *Results {
	return &Results{system: system, maxResults: maxResults, selected: -1}
}

func (r *Results) SetStyles(s Styles) { r.styles = s }

// CreateProviderMeta adds a section for p. Sections render in the order
// their providers were added.
func (r *Results) CreateProviderMeta(p search.Provider) {
	r.sections = append(r.sections, &Section{Provider: p, Title: p.Name()})
}

// StartingSearch clears the previous results and shows a searching state
// until the first UpdateSearch.
func (r *Results) StartingSearch() {
	r.clear()
	r.searching = true
}

// Reset empties the display and the search system's refinement state.
func (r *Results) Reset() {
	r.clear()
	r.searching = false
	r.text = ""
	r.system.Reset()
}

func (r *Results) clear() {
	for _, s := range r.sections {
		s.Results = nil
		s.Err = nil
	}
	r.selected = -1
}

// UpdateSearch runs text against the search system and selects the first
// result.
func (r *Results) UpdateSearch(text string) {
	r.searching = false
	r.text = text
	r.clear()

	for _, pr := range r.system.UpdateSearch(text) {
		sec := r.sectionFor(pr.Provider)
		if sec == nil {
			continue
		}
		if pr.Err != nil {
			sec.Err = pr.Err
			continue
		}
		ids := pr.IDs
		if r.maxResults > 0 && len(ids) > r.maxResults {
			ids = ids[:r.maxResults]
		}
		for _, id := range ids {
			meta, err := pr.Provider.ResultMeta(id)
			if err != nil {
				debuglog.Warnf("searchdisplay: no meta for %s/%s: %v", pr.Provider.Name(), id, err)
				continue
			}
			sec.Results = append(sec.Results, meta)
		}
	}

	if r.Count() > 0 {
		r.selected = 0
	}
}

func (r *Results) sectionFor(p search.Provider) *Section {
	for _, s := range r.sections {
		if s.Provider == p {
			return s
		}
	}
	return nil
}

// Sections returns every section, including empty ones.
func (r *Results) Sections() []*Section { return r.sections }

// Text is the text of the last completed search.
func (r *Results) Text() string { return r.text }

func (r *Results) Searching() bool { return r.searching }

// Count is the number of results across all sections.
func (r *Results) Count() int {
	n := 0
	for _, s := range r.sections {
		n += len(s.Results)
	}
	return n
}

// Empty reports a finished search that found nothing and had no
// provider failures.
func (r *Results) Empty() bool {
	if r.searching || r.text == "" || r.Count() > 0 {
		return false
	}
	for _, s := range r.sections {
		if s.Err != nil {
			return false
		}
	}
	return true
}

func (r *Results) SelectDown() {
	n := r.Count()
	if n == 0 {
		return
	}
	r.selected = (r.selected + 1) % n
}

func (r *Results) SelectUp() {
	n := r.Count()
	if n == 0 {
		return
	}
	if r.selected <= 0 {
		r.selected = n - 1
		return
	}
	r.selected--
}

// Selected returns the selected result and the provider it came from.
func (r *Results) Selected() (search.Provider, *search.ResultMeta, bool) {
	if r.selected < 0 {
		return nil, nil, false
	}
	i := r.selected
	for _, s := range r.sections {
		if i < len(s.Results) {
			return s.Provider, s.Results[i], true
		}
		i -= len(s.Results)
	}
	return nil, nil, false
}

// ActivateSelected opens the selected result. Nothing selected is not an
// error.
func (r *Results) ActivateSelected() error {
	p, meta, ok := r.Selected()
	if !ok {
		return nil
	}
	debuglog.Infof("searchdisplay: activating %s/%s", p.Name(), meta.ID)
	if err := p.Activate(meta.ID); err != nil {
		return fmt.Errorf("activating %s: %w", meta.Name, err)
	}
	return nil
}

// View renders the sections into a width x height block.
func (r *Results) View(width, height int) string {
	var lines []string
	switch {
	case r.searching:
		lines = append(lines, r.styles.Muted.Render(searchingText))
	case r.Empty():
		lines = append(lines, r.styles.Muted.Render(noResultsText))
	default:
		flat := 0
		for _, s := range r.sections {
			if len(s.Results) == 0 && s.Err == nil {
				continue
			}
			if len(lines) > 0 {
				lines = append(lines, "")
			}
			lines = append(lines, r.styles.Header.Render(s.Title))
			if s.Err != nil {
				lines = append(lines, r.styles.Error.Render("  "+s.Err.Error()))
			}
			for _, meta := range s.Results {
				lines = append(lines, r.renderItem(meta, flat == r.selected, width))
				flat++
			}
		}
	}

	if height > 0 && len(lines) > height {
		lines = lines[:height]
	}
	return lipgloss.NewStyle().Width(width).Render(strings.Join(lines, "\n"))
}

func (r *Results) renderItem(meta *search.ResultMeta, selected bool, width int) string {
	name := r.styles.Item.Render("  " + meta.Name)
	if selected {
		name = r.styles.Selected.Render("› " + meta.Name)
	}
	line := name
	if meta.Description != "" {
		line += r.styles.Muted.Render("  " + meta.Description)
	}
	if width > 0 {
		line = lipgloss.NewStyle().MaxWidth(width).Render(line)
	}
	return line
}
