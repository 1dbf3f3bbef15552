// Package builtin holds the search providers that ship with overview.
package builtin

import (
	"fmt"

	"github.com/pders01/overview/internal/plugins"
	"github.com/pders01/overview/internal/search"
	"github.com/pders01/overview/internal/storage"
)

const (
	ApplicationsName = "Applications"
	PlacesName       = "Places"
	DocumentsName    = "Documents"
)

// catalogPlugin matches catalog items of one kind in memory.
type catalogPlugin struct {
	name     string
	kind     storage.Kind
	priority int
}

func (p *catalogPlugin) Name() string  { return p.name }
func (p *catalogPlugin) Priority() int { return p.priority }

func (p *catalogPlugin) NewProvider(env plugins.Env) (search.Provider, error) {
	if env.Store == nil {
		return nil, fmt.Errorf("%s: no item store", p.name)
	}
	return search.NewCatalogProvider(p.name, p.kind, env.Store, env.Launcher), nil
}

// documentsPlugin searches document titles and contents with a full-text
// index.
type documentsPlugin struct{}

func (documentsPlugin) Name() string  { return DocumentsName }
func (documentsPlugin) Priority() int { return 10 }

func (documentsPlugin) NewProvider(env plugins.Env) (search.Provider, error) {
	if env.Store == nil {
		return nil, fmt.Errorf("%s: no item store", DocumentsName)
	}
	prov, err := search.NewBleveProvider(DocumentsName, storage.KindDocument, env.Store, env.Launcher, env.IndexPath)
	if err != nil {
		return nil, err
	}
	return prov, nil
}

// Register adds every bundled plugin to r.
func Register(r *plugins.Registry) {
	r.Register(&catalogPlugin{name: ApplicationsName, kind: storage.KindApplication, priority: 30})
	r.Register(&catalogPlugin{name: PlacesName, kind: storage.KindPlace, priority: 20})
	r.Register(documentsPlugin{})
}
