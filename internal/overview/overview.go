package overview

import (
	"github.com/pders01/overview/internal/debuglog"
	"github.com/pders01/overview/internal/signal"
)

// View is what the overview shows and hides.
type View interface {
	Show()
	Hide()
}

// Overview is the orchestrator: it owns visibility and tells listeners
// when content is dragged or the overview is about to close.
type Overview struct {
	view    View
	visible bool

	itemDragBegin signal.Signal[struct{}]
	hiding        signal.Signal[struct{}]
	shown         signal.Signal[struct{}]
	hidden        signal.Signal[struct{}]
}

var _ Orchestrator = (*Overview)(nil)

func New() *Overview {
	return &Overview{}
}

// Attach sets the view Show and Hide drive.
func (o *Overview) Attach(v View) {
	o.view = v
}

func (o *Overview) Visible() bool { return o.visible }

func (o *Overview) Show() {
	if o.visible {
		return
	}
	debuglog.Infof("overview: show")
	o.visible = true
	if o.view != nil {
		o.view.Show()
	}
	o.shown.Emit(struct{}{})
}

// Hide emits hiding before the view is hidden.
func (o *Overview) Hide() {
	if !o.visible {
		return
	}
	debuglog.Infof("overview: hide")
	o.hiding.Emit(struct{}{})
	o.visible = false
	if o.view != nil {
		o.view.Hide()
	}
	o.hidden.Emit(struct{}{})
}

func (o *Overview) Toggle() {
	if o.visible {
		o.Hide()
	} else {
		o.Show()
	}
}

// BeginItemDrag reports that an item on a page started being dragged.
func (o *Overview) BeginItemDrag() {
	if !o.visible {
		return
	}
	o.itemDragBegin.Emit(struct{}{})
}

func (o *Overview) OnItemDragBegin(fn func()) signal.HandlerID {
	return o.itemDragBegin.Connect(func(struct{}) { fn() })
}

func (o *Overview) OnHiding(fn func()) signal.HandlerID {
	return o.hiding.Connect(func(struct{}) { fn() })
}

func (o *Overview) OnShown(fn func()) signal.HandlerID {
	return o.shown.Connect(func(struct{}) { fn() })
}

func (o *Overview) OnHidden(fn func()) signal.HandlerID {
	return o.hidden.Connect(func(struct{}) { fn() })
}

// Disconnect removes a handler registered with any of the On methods.
func (o *Overview) Disconnect(id signal.HandlerID) bool {
	return o.itemDragBegin.Disconnect(id) || o.hiding.Disconnect(id) ||
		o.shown.Disconnect(id) || o.hidden.Disconnect(id)
}

// ListenerCount reports the number of drag-begin and hiding listeners.
func (o *Overview) ListenerCount() int {
	return o.itemDragBegin.Len() + o.hiding.Len()
}
