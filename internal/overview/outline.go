package overview

import (
	"math"
	"sync"

	"github.com/dshills/graphdoc/internal/engine"
	"github.com/dshills/graphdoc/internal/engine/model"
	"github.com/dshills/graphdoc/internal/engine/txn"
	"github.com/dshills/graphdoc/internal/event"
)

// Bounds is an axis-aligned rectangle over the visible diagram.
type Bounds struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Empty reports whether the bounds cover no area.
func (b Bounds) Empty() bool {
	return b.Width <= 0 || b.Height <= 0
}

// View is the derived outline state for one viewport.
type View struct {
	Bounds     Bounds
	Scale      float64
	TranslateX float64
	TranslateY float64
}

// Outline tracks the document's visible bounds across commits and fits
// them into a fixed-size viewport.
type Outline struct {
	eng    *engine.Engine
	width  float64
	height float64

	mu   sync.Mutex
	view View
	subs []*event.Subscription
}

// Attach creates an Outline for a viewport of the given size and
// subscribes it to commit, undo, and redo notifications. The initial
// view reflects the document as it stands.
func Attach(eng *engine.Engine, width, height float64) (*Outline, error) {
	o := &Outline{eng: eng, width: width, height: height}
	o.refresh()

	for _, topic := range []event.Topic{txn.TopicCommit, txn.TopicUndo, txn.TopicRedo} {
		sub, err := eng.Subscribe(topic, o.onChange)
		if err != nil {
			o.Detach()
			return nil, err
		}
		o.subs = append(o.subs, sub)
	}
	return o, nil
}

// Detach unsubscribes the outline; the view stops updating.
func (o *Outline) Detach() {
	for _, sub := range o.subs {
		_ = o.eng.Unsubscribe(sub)
	}
	o.subs = nil
}

// View returns the most recently derived outline state.
func (o *Outline) View() View {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.view
}

func (o *Outline) onChange(_, _ any) error {
	o.refresh()
	return nil
}

func (o *Outline) refresh() {
	bounds := visibleBounds(o.eng.Root())
	view := View{Bounds: bounds, Scale: 1}
	if !bounds.Empty() && o.width > 0 && o.height > 0 {
		view.Scale = math.Min(o.width/bounds.Width, o.height/bounds.Height)
		view.TranslateX = -bounds.X * view.Scale
		view.TranslateY = -bounds.Y * view.Scale
	}

	o.mu.Lock()
	o.view = view
	o.mu.Unlock()
}

// visibleBounds folds the absolute geometries of the visible subtree
// into one rectangle. Hidden subtrees and the interiors of collapsed
// containers are excluded; relative geometries do not contribute.
func visibleBounds(root *model.Cell) Bounds {
	var (
		minX, minY = math.Inf(1), math.Inf(1)
		maxX, maxY = math.Inf(-1), math.Inf(-1)
		found      bool
	)

	var visit func(c *model.Cell, offsetX, offsetY float64)
	visit = func(c *model.Cell, offsetX, offsetY float64) {
		if !c.Visible {
			return
		}
		x, y := offsetX, offsetY
		if g := c.Geometry; g != nil && !g.Relative {
			x += g.X
			y += g.Y
			minX = math.Min(minX, x)
			minY = math.Min(minY, y)
			maxX = math.Max(maxX, x+g.Width)
			maxY = math.Max(maxY, y+g.Height)
			found = true
		}
		if c.Collapsed {
			return
		}
		for _, child := range c.Children() {
			visit(child, x, y)
		}
	}
	if root != nil {
		visit(root, 0, 0)
	}

	if !found {
		return Bounds{}
	}
	return Bounds{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
