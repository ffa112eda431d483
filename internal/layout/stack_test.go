package layout

import (
	"testing"

	"github.com/dshills/graphdoc/internal/engine"
	"github.com/dshills/graphdoc/internal/engine/model"
)

func newStackContainer(t *testing.T, eng *engine.Engine) *model.Cell {
	t.Helper()
	container := model.NewVertex("stack", "", model.NewGeometry(0, 0, 200, 200))
	container.Style, _ = model.ParseStyle("layout=stack")
	if _, err := eng.AddCell(container, nil, -1); err != nil {
		t.Fatalf("AddCell() error = %v", err)
	}
	return container
}

func TestAttachAndDetach(t *testing.T) {
	eng := engine.New()
	m, err := Attach(eng, WithSpacing(4))
	if err != nil {
		t.Fatalf("Attach() error = %v", err)
	}
	if m.Spacing() != 4 {
		t.Errorf("Spacing() = %g, want 4", m.Spacing())
	}
	if err := m.Detach(); err != nil {
		t.Fatalf("Detach() error = %v", err)
	}
	if err := m.Detach(); err != nil {
		t.Errorf("second Detach() error = %v, want nil", err)
	}
}

func TestChildrenStackedOnAdd(t *testing.T) {
	eng := engine.New()
	if _, err := Attach(eng, WithSpacing(10)); err != nil {
		t.Fatalf("Attach() error = %v", err)
	}
	container := newStackContainer(t, eng)

	var a, b *model.Cell
	err := eng.Update(func() error {
		var err error
		if a, err = eng.AddCell(model.NewVertex("a", "", model.NewGeometry(5, 77, 100, 40)), container, -1); err != nil {
			return err
		}
		b, err = eng.AddCell(model.NewVertex("b", "", model.NewGeometry(5, 3, 100, 60)), container, -1)
		return err
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if a.Geometry.Y != 10 {
		t.Errorf("first child Y = %g, want 10", a.Geometry.Y)
	}
	if b.Geometry.Y != 60 { // 10 + 40 + 10
		t.Errorf("second child Y = %g, want 60", b.Geometry.Y)
	}
	if a.Geometry.X != 5 {
		t.Error("stacking should preserve X")
	}
}

func TestCorrectionsShareUndoUnit(t *testing.T) {
	eng := engine.New()
	if _, err := Attach(eng, WithSpacing(10)); err != nil {
		t.Fatalf("Attach() error = %v", err)
	}
	container := newStackContainer(t, eng)

	var a, b *model.Cell
	err := eng.Update(func() error {
		var err error
		if a, err = eng.AddCell(model.NewVertex("a", "", model.NewGeometry(0, 0, 100, 40)), container, -1); err != nil {
			return err
		}
		b, err = eng.AddCell(model.NewVertex("b", "", model.NewGeometry(0, 0, 100, 60)), container, -1)
		return err
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if eng.UndoCount() != 2 { // container add, grouped child add
		t.Fatalf("UndoCount() = %d, want 2", eng.UndoCount())
	}

	// Dragging one child out of place is corrected in the same
	// transaction that moved it.
	if err := eng.SetGeometry(a, model.NewGeometry(0, 500, 100, 40)); err != nil {
		t.Fatalf("SetGeometry() error = %v", err)
	}
	if a.Geometry.Y != 10 {
		t.Errorf("child Y after correction = %g, want 10", a.Geometry.Y)
	}
	if eng.UndoCount() != 3 {
		t.Fatalf("UndoCount() = %d, want 3 (drag and correction as one unit)", eng.UndoCount())
	}

	// One undo reverts drag and correction together, landing back on the
	// stacked position.
	if err := eng.Undo(); err != nil {
		t.Fatalf("Undo() error = %v", err)
	}
	if a.Geometry.Y != 10 || b.Geometry.Y != 60 {
		t.Errorf("after undo Y = (%g, %g), want (10, 60)", a.Geometry.Y, b.Geometry.Y)
	}
}

func TestHiddenChildrenSkipped(t *testing.T) {
	eng := engine.New()
	if _, err := Attach(eng, WithSpacing(10)); err != nil {
		t.Fatalf("Attach() error = %v", err)
	}
	container := newStackContainer(t, eng)

	var a, b, c *model.Cell
	err := eng.Update(func() error {
		var err error
		if a, err = eng.AddCell(model.NewVertex("a", "", model.NewGeometry(0, 0, 100, 40)), container, -1); err != nil {
			return err
		}
		if b, err = eng.AddCell(model.NewVertex("b", "", model.NewGeometry(0, 0, 100, 40)), container, -1); err != nil {
			return err
		}
		c, err = eng.AddCell(model.NewVertex("c", "", model.NewGeometry(0, 0, 100, 40)), container, -1)
		return err
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if err := eng.SetVisible(b, false); err != nil {
		t.Fatalf("SetVisible() error = %v", err)
	}

	if a.Geometry.Y != 10 {
		t.Errorf("first child Y = %g, want 10", a.Geometry.Y)
	}
	// The hidden child no longer occupies a slot.
	if c.Geometry.Y != 60 {
		t.Errorf("last child Y = %g, want 60", c.Geometry.Y)
	}
}

func TestCollapsedContainerLeftAlone(t *testing.T) {
	eng := engine.New()
	if _, err := Attach(eng); err != nil {
		t.Fatalf("Attach() error = %v", err)
	}
	container := newStackContainer(t, eng)
	if err := eng.SetCollapsed(container, true); err != nil {
		t.Fatalf("SetCollapsed() error = %v", err)
	}

	a, err := eng.AddCell(model.NewVertex("a", "", model.NewGeometry(0, 77, 100, 40)), container, -1)
	if err != nil {
		t.Fatalf("AddCell() error = %v", err)
	}
	if a.Geometry.Y != 77 {
		t.Errorf("child Y = %g, want untouched 77", a.Geometry.Y)
	}
}

func TestPlainContainerUntouched(t *testing.T) {
	eng := engine.New()
	if _, err := Attach(eng); err != nil {
		t.Fatalf("Attach() error = %v", err)
	}

	plain, err := eng.AddCell(model.NewVertex("plain", "", model.NewGeometry(0, 0, 200, 200)), nil, -1)
	if err != nil {
		t.Fatalf("AddCell() error = %v", err)
	}
	a, err := eng.AddCell(model.NewVertex("a", "", model.NewGeometry(0, 77, 100, 40)), plain, -1)
	if err != nil {
		t.Fatalf("AddCell() error = %v", err)
	}
	if a.Geometry.Y != 77 {
		t.Errorf("child Y = %g, want untouched 77", a.Geometry.Y)
	}
}
