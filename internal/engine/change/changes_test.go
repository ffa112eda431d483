package change

import (
	"testing"

	"github.com/dshills/graphdoc/internal/engine/model"
)

func newTestModel(t *testing.T) (*model.Model, *model.Cell) {
	t.Helper()
	m := model.New()
	v := model.NewVertex("v1", "hello", model.NewGeometry(10, 10, 40, 30))
	m.LinkChild(v, m.Root(), -1)
	return m, v
}

func TestKinds(t *testing.T) {
	m, v := newTestModel(t)
	edge := model.NewEdge("e1", "")
	m.LinkChild(edge, m.Root(), -1)

	tests := []struct {
		name string
		c    Change
		want Kind
	}{
		{"root", NewRootChange(m, model.NewCell("r2")), KindRoot},
		{"child", NewChildChange(m, v, m.Root(), 0), KindChild},
		{"terminal", NewTerminalChange(m, edge, v, true), KindTerminal},
		{"geometry", NewGeometryChange(v, model.NewGeometry(0, 0, 1, 1)), KindGeometry},
		{"visible", NewVisibleChange(v, false), KindVisible},
		{"collapse", NewCollapseChange(v, true), KindCollapse},
		{"style", NewStyleChange(v, model.NewStyle()), KindStyle},
		{"value", NewValueChange(v, "x"), KindValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Kind(); got != tt.want {
				t.Errorf("Kind() = %q, want %q", got, tt.want)
			}
		})
	}
}

// Every change record must be an involution: executing twice restores
// the state the first execute found.

func TestGeometryChangeInvolution(t *testing.T) {
	_, v := newTestModel(t)
	original := v.Geometry
	moved := model.NewGeometry(50, 60, 40, 30)

	c := NewGeometryChange(v, moved)
	c.Execute()
	if v.Geometry != moved {
		t.Error("first execute should apply the new geometry")
	}

	c.Execute()
	if v.Geometry != original {
		t.Error("second execute should restore the original geometry")
	}
}

func TestValueChangeInvolution(t *testing.T) {
	_, v := newTestModel(t)

	c := NewValueChange(v, "renamed")
	c.Execute()
	if v.Value != "renamed" {
		t.Errorf("Value = %q, want renamed", v.Value)
	}
	c.Execute()
	if v.Value != "hello" {
		t.Errorf("Value = %q, want hello", v.Value)
	}
}

func TestVisibleChangeInvolution(t *testing.T) {
	_, v := newTestModel(t)

	c := NewVisibleChange(v, false)
	c.Execute()
	if v.Visible {
		t.Error("first execute should hide the cell")
	}
	c.Execute()
	if !v.Visible {
		t.Error("second execute should show the cell again")
	}
}

func TestCollapseChangeInvolution(t *testing.T) {
	_, v := newTestModel(t)

	c := NewCollapseChange(v, true)
	c.Execute()
	if !v.Collapsed {
		t.Error("first execute should collapse")
	}
	c.Execute()
	if v.Collapsed {
		t.Error("second execute should expand")
	}
}

func TestStyleChangeInvolution(t *testing.T) {
	_, v := newTestModel(t)
	original := v.Style
	styled, _ := model.ParseStyle("shape=rect")

	c := NewStyleChange(v, styled)
	c.Execute()
	if v.Style != styled {
		t.Error("first execute should apply the style")
	}
	c.Execute()
	if v.Style != original {
		t.Error("second execute should restore the style")
	}
}

func TestRootChangeInvolution(t *testing.T) {
	m, _ := newTestModel(t)
	original := m.Root()
	replacement := model.NewCell("r2")

	c := NewRootChange(m, replacement)
	c.Execute()
	if m.Root() != replacement {
		t.Error("first execute should swap the root in")
	}
	if _, ok := m.CellByID("v1"); ok {
		t.Error("old subtree should be unregistered")
	}

	c.Execute()
	if m.Root() != original {
		t.Error("second execute should restore the root")
	}
	if _, ok := m.CellByID("v1"); !ok {
		t.Error("old subtree should be registered again")
	}
}

func TestChildChangeInsert(t *testing.T) {
	m, _ := newTestModel(t)
	added := model.NewVertex("v2", "", nil)

	c := NewChildChange(m, added, m.Root(), -1)
	c.Execute()
	if added.Parent() != m.Root() {
		t.Error("first execute should link the child")
	}
	if _, ok := m.CellByID("v2"); !ok {
		t.Error("linked child should be registered")
	}

	c.Execute()
	if added.Parent() != nil {
		t.Error("second execute should detach the child")
	}
	if _, ok := m.CellByID("v2"); ok {
		t.Error("detached child should be unregistered")
	}
}

func TestChildChangeMove(t *testing.T) {
	m, v := newTestModel(t)
	group := model.NewVertex("g", "", nil)
	m.LinkChild(group, m.Root(), -1)

	c := NewChildChange(m, v, group, 0)
	c.Execute()
	if v.Parent() != group {
		t.Error("first execute should reparent")
	}

	c.Execute()
	if v.Parent() != m.Root() {
		t.Error("second execute should restore the old parent")
	}
	if m.Root().ChildIndex(v) != 0 {
		t.Errorf("restored index = %d, want 0", m.Root().ChildIndex(v))
	}
}

func TestTerminalChangeInvolution(t *testing.T) {
	m, v := newTestModel(t)
	edge := model.NewEdge("e1", "")
	m.LinkChild(edge, m.Root(), -1)

	c := NewTerminalChange(m, edge, v, true)
	c.Execute()
	if edge.Source() != v {
		t.Error("first execute should connect the source")
	}
	c.Execute()
	if edge.Source() != nil {
		t.Error("second execute should disconnect the source")
	}
}
