package codec

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/graphdoc/internal/engine/change"
	"github.com/dshills/graphdoc/internal/engine/model"
)

// cellID returns a cell's ID, or "" for nil (encoded as an absent
// reference).
func cellID(c *model.Cell) string {
	if c == nil {
		return ""
	}
	return c.ID
}

// resolveCell looks up a cell reference. An empty ID resolves to nil.
func resolveCell(m *model.Model, id string) (*model.Cell, error) {
	if id == "" {
		return nil, nil
	}
	c, ok := m.CellByID(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCell, id)
	}
	return c, nil
}

// requireCell is resolveCell for references that must be present.
func requireCell(m *model.Model, id string) (*model.Cell, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: empty cell reference", ErrMalformedChange)
	}
	return resolveCell(m, id)
}

// setGeometry writes a geometry object at path; nil geometries are
// encoded as absent.
func setGeometry(doc []byte, path string, g *model.Geometry) ([]byte, error) {
	if g == nil {
		return doc, nil
	}
	doc, err := sjson.SetBytes(doc, path+".x", g.X)
	if err != nil {
		return nil, err
	}
	if doc, err = sjson.SetBytes(doc, path+".y", g.Y); err != nil {
		return nil, err
	}
	if doc, err = sjson.SetBytes(doc, path+".width", g.Width); err != nil {
		return nil, err
	}
	if doc, err = sjson.SetBytes(doc, path+".height", g.Height); err != nil {
		return nil, err
	}
	if g.Relative {
		if doc, err = sjson.SetBytes(doc, path+".relative", true); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// getGeometry reads a geometry object; absence decodes to nil.
func getGeometry(res gjson.Result) *model.Geometry {
	if !res.Exists() {
		return nil
	}
	return &model.Geometry{
		X:        res.Get("x").Float(),
		Y:        res.Get("y").Float(),
		Width:    res.Get("width").Float(),
		Height:   res.Get("height").Float(),
		Relative: res.Get("relative").Bool(),
	}
}

// setStyle writes a style as an ordered array of name/value entries.
func setStyle(doc []byte, path string, s *model.Style) ([]byte, error) {
	if s == nil {
		return doc, nil
	}
	entries := make([]map[string]string, 0, s.Len())
	for _, name := range s.Names() {
		value, _ := s.Get(name)
		entries = append(entries, map[string]string{"name": name, "value": value})
	}
	return sjson.SetBytes(doc, path, entries)
}

// getStyle reads an ordered style array; absence decodes to nil.
func getStyle(res gjson.Result) (*model.Style, error) {
	if !res.Exists() {
		return nil, nil
	}
	s := model.NewStyle()
	var serr error
	res.ForEach(func(_, entry gjson.Result) bool {
		if err := s.Set(entry.Get("name").String(), entry.Get("value").String()); err != nil {
			serr = err
			return false
		}
		return true
	})
	if serr != nil {
		return nil, serr
	}
	return s, nil
}

// setCellPayload writes a cell's own facets (not its relations) so
// changes that introduce the cell can rebuild it.
func setCellPayload(doc []byte, path string, c *model.Cell) ([]byte, error) {
	doc, err := sjson.SetBytes(doc, path+".id", c.ID)
	if err != nil {
		return nil, err
	}
	if c.Value != "" {
		if doc, err = sjson.SetBytes(doc, path+".value", c.Value); err != nil {
			return nil, err
		}
	}
	if c.Vertex {
		if doc, err = sjson.SetBytes(doc, path+".vertex", true); err != nil {
			return nil, err
		}
	}
	if c.Edge {
		if doc, err = sjson.SetBytes(doc, path+".edge", true); err != nil {
			return nil, err
		}
	}
	if doc, err = sjson.SetBytes(doc, path+".visible", c.Visible); err != nil {
		return nil, err
	}
	if c.Collapsed {
		if doc, err = sjson.SetBytes(doc, path+".collapsed", true); err != nil {
			return nil, err
		}
	}
	if doc, err = setGeometry(doc, path+".geometry", c.Geometry); err != nil {
		return nil, err
	}
	if c.Style != nil && c.Style.Len() > 0 {
		if doc, err = setStyle(doc, path+".style", c.Style); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// getCellPayload resolves a cell payload against the model by ID,
// building a fresh detached cell when it is not present there.
func getCellPayload(res gjson.Result, m *model.Model) (*model.Cell, error) {
	id := res.Get("id").String()
	if id == "" {
		return nil, fmt.Errorf("%w: cell payload missing id", ErrMalformedChange)
	}
	if existing, ok := m.CellByID(id); ok {
		return existing, nil
	}

	c := model.NewCell(id)
	c.Value = res.Get("value").String()
	c.Vertex = res.Get("vertex").Bool()
	c.Edge = res.Get("edge").Bool()
	c.Visible = res.Get("visible").Bool()
	c.Collapsed = res.Get("collapsed").Bool()
	c.Geometry = getGeometry(res.Get("geometry"))
	if style, err := getStyle(res.Get("style")); err != nil {
		return nil, err
	} else if style != nil {
		c.Style = style
	}
	return c, nil
}

// newDoc starts an encoded change with its kind tag.
func newDoc(kind change.Kind) ([]byte, error) {
	return sjson.SetBytes([]byte(`{}`), "kind", string(kind))
}

// rootCodec encodes RootChange: the new root as a cell payload, the
// previous root as an ID reference.
type rootCodec struct{}

func (rootCodec) Encode(c change.Change) ([]byte, error) {
	rc, ok := c.(*change.RootChange)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedChange, c)
	}
	doc, err := newDoc(change.KindRoot)
	if err != nil {
		return nil, err
	}
	// Committed orientation: Previous holds the root in effect, Root the
	// one it replaced.
	if doc, err = setCellPayload(doc, "new", rc.Previous); err != nil {
		return nil, err
	}
	return sjson.SetBytes(doc, "previous", cellID(rc.Root))
}

func (rootCodec) Decode(data []byte, m *model.Model) (change.Change, error) {
	newRoot, err := getCellPayload(gjson.GetBytes(data, "new"), m)
	if err != nil {
		return nil, err
	}
	previous, err := resolveCell(m, gjson.GetBytes(data, "previous").String())
	if err != nil {
		return nil, err
	}
	return &change.RootChange{Model: m, Root: newRoot, Previous: previous}, nil
}

// childCodec encodes ChildChange: the child as a cell payload plus both
// memberships.
type childCodec struct{}

func (childCodec) Encode(c change.Change) ([]byte, error) {
	cc, ok := c.(*change.ChildChange)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedChange, c)
	}
	doc, err := newDoc(change.KindChild)
	if err != nil {
		return nil, err
	}
	if doc, err = setCellPayload(doc, "cell", cc.Child); err != nil {
		return nil, err
	}
	// Committed orientation: PreviousParent/PreviousIndex hold the
	// membership in effect, Parent/Index the one it replaced.
	if doc, err = sjson.SetBytes(doc, "previousParent", cellID(cc.Parent)); err != nil {
		return nil, err
	}
	if doc, err = sjson.SetBytes(doc, "previousIndex", cc.Index); err != nil {
		return nil, err
	}
	if doc, err = sjson.SetBytes(doc, "newParent", cellID(cc.PreviousParent)); err != nil {
		return nil, err
	}
	return sjson.SetBytes(doc, "newIndex", cc.PreviousIndex)
}

func (childCodec) Decode(data []byte, m *model.Model) (change.Change, error) {
	child, err := getCellPayload(gjson.GetBytes(data, "cell"), m)
	if err != nil {
		return nil, err
	}
	newParent, err := resolveCell(m, gjson.GetBytes(data, "newParent").String())
	if err != nil {
		return nil, err
	}
	prevParent, err := resolveCell(m, gjson.GetBytes(data, "previousParent").String())
	if err != nil {
		return nil, err
	}
	return &change.ChildChange{
		Model:          m,
		Child:          child,
		Parent:         newParent,
		Index:          int(gjson.GetBytes(data, "newIndex").Int()),
		PreviousParent: prevParent,
		PreviousIndex:  int(gjson.GetBytes(data, "previousIndex").Int()),
	}, nil
}

// terminalCodec encodes TerminalChange with ID references only.
type terminalCodec struct{}

func (terminalCodec) Encode(c change.Change) ([]byte, error) {
	tc, ok := c.(*change.TerminalChange)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedChange, c)
	}
	doc, err := newDoc(change.KindTerminal)
	if err != nil {
		return nil, err
	}
	if doc, err = sjson.SetBytes(doc, "edge", cellID(tc.Edge)); err != nil {
		return nil, err
	}
	if doc, err = sjson.SetBytes(doc, "source", tc.Source); err != nil {
		return nil, err
	}
	if doc, err = sjson.SetBytes(doc, "previous", cellID(tc.Terminal)); err != nil {
		return nil, err
	}
	return sjson.SetBytes(doc, "new", cellID(tc.Previous))
}

func (terminalCodec) Decode(data []byte, m *model.Model) (change.Change, error) {
	edge, err := requireCell(m, gjson.GetBytes(data, "edge").String())
	if err != nil {
		return nil, err
	}
	terminal, err := resolveCell(m, gjson.GetBytes(data, "new").String())
	if err != nil {
		return nil, err
	}
	previous, err := resolveCell(m, gjson.GetBytes(data, "previous").String())
	if err != nil {
		return nil, err
	}
	return &change.TerminalChange{
		Model:    m,
		Edge:     edge,
		Source:   gjson.GetBytes(data, "source").Bool(),
		Terminal: terminal,
		Previous: previous,
	}, nil
}

// geometryCodec encodes GeometryChange.
type geometryCodec struct{}

func (geometryCodec) Encode(c change.Change) ([]byte, error) {
	gc, ok := c.(*change.GeometryChange)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedChange, c)
	}
	doc, err := newDoc(change.KindGeometry)
	if err != nil {
		return nil, err
	}
	if doc, err = sjson.SetBytes(doc, "cell", cellID(gc.Cell)); err != nil {
		return nil, err
	}
	if doc, err = setGeometry(doc, "previous", gc.Geometry); err != nil {
		return nil, err
	}
	return setGeometry(doc, "new", gc.Previous)
}

func (geometryCodec) Decode(data []byte, m *model.Model) (change.Change, error) {
	cell, err := requireCell(m, gjson.GetBytes(data, "cell").String())
	if err != nil {
		return nil, err
	}
	return &change.GeometryChange{
		Cell:     cell,
		Geometry: getGeometry(gjson.GetBytes(data, "new")),
		Previous: getGeometry(gjson.GetBytes(data, "previous")),
	}, nil
}

// visibleCodec encodes VisibleChange.
type visibleCodec struct{}

func (visibleCodec) Encode(c change.Change) ([]byte, error) {
	vc, ok := c.(*change.VisibleChange)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedChange, c)
	}
	doc, err := newDoc(change.KindVisible)
	if err != nil {
		return nil, err
	}
	if doc, err = sjson.SetBytes(doc, "cell", cellID(vc.Cell)); err != nil {
		return nil, err
	}
	if doc, err = sjson.SetBytes(doc, "previous", vc.Visible); err != nil {
		return nil, err
	}
	return sjson.SetBytes(doc, "new", vc.Previous)
}

func (visibleCodec) Decode(data []byte, m *model.Model) (change.Change, error) {
	cell, err := requireCell(m, gjson.GetBytes(data, "cell").String())
	if err != nil {
		return nil, err
	}
	return &change.VisibleChange{
		Cell:     cell,
		Visible:  gjson.GetBytes(data, "new").Bool(),
		Previous: gjson.GetBytes(data, "previous").Bool(),
	}, nil
}

// collapseCodec encodes CollapseChange.
type collapseCodec struct{}

func (collapseCodec) Encode(c change.Change) ([]byte, error) {
	cc, ok := c.(*change.CollapseChange)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedChange, c)
	}
	doc, err := newDoc(change.KindCollapse)
	if err != nil {
		return nil, err
	}
	if doc, err = sjson.SetBytes(doc, "cell", cellID(cc.Cell)); err != nil {
		return nil, err
	}
	if doc, err = sjson.SetBytes(doc, "previous", cc.Collapsed); err != nil {
		return nil, err
	}
	return sjson.SetBytes(doc, "new", cc.Previous)
}

func (collapseCodec) Decode(data []byte, m *model.Model) (change.Change, error) {
	cell, err := requireCell(m, gjson.GetBytes(data, "cell").String())
	if err != nil {
		return nil, err
	}
	return &change.CollapseChange{
		Cell:      cell,
		Collapsed: gjson.GetBytes(data, "new").Bool(),
		Previous:  gjson.GetBytes(data, "previous").Bool(),
	}, nil
}

// styleCodec encodes StyleChange with ordered name/value entry arrays.
type styleCodec struct{}

func (styleCodec) Encode(c change.Change) ([]byte, error) {
	sc, ok := c.(*change.StyleChange)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedChange, c)
	}
	doc, err := newDoc(change.KindStyle)
	if err != nil {
		return nil, err
	}
	if doc, err = sjson.SetBytes(doc, "cell", cellID(sc.Cell)); err != nil {
		return nil, err
	}
	if doc, err = setStyle(doc, "previous", sc.Style); err != nil {
		return nil, err
	}
	return setStyle(doc, "new", sc.Previous)
}

func (styleCodec) Decode(data []byte, m *model.Model) (change.Change, error) {
	cell, err := requireCell(m, gjson.GetBytes(data, "cell").String())
	if err != nil {
		return nil, err
	}
	newStyle, err := getStyle(gjson.GetBytes(data, "new"))
	if err != nil {
		return nil, err
	}
	prevStyle, err := getStyle(gjson.GetBytes(data, "previous"))
	if err != nil {
		return nil, err
	}
	return &change.StyleChange{Cell: cell, Style: newStyle, Previous: prevStyle}, nil
}

// valueCodec encodes ValueChange.
type valueCodec struct{}

func (valueCodec) Encode(c change.Change) ([]byte, error) {
	vc, ok := c.(*change.ValueChange)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedChange, c)
	}
	doc, err := newDoc(change.KindValue)
	if err != nil {
		return nil, err
	}
	if doc, err = sjson.SetBytes(doc, "cell", cellID(vc.Cell)); err != nil {
		return nil, err
	}
	if doc, err = sjson.SetBytes(doc, "previous", vc.Value); err != nil {
		return nil, err
	}
	return sjson.SetBytes(doc, "new", vc.Previous)
}

func (valueCodec) Decode(data []byte, m *model.Model) (change.Change, error) {
	cell, err := requireCell(m, gjson.GetBytes(data, "cell").String())
	if err != nil {
		return nil, err
	}
	return &change.ValueChange{
		Cell:     cell,
		Value:    gjson.GetBytes(data, "new").String(),
		Previous: gjson.GetBytes(data, "previous").String(),
	}, nil
}
