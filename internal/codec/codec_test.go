package codec

import (
	"errors"
	"testing"

	"github.com/tidwall/gjson"

	"github.com/dshills/graphdoc/internal/engine/change"
	"github.com/dshills/graphdoc/internal/engine/model"
	"github.com/dshills/graphdoc/internal/engine/txn"
	"github.com/dshills/graphdoc/internal/event"
)

// captureSink keeps the last committed transaction.
type captureSink struct {
	tx *txn.Transaction
}

func (s *captureSink) Push(tx *txn.Transaction) {
	s.tx = tx
}

// twin builds two equivalent models so decode can be checked against a
// tree that did not produce the encoding.
func twin(t *testing.T) (*model.Model, *model.Model) {
	t.Helper()
	build := func() *model.Model {
		m := model.New()
		v := model.NewVertex("v1", "hello", model.NewGeometry(10, 10, 40, 30))
		w := model.NewVertex("v2", "world", model.NewGeometry(60, 10, 40, 30))
		e := model.NewEdge("e1", "")
		m.LinkChild(v, m.Root(), -1)
		m.LinkChild(w, m.Root(), -1)
		m.LinkChild(e, m.Root(), -1)
		return m
	}
	return build(), build()
}

// commit executes a record so it carries committed orientation, then
// encodes it.
func commitAndEncode(t *testing.T, r *Registry, c change.Change) []byte {
	t.Helper()
	c.Execute()
	data, err := r.Encode(c)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	return data
}

// Registry Tests

func TestRegisterDuplicate(t *testing.T) {
	r := NewRegistryWithDefaults()
	err := r.Register(change.KindValue, valueCodec{})
	if !errors.Is(err, ErrKindAlreadyRegistered) {
		t.Errorf("Register() error = %v, want ErrKindAlreadyRegistered", err)
	}
}

func TestLookupUnknown(t *testing.T) {
	r := NewRegistry()
	if _, ok := r.Lookup(change.KindValue); ok {
		t.Error("empty registry should not resolve any kind")
	}
}

func TestKindsSorted(t *testing.T) {
	r := NewRegistryWithDefaults()
	kinds := r.Kinds()
	if len(kinds) != 8 {
		t.Fatalf("Kinds() returned %d entries, want 8", len(kinds))
	}
	for i := 1; i < len(kinds); i++ {
		if kinds[i-1] >= kinds[i] {
			t.Fatalf("Kinds() = %v, want sorted", kinds)
		}
	}
}

func TestDecodeMissingKind(t *testing.T) {
	r := NewRegistryWithDefaults()
	m := model.New()
	if _, err := r.Decode([]byte(`{"cell":"x"}`), m); !errors.Is(err, ErrMalformedChange) {
		t.Errorf("Decode() error = %v, want ErrMalformedChange", err)
	}
}

func TestDecodeUnknownKind(t *testing.T) {
	r := NewRegistryWithDefaults()
	m := model.New()
	if _, err := r.Decode([]byte(`{"kind":"bogus"}`), m); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("Decode() error = %v, want ErrUnknownKind", err)
	}
}

func TestDecodeUnknownCell(t *testing.T) {
	r := NewRegistryWithDefaults()
	m := model.New()
	data := []byte(`{"kind":"value","cell":"ghost","previous":"a","new":"b"}`)
	if _, err := r.Decode(data, m); !errors.Is(err, ErrUnknownCell) {
		t.Errorf("Decode() error = %v, want ErrUnknownCell", err)
	}
}

// Round-Trip Tests
//
// Each case commits a change on one model, decodes the encoding against
// an equivalent twin model, and executes the decoded record there; the
// twin must end up with the same mutation applied.

func TestValueRoundTrip(t *testing.T) {
	r := NewRegistryWithDefaults()
	src, dst := twin(t)
	v, _ := src.CellByID("v1")

	data := commitAndEncode(t, r, change.NewValueChange(v, "renamed"))

	decoded, err := r.Decode(data, dst)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	decoded.Execute()

	got, _ := dst.CellByID("v1")
	if got.Value != "renamed" {
		t.Errorf("twin value = %q, want renamed", got.Value)
	}

	// The decoded record is itself reversible.
	decoded.Execute()
	if got.Value != "hello" {
		t.Errorf("twin value after reversal = %q, want hello", got.Value)
	}
}

func TestGeometryRoundTrip(t *testing.T) {
	r := NewRegistryWithDefaults()
	src, dst := twin(t)
	v, _ := src.CellByID("v1")

	data := commitAndEncode(t, r, change.NewGeometryChange(v, model.NewGeometry(99, 98, 40, 30)))

	decoded, err := r.Decode(data, dst)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	decoded.Execute()

	got, _ := dst.CellByID("v1")
	if got.Geometry.X != 99 || got.Geometry.Y != 98 {
		t.Errorf("twin geometry = (%g, %g), want (99, 98)", got.Geometry.X, got.Geometry.Y)
	}
}

func TestGeometryNilRoundTrip(t *testing.T) {
	r := NewRegistryWithDefaults()
	src, dst := twin(t)
	v, _ := src.CellByID("v1")

	data := commitAndEncode(t, r, change.NewGeometryChange(v, nil))

	decoded, err := r.Decode(data, dst)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	decoded.Execute()

	got, _ := dst.CellByID("v1")
	if got.Geometry != nil {
		t.Error("twin geometry should be cleared")
	}
	decoded.Execute()
	if got.Geometry == nil || got.Geometry.X != 10 {
		t.Error("reversal should restore the encoded previous geometry")
	}
}

func TestVisibleAndCollapseRoundTrip(t *testing.T) {
	r := NewRegistryWithDefaults()
	src, dst := twin(t)
	v, _ := src.CellByID("v1")

	for _, data := range [][]byte{
		commitAndEncode(t, r, change.NewVisibleChange(v, false)),
		commitAndEncode(t, r, change.NewCollapseChange(v, true)),
	} {
		decoded, err := r.Decode(data, dst)
		if err != nil {
			t.Fatalf("Decode() error = %v", err)
		}
		decoded.Execute()
	}

	got, _ := dst.CellByID("v1")
	if got.Visible {
		t.Error("twin should be hidden")
	}
	if !got.Collapsed {
		t.Error("twin should be collapsed")
	}
}

func TestStyleRoundTripPreservesOrder(t *testing.T) {
	r := NewRegistryWithDefaults()
	src, dst := twin(t)
	v, _ := src.CellByID("v1")
	style, _ := model.ParseStyle("shape=rect;fillColor=#ff0000;rounded=1")

	data := commitAndEncode(t, r, change.NewStyleChange(v, style))

	decoded, err := r.Decode(data, dst)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	decoded.Execute()

	got, _ := dst.CellByID("v1")
	if !got.Style.Equal(style) {
		t.Errorf("twin style = %q, want %q", got.Style, style)
	}
}

func TestTerminalRoundTrip(t *testing.T) {
	r := NewRegistryWithDefaults()
	src, dst := twin(t)
	edge, _ := src.CellByID("e1")
	v, _ := src.CellByID("v1")

	data := commitAndEncode(t, r, change.NewTerminalChange(src, edge, v, true))

	decoded, err := r.Decode(data, dst)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	decoded.Execute()

	gotEdge, _ := dst.CellByID("e1")
	gotV, _ := dst.CellByID("v1")
	if gotEdge.Source() != gotV {
		t.Error("twin edge should connect to its own v1")
	}
}

func TestChildRoundTripMove(t *testing.T) {
	r := NewRegistryWithDefaults()
	src, dst := twin(t)
	v, _ := src.CellByID("v1")
	w, _ := src.CellByID("v2")

	data := commitAndEncode(t, r, change.NewChildChange(src, v, w, 0))

	decoded, err := r.Decode(data, dst)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	decoded.Execute()

	gotV, _ := dst.CellByID("v1")
	gotW, _ := dst.CellByID("v2")
	if gotV.Parent() != gotW {
		t.Error("twin v1 should move under v2")
	}

	decoded.Execute()
	if gotV.Parent() != dst.Root() || dst.Root().ChildIndex(gotV) != 0 {
		t.Error("reversal should restore the original membership")
	}
}

func TestChildRoundTripRebuildsUnknownCell(t *testing.T) {
	r := NewRegistryWithDefaults()
	src, dst := twin(t)

	// A brand-new styled vertex: the twin has never seen it and must
	// rebuild it from the embedded payload.
	style, _ := model.ParseStyle("shape=rect")
	fresh := model.NewVertex("v9", "fresh", model.NewGeometry(1, 2, 3, 4))
	fresh.Style = style

	data := commitAndEncode(t, r, change.NewChildChange(src, fresh, src.Root(), -1))

	decoded, err := r.Decode(data, dst)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	decoded.Execute()

	got, ok := dst.CellByID("v9")
	if !ok {
		t.Fatal("twin should gain the rebuilt cell")
	}
	if got.Value != "fresh" || !got.Vertex || got.Geometry.Width != 3 {
		t.Error("rebuilt cell facets wrong")
	}
	if !got.Style.Equal(style) {
		t.Error("rebuilt cell style wrong")
	}
	if got.Parent() != dst.Root() {
		t.Error("rebuilt cell should be linked under the twin root")
	}
}

func TestRootRoundTrip(t *testing.T) {
	r := NewRegistryWithDefaults()
	src, dst := twin(t)

	data := commitAndEncode(t, r, change.NewRootChange(src, model.NewCell("root2")))

	decoded, err := r.Decode(data, dst)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	decoded.Execute()

	if dst.Root().ID != "root2" {
		t.Errorf("twin root = %q, want root2", dst.Root().ID)
	}
	decoded.Execute()
	if dst.Root().ID != model.RootID {
		t.Error("reversal should restore the original root")
	}
}

// Transaction Framing Tests

func TestEncodeDecodeTransaction(t *testing.T) {
	r := NewRegistryWithDefaults()
	src, dst := twin(t)
	v, _ := src.CellByID("v1")

	sink := &captureSink{}
	mgr := txn.NewManager(event.NewBus(), sink)
	mgr.Begin()
	_ = mgr.Execute(change.NewValueChange(v, "renamed"))
	_ = mgr.Execute(change.NewVisibleChange(v, false))
	if err := mgr.End(); err != nil {
		t.Fatalf("End() error = %v", err)
	}

	data, err := r.EncodeTransaction(sink.tx)
	if err != nil {
		t.Fatalf("EncodeTransaction() error = %v", err)
	}
	if gjson.GetBytes(data, "changes.#").Int() != 2 {
		t.Fatalf("encoded %d changes, want 2", gjson.GetBytes(data, "changes.#").Int())
	}

	decoded, err := r.DecodeTransaction(data, dst)
	if err != nil {
		t.Fatalf("DecodeTransaction() error = %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("decoded %d changes, want 2", len(decoded))
	}
	for _, c := range decoded {
		c.Execute()
	}

	got, _ := dst.CellByID("v1")
	if got.Value != "renamed" || got.Visible {
		t.Error("twin should carry both decoded mutations")
	}
}

func TestDecodeTransactionMissingChanges(t *testing.T) {
	r := NewRegistryWithDefaults()
	m := model.New()
	if _, err := r.DecodeTransaction([]byte(`{"seq":1}`), m); !errors.Is(err, ErrMalformedChange) {
		t.Errorf("DecodeTransaction() error = %v, want ErrMalformedChange", err)
	}
}
