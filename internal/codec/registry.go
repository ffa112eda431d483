package codec

import (
	"fmt"
	"sort"
	"sync"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/graphdoc/internal/engine/change"
	"github.com/dshills/graphdoc/internal/engine/model"
	"github.com/dshills/graphdoc/internal/engine/txn"
)

// Codec translates one change variant to and from its wire form.
type Codec interface {
	// Encode serializes a change record.
	Encode(c change.Change) ([]byte, error)

	// Decode reconstructs a change record, resolving cell references
	// against the target model.
	Decode(data []byte, m *model.Model) (change.Change, error)
}

// Registry maps change kinds to codecs. It is safe for concurrent reads
// after initialization.
type Registry struct {
	mu     sync.RWMutex
	codecs map[change.Kind]Codec
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{codecs: make(map[change.Kind]Codec)}
}

// NewRegistryWithDefaults creates a registry with the built-in JSON
// codec registered for every change kind.
func NewRegistryWithDefaults() *Registry {
	r := NewRegistry()
	r.RegisterDefaults()
	return r
}

// RegisterDefaults installs the built-in JSON codecs. Panics if any of
// the built-in kinds is already taken (process-initialization misuse).
func (r *Registry) RegisterDefaults() {
	r.MustRegister(change.KindRoot, rootCodec{})
	r.MustRegister(change.KindChild, childCodec{})
	r.MustRegister(change.KindTerminal, terminalCodec{})
	r.MustRegister(change.KindGeometry, geometryCodec{})
	r.MustRegister(change.KindVisible, visibleCodec{})
	r.MustRegister(change.KindCollapse, collapseCodec{})
	r.MustRegister(change.KindStyle, styleCodec{})
	r.MustRegister(change.KindValue, valueCodec{})
}

// Register adds a codec for a kind. Registering an already-registered
// kind returns ErrKindAlreadyRegistered.
func (r *Registry) Register(kind change.Kind, c Codec) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.codecs[kind]; exists {
		return fmt.Errorf("%w: %s", ErrKindAlreadyRegistered, kind)
	}
	r.codecs[kind] = c
	return nil
}

// MustRegister registers a codec and panics on error. For process-wide
// initialization.
func (r *Registry) MustRegister(kind change.Kind, c Codec) {
	if err := r.Register(kind, c); err != nil {
		panic(err)
	}
}

// Lookup returns the codec for a kind, reporting absence without error.
func (r *Registry) Lookup(kind change.Kind) (Codec, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.codecs[kind]
	return c, ok
}

// Kinds returns the registered kinds in sorted order.
func (r *Registry) Kinds() []change.Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]change.Kind, 0, len(r.codecs))
	for k := range r.codecs {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Encode serializes a change record via its kind's codec.
func (r *Registry) Encode(c change.Change) ([]byte, error) {
	cc, ok := r.Lookup(c.Kind())
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, c.Kind())
	}
	return cc.Encode(c)
}

// Decode reconstructs a change record from data carrying a "kind" tag.
func (r *Registry) Decode(data []byte, m *model.Model) (change.Change, error) {
	kind := change.Kind(gjson.GetBytes(data, "kind").String())
	if kind == "" {
		return nil, fmt.Errorf("%w: missing kind", ErrMalformedChange)
	}
	cc, ok := r.Lookup(kind)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	return cc.Decode(data, m)
}

// EncodeTransaction serializes a finalized transaction's change list:
// {"seq": n, "changes": [...]}.
func (r *Registry) EncodeTransaction(tx *txn.Transaction) ([]byte, error) {
	doc := []byte(`{}`)
	doc, err := sjson.SetBytes(doc, "seq", tx.Seq())
	if err != nil {
		return nil, err
	}
	doc, err = sjson.SetRawBytes(doc, "changes", []byte(`[]`))
	if err != nil {
		return nil, err
	}
	for _, c := range tx.Changes() {
		enc, cerr := r.Encode(c)
		if cerr != nil {
			return nil, cerr
		}
		doc, err = sjson.SetRawBytes(doc, "changes.-1", enc)
		if err != nil {
			return nil, err
		}
	}
	return doc, nil
}

// DecodeTransaction reconstructs a transaction's change records, in
// order, against the target model. The records are not executed.
func (r *Registry) DecodeTransaction(data []byte, m *model.Model) ([]change.Change, error) {
	raw := gjson.GetBytes(data, "changes")
	if !raw.Exists() || !raw.IsArray() {
		return nil, fmt.Errorf("%w: missing changes array", ErrMalformedChange)
	}

	var changes []change.Change
	var derr error
	raw.ForEach(func(_, item gjson.Result) bool {
		c, err := r.Decode([]byte(item.Raw), m)
		if err != nil {
			derr = err
			return false
		}
		changes = append(changes, c)
		return true
	})
	if derr != nil {
		return nil, derr
	}
	return changes, nil
}
