package change

// Kind identifies a change variant. Kinds are the stable tags the codec
// registry keys on; they never change once released.
type Kind string

// Change kinds, one per mutable facet of the document tree.
const (
	KindRoot     Kind = "root"
	KindChild    Kind = "child"
	KindTerminal Kind = "terminal"
	KindGeometry Kind = "geometry"
	KindVisible  Kind = "visible"
	KindCollapse Kind = "collapse"
	KindStyle    Kind = "style"
	KindValue    Kind = "value"
)

// Change is a reversible unit of mutation over the document tree.
//
// Execute applies the record's new state and swaps new with previous, so
// a second Execute reverses the first. Records are executed exactly once
// when recorded into a transaction and re-executed by undo/redo replay.
type Change interface {
	// Kind returns the variant's registry tag.
	Kind() Kind

	// Execute applies the stored state to the tree and flips the record
	// so the next Execute reverses it.
	Execute()
}
