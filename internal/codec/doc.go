// Package codec maps change kinds to wire codecs for persistence
// collaborators.
//
// The Registry is keyed on change.Kind. Registration happens once at
// process initialization; registering a kind twice is a programmer error
// and fails loudly, while looking up an unknown kind reports absence
// without failing. NewRegistryWithDefaults installs a JSON codec for
// every built-in change kind.
//
// Codecs encode records in their committed orientation: the state a
// record holds after the execute that applied it. Decoding against an
// equivalent source tree yields a record whose Execute reproduces the
// original mutation. Encoding a record that was since undone (executed
// an even number of times) inverts the direction; persistence
// collaborators encode from the commit notification, where orientation
// is always committed.
//
// Cells are referenced by ID and resolved against the target model at
// decode time. Child and root changes additionally embed the cell's own
// facets, so changes that introduce a cell into the tree can be decoded
// before the cell exists there.
package codec
