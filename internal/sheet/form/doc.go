// Package form models the tree of named input fields a character sheet is
// rendered from.
//
// The tree is the engine's only view of the sheet markup: fields are looked
// up by name or by classification tag, read and written as text or checked
// state, and observed through change subscriptions. Writes that do not
// change the stored value are silent, so handlers only fire on real edits.
package form
