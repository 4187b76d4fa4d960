// Package engine keeps a character sheet's derived stats consistent with
// its primary attributes and persists the sheet between sessions.
//
// An Engine is bound to one form tree and one blob store. It is not safe for
// concurrent use: every call, including change notifications fired by the
// tree, must come from a single goroutine. Loop provides that goroutine for
// hosts that also need periodic autosave.
package engine
