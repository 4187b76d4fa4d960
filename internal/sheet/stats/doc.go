// Package stats holds the derived-stat rules of the Pip-Boy character sheet.
//
// Every function here is pure: it takes primary attribute values and returns
// the derived value, with no knowledge of where the values are displayed.
// Text input is coerced with Int and Float, which read the longest numeric
// prefix and fall back to zero, so a half-typed or garbage field never
// blocks a recomputation.
package stats
