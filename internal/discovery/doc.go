// Package discovery finds the files a rename run operates on and puts them
// in a deterministic order.
//
// List enumerates the direct children of a directory whose names match a
// shell-style glob (github.com/bmatcuk/doublestar/v4 syntax). Sort orders
// the result either by ordinal string comparison or, in numeric mode, by
// the value of the last digit run in each file name (see NumericKey) with
// the full path as tie-break. The order in which the filesystem returns
// entries is never relied upon.
package discovery
