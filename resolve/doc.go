// Package resolve merges the configuration layers into one value per key and
// records, per key, what every layer supplied and which one won.
//
// Precedence is fixed: process environment, then the source file, then the
// declared default. A layer that sets a key to the empty string still wins.
// Keys found in the source file but not declared in the spec are reported as
// extras.
package resolve
