// Package util holds small helpers shared by the resolution packages.
package util
