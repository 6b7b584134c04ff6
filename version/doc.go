// Package version reports build information for envcheck.
//
// Version, Commit and BuildTime may be set at link time:
//
//	go build -ldflags "-X github.com/kbukum/envcascade/version.Version=1.2.0"
//
// Anything left empty is filled from the module's embedded VCS metadata.
package version
