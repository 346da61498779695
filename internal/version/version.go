// Package version carries build metadata injected by the linker.
package version

import (
	"fmt"
	"runtime"
)

// Populated at release time:
//
//	go build -ldflags "-X github.com/soyeahso/adkit/internal/version.Version=0.3.0
//	  -X github.com/soyeahso/adkit/internal/version.Commit=$(git rev-parse HEAD)
//	  -X github.com/soyeahso/adkit/internal/version.Date=$(date -u +%F)"
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Info returns the one-line version banner printed by `adkit version`.
func Info() string {
	return fmt.Sprintf("adkit %s (%s, built %s) %s %s/%s",
		Version, short(Commit), Date, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// UserAgent identifies adkit in outbound HTTP requests.
func UserAgent() string {
	return "adkit/" + Version
}

func short(rev string) string {
	if len(rev) <= 7 {
		return rev
	}
	return rev[:7]
}
