// Package version holds the build version stamped in at link time.
package version

// Version is overridden at build time:
//
//	go build -ldflags "-X github.com/tradelog/trade-journal-backend/internal/version.Version=v1.2.3"
var Version = "dev"
