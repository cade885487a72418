// Package version reports build and host information for skelbench.
//
// Version, commit and build time are set at compile time via -ldflags,
// falling back to the VCS stamp the toolchain embeds:
//
//	go build -ldflags "-X github.com/kbukum/skeletons/version.Version=1.0.0" ./cmd/skelbench
//
// Benchmark output carries the host platform and CPU count alongside the
// build.
package version
