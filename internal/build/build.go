// Package build holds build-time information.
package build

// Version is the application version. It defaults to "dev" and is
// overwritten by linker flags on release builds:
//
//	go build -ldflags "-X go.trai.ch/fab/internal/build.Version=v1.2.3"
var Version = "dev"
