//go:build cgo && linux
// +build cgo,linux

package z3

/*
// libz3 installed from the distribution (libz3-dev) lives on the default
// linker path. Other installs can be reached through CGO_CFLAGS/CGO_LDFLAGS.
#cgo LDFLAGS: -lz3
*/
import "C"
