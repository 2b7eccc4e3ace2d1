package cpudispatch

import "fmt"

// VersionInfo describes the library build.
type VersionInfo struct {
	Major, Minor, Patch int
	// Description names the build flavour.
	Description string
}

var version = VersionInfo{Major: 0, Minor: 3, Patch: 0, Description: "go"}

// Version returns the library version.
func Version() VersionInfo { return version }

func (v VersionInfo) String() string {
	return fmt.Sprintf("%d.%d.%d (%s)", v.Major, v.Minor, v.Patch, v.Description)
}
