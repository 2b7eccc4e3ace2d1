//go:build !noasm && (386 || amd64)

package probe

const haveXGETBV = true

// xgetbv reads the extended control register selected by index.
//
//go:noescape
func xgetbv(index uint32) (eax, edx uint32)
