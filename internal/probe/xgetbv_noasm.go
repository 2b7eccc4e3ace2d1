//go:build noasm && (386 || amd64)

package probe

const haveXGETBV = false

func xgetbv(uint32) (eax, edx uint32) { return 0, 0 }
