//go:build unix && (386 || amd64 || arm64)

package probe

import (
	"fmt"
	"unsafe"

	"github.com/hupe1980/cpudispatch/internal/mmap"
)

const helperSupported = true

func execute(code []byte) error {
	m, err := mmap.MapCode(code)
	if err != nil {
		return fmt.Errorf("%w: %v", errHelper, err)
	}
	defer m.Close()

	// A func value points at a word holding the entry address.
	entry := unsafe.Pointer(&m.Bytes()[0])
	fv := &entry
	fn := *(*func())(unsafe.Pointer(&fv))
	fn()
	return nil
}
