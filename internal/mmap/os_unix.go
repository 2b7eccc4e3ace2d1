//go:build unix

package mmap

import (
	"golang.org/x/sys/unix"
)

func osMapAnon(size int) ([]byte, func([]byte) error, error) {
	prot := unix.PROT_READ | unix.PROT_WRITE
	flags := unix.MAP_ANON | unix.MAP_PRIVATE

	data, err := unix.Mmap(-1, 0, size, prot, flags)
	if err != nil {
		return nil, nil, err
	}

	return data, unix.Munmap, nil
}

func osProtect(data []byte, p Protection) error {
	if len(data) == 0 {
		return nil
	}

	var prot int
	switch p {
	case ProtectReadExec:
		prot = unix.PROT_READ | unix.PROT_EXEC
	case ProtectNone:
		prot = unix.PROT_NONE
	default:
		prot = unix.PROT_READ | unix.PROT_WRITE
	}
	return unix.Mprotect(data, prot)
}
