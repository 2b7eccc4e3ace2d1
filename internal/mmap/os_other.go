//go:build !unix

package mmap

func osMapAnon(int) ([]byte, func([]byte) error, error) {
	return nil, nil, ErrUnsupported
}

func osProtect([]byte, Protection) error {
	return ErrUnsupported
}
