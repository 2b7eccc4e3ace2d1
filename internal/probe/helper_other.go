//go:build !(unix && (386 || amd64 || arm64))

package probe

const helperSupported = false

var returnInstruction []byte

func execute([]byte) error { return errHelper }
