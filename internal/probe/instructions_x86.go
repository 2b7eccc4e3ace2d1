//go:build unix && (386 || amd64)

package probe

var returnInstruction = []byte{0xC3}

// Self-test vectors.
var (
	InstructionNop     = Instruction{Name: "nop", Code: []byte{0x90}}
	InstructionIllegal = Instruction{Name: "ud2", Code: []byte{0x0F, 0x0B}}
)
