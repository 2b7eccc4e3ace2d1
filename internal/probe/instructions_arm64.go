//go:build unix && arm64

package probe

import "encoding/binary"

func a64(word uint32) []byte {
	return binary.LittleEndian.AppendUint32(nil, word)
}

var returnInstruction = a64(0xD65F03C0) // ret

// Self-test vectors.
var (
	InstructionNop     = Instruction{Name: "nop", Code: a64(0xD503201F)}
	InstructionIllegal = Instruction{Name: "udf", Code: a64(0x00000000)}
)

// Instructions whose hwcap claims are confirmed by execution.
var (
	InstructionSDOT  = Instruction{Name: "sdot v0.4s, v1.16b, v2.16b", Code: a64(0x4E829420)}
	InstructionFMLAL = Instruction{Name: "fmlal v0.2s, v1.2h, v2.2h", Code: a64(0x0E22EC20)}
	InstructionBFDOT = Instruction{Name: "bfdot v0.4s, v1.8h, v2.8h", Code: a64(0x6E42FC20)}
	InstructionRDVL  = Instruction{Name: "rdvl x0, #1", Code: a64(0x04BF5020)}
)
