package feature

import "fmt"

// Microarchitecture identifies a CPU design generation.
//
// Values encode the owning architecture and vendor:
// (architecture << 24) | (vendor << 16) | id. The zero value is both
// "unknown" and, inside a dispatch requirement, the wildcard.
type Microarchitecture uint32

const (
	x86Intel    = Microarchitecture(ArchX86)<<24 | Microarchitecture(VendorIntel)<<16
	x86AMD      = Microarchitecture(ArchX86)<<24 | Microarchitecture(VendorAMD)<<16
	armIntel    = Microarchitecture(ArchARM)<<24 | Microarchitecture(VendorIntel)<<16
	armARM      = Microarchitecture(ArchARM)<<24 | Microarchitecture(VendorARM)<<16
	armQualcomm = Microarchitecture(ArchARM)<<24 | Microarchitecture(VendorQualcomm)<<16
	armMarvell  = Microarchitecture(ArchARM)<<24 | Microarchitecture(VendorMarvell)<<16
	armApple    = Microarchitecture(ArchARM)<<24 | Microarchitecture(VendorApple)<<16
	ia64Intel   = Microarchitecture(ArchIA64)<<24 | Microarchitecture(VendorIntel)<<16
	mipsMIPS    = Microarchitecture(ArchMIPS)<<24 | Microarchitecture(VendorMIPS)<<16
	mipsIngenic = Microarchitecture(ArchMIPS)<<24 | Microarchitecture(VendorIngenic)<<16
)

// AnyMicroarchitecture matches every microarchitecture in a requirement.
const AnyMicroarchitecture = UarchUnknown

const UarchUnknown Microarchitecture = 0

// x86 microarchitectures.
const (
	UarchP5            = x86Intel | 0x0001
	UarchP6            = x86Intel | 0x0002
	UarchWillamette    = x86Intel | 0x0003
	UarchPrescott      = x86Intel | 0x0004
	UarchDothan        = x86Intel | 0x0005
	UarchYonah         = x86Intel | 0x0006
	UarchConroe        = x86Intel | 0x0007
	UarchPenryn        = x86Intel | 0x0008
	UarchBonnell       = x86Intel | 0x0009
	UarchNehalem       = x86Intel | 0x000A
	UarchSandyBridge   = x86Intel | 0x000B
	UarchSaltwell      = x86Intel | 0x000C
	UarchIvyBridge     = x86Intel | 0x000D
	UarchHaswell       = x86Intel | 0x000E
	UarchSilvermont    = x86Intel | 0x000F
	UarchKnightsFerry  = x86Intel | 0x0100
	UarchKnightsCorner = x86Intel | 0x0101

	UarchK5          = x86AMD | 0x0001
	UarchK6          = x86AMD | 0x0002
	UarchK7          = x86AMD | 0x0003
	UarchGeode       = x86AMD | 0x0004
	UarchK8          = x86AMD | 0x0005
	UarchK10         = x86AMD | 0x0006
	UarchBobcat      = x86AMD | 0x0007
	UarchBulldozer   = x86AMD | 0x0008
	UarchPiledriver  = x86AMD | 0x0009
	UarchJaguar      = x86AMD | 0x000A
	UarchSteamroller = x86AMD | 0x000B
)

// ARM microarchitectures.
const (
	UarchStrongARM = armIntel | 0x0001
	UarchXScale    = armIntel | 0x0002

	UarchARM7       = armARM | 0x0001
	UarchARM9       = armARM | 0x0002
	UarchARM11      = armARM | 0x0003
	UarchCortexA5   = armARM | 0x0004
	UarchCortexA7   = armARM | 0x0005
	UarchCortexA8   = armARM | 0x0006
	UarchCortexA9   = armARM | 0x0007
	UarchCortexA15  = armARM | 0x0008
	UarchCortexA53  = armARM | 0x0009
	UarchCortexA57  = armARM | 0x000A
	UarchCortexA72  = armARM | 0x000B
	UarchCortexA55  = armARM | 0x000C
	UarchCortexA76  = armARM | 0x000D
	UarchNeoverseN1 = armARM | 0x000E
	UarchNeoverseV1 = armARM | 0x000F
	UarchNeoverseN2 = armARM | 0x0010
	UarchNeoverseV2 = armARM | 0x0011

	UarchScorpion = armQualcomm | 0x0001
	UarchKrait    = armQualcomm | 0x0002

	UarchPJ1 = armMarvell | 0x0001
	UarchPJ4 = armMarvell | 0x0002

	UarchSwift = armApple | 0x0001
)

// IA64 and MIPS microarchitectures.
const (
	UarchItanium  = ia64Intel | 0x0001
	UarchItanium2 = ia64Intel | 0x0002

	UarchMIPS24K = mipsMIPS | 0x0001
	UarchMIPS34K = mipsMIPS | 0x0002
	UarchMIPS74K = mipsMIPS | 0x0003

	UarchXBurst  = mipsIngenic | 0x0001
	UarchXBurst2 = mipsIngenic | 0x0002
)

type uarchName struct {
	id, description string
}

var uarchNames = map[Microarchitecture]uarchName{
	UarchUnknown: {"Unknown", "Unknown"},

	UarchP5:            {"P5", "P5"},
	UarchP6:            {"P6", "P6"},
	UarchWillamette:    {"Willamette", "Willamette"},
	UarchPrescott:      {"Prescott", "Prescott"},
	UarchDothan:        {"Dothan", "Dothan"},
	UarchYonah:         {"Yonah", "Yonah"},
	UarchConroe:        {"Conroe", "Conroe"},
	UarchPenryn:        {"Penryn", "Penryn"},
	UarchBonnell:       {"Bonnell", "Bonnell"},
	UarchNehalem:       {"Nehalem", "Nehalem"},
	UarchSandyBridge:   {"SandyBridge", "Sandy Bridge"},
	UarchSaltwell:      {"Saltwell", "Saltwell"},
	UarchIvyBridge:     {"IvyBridge", "Ivy Bridge"},
	UarchHaswell:       {"Haswell", "Haswell"},
	UarchSilvermont:    {"Silvermont", "Silvermont"},
	UarchKnightsFerry:  {"KnightsFerry", "Knights Ferry"},
	UarchKnightsCorner: {"KnightsCorner", "Knights Corner"},

	UarchK5:          {"K5", "K5"},
	UarchK6:          {"K6", "K6"},
	UarchK7:          {"K7", "K7"},
	UarchGeode:       {"Geode", "Geode"},
	UarchK8:          {"K8", "K8"},
	UarchK10:         {"K10", "K10"},
	UarchBobcat:      {"Bobcat", "Bobcat"},
	UarchBulldozer:   {"Bulldozer", "Bulldozer"},
	UarchPiledriver:  {"Piledriver", "Piledriver"},
	UarchJaguar:      {"Jaguar", "Jaguar"},
	UarchSteamroller: {"Steamroller", "Steamroller"},

	UarchStrongARM:  {"StrongARM", "StrongARM"},
	UarchXScale:     {"XScale", "XScale"},
	UarchARM7:       {"ARM7", "ARM7"},
	UarchARM9:       {"ARM9", "ARM9"},
	UarchARM11:      {"ARM11", "ARM11"},
	UarchCortexA5:   {"CortexA5", "Cortex-A5"},
	UarchCortexA7:   {"CortexA7", "Cortex-A7"},
	UarchCortexA8:   {"CortexA8", "Cortex-A8"},
	UarchCortexA9:   {"CortexA9", "Cortex-A9"},
	UarchCortexA15:  {"CortexA15", "Cortex-A15"},
	UarchCortexA53:  {"CortexA53", "Cortex-A53"},
	UarchCortexA57:  {"CortexA57", "Cortex-A57"},
	UarchCortexA72:  {"CortexA72", "Cortex-A72"},
	UarchCortexA55:  {"CortexA55", "Cortex-A55"},
	UarchCortexA76:  {"CortexA76", "Cortex-A76"},
	UarchNeoverseN1: {"NeoverseN1", "Neoverse N1"},
	UarchNeoverseV1: {"NeoverseV1", "Neoverse V1"},
	UarchNeoverseN2: {"NeoverseN2", "Neoverse N2"},
	UarchNeoverseV2: {"NeoverseV2", "Neoverse V2"},
	UarchScorpion:   {"Scorpion", "Scorpion"},
	UarchKrait:      {"Krait", "Krait"},
	UarchPJ1:        {"PJ1", "PJ1"},
	UarchPJ4:        {"PJ4", "PJ4"},
	UarchSwift:      {"Swift", "Swift"},

	UarchItanium:  {"Itanium", "Itanium"},
	UarchItanium2: {"Itanium2", "Itanium 2"},
	UarchMIPS24K:  {"MIPS24K", "MIPS 24K"},
	UarchMIPS34K:  {"MIPS34K", "MIPS 34K"},
	UarchMIPS74K:  {"MIPS74K", "MIPS 74K"},
	UarchXBurst:   {"XBurst", "XBurst"},
	UarchXBurst2:  {"XBurst2", "XBurst 2"},
}

// Architecture returns the architecture encoded in m.
func (m Microarchitecture) Architecture() Architecture { return Architecture(uint32(m) >> 24) }

// Vendor returns the designing vendor encoded in m.
func (m Microarchitecture) Vendor() Vendor { return Vendor((uint32(m) >> 16) & 0xFF) }

// Defined reports whether m has an assigned meaning.
func (m Microarchitecture) Defined() bool {
	_, ok := uarchNames[m]
	return ok
}

// ID returns the short identifier of m, or "" if m is undefined.
func (m Microarchitecture) ID() string { return uarchNames[m].id }

// Description returns the human-readable name of m, or "" if m is undefined.
func (m Microarchitecture) Description() string { return uarchNames[m].description }

func (m Microarchitecture) String() string {
	if n, ok := uarchNames[m]; ok {
		return n.id
	}
	return fmt.Sprintf("Microarchitecture(%#x)", uint32(m))
}
