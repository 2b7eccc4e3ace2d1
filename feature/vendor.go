package feature

import "fmt"

// Vendor identifies the company that designed the CPU core.
type Vendor uint32

const (
	VendorUnknown   Vendor = 0
	VendorIntel     Vendor = 1
	VendorAMD       Vendor = 2
	VendorVIA       Vendor = 3
	VendorTransmeta Vendor = 4
	VendorCyrix     Vendor = 5
	VendorRise      Vendor = 6
	VendorNSC       Vendor = 7
	VendorSiS       Vendor = 8
	VendorNexGen    Vendor = 9
	VendorUMC       Vendor = 10
	VendorRDC       Vendor = 11
	VendorDMP       Vendor = 12
	VendorARM       Vendor = 20
	VendorMarvell   Vendor = 21
	VendorQualcomm  Vendor = 22
	VendorDEC       Vendor = 23
	VendorTI        Vendor = 24
	VendorApple     Vendor = 25
	VendorIngenic   Vendor = 40
	VendorICT       Vendor = 41
	VendorMIPS      Vendor = 42
	VendorIBM       Vendor = 50
	VendorMotorola  Vendor = 51
	VendorPASemi    Vendor = 52
	VendorSun       Vendor = 60
	VendorOracle    Vendor = 61
	VendorFujitsu   Vendor = 62
	VendorMCST      Vendor = 63
)

type vendorName struct {
	id, description string
}

var vendorNames = map[Vendor]vendorName{
	VendorUnknown:   {"Unknown", "Unknown"},
	VendorIntel:     {"Intel", "Intel"},
	VendorAMD:       {"AMD", "AMD"},
	VendorVIA:       {"VIA", "VIA"},
	VendorTransmeta: {"Transmeta", "Transmeta"},
	VendorCyrix:     {"Cyrix", "Cyrix"},
	VendorRise:      {"Rise", "Rise"},
	VendorNSC:       {"NSC", "NSC"},
	VendorSiS:       {"SiS", "SiS"},
	VendorNexGen:    {"NexGen", "NexGen"},
	VendorUMC:       {"UMC", "UMC"},
	VendorRDC:       {"RDC", "RDC"},
	VendorDMP:       {"DMP", "DM&P"},
	VendorARM:       {"ARM", "ARM"},
	VendorMarvell:   {"Marvell", "Marvell"},
	VendorQualcomm:  {"Qualcomm", "Qualcomm"},
	VendorDEC:       {"DEC", "DEC"},
	VendorTI:        {"TI", "TI"},
	VendorApple:     {"Apple", "Apple"},
	VendorIngenic:   {"Ingenic", "Ingenic"},
	VendorICT:       {"ICT", "ICT"},
	VendorMIPS:      {"MIPS", "MIPS"},
	VendorIBM:       {"IBM", "IBM"},
	VendorMotorola:  {"Motorola", "Motorola"},
	VendorPASemi:    {"PASemi", "P.A.Semi"},
	VendorSun:       {"Sun", "Sun"},
	VendorOracle:    {"Oracle", "Oracle"},
	VendorFujitsu:   {"Fujitsu", "Fujitsu"},
	VendorMCST:      {"MCST", "MCST"},
}

// Defined reports whether v has an assigned meaning.
func (v Vendor) Defined() bool {
	_, ok := vendorNames[v]
	return ok
}

// ID returns the short identifier of v, or "" if v is undefined.
func (v Vendor) ID() string { return vendorNames[v].id }

// Description returns the human-readable name of v, or "" if v is undefined.
func (v Vendor) Description() string { return vendorNames[v].description }

func (v Vendor) String() string {
	if n, ok := vendorNames[v]; ok {
		return n.id
	}
	return fmt.Sprintf("Vendor(%d)", uint32(v))
}
