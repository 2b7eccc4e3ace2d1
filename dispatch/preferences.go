package dispatch

import (
	"runtime"

	"github.com/hupe1980/cpudispatch/feature"
)

type preferenceTable map[feature.Microarchitecture][]feature.Microarchitecture

// Preferences returns the microarchitectures whose tuned implementations are
// acceptable on m, best first, for the running GOARCH. The list always ends
// with feature.AnyMicroarchitecture.
func Preferences(m feature.Microarchitecture) []feature.Microarchitecture {
	return preferencesFor(runtime.GOARCH, m)
}

// preferenceList is replaced in tests to pin the GOARCH.
var preferenceList = Preferences

func preferencesFor(goarch string, m feature.Microarchitecture) []feature.Microarchitecture {
	var table preferenceTable
	switch goarch {
	case "386":
		table = x86Preferences
	case "amd64":
		table = x64Preferences
	case "arm":
		table = armPreferences
	case "arm64":
		table = arm64Preferences
	case "mips", "mipsle":
		table = mipsPreferences
	}

	list := table[m]
	out := make([]feature.Microarchitecture, 0, len(list)+1)
	out = append(out, list...)
	return append(out, feature.AnyMicroarchitecture)
}

// 32-bit x86.
var x86Preferences = preferenceTable{
	feature.UarchP5:            {feature.UarchP5, feature.UarchK5, feature.UarchKnightsFerry, feature.UarchKnightsCorner},
	feature.UarchP6:            {feature.UarchP6, feature.UarchDothan, feature.UarchK7, feature.UarchK6, feature.UarchYonah, feature.UarchConroe, feature.UarchPenryn},
	feature.UarchWillamette:    {feature.UarchWillamette, feature.UarchPrescott, feature.UarchYonah},
	feature.UarchPrescott:      {feature.UarchPrescott, feature.UarchWillamette, feature.UarchYonah},
	feature.UarchDothan:        {feature.UarchDothan, feature.UarchP6, feature.UarchYonah, feature.UarchConroe, feature.UarchPenryn},
	feature.UarchYonah:         {feature.UarchYonah, feature.UarchConroe, feature.UarchPenryn, feature.UarchDothan, feature.UarchP6},
	feature.UarchConroe:        {feature.UarchConroe, feature.UarchPenryn, feature.UarchNehalem, feature.UarchSandyBridge, feature.UarchIvyBridge},
	feature.UarchPenryn:        {feature.UarchPenryn, feature.UarchConroe, feature.UarchNehalem, feature.UarchSandyBridge, feature.UarchIvyBridge},
	feature.UarchBonnell:       {feature.UarchBonnell, feature.UarchSaltwell},
	feature.UarchNehalem:       {feature.UarchNehalem, feature.UarchPenryn, feature.UarchConroe, feature.UarchSandyBridge, feature.UarchIvyBridge},
	feature.UarchSandyBridge:   {feature.UarchSandyBridge, feature.UarchNehalem, feature.UarchPenryn, feature.UarchConroe, feature.UarchIvyBridge},
	feature.UarchSaltwell:      {feature.UarchSaltwell, feature.UarchBonnell},
	feature.UarchIvyBridge:     {feature.UarchIvyBridge, feature.UarchSandyBridge, feature.UarchNehalem, feature.UarchPenryn, feature.UarchConroe},
	feature.UarchHaswell:       {feature.UarchHaswell, feature.UarchIvyBridge, feature.UarchSandyBridge, feature.UarchNehalem, feature.UarchPenryn, feature.UarchConroe},
	feature.UarchSilvermont:    {feature.UarchSilvermont, feature.UarchBobcat, feature.UarchNehalem},
	feature.UarchKnightsFerry:  {feature.UarchKnightsFerry, feature.UarchKnightsCorner, feature.UarchP5},
	feature.UarchKnightsCorner: {feature.UarchKnightsCorner, feature.UarchKnightsFerry, feature.UarchP5},
	feature.UarchK5:            {feature.UarchK5},
	feature.UarchK6:            {feature.UarchK6},
	feature.UarchGeode:         {feature.UarchGeode},
	feature.UarchK7:            {feature.UarchK7},
	feature.UarchK8:            {feature.UarchK8, feature.UarchNehalem},
	feature.UarchK10:           {feature.UarchK10, feature.UarchNehalem},
	feature.UarchBobcat:        {feature.UarchBobcat, feature.UarchNehalem},
	feature.UarchBulldozer:     {feature.UarchBulldozer, feature.UarchNehalem},
	feature.UarchPiledriver:    {feature.UarchPiledriver, feature.UarchNehalem},
	feature.UarchJaguar:        {feature.UarchJaguar, feature.UarchNehalem},
	feature.UarchSteamroller:   {feature.UarchSteamroller, feature.UarchNehalem},
}

// x86-64.
var x64Preferences = preferenceTable{
	feature.UarchPrescott:      {feature.UarchPrescott},
	feature.UarchConroe:        {feature.UarchConroe, feature.UarchPenryn, feature.UarchNehalem, feature.UarchSandyBridge, feature.UarchIvyBridge},
	feature.UarchPenryn:        {feature.UarchPenryn, feature.UarchConroe, feature.UarchNehalem, feature.UarchSandyBridge, feature.UarchIvyBridge},
	feature.UarchBonnell:       {feature.UarchBonnell, feature.UarchSaltwell},
	feature.UarchNehalem:       {feature.UarchNehalem, feature.UarchPenryn, feature.UarchConroe, feature.UarchSandyBridge, feature.UarchIvyBridge},
	feature.UarchSandyBridge:   {feature.UarchSandyBridge, feature.UarchIvyBridge, feature.UarchHaswell, feature.UarchNehalem, feature.UarchPenryn, feature.UarchConroe},
	feature.UarchSaltwell:      {feature.UarchSaltwell, feature.UarchBonnell},
	feature.UarchIvyBridge:     {feature.UarchIvyBridge, feature.UarchSandyBridge, feature.UarchSteamroller, feature.UarchHaswell, feature.UarchNehalem, feature.UarchPenryn, feature.UarchConroe},
	feature.UarchHaswell:       {feature.UarchHaswell, feature.UarchIvyBridge, feature.UarchSandyBridge, feature.UarchPiledriver, feature.UarchBulldozer, feature.UarchNehalem, feature.UarchPenryn, feature.UarchConroe},
	feature.UarchSilvermont:    {feature.UarchSilvermont, feature.UarchBobcat, feature.UarchNehalem},
	feature.UarchKnightsFerry:  {feature.UarchKnightsFerry},
	feature.UarchKnightsCorner: {feature.UarchKnightsCorner},
	feature.UarchK8:            {feature.UarchK8, feature.UarchBobcat, feature.UarchBonnell, feature.UarchK10, feature.UarchNehalem, feature.UarchPenryn, feature.UarchConroe, feature.UarchPrescott},
	feature.UarchK10:           {feature.UarchK10, feature.UarchNehalem, feature.UarchPenryn, feature.UarchConroe, feature.UarchBonnell, feature.UarchSilvermont, feature.UarchJaguar, feature.UarchK8, feature.UarchBobcat, feature.UarchPrescott},
	feature.UarchBobcat:        {feature.UarchBobcat, feature.UarchJaguar, feature.UarchNehalem},
	feature.UarchBulldozer:     {feature.UarchBulldozer, feature.UarchPiledriver, feature.UarchSteamroller, feature.UarchIvyBridge, feature.UarchSandyBridge, feature.UarchHaswell, feature.UarchNehalem, feature.UarchPenryn, feature.UarchConroe, feature.UarchK10},
	feature.UarchPiledriver:    {feature.UarchPiledriver, feature.UarchSteamroller, feature.UarchBulldozer, feature.UarchHaswell, feature.UarchIvyBridge, feature.UarchSandyBridge, feature.UarchNehalem, feature.UarchPenryn, feature.UarchConroe, feature.UarchK10},
	feature.UarchJaguar:        {feature.UarchJaguar, feature.UarchBobcat, feature.UarchNehalem},
	feature.UarchSteamroller:   {feature.UarchSteamroller, feature.UarchHaswell, feature.UarchPiledriver, feature.UarchBulldozer, feature.UarchIvyBridge, feature.UarchSandyBridge, feature.UarchNehalem},
}

// 32-bit ARM.
var armPreferences = preferenceTable{
	feature.UarchStrongARM: {feature.UarchStrongARM},
	feature.UarchXScale:    {feature.UarchXScale, feature.UarchARM9},
	feature.UarchARM7:      {feature.UarchARM7},
	feature.UarchARM9:      {feature.UarchARM9},
	feature.UarchARM11:     {feature.UarchARM11, feature.UarchARM9},
	feature.UarchCortexA5:  {feature.UarchCortexA5, feature.UarchCortexA7, feature.UarchCortexA8, feature.UarchScorpion, feature.UarchCortexA9, feature.UarchKrait, feature.UarchCortexA15, feature.UarchARM11},
	feature.UarchCortexA7:  {feature.UarchCortexA7, feature.UarchCortexA9, feature.UarchCortexA8, feature.UarchScorpion, feature.UarchKrait, feature.UarchCortexA15, feature.UarchCortexA5, feature.UarchARM11},
	feature.UarchCortexA8:  {feature.UarchCortexA8, feature.UarchCortexA5, feature.UarchCortexA7, feature.UarchCortexA9, feature.UarchScorpion, feature.UarchKrait, feature.UarchCortexA15, feature.UarchARM11},
	feature.UarchCortexA9:  {feature.UarchCortexA9, feature.UarchCortexA7, feature.UarchCortexA8, feature.UarchScorpion, feature.UarchKrait, feature.UarchCortexA15, feature.UarchCortexA5, feature.UarchARM11},
	feature.UarchCortexA15: {feature.UarchCortexA15, feature.UarchKrait, feature.UarchScorpion, feature.UarchCortexA7, feature.UarchCortexA9, feature.UarchCortexA8, feature.UarchCortexA5, feature.UarchARM11},
	feature.UarchScorpion:  {feature.UarchScorpion, feature.UarchKrait, feature.UarchCortexA15, feature.UarchCortexA9, feature.UarchCortexA8, feature.UarchCortexA7, feature.UarchCortexA5, feature.UarchARM11},
	feature.UarchKrait:     {feature.UarchKrait, feature.UarchCortexA15, feature.UarchScorpion, feature.UarchCortexA9, feature.UarchCortexA7, feature.UarchCortexA8, feature.UarchCortexA5, feature.UarchARM11},
	feature.UarchPJ1:       {feature.UarchPJ1},
	feature.UarchPJ4:       {feature.UarchPJ4, feature.UarchCortexA9, feature.UarchXScale, feature.UarchARM11},
	feature.UarchSwift:     {feature.UarchSwift},
}

// AArch64. Cores older than ARMv8 cannot run 64-bit code.
var arm64Preferences = preferenceTable{
	feature.UarchCortexA53:  {feature.UarchCortexA53, feature.UarchCortexA55, feature.UarchCortexA57, feature.UarchCortexA72},
	feature.UarchCortexA55:  {feature.UarchCortexA55, feature.UarchCortexA53, feature.UarchCortexA76, feature.UarchNeoverseN1},
	feature.UarchCortexA57:  {feature.UarchCortexA57, feature.UarchCortexA72, feature.UarchCortexA53},
	feature.UarchCortexA72:  {feature.UarchCortexA72, feature.UarchCortexA57, feature.UarchCortexA76, feature.UarchCortexA53},
	feature.UarchCortexA76:  {feature.UarchCortexA76, feature.UarchNeoverseN1, feature.UarchCortexA72, feature.UarchCortexA55},
	feature.UarchNeoverseN1: {feature.UarchNeoverseN1, feature.UarchCortexA76, feature.UarchCortexA72},
	feature.UarchNeoverseV1: {feature.UarchNeoverseV1, feature.UarchNeoverseN2, feature.UarchNeoverseN1, feature.UarchCortexA76},
	feature.UarchNeoverseN2: {feature.UarchNeoverseN2, feature.UarchNeoverseV1, feature.UarchNeoverseN1, feature.UarchCortexA76},
	feature.UarchNeoverseV2: {feature.UarchNeoverseV2, feature.UarchNeoverseN2, feature.UarchNeoverseV1, feature.UarchNeoverseN1},
}

// 32-bit MIPS.
var mipsPreferences = preferenceTable{
	feature.UarchMIPS24K: {feature.UarchMIPS24K},
	feature.UarchMIPS34K: {feature.UarchMIPS34K},
	feature.UarchMIPS74K: {feature.UarchMIPS74K},
	feature.UarchXBurst:  {feature.UarchXBurst},
	feature.UarchXBurst2: {feature.UarchXBurst2},
}
