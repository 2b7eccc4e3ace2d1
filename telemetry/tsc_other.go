//go:build !386 && !amd64

package telemetry

const haveSerializedTSC = false
