package probe

import (
	"encoding/hex"
	"fmt"
	"os"
)

// Helper exit codes other than success.
const (
	helperExitBadPayload  = 3
	helperExitUnsupported = 4
)

func init() {
	if payload, ok := os.LookupEnv(HelperEnv); ok {
		os.Exit(runHelper(payload))
	}
}

// runHelper executes the hex-encoded payload followed by a return and
// reports an exit code. A faulting payload never returns.
func runHelper(payload string) int {
	code, err := hex.DecodeString(payload)
	if err != nil || len(code) == 0 {
		fmt.Fprintln(os.Stderr, "cpudispatch: bad probe payload")
		return helperExitBadPayload
	}
	if err := execute(append(code, returnInstruction...)); err != nil {
		fmt.Fprintln(os.Stderr, "cpudispatch:", err)
		return helperExitUnsupported
	}
	return 0
}
