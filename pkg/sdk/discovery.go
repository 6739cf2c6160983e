package sdk

import "os"

// DefaultAddr is used when SIGLINK_GATE_ADDR is unset.
const DefaultAddr = "http://localhost:5000"

// New connects to the gate named by the environment, falling back to the
// local default. Tools built on the SDK don't care where the gate runs.
func New() (GateClient, error) {
	addr := os.Getenv("SIGLINK_GATE_ADDR")
	if addr == "" {
		addr = DefaultAddr
	}
	return Connect(addr)
}
