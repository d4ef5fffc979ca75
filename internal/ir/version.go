package ir

// Version constants for the IR wire form and the toolchain.
const (
	// IRVersion is the version of the positional instruction format.
	IRVersion = "1"

	// ToolVersion is the cl1 toolchain version.
	ToolVersion = "0.1.0"
)
