package messages

// Engine messages for invoking the workflow engine binary.
const (
	EngineCommandRequired  = "engine command is required"
	EngineCommandParseFmt  = "parse engine command %q: %w"
	EngineStartFailedFmt   = "engine %s %s: %v"
	EngineExitStatusFmt    = "engine %s %s exited with status %d"
	EngineSettleTimeoutFmt = "contact file %s still present after %s"

	EngineExecutingLog = "running engine"
	EngineFailedLog    = "engine command failed"
)
