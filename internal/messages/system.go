package messages

// System messages for locking, env files and logging.
const (
	LockCreateDirFmt = "create lock directory for %s: %w"
	LockOpenFmt      = "open lock file %s: %w"
	LockAcquireFmt   = "lock %s: %w"
	LockTimeoutFmt   = "timed out after %s waiting for another install of this workflow"

	EnvfileReadFileFmt             = "read env file %s: %w"
	EnvfileInvalidFmt              = "invalid env file %s: %w"
	EnvfileLineErrorFmt            = "line %d: %w"
	EnvfileReadFailedFmt           = "read env content: %w"
	EnvfileExpectedKeyValue        = "expected KEY=VALUE"
	EnvfileUnterminatedQuotedValue = "unterminated quoted value"
	EnvfileInvalidQuotedSuffix     = "unexpected trailing characters after quoted value"

	LoggingUnknownLevelFmt  = "unknown log level %q"
	LoggingUnknownFormatFmt = "unknown log format %q"
)
