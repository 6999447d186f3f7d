package messages

// Doctor messages for the doctor command.
const (
	// DoctorUse is the doctor command name.
	DoctorUse   = "doctor [flow]"
	DoctorShort = "Check the configuration, engine and directory trees; with a flow, its install state"

	DoctorHealthCheckFmt = "🏥 Checking cylc-layer health (config: %s)...\n"

	DoctorCheckNameConfig      = "Config"
	DoctorCheckNameDirectories = "Dirs"
	DoctorCheckNameEngine      = "Engine"
	DoctorCheckNameEnvFile     = "EnvFile"
	DoctorCheckNameWorkflow    = "Workflow"

	DoctorConfigLoadedFmt     = "Configuration loaded from %s"
	DoctorConfigLoadFailedFmt = "Failed to load configuration: %v"
	DoctorConfigLoadRecommend = "Fix the file named above, or point CYLC_LAYER_CONFIG at a valid config.toml."

	DoctorUnknownKeysFmt        = "Unrecognized config keys: %s"
	DoctorUnknownKeysEditFmt    = "Edit %s and remove or rename the keys below."
	DoctorUnknownKeysDetected   = "Unrecognized keys:"
	DoctorUnknownKeyAllowedFmt  = "%s (allowed keys: %s)"
	DoctorUnknownKeyNoNestedFmt = "%s (this table has no nested keys)"
	DoctorUnknownKeySuggestFmt  = "%s (did you mean %s?)"

	DoctorDirExistsFmt           = "%s exists: %s"
	DoctorDirMissingFmt          = "%s does not exist yet: %s"
	DoctorDirMissingRecommend    = "It is created by the first install; create it now if the engine expects it."
	DoctorDirStatFailedFmt       = "Cannot inspect %s: %v"
	DoctorPathNotDirFmt          = "%s exists but is not a directory"
	DoctorPathNotDirRecommendFmt = "Point %s at a directory."

	DoctorEngineFoundFmt          = "Engine command %q resolves to %s"
	DoctorEngineMissingFmt        = "Engine executable %q not found on PATH"
	DoctorEngineMissingRecommend  = "Install Cylc or set engine.command (or --engine) to its full path."
	DoctorCondaMissingRecommend   = "engine.conda_env is set, so conda must be on PATH. Activate conda or clear CYLC_CONDA."
	DoctorEngineCommandRecommend  = "Set engine.command to the engine executable, e.g. \"cylc\"."
	DoctorEnvFileLoadedFmt        = "Env file %s defines %d variables"
	DoctorEnvFileRecommend        = "Fix the env file syntax (KEY=VALUE per line) or clear engine.env_file."
	DoctorFlowMissingFmt          = "Workflow file %s does not exist"
	DoctorSourceUnlinkedFmt       = "Source link %s is not linked yet"
	DoctorSourceLinkedFmt         = "Source link %s points at this workflow"
	DoctorSourceConflictFmt       = "Source link %s does not point at %s"
	DoctorSourceConflictRecommend = "Another workflow file with the same name is installed. Rename this one or install with --overwrite."
	DoctorRunAbsentFmt            = "Run %s is not installed"
	DoctorRunStoppedFmt           = "Run %s is installed and stopped"
	DoctorRunClaimedFmt           = "Run %s has a contact file (running or not shut down cleanly)"
	DoctorRunClaimedRecommend     = "Stop it with `cl stop`, or install with --resume to reuse it."

	DoctorFailureSummary = "❌ Some checks failed. Please address the items above."
	DoctorSuccessSummary = "✅ All systems go."

	DoctorStatusOKLabel        = "[OK]  "
	DoctorStatusWarnLabel      = "[WARN]"
	DoctorStatusFailLabel      = "[FAIL]"
	DoctorResultLineFmt        = "%s %-10s %s\n"
	DoctorRecommendationPrefix = "       💡 "
	DoctorRecommendationIndent = "         "
)
