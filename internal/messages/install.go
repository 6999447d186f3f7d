package messages

// Install messages for the install decision and source linking.
const (
	InstallFlowRequired            = "workflow file is required"
	InstallEngineRequired          = "engine is required"
	InstallOverwritePromptRequired = "overwrite confirmation requires a prompt"
	InstallResolveFlowFmt          = "resolve workflow file %s: %w"
	InstallWorkflowNameInvalidFmt  = "workflow name from %s: %w"
	InstallRunNameInvalidFmt       = "run name: %w"
	InstallFlowMissingFmt          = "workflow file %s: %w"
	InstallCreateSrcDirFmt         = "create source directory %s: %w"
	InstallLinkFmt                 = "link %s to %s: %w"
	InstallRemoveContactFmt        = "remove contact file %s: %w"
	InstallListRunsFmt             = "list runs in %s: %w"
	InstallStatFmt                 = "inspect %s: %w"

	InstallConflictRunExistsFmt  = "run %s already exists at %s"
	InstallConflictSourceLinkFmt = "workflow %s is already installed from another file (installed %s, current %s)"
	InstallDiffTruncatedFmt      = "... diff truncated to %d lines; rerun with %s N to show more"

	InstallLinkedLog           = "linked workflow into source tree"
	InstallLinkUnchangedLog    = "source link already points at workflow"
	InstallResumedLog          = "resuming run"
	InstallInstalledLog        = "installed run"
	InstallBestEffortFailedLog = "ignoring failure"
	InstallSettleFailedLog     = "run did not release its contact file"
	InstallCleanSkippedLog     = "no run directory; nothing to clean"
)
