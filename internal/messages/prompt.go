package messages

// Prompt messages for interactive confirmation.
const (
	PromptAborted          = "prompt aborted"
	PromptRequiresTerminal = "confirmation requires an interactive terminal; pass --yes to skip it"
	PromptFailedFmt        = "prompt failed: %w"
	PromptAffirmative      = "Overwrite"
	PromptNegative         = "Cancel"

	PromptYesDefaultFmt      = "%s [Y/n]: "
	PromptNoDefaultFmt       = "%s [y/N]: "
	PromptRetryYesNo         = "Please enter y or n."
	PromptInvalidResponseFmt = "invalid response %q"

	PromptOverwriteTitleFmt            = "Overwrite %s?"
	PromptOverwriteExistingDescription = "The run will be stopped and cleaned, and the workflow installed again."
	PromptOverwriteFreshDescription    = "No run exists yet. Stale engine state and the source link will be cleared before installing."
)
