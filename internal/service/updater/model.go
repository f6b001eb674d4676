package updater

import "time"

// Step is a state of the update workflow.
type Step uint8

// Workflow states, in execution order. StepFailed is reachable from any of them.
const (
	StepStart Step = iota
	StepPrompting
	StepDownloading
	StepExtracting
	StepBackingUp
	StepInstalling
	StepCleaning
	StepFinished
	StepFailed
)

// String returns the human-readable name of the step.
func (s Step) String() string {
	switch s {
	case StepStart:
		return "start"
	case StepPrompting:
		return "prompting"
	case StepDownloading:
		return "downloading"
	case StepExtracting:
		return "extracting"
	case StepBackingUp:
		return "backing up"
	case StepInstalling:
		return "installing"
	case StepCleaning:
		return "cleaning"
	case StepFinished:
		return "finished"
	case StepFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result describes a completed update.
type Result struct {
	// PackageName is the name of the installed package.
	PackageName string
	// InstalledPath is the folder the package was installed to.
	InstalledPath string
	// BackupPath is the folder the previous installation was moved to, empty when there was none.
	BackupPath string
	// ArchivePath is the downloaded archive; it no longer exists unless it was kept.
	ArchivePath string
	// ArchiveBytes is the size of the downloaded archive.
	ArchiveBytes int64
	// Elapsed is the time from the start of the download to the end of cleanup.
	Elapsed time.Duration
}
