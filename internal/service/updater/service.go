package updater

//go:generate $MOCKGEN -source=service.go -destination=mocks/service_mock.go

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/oshokin/modpack-updater/internal/client/modpack"
	"github.com/oshokin/modpack-updater/internal/config"
	"github.com/oshokin/modpack-updater/internal/logger"
)

// Service runs the modpack update workflow.
type Service interface {
	// Run performs one update from prompt to cleanup.
	// Any failure is returned as a *StepError; completed steps are not rolled back.
	Run(ctx context.Context) (*Result, error)
}

// ServiceImpl implements the update workflow as a strictly sequential state machine.
type ServiceImpl struct {
	// cfg contains the application configuration.
	cfg *config.Config
	// client fetches the archive.
	client modpack.Client
	// prompter asks for the archive URL.
	prompter Prompter
	// progress receives download progress.
	progress Progress
	// now returns the wall-clock time used for backup names.
	now func() time.Time
	// step is the current workflow state.
	step Step
}

// NewService creates an update service instance with dependency-injected components.
// A nil progress discards download progress.
func NewService(
	cfg *config.Config,
	client modpack.Client,
	prompter Prompter,
	progress Progress,
) Service {
	if progress == nil {
		progress = discardProgress{}
	}

	return &ServiceImpl{
		cfg:      cfg,
		client:   client,
		prompter: prompter,
		progress: progress,
		now:      time.Now,
		step:     StepStart,
	}
}

// Run performs one update from prompt to cleanup.
func (s *ServiceImpl) Run(ctx context.Context) (*Result, error) {
	ctx = logger.WithKV(ctx, "run_id", uuid.NewString())

	s.enter(ctx, StepPrompting)

	archiveURL, err := s.prompter.PromptURL(ctx)
	if err != nil {
		return nil, s.fail(ctx, err)
	}

	startTime := s.now()

	s.enter(ctx, StepDownloading)

	unlock, err := s.lockVersionsRoot(ctx)
	if err != nil {
		return nil, s.fail(ctx, err)
	}

	defer unlock()

	archiveBytes, err := s.downloadArchive(ctx, archiveURL)
	if err != nil {
		return nil, s.fail(ctx, err)
	}

	s.enter(ctx, StepExtracting)

	extractedPath, packageName, err := s.extractArchive(ctx, s.cfg.ArchivePath)
	if err != nil {
		return nil, s.fail(ctx, err)
	}

	ctx = logger.WithKV(ctx, "package", packageName)

	s.enter(ctx, StepBackingUp)

	backupPath, err := s.backupExisting(ctx, packageName)
	if err != nil {
		return nil, s.fail(ctx, err)
	}

	s.enter(ctx, StepInstalling)

	installedPath, err := s.install(ctx, extractedPath, packageName)
	if err != nil {
		return nil, s.fail(ctx, err)
	}

	s.enter(ctx, StepCleaning)

	if err = s.cleanup(ctx, s.cfg.ArchivePath); err != nil {
		return nil, s.fail(ctx, err)
	}

	s.enter(ctx, StepFinished)

	return &Result{
		PackageName:   packageName,
		InstalledPath: installedPath,
		BackupPath:    backupPath,
		ArchivePath:   s.cfg.ArchivePath,
		ArchiveBytes:  archiveBytes,
		Elapsed:       s.now().Sub(startTime),
	}, nil
}

// Step returns the current workflow state.
func (s *ServiceImpl) Step() Step {
	return s.step
}

func (s *ServiceImpl) enter(ctx context.Context, step Step) {
	logger.DebugKV(ctx, "Entering step", "from", s.step.String(), "to", step.String())

	s.step = step
}

// fail moves the workflow to StepFailed and wraps err with the step that was running.
func (s *ServiceImpl) fail(ctx context.Context, err error) error {
	failedStep := s.step

	logger.DebugKV(ctx, "Step failed", "step", failedStep.String(), "error", err)

	s.step = StepFailed

	return &StepError{Step: failedStep, Err: err}
}
