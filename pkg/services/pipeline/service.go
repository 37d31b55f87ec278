package pipeline

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/deckhand-ci/deckhand-ci-runner/pkg/api"
	"github.com/deckhand-ci/deckhand-ci-runner/pkg/buildlog"
	"github.com/deckhand-ci/deckhand-ci-runner/pkg/clients/execcmd"
	"github.com/deckhand-ci/deckhand-ci-runner/pkg/clients/gitapi"
	"github.com/deckhand-ci/deckhand-ci-runner/pkg/clients/sshapi"
	"github.com/deckhand-ci/deckhand-ci-runner/pkg/clients/webhookapi"
	"github.com/deckhand-ci/deckhand-ci-runner/pkg/contracts"
)

// Service runs the fixed stage sequence once and reports the outcome
type Service interface {
	Run(ctx context.Context) (result Result)
}

// NewService returns a pipeline.Service running against the passed clients
func NewService(config *api.APIConfig, gitapiClient gitapi.Client, execcmdClient execcmd.Client, sshapiClient sshapi.Client, webhookapiClient webhookapi.Client) Service {
	return &service{
		config:           config,
		gitapiClient:     gitapiClient,
		execcmdClient:    execcmdClient,
		sshapiClient:     sshapiClient,
		webhookapiClient: webhookapiClient,
	}
}

type service struct {
	config           *api.APIConfig
	gitapiClient     gitapi.Client
	execcmdClient    execcmd.Client
	sshapiClient     sshapi.Client
	webhookapiClient webhookapi.Client
}

type stage struct {
	name string
	run  func(ctx context.Context) error
}

// Run executes all stages in order, then notifies the webhook endpoint of
// the outcome exactly once; notification failures never change the outcome.
func (s *service) Run(ctx context.Context) (result Result) {

	result = s.runStages(ctx)

	s.notify(ctx, result)

	return
}

func (s *service) runStages(ctx context.Context) (result Result) {

	result = SuccessResult()

	stages := []stage{
		{"checkout", s.checkout},
		{"setup-environment", s.setupEnvironment},
		{"install-dependencies", s.installDependencies},
		{"migrate-schema", s.migrateSchema},
		{"run-tests", s.runTests},
		{"run-lint", s.runLint},
		{"collect-static-assets", s.collectStaticAssets},
		{"build-and-push-image", s.buildAndPushImage},
	}

	for _, st := range stages {
		log.Info().Msgf("Running stage %v...", st.name)
		if err := st.run(ctx); err != nil {
			log.Warn().Err(err).Msgf("Stage %v failed, skipping remaining stages", st.name)
			result = FailureResult(st.name, err)
			break
		}
	}

	// the deploy stage only runs when the entire prior chain succeeded
	if result.Succeeded() {
		log.Info().Msg("Running stage deploy...")
		if err := s.sshapiClient.DeployApplication(ctx); err != nil {
			log.Warn().Err(err).Msg("Stage deploy failed")
			result = FailureResult("deploy", err)
		}
	}

	return
}

func (s *service) notify(ctx context.Context, result Result) {

	report := contracts.NewBuildReport(
		result.Status,
		s.config.Pipeline.JobName,
		s.config.Pipeline.BuildNumber,
		result.ErrorMessage(),
		buildlog.Tail(s.config.Pipeline.LogPath, s.config.Webhook.TailLines),
	)

	// best-effort; a notification failure must never mask the build outcome
	if err := s.webhookapiClient.SendBuildReport(ctx, report); err != nil {
		log.Warn().Err(err).Msg("Failed sending build report, keeping original outcome")
	}
}

func (s *service) checkout(ctx context.Context) error {
	return s.gitapiClient.CloneRevision(ctx)
}

func (s *service) setupEnvironment(ctx context.Context) error {
	return s.execcmdClient.RunCommand(ctx, s.config.Pipeline.WorkspaceDir, nil, s.config.Pipeline.PythonBinary, "-m", "venv", ".venv")
}

func (s *service) installDependencies(ctx context.Context) error {
	return s.execcmdClient.RunCommand(ctx, s.config.Pipeline.WorkspaceDir, nil, s.venvBinary("pip"), "install", "-r", "requirements.txt")
}

func (s *service) migrateSchema(ctx context.Context) error {
	return s.execcmdClient.RunCommand(ctx, s.config.Pipeline.WorkspaceDir, nil, s.venvBinary("python"), "manage.py", "migrate", "--noinput")
}

func (s *service) runTests(ctx context.Context) error {
	return s.execcmdClient.RunCommand(ctx, s.config.Pipeline.WorkspaceDir, nil, s.venvBinary("python"), "manage.py", "test", "--noinput")
}

func (s *service) runLint(ctx context.Context) error {
	return s.execcmdClient.RunCommand(ctx, s.config.Pipeline.WorkspaceDir, nil, s.venvBinary("flake8"), ".")
}

func (s *service) collectStaticAssets(ctx context.Context) error {
	return s.execcmdClient.RunCommand(ctx, s.config.Pipeline.WorkspaceDir, nil, s.venvBinary("python"), "manage.py", "collectstatic", "--noinput")
}

func (s *service) buildAndPushImage(ctx context.Context) (err error) {

	err = s.execcmdClient.RunCommand(ctx, s.config.Pipeline.WorkspaceDir, nil, "docker", "build", "-t", s.config.Registry.ImageRef, ".")
	if err != nil {
		return
	}

	if s.config.Registry.Username != "" {
		err = s.execcmdClient.RunCommand(ctx, s.config.Pipeline.WorkspaceDir, []string{fmt.Sprintf("DOCKER_PASSWORD=%v", s.config.Registry.Password)}, "sh", "-c", fmt.Sprintf("echo $DOCKER_PASSWORD | docker login --username %v --password-stdin %v", s.config.Registry.Username, s.config.Registry.Host))
		if err != nil {
			return
		}
	}

	return s.execcmdClient.RunCommand(ctx, s.config.Pipeline.WorkspaceDir, nil, "docker", "push", s.config.Registry.ImageRef)
}

func (s *service) venvBinary(name string) string {
	return filepath.Join(s.config.Pipeline.WorkspaceDir, ".venv", "bin", name)
}
