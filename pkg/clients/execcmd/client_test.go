package execcmd

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/deckhand-ci/deckhand-ci-runner/pkg/api"
)

func TestRunCommand(t *testing.T) {

	t.Run("ReturnsNoErrorForSucceedingCommand", func(t *testing.T) {

		execcmdClient, _ := clientForTest(t)

		// act
		err := execcmdClient.RunCommand(context.Background(), t.TempDir(), nil, "true")

		assert.Nil(t, err)
	})

	t.Run("ReturnsErrorForFailingCommand", func(t *testing.T) {

		execcmdClient, _ := clientForTest(t)

		// act
		err := execcmdClient.RunCommand(context.Background(), t.TempDir(), nil, "false")

		assert.NotNil(t, err)
	})

	t.Run("ReturnsErrorForUnknownCommand", func(t *testing.T) {

		execcmdClient, _ := clientForTest(t)

		// act
		err := execcmdClient.RunCommand(context.Background(), t.TempDir(), nil, "this-command-does-not-exist")

		assert.NotNil(t, err)
	})

	t.Run("AppendsCommandOutputToLogFile", func(t *testing.T) {

		execcmdClient, logPath := clientForTest(t)

		// act
		err := execcmdClient.RunCommand(context.Background(), t.TempDir(), nil, "echo", "hello from the build")

		assert.Nil(t, err)

		logContent, err := os.ReadFile(logPath)
		assert.Nil(t, err)
		assert.True(t, strings.Contains(string(logContent), "> echo hello from the build"))
		assert.True(t, strings.Contains(string(logContent), "hello from the build"))
	})

	t.Run("AppendsAcrossMultipleCommands", func(t *testing.T) {

		execcmdClient, logPath := clientForTest(t)

		// act
		err := execcmdClient.RunCommand(context.Background(), t.TempDir(), nil, "echo", "first")
		assert.Nil(t, err)
		err = execcmdClient.RunCommand(context.Background(), t.TempDir(), nil, "echo", "second")
		assert.Nil(t, err)

		logContent, err := os.ReadFile(logPath)
		assert.Nil(t, err)
		assert.True(t, strings.Contains(string(logContent), "first"))
		assert.True(t, strings.Contains(string(logContent), "second"))
	})

	t.Run("PassesExtraEnvironmentToCommand", func(t *testing.T) {

		execcmdClient, logPath := clientForTest(t)

		// act
		err := execcmdClient.RunCommand(context.Background(), t.TempDir(), []string{"DECKHAND_TEST_VALUE=plumbed-through"}, "sh", "-c", "echo $DECKHAND_TEST_VALUE")

		assert.Nil(t, err)

		logContent, err := os.ReadFile(logPath)
		assert.Nil(t, err)
		assert.True(t, strings.Contains(string(logContent), "plumbed-through"))
	})
}

func clientForTest(t *testing.T) (Client, string) {
	t.Helper()

	logPath := filepath.Join(t.TempDir(), "build.log")
	config := &api.APIConfig{
		Pipeline: &api.PipelineConfig{
			JobName:     "ecommerce-website",
			BuildNumber: "42",
			LogPath:     logPath,
		},
	}

	return NewClient(config), logPath
}
