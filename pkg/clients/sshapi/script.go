package sshapi

import (
	"fmt"
	"sort"
	"strings"

	"github.com/deckhand-ci/deckhand-ci-runner/pkg/api"
)

// deployScript assembles the fixed script executed on the remote host; it
// aborts on the first failing command, except stopping/removing the previous
// container which tolerates the container not existing.
func deployScript(deploy *api.DeployConfig, registry *api.RegistryConfig) string {

	runArgs := []string{
		"-d",
		"--restart unless-stopped",
		fmt.Sprintf("--name %v", deploy.ContainerName),
		fmt.Sprintf("-p %v", deploy.PortMapping),
	}
	if deploy.VolumeMapping != "" {
		runArgs = append(runArgs, fmt.Sprintf("-v %v", deploy.VolumeMapping))
	}

	// sorted for a deterministic script
	envNames := make([]string, 0, len(deploy.ContainerEnv))
	for name := range deploy.ContainerEnv {
		envNames = append(envNames, name)
	}
	sort.Strings(envNames)
	for _, name := range envNames {
		runArgs = append(runArgs, fmt.Sprintf("-e %v=%v", name, deploy.ContainerEnv[name]))
	}

	lines := []string{
		"set -e",
		fmt.Sprintf("cd %v", deploy.AppDir),
		fmt.Sprintf("docker pull %v", registry.ImageRef),
		fmt.Sprintf("docker stop %v || true", deploy.ContainerName),
		fmt.Sprintf("docker rm %v || true", deploy.ContainerName),
		fmt.Sprintf("docker run %v %v", strings.Join(runArgs, " "), registry.ImageRef),
		"docker image prune -f",
	}

	return strings.Join(lines, "\n")
}
