// Package testutil provides test utilities and helpers for changegen tests.
package testutil

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"testing"
)

// HelperProcessConfig configures the behavior of the helper process.
type HelperProcessConfig struct {
	// ExitCode is the exit code to return (default 0).
	ExitCode int `json:"exit_code"`
	// Stdout is the content to write to stdout.
	Stdout string `json:"stdout"`
	// Stderr is the content to write to stderr.
	Stderr string `json:"stderr"`
	// EchoArgs writes the received arguments to stdout, one per line, after Stdout.
	EchoArgs bool `json:"echo_args"`
}

// HelperProcessEnvVars contains the environment variable names used by the helper process.
const (
	// EnvWantHelperProcess signals that the test binary should run as a helper process.
	EnvWantHelperProcess = "GO_WANT_HELPER_PROCESS"
	// EnvHelperProcessConfig contains JSON-encoded HelperProcessConfig.
	EnvHelperProcessConfig = "GO_HELPER_PROCESS_CONFIG"
)

// RunHelperProcessIfRequested turns the test binary into a fake command when
// GO_WANT_HELPER_PROCESS=1 is set. Call it first thing in TestMain:
//
//	func TestMain(m *testing.M) {
//	    testutil.RunHelperProcessIfRequested()
//	    os.Exit(m.Run())
//	}
//
// It returns immediately when the variable is not set.
func RunHelperProcessIfRequested() {
	if os.Getenv(EnvWantHelperProcess) != "1" {
		return
	}

	config := parseHelperConfig()
	runHelperProcess(config, os.Args[1:])
	// runHelperProcess calls os.Exit, so this line is never reached
}

// parseHelperConfig parses HelperProcessConfig from environment variable.
func parseHelperConfig() HelperProcessConfig {
	config := HelperProcessConfig{}
	configJSON := os.Getenv(EnvHelperProcessConfig)
	if configJSON != "" {
		// Ignore parse errors; use defaults on failure
		_ = json.Unmarshal([]byte(configJSON), &config)
	}
	return config
}

// runHelperProcess executes the helper process behavior and always exits.
func runHelperProcess(config HelperProcessConfig, args []string) {
	if config.Stdout != "" {
		fmt.Fprint(os.Stdout, config.Stdout)
	}
	if config.EchoArgs {
		fmt.Fprint(os.Stdout, strings.Join(args, "\n"))
	}
	if config.Stderr != "" {
		fmt.Fprint(os.Stderr, config.Stderr)
	}

	os.Exit(config.ExitCode)
}

// FakeCommand returns the path of the running test binary and the environment
// entries that make it behave as configured. Pass both to the code under test
// in place of a real executable.
func FakeCommand(t *testing.T, config HelperProcessConfig) (binary string, env []string) {
	t.Helper()

	binary, err := os.Executable()
	if err != nil {
		t.Fatalf("failed to get test binary path: %v", err)
	}
	return binary, HelperEnv(t, config)
}

// HelperEnv returns the environment entries for a helper process.
func HelperEnv(t *testing.T, config HelperProcessConfig) []string {
	t.Helper()

	configJSON, err := json.Marshal(config)
	if err != nil {
		t.Fatalf("failed to encode helper config: %v", err)
	}

	return []string{
		EnvWantHelperProcess + "=1",
		EnvHelperProcessConfig + "=" + string(configJSON),
	}
}
