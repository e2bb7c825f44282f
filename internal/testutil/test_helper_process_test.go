package testutil

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	RunHelperProcessIfRequested()
	os.Exit(m.Run())
}

func TestHelperEnv(t *testing.T) {
	t.Parallel()

	env := HelperEnv(t, HelperProcessConfig{ExitCode: 3, Stdout: "out", EchoArgs: true})
	require.Len(t, env, 2)
	assert.Equal(t, EnvWantHelperProcess+"=1", env[0])

	raw, ok := strings.CutPrefix(env[1], EnvHelperProcessConfig+"=")
	require.True(t, ok)

	var decoded HelperProcessConfig
	require.NoError(t, json.Unmarshal([]byte(raw), &decoded))
	assert.Equal(t, HelperProcessConfig{ExitCode: 3, Stdout: "out", EchoArgs: true}, decoded)
}

func TestFakeCommand(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		config     HelperProcessConfig
		args       []string
		wantStdout string
		wantStderr string
		wantCode   int
	}{
		"stdout only": {
			config:     HelperProcessConfig{Stdout: "hello stdout"},
			wantStdout: "hello stdout",
		},
		"stderr and exit code": {
			config:     HelperProcessConfig{Stderr: "fatal: bad revision", ExitCode: 128},
			wantStderr: "fatal: bad revision",
			wantCode:   128,
		},
		"echo args": {
			config:     HelperProcessConfig{EchoArgs: true},
			args:       []string{"log", "--no-color", "v1..v2"},
			wantStdout: "log\n--no-color\nv1..v2",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			binary, env := FakeCommand(t, tt.config)
			cmd := exec.Command(binary, tt.args...)
			cmd.Env = append(os.Environ(), env...)

			var stdout, stderr bytes.Buffer
			cmd.Stdout = &stdout
			cmd.Stderr = &stderr
			err := cmd.Run()

			if tt.wantCode == 0 {
				require.NoError(t, err)
			} else {
				var exitErr *exec.ExitError
				require.True(t, errors.As(err, &exitErr))
				assert.Equal(t, tt.wantCode, exitErr.ExitCode())
			}
			assert.Equal(t, tt.wantStdout, stdout.String())
			assert.Equal(t, tt.wantStderr, stderr.String())
		})
	}
}
