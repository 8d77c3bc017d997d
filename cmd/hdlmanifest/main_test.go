package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/quantmind-br/hdlmanifest/internal/manifest"
	"github.com/quantmind-br/hdlmanifest/internal/testutil"
)

// execute runs the CLI with an isolated config file and returns stdout, stderr
func execute(t *testing.T, configYAML string, args ...string) (string, string, error) {
	t.Helper()

	t.Setenv("HOME", t.TempDir())
	cfgPath := testutil.WriteFile(t, t.TempDir(), "config.yaml", configYAML)

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", cfgPath}, args...))

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestValidateCmd(t *testing.T) {
	_, path := testutil.ManifestTree(t, testutil.SynManifest)

	stdout, _, err := execute(t, "", "validate", path)

	require.NoError(t, err)
	assert.Equal(t, "OK "+path+"\n", stdout)
}

func TestValidateCmd_Directory(t *testing.T) {
	root, path := testutil.ManifestTree(t, testutil.SynManifest)

	stdout, _, err := execute(t, "", "validate", filepath.Join(root, "syn"))

	require.NoError(t, err)
	assert.Equal(t, "OK "+path+"\n", stdout)
}

func TestValidateCmd_DefaultNameFromConfig(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "syn.yaml", testutil.SynManifestYAML)

	stdout, _, err := execute(t, "manifest:\n  default_name: syn.yaml\n", "validate", dir)

	require.NoError(t, err)
	assert.Equal(t, "OK "+path+"\n", stdout)
}

func TestValidateCmd_Errors(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
		args     []string
		wantErr  error
	}{
		{
			name:     "missing field",
			manifest: strings.Replace(testutil.SynManifest, `syn_top = "yarr"`, "", 1),
			wantErr:  manifest.ErrMissingField,
		},
		{
			name:     "files not a list",
			manifest: strings.Replace(testutil.SynManifest, `files = ["../yarr_spec.ucf",`, `files = "../yarr_spec.ucf"`+"\nignored = [", 1),
			wantErr:  manifest.ErrInvalidType,
		},
		{
			name:     "unknown key with strict flag",
			manifest: testutil.SynManifest + `language = "vhdl"` + "\n",
			args:     []string{"--strict"},
			wantErr:  manifest.ErrUnknownField,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, path := testutil.ManifestTree(t, tt.manifest)

			args := append(append([]string{}, tt.args...), "validate", path)
			_, _, err := execute(t, "", args...)

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateCmd_NotFound(t *testing.T) {
	_, _, err := execute(t, "", "validate", filepath.Join(t.TempDir(), "Manifest.py"))

	assert.ErrorIs(t, err, manifest.ErrFileNotFound)
}

func TestValidateCmd_StrictFromConfig(t *testing.T) {
	_, path := testutil.ManifestTree(t, testutil.SynManifest+`language = "vhdl"`+"\n")

	_, _, err := execute(t, "", "validate", path)
	require.NoError(t, err)

	_, _, err = execute(t, "manifest:\n  strict: true\n", "validate", path)
	assert.ErrorIs(t, err, manifest.ErrUnknownField)
}

func TestShowCmd(t *testing.T) {
	_, path := testutil.ManifestTree(t, testutil.SynManifest)

	t.Run("text", func(t *testing.T) {
		stdout, _, err := execute(t, "", "show", path)

		require.NoError(t, err)
		assert.Contains(t, stdout, "syn_device")
		assert.Contains(t, stdout, "xc6slx45t")
		assert.Contains(t, stdout, "local:../")
	})

	t.Run("yaml", func(t *testing.T) {
		stdout, _, err := execute(t, "", "show", "--format", "yaml", path)
		require.NoError(t, err)

		var doc manifest.Document
		require.NoError(t, yaml.Unmarshal([]byte(stdout), &doc))
		assert.Equal(t, "xc6slx45t", doc.SynDevice)
		assert.Equal(t, []string{"../yarr_spec.ucf", "../top_yarr_spec.vhd"}, doc.Files)
	})

	t.Run("json", func(t *testing.T) {
		stdout, _, err := execute(t, "", "show", "-f", "json", path)
		require.NoError(t, err)

		var doc manifest.Document
		require.NoError(t, json.Unmarshal([]byte(stdout), &doc))
		assert.Equal(t, manifest.TargetXilinx, doc.Target)
		assert.Equal(t, map[string][]string{"local": {"../"}}, doc.Modules)
	})

	t.Run("unsupported format", func(t *testing.T) {
		_, _, err := execute(t, "", "show", "--format", "xml", path)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported format")
	})
}

func TestFilesCmd(t *testing.T) {
	root, path := testutil.ManifestTree(t, testutil.SynManifest, testutil.SynSources...)

	stdout, _, err := execute(t, "", "files", "--check", path)

	require.NoError(t, err)
	assert.Equal(t,
		filepath.Join(root, "yarr_spec.ucf")+"\n"+filepath.Join(root, "top_yarr_spec.vhd")+"\n",
		stdout)
}

func TestFilesCmd_CheckMissing(t *testing.T) {
	root, path := testutil.ManifestTree(t, testutil.SynManifest, "yarr_spec.ucf")

	t.Run("listing does not check", func(t *testing.T) {
		_, _, err := execute(t, "", "files", path)
		assert.NoError(t, err)
	})

	t.Run("check reports missing files", func(t *testing.T) {
		_, stderr, err := execute(t, "logging:\n  format: json\n", "files", "--check", path)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "1 of 2 source files missing")
		assert.Contains(t, stderr, filepath.Join(root, "top_yarr_spec.vhd"))
	})
}

func TestArgsCmd(t *testing.T) {
	root, path := testutil.ManifestTree(t, testutil.SynManifest)

	stdout, _, err := execute(t, "", "args", path)

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	assert.Equal(t, "target=xilinx", lines[0])
	assert.Contains(t, lines, "syn_top=yarr")
	assert.Contains(t, lines, "files="+filepath.Join(root, "top_yarr_spec.vhd"))
	assert.Equal(t, "fetchto="+filepath.Join(root, "ip_cores"), lines[len(lines)-1])
}

func TestVerboseLogsToStderr(t *testing.T) {
	_, path := testutil.ManifestTree(t, testutil.SynManifest)

	stdout, stderr, err := execute(t, "", "--verbose", "--log-format", "json", "validate", path)

	require.NoError(t, err)
	assert.NotContains(t, stdout, "Manifest loaded")
	assert.Contains(t, stderr, "Manifest loaded")
	assert.Contains(t, stderr, `"device":"xc6slx45t"`)
}

func TestInvalidConfigFile(t *testing.T) {
	_, path := testutil.ManifestTree(t, testutil.SynManifest)

	_, _, err := execute(t, "manifest: [unclosed\n", "validate", path)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestVersionCmd(t *testing.T) {
	stdout, _, err := execute(t, "", "version")

	require.NoError(t, err)
	assert.Contains(t, stdout, "hdlmanifest")
}
