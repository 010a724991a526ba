package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/mdcheck/internal/errors"
)

const validDoc = `---
description: A rule.
globs: ["**/*.go"]
---

# Title

Body text.
`

// runCommand executes the CLI with the given args and returns stdout.
// Package-level flag state is reset afterwards so tests stay independent.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(resetFlags)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func resetFlags() {
	verbosity = 0
	quiet = false
	logFormat = "text"
	logFile = ""
	configPath = ""
	jsonOutput = false
	outputFile = ""
	failOnWarnings = false
	workspaceRoot = ""
	jobs = 0
	timeout = 0
	interactive = false
	rulesFile = ""
	disabled = nil
	enabled = nil
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestValidators_List(t *testing.T) {
	out, err := runCommand(t, "validators")
	require.NoError(t, err)

	for _, name := range []string{"frontmatter", "annotations", "content", "xmltags", "crossref"} {
		require.Contains(t, out, name)
	}
}

func TestValidate_Passes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "good.mdc", validDoc)

	out, err := runCommand(t, "validate", "--workspace-root", dir, dir)
	require.NoError(t, err)
	require.Contains(t, out, "1 document(s) passed")
}

func TestValidate_FindingsExitCode(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bad.mdc", "# Only a heading\n")

	out, err := runCommand(t, "validate", "--workspace-root", dir, dir)
	require.Error(t, err)

	var exitErr *errors.ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, errors.ExitFindings, exitErr.Code)
	require.Contains(t, out, "frontmatter/missing")
}

func TestValidate_JSONOutput(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "good.mdc", validDoc)

	out, err := runCommand(t, "validate", "--json", "--workspace-root", dir, dir)
	require.NoError(t, err)
	require.Contains(t, out, `"summary"`)
	require.Contains(t, out, `"passed_documents": 1`)
}

func TestValidate_OutputFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "good.mdc", validDoc)
	reportPath := filepath.Join(dir, "report.json")

	_, err := runCommand(t, "validate", "--json", "--output", reportPath, "--workspace-root", dir, dir)
	require.NoError(t, err)

	data, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	require.Contains(t, string(data), `"documents"`)
}

func TestValidate_FailOnWarnings(t *testing.T) {
	dir := t.TempDir()
	// Valid frontmatter but a code block without a language tag.
	writeFile(t, dir, "warn.mdc", `---
description: A rule.
globs: ["**/*.go"]
---

# Title

`+"```\nno language\n```\n")

	_, err := runCommand(t, "validate", "--workspace-root", dir, dir)
	require.NoError(t, err)

	_, err = runCommand(t, "validate", "--fail-on-warnings", "--workspace-root", dir, dir)
	var exitErr *errors.ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, errors.ExitFindings, exitErr.Code)
}

func TestValidate_DisableValidator(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bare.mdc", "# Only a heading\n")

	_, err := runCommand(t, "validate", "--disable", "frontmatter", "--workspace-root", dir, dir)
	require.NoError(t, err)
}

func TestValidate_EnableAllowList(t *testing.T) {
	dir := t.TempDir()
	// Missing frontmatter and a heading skip; only content enabled.
	writeFile(t, dir, "bare.mdc", "# T\n\n### Deep\n")

	out, err := runCommand(t, "validate", "--enable", "content", "--workspace-root", dir, dir)
	require.Error(t, err)
	require.Contains(t, out, "content/heading-hierarchy")
	require.NotContains(t, out, "frontmatter/missing")
}

func TestValidate_UnknownValidatorInConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "good.mdc", validDoc)

	_, err := runCommand(t, "validate", "--disable", "nope", "--workspace-root", dir, dir)
	require.Error(t, err)
	require.ErrorIs(t, err, errors.ErrUnknownValidator)
}

func TestValidate_NoDocuments(t *testing.T) {
	dir := t.TempDir()

	_, err := runCommand(t, "validate", "--workspace-root", dir, dir)
	require.ErrorIs(t, err, errors.ErrNoDocuments)
}

func TestValidate_RulesProfile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "good.mdc", validDoc)
	rules := writeFile(t, dir, "rules.toml", "[content]\nrequired_sections = [\"Examples\"]\n")

	out, err := runCommand(t, "validate", "--rules", rules, "--workspace-root", dir, dir)
	require.Error(t, err)
	require.Contains(t, out, "content/required-sections")
}

func TestValidate_QuietVerboseConflict(t *testing.T) {
	_, err := runCommand(t, "validate", "-q", "-v", ".")
	require.Error(t, err)

	var exitErr *errors.ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, errors.ExitUser, exitErr.Code)
}
