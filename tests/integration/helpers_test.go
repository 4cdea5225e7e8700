package integration

import (
	"bytes"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// runCommand runs a command in dir and returns stdout, stderr, and error.
func runCommand(dir string, name string, args ...string) (string, string, error) {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// runCommandWithInput runs a command with the given string piped to stdin.
func runCommandWithInput(dir string, input string, name string, args ...string) (string, string, error) {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	cmd.Stdin = strings.NewReader(input)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// buildFoundryBindings builds the foundry-bindings binary for testing.
// Returns the absolute path to the binary.
func buildFoundryBindings(t *testing.T) string {
	rootDir, err := filepath.Abs("../../")
	if err != nil {
		t.Fatalf("failed to get absolute path to root: %v", err)
	}

	outputPath := filepath.Join(rootDir, "bin", "foundry-bindings-test")
	if isWindows() {
		outputPath += ".exe"
	}

	cmd := exec.Command("go", "build", "-o", outputPath, "./cmd/foundry-bindings")
	cmd.Dir = rootDir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("failed to build foundry-bindings: %v\noutput: %s", err, out)
	}

	return outputPath
}

func isWindows() bool {
	return filepath.Separator == '\\'
}
