//go:build e2e && unix

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// CreateTestWorkspace creates a temporary workspace for the test
func (tf *TUITestFramework) CreateTestWorkspace() (string, error) {
	tmpDir := tf.t.TempDir()
	tf.workspace = tmpDir
	return tmpDir, nil
}

// WriteCatalog writes a YAML catalog with n numbered outcomes and returns its path
func (tf *TUITestFramework) WriteCatalog(n int) (string, error) {
	if tf.workspace == "" {
		return "", fmt.Errorf("workspace not created")
	}

	var b strings.Builder
	b.WriteString("outcomes:\n")
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "  - id: o%02d\n    label: L%02d\n    title: Outcome %02d\n    description: Description of outcome %02d\n", i, i, i, i)
	}

	path := filepath.Join(tf.workspace, "catalog.yaml")
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return "", err
	}
	return path, nil
}

// CaptureStdout sends the app's stdout to a file instead of the PTY.
// Must be called before StartApp.
func (tf *TUITestFramework) CaptureStdout() error {
	f, err := os.Create(filepath.Join(tf.workspace, "stdout.txt"))
	if err != nil {
		return err
	}
	tf.stdout = f
	return nil
}

// Stdout returns what the app printed to stdout so far
func (tf *TUITestFramework) Stdout() string {
	data, err := os.ReadFile(filepath.Join(tf.workspace, "stdout.txt"))
	if err != nil {
		return ""
	}
	return string(data)
}

// StartPicker starts the picker on a memory catalog of n outcomes
func (tf *TUITestFramework) StartPicker(n int, args ...string) error {
	if _, err := tf.CreateTestWorkspace(); err != nil {
		return err
	}
	catalog, err := tf.WriteCatalog(n)
	if err != nil {
		return err
	}
	if err := tf.CaptureStdout(); err != nil {
		return err
	}
	return tf.StartApp(append([]string{"--source", "memory", "--path", catalog}, args...)...)
}
