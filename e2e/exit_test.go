//go:build e2e && unix

package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestApplicationExit(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartPicker(3), "Failed to start app")

	// Wait for TUI to initialize and render
	require.True(t, tf.Ready(), "Should receive ready signal")
	require.True(t, tf.SeePlain("Outcomes"), "Should show tray title")

	// Clear any buffered output first
	tf.Snapshot()

	// Set up exit monitoring before sending ctrl+c
	done := make(chan error, 1)
	go func() {
		done <- tf.cmd.Wait()
	}()

	t.Logf("Sending Ctrl+C to quit application...")
	tf.SendCtrlC()

	select {
	case exitErr := <-done:
		t.Logf("Process exited with Ctrl+C (exit code: %v)", exitErr)
	case <-time.After(1500 * time.Millisecond):
		t.Error("Application did not exit within timeout")
		tf.DumpTailOnFail(t, "exit-failure", 4096) // Debug output
	}
}

func TestEscapeLeavesSearchBeforeQuitting(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	require.NoError(t, tf.StartPicker(3), "Failed to start app")
	require.True(t, tf.Ready(), "Should receive ready signal")

	done := make(chan error, 1)
	go func() {
		done <- tf.cmd.Wait()
	}()

	// q inside the search box is text, esc only blurs the box
	require.NoError(t, tf.Search("q"))
	require.NoError(t, tf.SendKeys(KeyEsc))
	select {
	case <-done:
		t.Fatal("app exited while leaving search")
	case <-time.After(500 * time.Millisecond):
	}

	require.NoError(t, tf.SendKeys(KeyEsc))
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("app did not exit after esc")
	}
}
