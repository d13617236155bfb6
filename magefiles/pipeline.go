//go:build mage

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/magefile/mage/mg"
)

// run executes the built CLI with the given arguments, building it first.
func run(args ...string) error {
	mg.Deps(Build)
	cmd := exec.Command(filepath.Join(binDir, binName), args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Fix repairs YAML frontmatter across the generated documents.
func Fix() error {
	fmt.Println("[pipeline] fix")
	return run("fix")
}

// Enforce applies the canonical section template and writes run logs.
func Enforce() error {
	fmt.Println("[pipeline] enforce")
	return run("enforce")
}

// Improve regenerates documents below the completeness threshold.
func Improve() error {
	fmt.Println("[pipeline] improve")
	return run("improve")
}

// Index builds the chunk retrieval database from preprocessed documents.
func Index() error {
	fmt.Println("[pipeline] index")
	return run("index")
}
