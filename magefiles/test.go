//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Test groups test targets.
type Test mg.Namespace

// All runs all tests.
func (Test) All() error {
	return sh.RunV(binGo, "test", "-v", "./...")
}

// Repro runs the scenario tests that compare the bound and literal variants.
func (Test) Repro() error {
	return sh.RunV(binGo, "test", "-v", "-count=1", "-run", "TestRun_|TestRunAll_|TestRunShared", "./internal/scenario/...")
}

// Engines builds the binary and runs the reproduction with each engine.
// The cgo engine is skipped when CGO_ENABLED=0.
func (Test) Engines() error {
	mg.Deps(Build)
	bin := "./" + binaryDir + "/" + binaryName

	cgo, err := sh.Output(binGo, "env", "CGO_ENABLED")
	if err != nil {
		return err
	}

	engines := []string{"sqlite"}
	if cgo == "1" {
		engines = append(engines, "sqlite3")
	}
	for _, e := range engines {
		fmt.Printf("== engine %s\n", e)
		if err := sh.RunV(bin, "--engine", e, "run"); err != nil {
			return fmt.Errorf("engine %s: %w", e, err)
		}
	}
	return nil
}
