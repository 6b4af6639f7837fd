// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const coverProfile = "coverage.out"

// Test groups test targets (all, race, cover).
type Test mg.Namespace

// All runs every test.
func (Test) All() error {
	return sh.RunV(binGo, "test", "-v", "./...")
}

// Race runs every test with the race detector. The registries and tables
// are exercised from concurrent goroutines.
func (Test) Race() error {
	return sh.RunV(binGo, "test", "-race", "-count=1", "./...")
}

// Cover runs every test and writes a coverage profile.
func (Test) Cover() error {
	if err := sh.RunV(binGo, "test", "-coverprofile="+coverProfile, "./..."); err != nil {
		return err
	}
	return sh.RunV(binGo, "tool", "cover", "-func="+coverProfile)
}
