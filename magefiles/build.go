// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build mage

// Package main provides build targets for the agenda project using Mage.
//
// Usage:
//
//	mage build       Compile the agenda binary to bin/
//	mage test:all    Run every test
//	mage test:race   Run every test with the race detector
//	mage test:cover  Run every test and write coverage.out
//	mage lint        Run golangci-lint
//	mage vet         Run go vet
//	mage clean       Remove build artifacts
//	mage install     Install agenda to GOPATH/bin
package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binaryName = "agenda"
	binaryDir  = "bin"
	cmdDir     = "./cmd/agenda"
)

// Default is the target run by a bare "mage".
var Default = Build

// Build compiles the agenda binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunV(binGo, "build", "-v", "-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	if err := sh.Rm(coverProfile); err != nil {
		return err
	}
	return sh.RunV(binGo, "clean")
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output(binGo, "env", "GOPATH")
	if err != nil {
		return err
	}
	src := filepath.Join(binaryDir, binaryName)
	dst := filepath.Join(gopath, "bin", binaryName)
	return sh.Copy(dst, src)
}
