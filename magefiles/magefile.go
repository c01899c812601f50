//go:build mage

// Package main provides build targets for the typeparse project using Mage.
//
// Usage:
//
//	mage build      Compile typeparse binary to bin/
//	mage test       Run all tests
//	mage lint       Run golangci-lint
//	mage clean      Remove build artifacts
//	mage install    Install typeparse to GOPATH/bin
package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binaryName = "typeparse"
	binaryDir  = "bin"
	cmdDir     = "./cmd/typeparse"
	versionVar = "github.com/mesh-intelligence/typeparse/internal/cli.Version"
	envVersion = "TYPEPARSE_VERSION"
	devVersion = "0.1.0-dev"
)

// ldflags stamps the version from TYPEPARSE_VERSION, defaulting to a dev build.
func ldflags() string {
	version := os.Getenv(envVersion)
	if version == "" {
		version = devVersion
	}
	return "-X " + versionVar + "=" + version
}

// Build compiles the typeparse binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunV(binGo, "build", "-v", "-ldflags", ldflags(), "-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// Test runs all tests.
func Test() error {
	return sh.RunV(binGo, "test", "./...")
}

// Lint runs golangci-lint.
func Lint() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
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
