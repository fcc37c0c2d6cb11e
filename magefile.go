//go:build mage

package main

import (
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Default target runs a full build.
var Default = Build

// Build compiles the manualkit binary.
func Build() error {
	return sh.RunV("go", "build", "-o", "manualkit", "./cmd/manualkit")
}

// Test runs the test suite.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Vet runs go vet over the module.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Check runs vet and the tests.
func Check() {
	mg.SerialDeps(Vet, Test)
}

// Install builds and installs the binary into GOPATH/bin.
func Install() error {
	return sh.RunV("go", "install", "./cmd/manualkit")
}

// Clean removes build artifacts.
func Clean() error {
	return os.RemoveAll("manualkit")
}
