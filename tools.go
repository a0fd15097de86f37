//go:build tools

package tools

// This file tracks versions of CLI tool dependencies.
// It is not compiled into the binary.
//
// Tools in use:
// - github.com/matryer/moq (hand-maintained mocks_test.go files follow its output)
// - github.com/pressly/goose/v3/cmd/goose (declared as a go.mod tool)
