//go:build integration

// Package stack integration tests synthesize real stacks through the jsii
// runtime and assert on the resulting CloudFormation templates.
//
// They need Node.js on PATH. Run them with:
//
//	go test -tags=integration ./internal/stack/...
package stack

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestStackIntegration(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Stack Integration Suite")
}
