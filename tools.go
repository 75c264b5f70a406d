//go:build tools
// +build tools

// Package tools declares tool dependencies for this module.
//
// These imports are not used at runtime. They keep the tools invoked via
// `go generate` (mockgen) tracked in go.mod / go.sum.
package afk_sentinel

import (
	_ "go.uber.org/mock/mockgen"
)
