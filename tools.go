//go:build tools

// Package convo_lab pins the code generators used by go:generate directives
// (mockgen for mocks/) so they resolve from go.mod on a fresh checkout.
package convo_lab

import (
	_ "go.uber.org/mock/mockgen"
)
