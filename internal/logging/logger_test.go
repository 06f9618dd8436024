// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

import (
	"testing"
)

func TestDebugLogger(t *testing.T) {
	logger := NewLogger("debug")
	if logger == nil {
		t.Fatal("expected logger")
	}
	logger.Debugf("debug message %d", 1)
	logger.Security().SystemStartup()
}

func TestInvalidLevel(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on invalid level")
		}
	}()
	NewLogger("invalid")
}

func TestNoopLogger(t *testing.T) {
	logger := NewNoopLogger()
	logger.Infof("discarded %s", "message")
	logger.Security().AuditWriteFailure("perm.grant", nil)
}
