// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

import (
	"go.uber.org/zap"
)

var _ SecurityLoggerInterface = (*SecurityLogger)(nil)

type SecurityLogger struct {
	l *zap.Logger
}

func (s *SecurityLogger) SystemStartup() {
	s.l.Info("system startup")
}

func (s *SecurityLogger) SystemShutdown() {
	s.l.Info("system shutdown")
}

func (s *SecurityLogger) AuthorizationDenied(userID, tenantID, resource, required string) {
	s.l.Warn("authorization denied",
		zap.String("user_id", userID),
		zap.String("tenant_id", tenantID),
		zap.String("resource", resource),
		zap.String("required", required),
	)
}

func (s *SecurityLogger) AuditWriteFailure(action string, err error) {
	s.l.Error("audit write failure",
		zap.String("action", action),
		zap.Error(err),
	)
}
