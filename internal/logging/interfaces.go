// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

type LoggerInterface interface {
	Debug(args ...interface{})
	Info(args ...interface{})
	Warn(args ...interface{})
	Error(args ...interface{})
	Fatal(args ...interface{})

	Debugf(template string, args ...interface{})
	Infof(template string, args ...interface{})
	Warnf(template string, args ...interface{})
	Errorf(template string, args ...interface{})
	Fatalf(template string, args ...interface{})

	Security() SecurityLoggerInterface
}

// SecurityLoggerInterface is the dedicated channel for security-relevant
// events. It doubles as the fallback diagnostic channel when an audit write
// for a non-privileged operation fails.
type SecurityLoggerInterface interface {
	SystemStartup()
	SystemShutdown()
	AuthorizationDenied(userID, tenantID, resource, required string)
	AuditWriteFailure(action string, err error)
}
