// Copyright (c) 2026 Startini Team
// Startini - start.ini configuration manager
// This source code is licensed under the MIT license found in the LICENSE file.
package client

import (
	"io"

	clog "github.com/charmbracelet/log"
)

type LogLevel int

const (
	Error LogLevel = iota + 1
	Warn
	Info
	Debug
)

func (l LogLevel) clog() clog.Level {
	switch l {
	case Error:
		return clog.ErrorLevel
	case Warn:
		return clog.WarnLevel
	case Debug:
		return clog.DebugLevel
	default:
		return clog.InfoLevel
	}
}

type Config struct {
	LogLevel  LogLevel
	LogOutput io.Writer // nil discards log records

	// Home and Base shorten paths in log records; both optional.
	Home string
	Base string

	// History is recorded only when HistoryType is set.
	HistoryType string
	HistoryDsn  string
}

func NewDefaultConfig() Config {
	return Config{
		LogLevel: Info,
	}
}
