// Copyright (c) 2026 Startini Team
// Startini - start.ini configuration manager
// This source code is licensed under the MIT license found in the LICENSE file.

// Package ui groups Startini's user interfaces. The command-line interface
// lives in ui/cli.
package ui
