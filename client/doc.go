// Copyright (c) 2026 Startini Team
// Startini - start.ini configuration manager
// This source code is licensed under the MIT license found in the LICENSE file.

// Package client exposes Startini's start.ini handling to other Go programs,
// such as launcher wrappers that need to persist runtime properties without
// shelling out to the CLI.
package client
