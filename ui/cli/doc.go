// Copyright (c) 2026 Startini Team
// Startini - start.ini configuration manager
// This source code is licensed under the MIT license found in the LICENSE file.
//
// Package cli implements the command-line interface for Startini using Cobra.
// It wires configuration, logging and localisation, and delegates the actual
// file handling to the internal packages. CLI code should remain thin.
package cli
