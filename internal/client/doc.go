// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Dmitry Krylov

// Package client implements the vault CLI application runtime.
//
// It wires the signer, storage adapter, directory, and vault into a single
// process lifecycle: unlock, background identity republishing, the terminal
// UI or a one-shot command, and a guaranteed lock on exit.
package client
