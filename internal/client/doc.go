// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the headless client runtime.
//
// It loads the configured player's progress through the tier chain, keeps
// it reconciled with the remote store in the background and, on shutdown,
// flushes pending saves and emergency backups to the device tier.
package client
