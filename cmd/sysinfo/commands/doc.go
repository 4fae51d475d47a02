// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the sysinfo command tree.
//
// Every subcommand reads its input from a named file or stdin. Input
// that starts with the chunk file magic is opened as a chunk file;
// anything else is treated as a JSON document, optionally with
// comments stripped when input.allow_comments is set. [App] carries
// the streams, loaded configuration, and logger shared by all
// subcommands so tests can drive the tree with in-memory buffers.
package commands
