// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/bureau-foundation/sysinfo/cmd/sysinfo/cli"
	"github.com/bureau-foundation/sysinfo/lib/chunkfile"
	"github.com/tidwall/jsonc"
)

// stdinName is how input read from stdin is named in messages.
const stdinName = "<stdin>"

// input is one command input: either a JSON document or an opened
// chunk file.
type input struct {
	name     string
	document []byte
	chunks   *chunkfile.File
}

// isChunkFile reports whether the input was a chunk file.
func (in *input) isChunkFile() bool {
	return in.chunks != nil
}

// readInput reads the single optional file argument, or stdin when
// args is empty or "-". Chunk files are detected by their magic.
// forceChunk rejects input that is not a chunk file.
func (app *App) readInput(args []string, forceChunk bool) (*input, error) {
	if len(args) > 1 {
		return nil, cli.Usagef("expected at most one input file, got %d", len(args))
	}

	name := stdinName
	var data []byte
	var err error
	if len(args) == 1 && args[0] != "-" {
		name = args[0]
		data, err = os.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
	} else {
		data, err = io.ReadAll(app.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
	}

	if chunkfile.HasMagic(data) {
		file, err := chunkfile.Open(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		app.Logger.Debug("opened chunk file", "input", name, "chunks", file.ChunkCount())
		return &input{name: name, chunks: file}, nil
	}
	if forceChunk {
		return nil, fmt.Errorf("%s: not a chunk file", name)
	}

	return &input{name: name, document: app.prepareDocument(data)}, nil
}

// prepareDocument strips comments and trailing commas when
// input.allow_comments is set.
func (app *App) prepareDocument(data []byte) []byte {
	if !app.Config.Input.AllowComments {
		return data
	}
	return jsonc.ToJSON(data)
}
