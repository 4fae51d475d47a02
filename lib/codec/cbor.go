// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"io"
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

var (
	encMode  cbor.EncMode
	decMode  cbor.DecMode
	diagMode cbor.DiagMode
)

func init() {
	var err error

	encOptions := cbor.CoreDetEncOptions()
	encOptions.ByteArray = cbor.ByteArrayToByteSlice
	encMode, err = encOptions.EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		// Records never use non-string map keys; any-typed targets
		// get map[string]any so the result also marshals as JSON.
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("codec: CBOR decoder initialization failed: " + err.Error())
	}

	diagMode, err = cbor.DiagOptions{
		ByteStringEncoding: cbor.ByteStringBase16Encoding,
	}.DiagMode()
	if err != nil {
		panic("codec: CBOR diagnostic mode initialization failed: " + err.Error())
	}
}

// Marshal encodes v to CBOR using Core Deterministic Encoding.
func Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// Unmarshal decodes CBOR data into v.
func Unmarshal(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}

// NewEncoder returns a deterministic CBOR encoder writing to w, for
// emitting one record after another as a CBOR sequence.
func NewEncoder(w io.Writer) *cbor.Encoder {
	return encMode.NewEncoder(w)
}

// Diagnose returns the diagnostic notation for the first CBOR data
// item in data and the bytes that follow it.
func Diagnose(data []byte) (string, []byte, error) {
	return diagMode.DiagnoseFirst(data)
}
