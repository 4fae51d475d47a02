// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package sysinfo

import (
	"strconv"
	"strings"
)

// DecodeLUID decodes a hex-encoded 8-byte LUID such as
// "0102030405060708". Each two-character pair fills one byte, left to
// right; a pair that is not valid hex decodes as 0 and characters past
// the eighth byte are ignored. An odd-length string decodes to all
// zeros. DecodeLUID never fails.
func DecodeLUID(text string) [8]byte {
	var luid [8]byte
	if len(text)%2 != 0 {
		return luid
	}
	for index := 0; index+1 < len(text) && index/2 < len(luid); index += 2 {
		value, err := strconv.ParseUint(text[index:index+2], 16, 8)
		if err != nil {
			continue
		}
		luid[index/2] = byte(value)
	}
	return luid
}

// ParsePackagingVersion derives the major and minor numbers from a
// driver packaging version such as "23.40.12". Major is the integer
// before the first '.', minor the run of digits directly after it.
// Without a '.' both are 0; without digits after the '.' minor is 0.
func ParsePackagingVersion(version string) (major, minor uint32) {
	dot := strings.IndexByte(version, '.')
	if dot < 0 {
		return 0, 0
	}
	major = leadingInteger(version[:dot])

	rest := version[dot+1:]
	end := 0
	for end < len(rest) && rest[end] >= '0' && rest[end] <= '9' {
		end++
	}
	minor = leadingInteger(rest[:end])
	return major, minor
}

// leadingInteger reads an optionally signed decimal integer from the
// start of text after skipping whitespace, stopping at the first
// non-digit. No digits yields 0. The result wraps modulo 2^32.
func leadingInteger(text string) uint32 {
	text = strings.TrimLeft(text, " \t\n\v\f\r")
	negative := false
	if text != "" && (text[0] == '+' || text[0] == '-') {
		negative = text[0] == '-'
		text = text[1:]
	}
	var value uint32
	for index := 0; index < len(text) && text[index] >= '0' && text[index] <= '9'; index++ {
		value = value*10 + uint32(text[index]-'0')
	}
	if negative {
		return -value
	}
	return value
}

// parseCUMask reads the compute unit mask: an array with one array of
// unsigned integers per shader engine. Any other shape anywhere in the
// matrix discards it entirely; partial rows are never kept.
func parseCUMask(node Node) CUMask {
	if !node.IsArray() {
		return nil
	}
	var mask CUMask
	valid := true
	_ = node.Each(func(engine Node) error {
		if !engine.IsArray() {
			valid = false
			return errStop
		}
		row := []uint32{}
		err := engine.Each(func(item Node) error {
			if !item.isUnsigned() {
				valid = false
				return errStop
			}
			value, _ := item.asUint64()
			row = append(row, uint32(value))
			return nil
		})
		if err != nil {
			return err
		}
		mask = append(mask, row)
		return nil
	})
	if !valid {
		return nil
	}
	return mask
}
