// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package buffer provides the growable byte buffer that serialized syntax
// trees are rendered into.
//
// The buffer mirrors the explicit init/append/free lifecycle of the embedding
// boundary: hosts initialize a buffer, hand it to the serializer, read the
// accumulated bytes, and free it exactly once. There are no concurrent
// writers.
package buffer

import "fmt"

// Buffer is a growable byte buffer.
//
// The zero value is not ready to use; construct one with [New].
type Buffer struct {
	value []byte
	freed bool
}

// New constructs a new zero-length buffer.
func New() *Buffer {
	return &Buffer{value: []byte{}}
}

// Len returns the number of bytes accumulated so far.
func (b *Buffer) Len() int {
	return len(b.value)
}

// Bytes returns the accumulated bytes.
//
// The returned slice aliases the buffer's backing storage; it is invalidated
// by the next append and by [Buffer.Free].
func (b *Buffer) Bytes() []byte {
	return b.value
}

// String returns the accumulated bytes as a string.
func (b *Buffer) String() string {
	return string(b.value)
}

// Append appends raw bytes to the buffer, growing it as needed.
func (b *Buffer) Append(data []byte) {
	b.check()
	b.value = append(b.value, data...)
}

// AppendString appends a string to the buffer.
func (b *Buffer) AppendString(s string) {
	b.check()
	b.value = append(b.value, s...)
}

// AppendByte appends a single byte to the buffer.
func (b *Buffer) AppendByte(c byte) {
	b.check()
	b.value = append(b.value, c)
}

// Appendf appends formatted text to the buffer.
func (b *Buffer) Appendf(format string, args ...any) {
	b.check()
	b.value = fmt.Appendf(b.value, format, args...)
}

// Write implements [io.Writer]. It never fails.
func (b *Buffer) Write(data []byte) (int, error) {
	b.Append(data)
	return len(data), nil
}

// Free releases the buffer's backing storage. The buffer is unusable
// afterward; appending to a freed buffer panics, as does a double free.
func (b *Buffer) Free() {
	b.check()
	b.value = nil
	b.freed = true
}

func (b *Buffer) check() {
	if b.freed {
		panic("fern/buffer: use of freed buffer")
	}
}
