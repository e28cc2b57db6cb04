// Copyright 2025 Lampstand Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package storage

import (
	"fmt"
	"math"
	"time"

	"github.com/mus-format/mus-go/varint"

	"github.com/lampstand/sermonrec/core"
)

// indexEntryVersion is the current on-disk format version for index entries.
// Bump when the layout below changes; Unmarshal rejects unknown versions with
// ErrUnsupportedVersion instead of misreading bytes.
const indexEntryVersion byte = 1

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, varint.Uint64.Size(uint64(id)))
	varint.Uint64.Marshal(uint64(id), buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	v, _, err := varint.Uint64.Unmarshal(data)
	if err != nil {
		return 0, fmt.Errorf("%w: id: %w", ErrSerializationFailed, err)
	}
	return core.ID(v), nil
}

// MarshalIndexEntry serializes an IndexEntry to bytes.
//
// Layout (version 1): version byte, key, sermon row id, seven strings
// (title, description, channel, link, image, date, theme), two unix-micro
// timestamps, vector length followed by float32 bits.
func MarshalIndexEntry(entry *core.IndexEntry) []byte {
	size := 1 +
		varint.Uint64.Size(uint64(entry.Key)) +
		varint.Int64.Size(entry.Sermon.Id) +
		sizeString(entry.Sermon.Title) +
		sizeString(entry.Sermon.Description) +
		sizeString(entry.Sermon.Channel) +
		sizeString(entry.Sermon.MessageLink) +
		sizeString(entry.Sermon.ImageURL) +
		sizeString(entry.Sermon.Date) +
		sizeString(entry.Sermon.Theme) +
		varint.Int64.Size(entry.Sermon.CreatedAt.UnixMicro()) +
		varint.Int64.Size(entry.Sermon.UpdatedAt.UnixMicro()) +
		varint.Int.Size(len(entry.Vector))
	for _, f := range entry.Vector {
		size += varint.Uint32.Size(math.Float32bits(f))
	}

	buf := make([]byte, size)
	n := 0
	buf[n] = indexEntryVersion
	n++
	n += varint.Uint64.Marshal(uint64(entry.Key), buf[n:])
	n += varint.Int64.Marshal(entry.Sermon.Id, buf[n:])
	n += marshalString(entry.Sermon.Title, buf[n:])
	n += marshalString(entry.Sermon.Description, buf[n:])
	n += marshalString(entry.Sermon.Channel, buf[n:])
	n += marshalString(entry.Sermon.MessageLink, buf[n:])
	n += marshalString(entry.Sermon.ImageURL, buf[n:])
	n += marshalString(entry.Sermon.Date, buf[n:])
	n += marshalString(entry.Sermon.Theme, buf[n:])
	n += varint.Int64.Marshal(entry.Sermon.CreatedAt.UnixMicro(), buf[n:])
	n += varint.Int64.Marshal(entry.Sermon.UpdatedAt.UnixMicro(), buf[n:])
	n += varint.Int.Marshal(len(entry.Vector), buf[n:])
	for _, f := range entry.Vector {
		n += varint.Uint32.Marshal(math.Float32bits(f), buf[n:])
	}
	return buf
}

// UnmarshalIndexEntry deserializes an IndexEntry from bytes.
func UnmarshalIndexEntry(data []byte) (*core.IndexEntry, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty index entry", ErrTruncatedData)
	}
	if data[0] != indexEntryVersion {
		return nil, fmt.Errorf("%w: got version %d", ErrUnsupportedVersion, data[0])
	}

	d := decoder{data: data, pos: 1}
	entry := &core.IndexEntry{}

	entry.Key = core.ID(d.uint64())
	entry.Sermon.Id = d.int64()
	entry.Sermon.Title = d.string()
	entry.Sermon.Description = d.string()
	entry.Sermon.Channel = d.string()
	entry.Sermon.MessageLink = d.string()
	entry.Sermon.ImageURL = d.string()
	entry.Sermon.Date = d.string()
	entry.Sermon.Theme = d.string()
	entry.Sermon.CreatedAt = time.UnixMicro(d.int64()).UTC()
	entry.Sermon.UpdatedAt = time.UnixMicro(d.int64()).UTC()

	vecLen := d.int()
	if d.err == nil && vecLen > 0 {
		if vecLen > len(d.data)-d.pos {
			return nil, fmt.Errorf("%w: vector length %d exceeds remaining data", ErrTruncatedData, vecLen)
		}
		entry.Vector = make([]float32, vecLen)
		for i := range entry.Vector {
			entry.Vector[i] = math.Float32frombits(d.uint32())
		}
	}

	if d.err != nil {
		return nil, fmt.Errorf("%w: index entry: %w", ErrSerializationFailed, d.err)
	}
	return entry, nil
}

func sizeString(s string) int {
	return varint.Int.Size(len(s)) + len(s)
}

func marshalString(s string, buf []byte) int {
	n := varint.Int.Marshal(len(s), buf)
	n += copy(buf[n:], s)
	return n
}

// decoder reads mus-encoded fields sequentially, latching the first error so
// call sites stay flat.
type decoder struct {
	data []byte
	pos  int
	err  error
}

func (d *decoder) uint64() uint64 {
	if d.err != nil {
		return 0
	}
	v, n, err := varint.Uint64.Unmarshal(d.data[d.pos:])
	if err != nil {
		d.err = err
		return 0
	}
	d.pos += n
	return v
}

func (d *decoder) uint32() uint32 {
	if d.err != nil {
		return 0
	}
	v, n, err := varint.Uint32.Unmarshal(d.data[d.pos:])
	if err != nil {
		d.err = err
		return 0
	}
	d.pos += n
	return v
}

func (d *decoder) int64() int64 {
	if d.err != nil {
		return 0
	}
	v, n, err := varint.Int64.Unmarshal(d.data[d.pos:])
	if err != nil {
		d.err = err
		return 0
	}
	d.pos += n
	return v
}

func (d *decoder) int() int {
	if d.err != nil {
		return 0
	}
	v, n, err := varint.Int.Unmarshal(d.data[d.pos:])
	if err != nil {
		d.err = err
		return 0
	}
	if v < 0 {
		d.err = fmt.Errorf("negative length %d", v)
		return 0
	}
	d.pos += n
	return v
}

func (d *decoder) string() string {
	length := d.int()
	if d.err != nil {
		return ""
	}
	if length > len(d.data)-d.pos {
		d.err = fmt.Errorf("string length %d exceeds remaining data", length)
		return ""
	}
	s := string(d.data[d.pos : d.pos+length])
	d.pos += length
	return s
}
