// Copyright the go-setools authors.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package fits

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/setools/go-setools/pkg/catalog"
)

// Write serializes a catalog: an empty primary unit, the LDAC_IMHEAD
// provenance extension when one is held, then the rows as a binary table
// named LDAC_OBJECTS.
func Write(w io.Writer, file *File) error {
	var primary headerBuilder
	//
	primary.logical("SIMPLE", true)
	primary.integer("BITPIX", 8)
	primary.integer("NAXIS", 0)
	primary.logical("EXTEND", true)
	//
	if _, err := w.Write(primary.bytes()); err != nil {
		return err
	}
	//
	if file.Imhead != nil {
		if _, err := w.Write(file.Imhead); err != nil {
			return err
		}
	}
	//
	return writeTable(w, file.Catalog)
}

// writeTable serializes catalog rows as one binary table extension.
func writeTable(w io.Writer, cat *catalog.Catalog) error {
	var (
		columns  = cat.Columns()
		repeats  = make([]int, len(columns))
		codes    = make([]byte, len(columns))
		rowBytes = 0
	)
	//
	for i, col := range columns {
		repeat, code, err := columnForm(col)
		if err != nil {
			return err
		}
		//
		repeats[i], codes[i] = repeat, code
		rowBytes += repeat * codeSize(code)
	}
	//
	header, err := tableHeader(columns, repeats, codes, rowBytes, cat.Height())
	if err != nil {
		return err
	}
	//
	if _, err := w.Write(header); err != nil {
		return err
	}
	//
	var buf bytes.Buffer
	//
	for row := range cat.Height() {
		for i, col := range columns {
			if err := encodeCell(&buf, col, row, repeats[i], codes[i]); err != nil {
				return err
			}
		}
	}
	// Data regions pad with zero bytes
	for buf.Len()%blockSize != 0 {
		buf.WriteByte(0)
	}
	//
	_, err = w.Write(buf.Bytes())
	//
	return err
}

// tableHeader assembles the header blocks of a binary table extension.
func tableHeader(columns []*catalog.Column, repeats []int, codes []byte, rowBytes int, rows int) ([]byte, error) {
	var builder headerBuilder
	//
	builder.str("XTENSION", "BINTABLE")
	builder.integer("BITPIX", 8)
	builder.integer("NAXIS", 2)
	builder.integer("NAXIS1", rowBytes)
	builder.integer("NAXIS2", rows)
	builder.integer("PCOUNT", 0)
	builder.integer("GCOUNT", 1)
	builder.integer("TFIELDS", len(columns))
	//
	for i, col := range columns {
		// Keyword, indicator, quotes and padding leave 68 characters
		if len(col.Name()) > 68 {
			return nil, fmt.Errorf("column name %q too long", col.Name())
		}
		//
		builder.str(fmt.Sprintf("TTYPE%d", i+1), col.Name())
		builder.str(fmt.Sprintf("TFORM%d", i+1), fmt.Sprintf("%d%c", repeats[i], codes[i]))
	}
	//
	builder.str("EXTNAME", ObjectsExtName)
	//
	return builder.bytes(), nil
}

// encodeCell appends the big endian encoding of one cell (every element of
// one column at one row).
func encodeCell(buf *bytes.Buffer, col *catalog.Column, row int, repeat int, code byte) error {
	if code == 'A' {
		value := col.Strings()[row]
		//
		if len(value) > repeat {
			value = value[:repeat]
		}
		//
		buf.WriteString(value)
		// Strings pad with spaces
		for i := len(value); i < repeat; i++ {
			buf.WriteByte(' ')
		}
		//
		return nil
	}
	//
	for _, v := range col.Row(row) {
		if err := encodeValue(buf, code, v); err != nil {
			return err
		}
	}
	//
	return nil
}

// encodeValue appends one big endian element, downcasting from float64 to the
// storage type.
func encodeValue(buf *bytes.Buffer, code byte, v float64) error {
	switch code {
	case 'L':
		if v != 0 {
			return buf.WriteByte('T')
		}
		//
		return buf.WriteByte('F')
	case 'B':
		return buf.WriteByte(uint8(v))
	case 'I':
		return binary.Write(buf, binary.BigEndian, int16(v))
	case 'J':
		return binary.Write(buf, binary.BigEndian, int32(v))
	case 'K':
		return binary.Write(buf, binary.BigEndian, int64(v))
	case 'E':
		return binary.Write(buf, binary.BigEndian, float32(v))
	default:
		return binary.Write(buf, binary.BigEndian, v)
	}
}
