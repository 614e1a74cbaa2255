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
	"encoding/binary"
	"fmt"
	"math"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/setools/go-setools/pkg/catalog"
)

// hdu locates one header data unit within a file: its parsed header plus the
// byte offsets of its header, data region and end (all block aligned).
type hdu struct {
	header header
	// start of the header blocks.
	start int
	// dataStart is the first byte after the header blocks.
	dataStart int
	// end is the first byte after the (padded) data blocks.
	end int
}

// Read parses a FITS file, selecting the LDAC_OBJECTS binary table when
// present and the first binary table otherwise.  All numeric columns are
// upcast to float64 in memory; logicals read as zero or one.
func Read(data []byte) (*File, error) {
	primary, err := readHDU(data, 0)
	if err != nil {
		return nil, err
	}
	//
	if _, ok := primary.header.get("SIMPLE"); !ok {
		return nil, fmt.Errorf("not a FITS file (missing SIMPLE card)")
	}
	//
	var (
		file    File
		objects *hdu
		first   *hdu
		offset  = primary.end
	)
	//
	for offset < len(data) {
		unit, err := readHDU(data, offset)
		if err != nil {
			return nil, err
		}
		//
		extension, _ := unit.header.get("XTENSION")
		name, _ := unit.header.get("EXTNAME")
		//
		if extension == "BINTABLE" {
			switch {
			case name == ImheadExtName:
				file.Imhead = data[unit.start:unit.end]
			case name == ObjectsExtName:
				objects = &unit
			case first == nil:
				first = &unit
			}
		}
		//
		offset = unit.end
	}
	// Prefer the LDAC convention
	if objects == nil {
		objects = first
	}
	//
	if objects == nil {
		return nil, fmt.Errorf("no binary table extension found")
	}
	//
	if file.Catalog, err = readTable(objects, data); err != nil {
		return nil, err
	}
	//
	log.Debugf("read catalog of %d rows and %d columns", file.Catalog.Height(), file.Catalog.Width())
	//
	return &file, nil
}

// readHDU parses the header unit at the given (block aligned) offset and
// computes the extent of the data region which follows it.
func readHDU(data []byte, offset int) (hdu, error) {
	var (
		unit = hdu{start: offset}
		done = false
	)
	//
	for !done {
		if offset+blockSize > len(data) {
			return unit, fmt.Errorf("truncated header at byte %d", offset)
		}
		//
		block := data[offset : offset+blockSize]
		offset += blockSize
		//
		for i := 0; i < blockSize; i += cardSize {
			c := parseCard(block[i : i+cardSize])
			//
			if c.key == "END" {
				done = true
				break
			}
			//
			unit.header.cards = append(unit.header.cards, c)
		}
	}
	//
	unit.dataStart = offset
	//
	size, err := dataSize(&unit.header)
	if err != nil {
		return unit, err
	}
	//
	unit.end = offset + blocks(size)
	//
	if unit.end > len(data) {
		return unit, fmt.Errorf("truncated data region at byte %d", offset)
	}
	//
	return unit, nil
}

// dataSize computes the unpadded byte count of a data region from its header.
func dataSize(h *header) (int, error) {
	bitpix, err := h.getInt("BITPIX")
	if err != nil {
		return 0, err
	}
	//
	naxis, err := h.getInt("NAXIS")
	if err != nil {
		return 0, err
	}
	//
	size := 1
	//
	for i := 1; i <= naxis; i++ {
		n, err := h.getInt(fmt.Sprintf("NAXIS%d", i))
		if err != nil {
			return 0, err
		}
		//
		size *= n
	}
	//
	if naxis == 0 {
		size = 0
	}
	// Extensions may carry a heap (PCOUNT) and group count
	pcount := h.intOr("PCOUNT", 0)
	gcount := h.intOr("GCOUNT", 1)
	//
	if bitpix < 0 {
		bitpix = -bitpix
	}
	//
	return (bitpix / 8) * gcount * (pcount + size), nil
}

// blocks rounds a byte count up to a whole number of blocks.
func blocks(size int) int {
	n := size / blockSize
	//
	if size%blockSize != 0 {
		n++
	}
	//
	return n * blockSize
}

// tableField is the decoded layout of one binary table field.
type tableField struct {
	name   string
	form   string
	repeat int
	code   byte
	// offset of this field within a row.
	offset int
}

// readTable decodes a binary table extension into a catalog.
func readTable(unit *hdu, data []byte) (*catalog.Catalog, error) {
	rowBytes, err := unit.header.getInt("NAXIS1")
	if err != nil {
		return nil, err
	}
	//
	rows, err := unit.header.getInt("NAXIS2")
	if err != nil {
		return nil, err
	}
	//
	nfields, err := unit.header.getInt("TFIELDS")
	if err != nil {
		return nil, err
	}
	//
	fields, err := readFields(&unit.header, nfields, rowBytes)
	if err != nil {
		return nil, err
	}
	//
	table := data[unit.dataStart:unit.end]
	if rows*rowBytes > len(table) {
		return nil, fmt.Errorf("binary table holds %d bytes, expected %d", len(table), rows*rowBytes)
	}
	//
	columns := make([]*catalog.Column, 0, len(fields))
	//
	for _, field := range fields {
		// Zero repeat fields hold no data
		if field.repeat == 0 {
			continue
		}
		//
		columns = append(columns, readColumn(field, table, rows, rowBytes))
	}
	//
	return catalog.New(columns...)
}

// readFields decodes the name, form and row offset of every field, checking
// their combined width against the declared row size.
func readFields(h *header, nfields int, rowBytes int) ([]tableField, error) {
	var (
		fields = make([]tableField, nfields)
		offset = 0
	)
	//
	for i := range nfields {
		name, ok := h.get(fmt.Sprintf("TTYPE%d", i+1))
		if !ok {
			return nil, fmt.Errorf("missing header card TTYPE%d", i+1)
		}
		//
		form, ok := h.get(fmt.Sprintf("TFORM%d", i+1))
		if !ok {
			return nil, fmt.Errorf("missing header card TFORM%d", i+1)
		}
		//
		repeat, code, err := parseForm(form)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", name, err)
		}
		//
		fields[i] = tableField{name, form, repeat, code, offset}
		offset += repeat * codeSize(code)
	}
	//
	if offset != rowBytes {
		return nil, fmt.Errorf("columns span %d bytes per row, expected %d", offset, rowBytes)
	}
	//
	return fields, nil
}

// readColumn decodes the cells of one field across every row.
func readColumn(field tableField, table []byte, rows int, rowBytes int) *catalog.Column {
	if field.code == 'A' {
		values := make([]string, rows)
		//
		for row := range rows {
			start := row*rowBytes + field.offset
			values[row] = strings.TrimRight(string(table[start:start+field.repeat]), " \x00")
		}
		//
		return catalog.NewStringColumn(field.name, field.form, values)
	}
	//
	var (
		size   = codeSize(field.code)
		values = make([]float64, 0, rows*field.repeat)
	)
	//
	for row := range rows {
		start := row*rowBytes + field.offset
		//
		for k := range field.repeat {
			values = append(values, decodeValue(field.code, table[start+k*size:]))
		}
	}
	//
	if field.repeat == 1 {
		return catalog.NewFloatColumn(field.name, field.form, values)
	}
	//
	return catalog.NewFloatArrayColumn(field.name, field.form, field.repeat, values)
}

// decodeValue reads one big endian element, upcasting to float64.
func decodeValue(code byte, bytes []byte) float64 {
	switch code {
	case 'L':
		if bytes[0] == 'T' {
			return 1
		}
		//
		return 0
	case 'B':
		return float64(bytes[0])
	case 'I':
		return float64(int16(binary.BigEndian.Uint16(bytes)))
	case 'J':
		return float64(int32(binary.BigEndian.Uint32(bytes)))
	case 'K':
		return float64(int64(binary.BigEndian.Uint64(bytes)))
	case 'E':
		return float64(math.Float32frombits(binary.BigEndian.Uint32(bytes)))
	default:
		return math.Float64frombits(binary.BigEndian.Uint64(bytes))
	}
}
