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

// Package fits reads and writes the subset of FITS binary tables produced by
// source extraction: a sequence of 2880 byte blocks holding 80 character
// header cards followed by big endian row major table data.  Catalogs in the
// FITS_LDAC convention store their data in an extension named LDAC_OBJECTS,
// preceded by an LDAC_IMHEAD extension carrying the originating image header;
// the latter is preserved verbatim so derived catalogs retain provenance.
package fits

import (
	"os"

	"github.com/setools/go-setools/pkg/catalog"
	"github.com/setools/go-setools/pkg/util"
)

// blockSize is the FITS allocation unit: headers and data regions both occupy
// whole multiples of it.
const blockSize = 2880

// cardSize is the fixed width of one header card.
const cardSize = 80

// ObjectsExtName names the extension holding catalog rows under the FITS_LDAC
// convention.
const ObjectsExtName = "LDAC_OBJECTS"

// ImheadExtName names the extension carrying the originating image header
// under the FITS_LDAC convention.
const ImheadExtName = "LDAC_IMHEAD"

// File is a catalog together with its LDAC provenance.
type File struct {
	// Catalog holds the rows of the selected binary table extension.
	Catalog *catalog.Catalog
	// Imhead holds the raw LDAC_IMHEAD extension (header and data blocks) of
	// the originating catalog, or nil when it carries none.
	Imhead []byte
}

// ReadFile reads a catalog from the given file, decompressing based on the
// file extension.
func ReadFile(filename string) (*File, error) {
	data, err := util.ReadInputFile(filename)
	if err != nil {
		return nil, err
	}
	//
	return Read(data)
}

// WriteFile writes a catalog to the given file, replacing any existing
// contents.
func WriteFile(filename string, file *File) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	//
	defer f.Close()
	//
	return Write(f, file)
}
