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
package util

import (
	"compress/gzip"
	"io"
	"os"
	"path"
)

// ReadInputFile reads an input file into memory, decompressing it based on the
// file extension.  Currently, only gzip compression is supported.
func ReadInputFile(filename string) ([]byte, error) {
	file, err := os.Open(filename)
	// Check whether file exists
	if err != nil {
		return nil, err
	}
	//
	defer file.Close()
	// apply compression
	var reader io.Reader = file
	// check extension
	switch path.Ext(filename) {
	case ".gz":
		gzReader, err := gzip.NewReader(file)
		if err != nil {
			return nil, err
		}
		//
		defer gzReader.Close()
		//
		reader = gzReader
	}
	//
	return io.ReadAll(reader)
}
