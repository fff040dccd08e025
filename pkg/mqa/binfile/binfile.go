// Copyright Consensys Software Inc.
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
package binfile

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"strings"

	"github.com/miniquantum/go-mqa/pkg/mqa/mqis"
	"github.com/pkg/errors"
)

// ============================================================================
// Binary File Format
// ============================================================================

// HEADER_SIZE is the number of bytes in a binary file header.
const HEADER_SIZE = 10

// MAX_INCLUDE_SIZE is the largest include section which can be described by
// the header.
const MAX_INCLUDE_SIZE = 0xFFFF

// BinaryFile is a programatic representation of an executable (".mqa") file.
// All multi-byte quantities are stored little endian.
type BinaryFile struct {
	// Header for the binary file
	Header Header
	// Extension packages required by the program, in order of inclusion.
	Includes []string
	// Encoded instruction words.
	Code []uint16
}

// NewBinaryFile constructs a new binary file targeting the current CPU
// version.  This fails if an include name cannot be represented in ASCII, or
// if the include section is too large to describe in the header.
func NewBinaryFile(includes []string, code []uint16) (*BinaryFile, error) {
	size := 0
	//
	for _, include := range includes {
		if !isASCII(include) {
			return nil, errors.Errorf("include %q is not ASCII", include)
		}
		// one extra byte for the terminating newline
		size += len(include) + 1
	}
	//
	if size > MAX_INCLUDE_SIZE {
		return nil, errors.Errorf("include section too large (%d bytes)", size)
	}
	//
	header := Header{mqis.VERSION, uint16(size), uint32(2 * len(code))}
	//
	return &BinaryFile{header, includes, code}, nil
}

// Size returns the total number of bytes this file occupies when marshalled.
func (p *BinaryFile) Size() uint {
	return HEADER_SIZE + uint(p.Header.IncludeSize) + uint(p.Header.AssemblySize)
}

// Report writes a short summary of the header to the given writer.
func (p *BinaryFile) Report(w io.Writer) {
	fmt.Fprintln(w, "Header start:")
	fmt.Fprintf(w, "\tcpuVersion:          %s\n", strings.TrimSpace(string(p.Header.Version[:])))
	fmt.Fprintf(w, "\tincludeSectionSize:  %d\n", p.Header.IncludeSize)
	fmt.Fprintf(w, "\tassemblySectionSize: %d\n", p.Header.AssemblySize)
	fmt.Fprintln(w, "Header end.")
	fmt.Fprintf(w, "Total size: %d bytes\n", p.Size())
}

// Header provides the fixed-size header of the binary file format.
type Header struct {
	// CPU version, e.g. "1.1 ".
	Version [4]byte
	// Number of bytes in the include section.
	IncludeSize uint16
	// Number of bytes in the assembly section.
	AssemblySize uint32
}

// MarshalBinary converts the BinaryFile Header into a sequence of bytes.
func (p *Header) MarshalBinary() ([]byte, error) {
	var (
		buffer       bytes.Buffer
		includeBytes [2]byte
		codeBytes    [4]byte
	)
	// Marshall section sizes
	binary.LittleEndian.PutUint16(includeBytes[:], p.IncludeSize)
	binary.LittleEndian.PutUint32(codeBytes[:], p.AssemblySize)
	// Write version
	buffer.Write(p.Version[:])
	// Write include section size
	buffer.Write(includeBytes[:])
	// Write assembly section size
	buffer.Write(codeBytes[:])
	// Done
	return buffer.Bytes(), nil
}

// UnmarshalBinary initialises this BinaryFile Header from a given set of data
// bytes. This should match exactly the encoding above.
func (p *Header) UnmarshalBinary(buffer *bytes.Buffer) error {
	var (
		includeBytes [2]byte
		codeBytes    [4]byte
	)
	// Read version
	if n, err := buffer.Read(p.Version[:]); err != nil {
		return malformed(err)
	} else if n != len(p.Version) {
		return errors.New("malformed binary file")
	}
	// Read include section size
	if n, err := buffer.Read(includeBytes[:]); err != nil {
		return malformed(err)
	} else if n != len(includeBytes) {
		return errors.New("malformed binary file")
	}
	// Read assembly section size
	if n, err := buffer.Read(codeBytes[:]); err != nil {
		return malformed(err)
	} else if n != len(codeBytes) {
		return errors.New("malformed binary file")
	}
	// Finally assign everything over
	p.IncludeSize = binary.LittleEndian.Uint16(includeBytes[:])
	p.AssemblySize = binary.LittleEndian.Uint32(codeBytes[:])
	// Done
	return nil
}

// IsCompatible determines whether a given binary file targets the CPU version
// supported here.
func (p *Header) IsCompatible() bool {
	return p.Version == mqis.VERSION
}

// MarshalBinary converts the BinaryFile into a sequence of bytes.
func (p *BinaryFile) MarshalBinary() ([]byte, error) {
	var buffer bytes.Buffer
	// Marshal header
	headerBytes, err := p.Header.MarshalBinary()
	//
	if err != nil {
		return nil, err
	}
	// Encode header
	buffer.Write(headerBytes)
	// Encode includes
	for _, include := range p.Includes {
		buffer.WriteString(include)
		buffer.WriteByte('\n')
	}
	// Encode code
	for _, word := range p.Code {
		var wordBytes [2]byte
		//
		binary.LittleEndian.PutUint16(wordBytes[:], word)
		buffer.Write(wordBytes[:])
	}
	// Done
	return buffer.Bytes(), nil
}

// UnmarshalBinary initialises this BinaryFile from a given set of data bytes.
// This should match exactly the encoding above.
func (p *BinaryFile) UnmarshalBinary(data []byte) error {
	buffer := bytes.NewBuffer(data)
	// Read header
	if err := p.Header.UnmarshalBinary(buffer); err != nil {
		return err
	} else if !p.Header.IsCompatible() {
		return errors.Errorf("incompatible binary file was v%q, but expected v%q",
			string(p.Header.Version[:]), string(mqis.VERSION[:]))
	} else if p.Header.AssemblySize%2 != 0 {
		return errors.Errorf("malformed binary file (odd assembly section size %d)", p.Header.AssemblySize)
	} else if uint(buffer.Len()) != uint(p.Header.IncludeSize)+uint(p.Header.AssemblySize) {
		return errors.Errorf("malformed binary file (expected %d bytes after header, found %d)",
			uint(p.Header.IncludeSize)+uint(p.Header.AssemblySize), buffer.Len())
	}
	// Read includes
	section := buffer.Next(int(p.Header.IncludeSize))
	p.Includes = nil
	//
	if len(section) > 0 {
		if section[len(section)-1] != '\n' {
			return errors.New("malformed binary file (unterminated include)")
		}
		//
		p.Includes = strings.Split(string(section[:len(section)-1]), "\n")
	}
	// Read code
	p.Code = make([]uint16, p.Header.AssemblySize/2)
	//
	for i := range p.Code {
		p.Code[i] = binary.LittleEndian.Uint16(buffer.Next(2))
	}
	//
	return nil
}

func malformed(err error) error {
	if err == io.EOF {
		return errors.New("malformed binary file")
	}
	//
	return err
}

func isASCII(text string) bool {
	for i := 0; i < len(text); i++ {
		if text[i] >= 0x80 {
			return false
		}
	}
	//
	return true
}
