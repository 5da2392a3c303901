// Package loader parses the register machine's binary image format into a
// fresh emu.State, and writes state back out in the same format.
//
// The file layout is bit-exact and little-endian: three uint32 headers
// (textsize, datasize, dataend), then textsize raw instruction words, then
// datasize data words. There is no magic number, no checksum, no version.
package loader

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/sarchlab/regsim/emu"
	"github.com/sarchlab/regsim/insts"
)

// headerWords is the number of uint32 fields in the image header:
// textsize, datasize, dataend.
const headerWords = 3

// minStackSize is the minimum length of [dataend, datasize) a loaded image
// must provide.
const minStackSize = 10

// Load reads a binary program image and returns a freshly initialized
// State: PC=0, CC=U, all registers zero except SP=datasize-1. A short
// read, an open failure, or a close failure all yield a descriptive
// error; Load never terminates the process — that is the driver's job.
func Load(path string) (*emu.State, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open program file %q: %w", path, err)
	}

	state, err := readImage(f)
	closeErr := f.Close()
	if err != nil {
		return nil, err
	}
	if closeErr != nil {
		return nil, fmt.Errorf("failed to close program file %q: %w", path, closeErr)
	}
	return state, nil
}

func readImage(f *os.File) (*emu.State, error) {
	var header [headerWords]uint32
	if err := binary.Read(f, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read image header: %w", err)
	}
	textsize, datasize, dataend := header[0], header[1], header[2]

	if dataend > datasize {
		return nil, fmt.Errorf("invalid image: dataend (%d) exceeds datasize (%d)", dataend, datasize)
	}
	if datasize-dataend < minStackSize {
		return nil, fmt.Errorf("invalid image: stack region is %d words, minimum is %d",
			datasize-dataend, minStackSize)
	}

	rawText := make([]uint32, textsize)
	if err := binary.Read(f, binary.LittleEndian, rawText); err != nil {
		return nil, fmt.Errorf("failed to read text segment: %w", err)
	}
	text := make([]insts.Instruction, textsize)
	for i, w := range rawText {
		text[i] = insts.Decode(w)
	}

	data := make([]insts.Word, datasize)
	if err := binary.Read(f, binary.LittleEndian, data); err != nil {
		return nil, fmt.Errorf("failed to read data segment: %w", err)
	}

	return emu.NewState(text, data, insts.Word(dataend)), nil
}

// Dump writes state back out in the same header+text+data layout Load
// reads, so that Dump(Load(f)) reproduces f byte-for-byte provided no
// execution occurred in between. After execution, Dump reflects the
// current data contents but text/textsize/datasize/dataend are whatever
// was loaded — the text segment is never mutated after load.
func Dump(state *emu.State, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create dump file %q: %w", path, err)
	}

	err = writeImage(f, state)
	closeErr := f.Close()
	if err != nil {
		return err
	}
	if closeErr != nil {
		return fmt.Errorf("failed to close dump file %q: %w", path, closeErr)
	}
	return nil
}

func writeImage(f *os.File, state *emu.State) error {
	header := [headerWords]uint32{
		uint32(state.TextSize()),
		uint32(state.DataSize()),
		uint32(state.DataEnd()),
	}
	if err := binary.Write(f, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("failed to write image header: %w", err)
	}

	text := state.Text()
	rawText := make([]uint32, len(text))
	for i, instr := range text {
		rawText[i] = instr.Encode()
	}
	if err := binary.Write(f, binary.LittleEndian, rawText); err != nil {
		return fmt.Errorf("failed to write text segment: %w", err)
	}

	if err := binary.Write(f, binary.LittleEndian, state.Data()); err != nil {
		return fmt.Errorf("failed to write data segment: %w", err)
	}

	return nil
}
