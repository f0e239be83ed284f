// Package checkpoint persists partial render state so an interrupted render
// can resume without repeating work. The file layout is a fixed header
// identifying the render parameters and scene, followed by one record per
// pixel in row-major order, followed by a CRC-64 of everything before it:
//
//	magic (4) | version (4) | width (4) | height (4) |
//	targetSamples (4) | maxBounces (4) | sceneFingerprint (32) |
//	width*height records of sumX, sumY, sumZ (float64) + count (uint32) |
//	crc64-ECMA (8)
//
// All integers and floats are little-endian.
package checkpoint

import (
	"encoding/binary"
	"fmt"
	"hash/crc64"
	"math"
	"os"
	"path/filepath"
)

const (
	magic      = 0x52435054 // "TPCR" little-endian on disk
	version    = 1
	headerSize = 4 + 4 + 4 + 4 + 4 + 4 + 32
	recordSize = 8 + 8 + 8 + 4
	crcSize    = 8
)

var crcTable = crc64.MakeTable(crc64.ECMA)

// Params are the render parameters a checkpoint is only valid for
type Params struct {
	Width         uint32
	Height        uint32
	TargetSamples uint32
	MaxBounces    uint32
	Fingerprint   [32]byte // Scene fingerprint, see scene.Scene.Fingerprint
}

// Record is one pixel's accumulated radiance sum and sample count
type Record struct {
	SumX, SumY, SumZ float64
	Count            uint32
}

// Result holds the outcome of loading a checkpoint
type Result struct {
	Records   []Record // Always len == Width*Height, zero-filled where unrecoverable
	Recovered int      // Number of complete records read from the file
}

// MismatchError reports a checkpoint whose parameters don't match the
// current render. Resuming it would silently corrupt the output, so it is
// never recoverable.
type MismatchError struct {
	Field string
	Want  string
	Got   string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("checkpoint %s mismatch: want %s, got %s", e.Field, e.Want, e.Got)
}

// CorruptError reports a checkpoint file that is truncated or fails its
// checksum. Loading with recoverCorrupt salvages the complete records instead.
type CorruptError struct {
	Path   string
	Reason string
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("checkpoint %s is corrupt: %s", e.Path, e.Reason)
}

// Save writes a checkpoint atomically: the data goes to a temp file in the
// same directory which is renamed over the target, so a crash mid-write
// never destroys an existing valid checkpoint.
func Save(path string, params Params, records []Record) error {
	expected := int(params.Width) * int(params.Height)
	if len(records) != expected {
		return fmt.Errorf("checkpoint: have %d records, need %d for %dx%d",
			len(records), expected, params.Width, params.Height)
	}

	data := make([]byte, headerSize+len(records)*recordSize+crcSize)
	encodeHeader(data, params)

	offset := headerSize
	for _, r := range records {
		binary.LittleEndian.PutUint64(data[offset:], math.Float64bits(r.SumX))
		binary.LittleEndian.PutUint64(data[offset+8:], math.Float64bits(r.SumY))
		binary.LittleEndian.PutUint64(data[offset+16:], math.Float64bits(r.SumZ))
		binary.LittleEndian.PutUint32(data[offset+24:], r.Count)
		offset += recordSize
	}

	checksum := crc64.Checksum(data[:offset], crcTable)
	binary.LittleEndian.PutUint64(data[offset:], checksum)

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("checkpoint: create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("checkpoint: write %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("checkpoint: close %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("checkpoint: rename to %s: %w", path, err)
	}
	return nil
}

// Load reads a checkpoint and validates it against the given parameters.
// A parameter or fingerprint mismatch returns *MismatchError. A truncated
// file or checksum failure returns *CorruptError, unless recoverCorrupt is
// set: then every complete record is accepted, the remaining pixels are
// zero-filled, and Result.Recovered reports how many records survived.
func Load(path string, params Params, recoverCorrupt bool) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("checkpoint: read %s: %w", path, err)
	}

	// A file too short to hold a header can't be validated against the
	// render parameters, so it is unrecoverable even in recovery mode
	if len(data) < headerSize {
		return nil, &CorruptError{Path: path, Reason: fmt.Sprintf("file is %d bytes, header needs %d", len(data), headerSize)}
	}

	if err := validateHeader(data, params); err != nil {
		if ce, ok := err.(*CorruptError); ok {
			ce.Path = path
		}
		return nil, err
	}

	totalPixels := int(params.Width) * int(params.Height)
	expectedLen := headerSize + totalPixels*recordSize + crcSize

	complete := totalPixels
	if len(data) != expectedLen {
		if !recoverCorrupt {
			return nil, &CorruptError{Path: path,
				Reason: fmt.Sprintf("file is %d bytes, expected %d", len(data), expectedLen)}
		}
		complete = (len(data) - headerSize) / recordSize
		if complete > totalPixels {
			complete = totalPixels
		}
	} else {
		stored := binary.LittleEndian.Uint64(data[expectedLen-crcSize:])
		computed := crc64.Checksum(data[:expectedLen-crcSize], crcTable)
		if stored != computed {
			if !recoverCorrupt {
				return nil, &CorruptError{Path: path,
					Reason: fmt.Sprintf("checksum mismatch: stored %016x, computed %016x", stored, computed)}
			}
		}
	}

	records := make([]Record, totalPixels)
	for i := 0; i < complete; i++ {
		offset := headerSize + i*recordSize
		records[i] = Record{
			SumX:  math.Float64frombits(binary.LittleEndian.Uint64(data[offset:])),
			SumY:  math.Float64frombits(binary.LittleEndian.Uint64(data[offset+8:])),
			SumZ:  math.Float64frombits(binary.LittleEndian.Uint64(data[offset+16:])),
			Count: binary.LittleEndian.Uint32(data[offset+24:]),
		}
	}

	return &Result{Records: records, Recovered: complete}, nil
}

func encodeHeader(data []byte, params Params) {
	binary.LittleEndian.PutUint32(data[0:], magic)
	binary.LittleEndian.PutUint32(data[4:], version)
	binary.LittleEndian.PutUint32(data[8:], params.Width)
	binary.LittleEndian.PutUint32(data[12:], params.Height)
	binary.LittleEndian.PutUint32(data[16:], params.TargetSamples)
	binary.LittleEndian.PutUint32(data[20:], params.MaxBounces)
	copy(data[24:], params.Fingerprint[:])
}

func validateHeader(data []byte, params Params) error {
	if got := binary.LittleEndian.Uint32(data[0:]); got != magic {
		return &CorruptError{Reason: fmt.Sprintf("bad magic %08x", got)}
	}
	if got := binary.LittleEndian.Uint32(data[4:]); got != version {
		return &MismatchError{Field: "version", Want: fmt.Sprint(version), Got: fmt.Sprint(got)}
	}
	checks := []struct {
		field string
		want  uint32
		got   uint32
	}{
		{"width", params.Width, binary.LittleEndian.Uint32(data[8:])},
		{"height", params.Height, binary.LittleEndian.Uint32(data[12:])},
		{"target samples", params.TargetSamples, binary.LittleEndian.Uint32(data[16:])},
		{"max bounces", params.MaxBounces, binary.LittleEndian.Uint32(data[20:])},
	}
	for _, c := range checks {
		if c.want != c.got {
			return &MismatchError{Field: c.field, Want: fmt.Sprint(c.want), Got: fmt.Sprint(c.got)}
		}
	}
	var gotFingerprint [32]byte
	copy(gotFingerprint[:], data[24:56])
	if gotFingerprint != params.Fingerprint {
		return &MismatchError{
			Field: "scene fingerprint",
			Want:  fmt.Sprintf("%x", params.Fingerprint[:8]),
			Got:   fmt.Sprintf("%x", gotFingerprint[:8]),
		}
	}
	return nil
}
