// Package loaders reads mesh geometry from external files.
package loaders

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/example/raytracer/pkg/core"
	"github.com/example/raytracer/pkg/geometry"
)

// plyHeader holds what we need from a PLY header: the data format, element
// counts, and the vertex layout so non-position properties can be skipped
type plyHeader struct {
	format      string // "ascii" or "binary_little_endian"
	vertexCount int
	faceCount   int
	vertexProps []plyProperty
	faceProp    plyProperty // The face element's vertex index list
}

type plyProperty struct {
	name     string
	typ      string
	isList   bool
	listType string // Count type for list properties
	dataType string // Element type for list properties
}

// LoadPLY reads a PLY mesh file and returns its triangles. Supports ASCII
// and binary little-endian files with triangular faces; vertex properties
// other than position are skipped.
func LoadPLY(path string) ([]geometry.MeshTriangle, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ply: open %s: %w", path, err)
	}
	defer file.Close()

	reader := bufio.NewReaderSize(file, 1<<20)

	header, err := parseHeader(reader)
	if err != nil {
		return nil, fmt.Errorf("ply: %s: %w", path, err)
	}

	var vertices []core.Vec3
	var faces []int

	switch header.format {
	case "ascii":
		vertices, faces, err = readASCII(reader, header)
	case "binary_little_endian":
		vertices, faces, err = readBinaryLE(reader, header)
	default:
		return nil, fmt.Errorf("ply: %s: unsupported format %q", path, header.format)
	}
	if err != nil {
		return nil, fmt.Errorf("ply: %s: %w", path, err)
	}

	triangles := make([]geometry.MeshTriangle, 0, len(faces)/3)
	for i := 0; i+2 < len(faces); i += 3 {
		for _, idx := range faces[i : i+3] {
			if idx < 0 || idx >= len(vertices) {
				return nil, fmt.Errorf("ply: %s: face index %d out of range (%d vertices)", path, idx, len(vertices))
			}
		}
		triangles = append(triangles, geometry.MeshTriangle{
			V0: vertices[faces[i]],
			V1: vertices[faces[i+1]],
			V2: vertices[faces[i+2]],
		})
	}
	return triangles, nil
}

func parseHeader(reader *bufio.Reader) (*plyHeader, error) {
	magic, err := reader.ReadString('\n')
	if err != nil || strings.TrimSpace(magic) != "ply" {
		return nil, fmt.Errorf("not a PLY file")
	}

	header := &plyHeader{}
	currentElement := ""

	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("header ended unexpectedly: %w", err)
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "end_header":
			return header, nil
		case "comment", "obj_info":
		case "format":
			if len(fields) < 2 {
				return nil, fmt.Errorf("malformed format line %q", strings.TrimSpace(line))
			}
			header.format = fields[1]
		case "element":
			if len(fields) < 3 {
				return nil, fmt.Errorf("malformed element line %q", strings.TrimSpace(line))
			}
			count, err := strconv.Atoi(fields[2])
			if err != nil {
				return nil, fmt.Errorf("invalid element count %q", fields[2])
			}
			currentElement = fields[1]
			switch currentElement {
			case "vertex":
				header.vertexCount = count
			case "face":
				header.faceCount = count
			}
		case "property":
			prop, err := parseProperty(fields[1:])
			if err != nil {
				return nil, err
			}
			switch currentElement {
			case "vertex":
				header.vertexProps = append(header.vertexProps, prop)
			case "face":
				if prop.isList {
					header.faceProp = prop
				}
			}
		}
	}
}

func parseProperty(fields []string) (plyProperty, error) {
	if len(fields) >= 4 && fields[0] == "list" {
		return plyProperty{isList: true, listType: fields[1], dataType: fields[2], name: fields[3]}, nil
	}
	if len(fields) >= 2 {
		return plyProperty{typ: fields[0], name: fields[1]}, nil
	}
	return plyProperty{}, fmt.Errorf("malformed property %v", fields)
}

func readASCII(reader *bufio.Reader, header *plyHeader) ([]core.Vec3, []int, error) {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	vertices := make([]core.Vec3, 0, header.vertexCount)
	for i := 0; i < header.vertexCount; i++ {
		if !scanner.Scan() {
			return nil, nil, fmt.Errorf("vertex %d: unexpected end of file", i)
		}
		fields := strings.Fields(scanner.Text())
		var coords [3]float64
		found := 0
		for j, prop := range header.vertexProps {
			if j >= len(fields) {
				break
			}
			axis := axisIndex(prop.name)
			if axis < 0 {
				continue
			}
			v, err := strconv.ParseFloat(fields[j], 64)
			if err != nil {
				return nil, nil, fmt.Errorf("vertex %d: bad %s value %q", i, prop.name, fields[j])
			}
			coords[axis] = v
			found++
		}
		if found != 3 {
			return nil, nil, fmt.Errorf("vertex %d: missing position properties", i)
		}
		vertices = append(vertices, core.NewVec3(coords[0], coords[1], coords[2]))
	}

	faces := make([]int, 0, header.faceCount*3)
	for i := 0; i < header.faceCount; i++ {
		if !scanner.Scan() {
			return nil, nil, fmt.Errorf("face %d: unexpected end of file", i)
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) < 4 || fields[0] != "3" {
			return nil, nil, fmt.Errorf("face %d: only triangular faces supported", i)
		}
		for _, f := range fields[1:4] {
			idx, err := strconv.Atoi(f)
			if err != nil {
				return nil, nil, fmt.Errorf("face %d: bad index %q", i, f)
			}
			faces = append(faces, idx)
		}
	}
	return vertices, faces, nil
}

func readBinaryLE(reader *bufio.Reader, header *plyHeader) ([]core.Vec3, []int, error) {
	vertices := make([]core.Vec3, 0, header.vertexCount)
	row := make([]byte, vertexRowSize(header.vertexProps))

	for i := 0; i < header.vertexCount; i++ {
		if _, err := io.ReadFull(reader, row); err != nil {
			return nil, nil, fmt.Errorf("vertex %d: %w", i, err)
		}
		var coords [3]float64
		offset := 0
		for _, prop := range header.vertexProps {
			size := typeSize(prop.typ)
			if axis := axisIndex(prop.name); axis >= 0 {
				switch prop.typ {
				case "float", "float32":
					coords[axis] = float64(math.Float32frombits(binary.LittleEndian.Uint32(row[offset:])))
				case "double", "float64":
					coords[axis] = math.Float64frombits(binary.LittleEndian.Uint64(row[offset:]))
				default:
					return nil, nil, fmt.Errorf("vertex %d: unsupported position type %s", i, prop.typ)
				}
			}
			offset += size
		}
		vertices = append(vertices, core.NewVec3(coords[0], coords[1], coords[2]))
	}

	// Most files use "list uchar int", but the count and index types follow
	// whatever the header declared
	countType, indexType := "uchar", "int"
	if header.faceProp.isList {
		countType = header.faceProp.listType
		indexType = header.faceProp.dataType
	}

	faces := make([]int, 0, header.faceCount*3)
	for i := 0; i < header.faceCount; i++ {
		count, err := readListInt(reader, countType)
		if err != nil {
			return nil, nil, fmt.Errorf("face %d: %w", i, err)
		}
		if count != 3 {
			return nil, nil, fmt.Errorf("face %d: only triangular faces supported, got %d vertices", i, count)
		}
		for j := 0; j < 3; j++ {
			idx, err := readListInt(reader, indexType)
			if err != nil {
				return nil, nil, fmt.Errorf("face %d: %w", i, err)
			}
			faces = append(faces, idx)
		}
	}
	return vertices, faces, nil
}

func readListInt(reader *bufio.Reader, typ string) (int, error) {
	switch typ {
	case "char", "int8", "uchar", "uint8":
		b, err := reader.ReadByte()
		if err != nil {
			return 0, err
		}
		return int(b), nil
	case "short", "int16", "ushort", "uint16":
		var v uint16
		if err := binary.Read(reader, binary.LittleEndian, &v); err != nil {
			return 0, err
		}
		return int(v), nil
	case "int", "int32":
		var v int32
		if err := binary.Read(reader, binary.LittleEndian, &v); err != nil {
			return 0, err
		}
		return int(v), nil
	case "uint", "uint32":
		var v uint32
		if err := binary.Read(reader, binary.LittleEndian, &v); err != nil {
			return 0, err
		}
		return int(v), nil
	default:
		return 0, fmt.Errorf("unsupported list type %s", typ)
	}
}

func axisIndex(name string) int {
	switch name {
	case "x":
		return 0
	case "y":
		return 1
	case "z":
		return 2
	default:
		return -1
	}
}

func vertexRowSize(props []plyProperty) int {
	size := 0
	for _, prop := range props {
		if !prop.isList {
			size += typeSize(prop.typ)
		}
	}
	return size
}

func typeSize(typ string) int {
	switch typ {
	case "double", "float64":
		return 8
	case "float", "float32", "int", "int32", "uint", "uint32":
		return 4
	case "short", "int16", "ushort", "uint16":
		return 2
	case "char", "int8", "uchar", "uint8":
		return 1
	default:
		return 4
	}
}
