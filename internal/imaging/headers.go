package imaging

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const maxHeaderLines = 128

// hdrDimensions reads a Radiance RGBE header up to its resolution line,
// e.g. "-Y 512 +X 1024". The axis order only affects pixel layout; width is
// always the X extent.
func hdrDimensions(r *bufio.Reader) (int, int, error) {
	magic, err := r.ReadString('\n')
	if err != nil {
		return 0, 0, fmt.Errorf("read hdr magic: %w", err)
	}
	if !strings.HasPrefix(magic, "#?") {
		return 0, 0, errors.New("not a radiance hdr file")
	}

	// Header lines run until the first blank line.
	for i := 0; ; i++ {
		if i > maxHeaderLines {
			return 0, 0, errors.New("hdr header too long")
		}
		line, err := r.ReadString('\n')
		if err != nil {
			return 0, 0, fmt.Errorf("read hdr header: %w", err)
		}
		if strings.TrimSpace(line) == "" {
			break
		}
	}

	line, err := r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return 0, 0, fmt.Errorf("read hdr resolution: %w", err)
	}
	fields := strings.Fields(line)
	if len(fields) != 4 {
		return 0, 0, fmt.Errorf("malformed hdr resolution %q", strings.TrimSpace(line))
	}

	w, h := -1, -1
	for i := 0; i < 4; i += 2 {
		axis := fields[i]
		n, err := strconv.Atoi(fields[i+1])
		if err != nil || n <= 0 || len(axis) != 2 || (axis[0] != '+' && axis[0] != '-') {
			return 0, 0, fmt.Errorf("malformed hdr resolution %q", strings.TrimSpace(line))
		}
		switch axis[1] {
		case 'X':
			w = n
		case 'Y':
			h = n
		}
	}
	if w < 0 || h < 0 {
		return 0, 0, fmt.Errorf("malformed hdr resolution %q", strings.TrimSpace(line))
	}
	return w, h, nil
}

var exrMagic = []byte{0x76, 0x2f, 0x31, 0x01}

const (
	maxEXRAttributes = 1024
	maxEXRNameLen    = 255
)

// exrDimensions walks the attributes of an OpenEXR header until it finds
// dataWindow (box2i: xMin, yMin, xMax, yMax, inclusive).
func exrDimensions(r *bufio.Reader) (int, int, error) {
	var head [8]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		return 0, 0, fmt.Errorf("read exr magic: %w", err)
	}
	if !bytes.Equal(head[:4], exrMagic) {
		return 0, 0, errors.New("not an openexr file")
	}

	for i := 0; i < maxEXRAttributes; i++ {
		name, err := readCString(r)
		if err != nil {
			return 0, 0, fmt.Errorf("read exr attribute name: %w", err)
		}
		if name == "" {
			break // end of header
		}
		typ, err := readCString(r)
		if err != nil {
			return 0, 0, fmt.Errorf("read exr attribute type: %w", err)
		}
		var size int32
		if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
			return 0, 0, fmt.Errorf("read exr attribute size: %w", err)
		}
		if size < 0 {
			return 0, 0, fmt.Errorf("negative size for exr attribute %q", name)
		}

		if name == "dataWindow" && typ == "box2i" && size == 16 {
			var box [4]int32
			if err := binary.Read(r, binary.LittleEndian, &box); err != nil {
				return 0, 0, fmt.Errorf("read exr dataWindow: %w", err)
			}
			w := int(box[2]) - int(box[0]) + 1
			h := int(box[3]) - int(box[1]) + 1
			if w <= 0 || h <= 0 {
				return 0, 0, fmt.Errorf("invalid exr dataWindow %v", box)
			}
			return w, h, nil
		}

		if _, err := io.CopyN(io.Discard, r, int64(size)); err != nil {
			return 0, 0, fmt.Errorf("skip exr attribute %q: %w", name, err)
		}
	}
	return 0, 0, errors.New("exr header has no dataWindow")
}

func readCString(r *bufio.Reader) (string, error) {
	var sb strings.Builder
	for {
		b, err := r.ReadByte()
		if err != nil {
			return "", err
		}
		if b == 0 {
			return sb.String(), nil
		}
		if sb.Len() >= maxEXRNameLen {
			return "", errors.New("exr name too long")
		}
		sb.WriteByte(b)
	}
}
