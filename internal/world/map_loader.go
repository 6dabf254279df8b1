package world

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ParseMap reads the map text format: one line per x column, tile codes
// separated by commas. Empty lines and lines starting with # are skipped.
func ParseMap(r io.Reader, atlas Atlas) (*Map, error) {
	var content [][]int
	scanner := bufio.NewScanner(r)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, ",")
		column := make([]int, 0, len(fields))
		for _, field := range fields {
			code, err := strconv.Atoi(strings.TrimSpace(field))
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: invalid tile code %q", ErrMalformedMap, lineNo, field)
			}
			column = append(column, code)
		}

		if len(content) > 0 && len(column) != len(content[0]) {
			return nil, fmt.Errorf("%w: line %d has inconsistent width: expected %d, got %d",
				ErrMalformedMap, lineNo, len(content[0]), len(column))
		}
		content = append(content, column)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading map: %w", err)
	}
	if len(content) == 0 {
		return nil, fmt.Errorf("%w: map contains no valid map data", ErrMalformedMap)
	}

	return NewMap(content, atlas)
}

// ParseMapString is ParseMap over a string.
func ParseMapString(text string, atlas Atlas) (*Map, error) {
	return ParseMap(strings.NewReader(text), atlas)
}

// LoadMap loads a map from the file at path.
func LoadMap(path string, atlas Atlas) (*Map, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open map file %s: %w", path, err)
	}
	defer file.Close()

	m, err := ParseMap(file, atlas)
	if err != nil {
		return nil, fmt.Errorf("map file %s: %w", path, err)
	}
	return m, nil
}

// DefaultContent is the built-in 10x10 room: a wall ring of code 1 with a
// few code 2 blocks, two openings in the ring and one interior pillar.
func DefaultContent() [][]int {
	return [][]int{
		{1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
		{1, 0, 0, 0, 0, 0, 0, 0, 0, 1},
		{1, 0, 0, 0, 0, 0, 0, 0, 0, 1},
		{1, 0, 0, 0, 0, 0, 0, 0, 0, 2},
		{1, 0, 0, 0, 0, 0, 0, 0, 0, 0},
		{1, 0, 0, 0, 0, 0, 0, 0, 0, 0},
		{1, 0, 0, 0, 0, 0, 0, 0, 0, 1},
		{1, 0, 0, 0, 0, 0, 0, 1, 0, 1},
		{1, 0, 0, 0, 0, 0, 0, 0, 0, 1},
		{1, 1, 1, 1, 1, 2, 1, 1, 1, 1},
	}
}
