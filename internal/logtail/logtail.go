package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Read returns the last maxLines lines of the log at path whose level is at
// least minLevel. maxLines <= 0 returns every matching line. A missing file
// yields no lines.
//
// Lines without a level attribute inherit the decision of the record above
// them; before any record they are kept only when nothing is filtered.
func Read(path string, maxLines int, minLevel slog.Level) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	var (
		ring  []string
		lines []string
		idx   int
		count int
	)
	if maxLines > 0 {
		ring = make([]string, maxLines)
	}
	keep := minLevel <= slog.LevelDebug

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if level, ok := LineLevel(line); ok {
			keep = level >= minLevel
		}
		if !keep {
			continue
		}
		if ring == nil {
			lines = append(lines, line)
			continue
		}
		ring[idx] = line
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}
	if ring == nil {
		return lines, nil
	}

	lines = make([]string, count)
	if count == maxLines {
		for i := range count {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// LineLevel extracts the level attribute of a slog text line.
func LineLevel(line string) (slog.Level, bool) {
	start := strings.Index(line, " level=")
	if start >= 0 {
		start += len(" level=")
	} else if strings.HasPrefix(line, "level=") {
		start = len("level=")
	} else {
		return 0, false
	}
	token := line[start:]
	if end := strings.IndexByte(token, ' '); end >= 0 {
		token = token[:end]
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(token)); err != nil {
		return 0, false
	}
	return level, true
}

// ParseLevel reads a user-supplied level name such as "warn". Blank means info.
func ParseLevel(value string) (slog.Level, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return slog.LevelInfo, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(trimmed)); err != nil {
		return 0, fmt.Errorf("unknown log level %q (want debug, info, warn or error)", value)
	}
	return level, nil
}
