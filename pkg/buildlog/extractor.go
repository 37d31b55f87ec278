package buildlog

import (
	"bufio"
	"os"
	"strings"
)

// DefaultTailLines is the number of log lines included in a build report
const DefaultTailLines = 50

// Placeholder is returned when the build log is absent, unreadable or empty
const Placeholder = "no build log available"

// Tail returns the last n lines of the log file at path as a single string.
// It never fails; a missing, unreadable or empty file yields Placeholder so
// the build report always carries a non-empty excerpt.
func Tail(path string, n int) string {

	if n <= 0 {
		n = DefaultTailLines
	}

	file, err := os.Open(path)
	if err != nil {
		return Placeholder
	}
	defer file.Close()

	lines := make([]string, 0, n)

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
		if len(lines) > n {
			lines = lines[1:]
		}
	}
	if err = scanner.Err(); err != nil {
		return Placeholder
	}

	excerpt := strings.Join(lines, "\n")
	if strings.TrimSpace(excerpt) == "" {
		return Placeholder
	}

	return excerpt
}
