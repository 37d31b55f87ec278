package buildlog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTail(t *testing.T) {

	t.Run("ReturnsContentForFileWithFewerLinesThanRequested", func(t *testing.T) {

		path := writeLogFile(t, "line one\nline two\nline three\n")

		// act
		excerpt := Tail(path, 50)

		assert.Equal(t, "line one\nline two\nline three", excerpt)
	})

	t.Run("ReturnsLastLinesForFileWithMoreLinesThanRequested", func(t *testing.T) {

		var builder strings.Builder
		for i := 1; i <= 120; i++ {
			fmt.Fprintf(&builder, "line %v\n", i)
		}
		path := writeLogFile(t, builder.String())

		// act
		excerpt := Tail(path, 50)

		excerptLines := strings.Split(excerpt, "\n")
		assert.Equal(t, 50, len(excerptLines))
		assert.Equal(t, "line 71", excerptLines[0])
		assert.Equal(t, "line 120", excerptLines[49])
	})

	t.Run("ReturnsPlaceholderForEmptyFile", func(t *testing.T) {

		path := writeLogFile(t, "")

		// act
		excerpt := Tail(path, 50)

		assert.Equal(t, Placeholder, excerpt)
	})

	t.Run("ReturnsPlaceholderForWhitespaceOnlyFile", func(t *testing.T) {

		path := writeLogFile(t, "\n\n   \n")

		// act
		excerpt := Tail(path, 50)

		assert.Equal(t, Placeholder, excerpt)
	})

	t.Run("ReturnsPlaceholderForAbsentFile", func(t *testing.T) {

		// act
		excerpt := Tail(filepath.Join(t.TempDir(), "does-not-exist.log"), 50)

		assert.Equal(t, Placeholder, excerpt)
	})

	t.Run("UsesDefaultForNonPositiveLineCount", func(t *testing.T) {

		path := writeLogFile(t, "line one\n")

		// act
		excerpt := Tail(path, 0)

		assert.Equal(t, "line one", excerpt)
	})
}

func writeLogFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "build.log")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	return path
}
