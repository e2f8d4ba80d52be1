package questions

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadFile(t *testing.T) {
	t.Run("valid file", func(t *testing.T) {
		// Given: a question file on disk
		path := filepath.Join(t.TempDir(), "questions.json")
		content := `[{"category":"SPORTS","question":"Innings in baseball","answer":"Nine","price":200}]`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		// When: the file is loaded
		loaded, err := LoadFile(path)

		// Then: the questions are parsed
		require.NoError(t, err)
		require.Len(t, loaded, 1)
		require.Equal(t, "SPORTS", loaded[0].Category)
		require.Equal(t, 200, loaded[0].Price)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(t.TempDir(), "missing.json"))
		require.Error(t, err)
	})

	t.Run("malformed json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "broken.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

		_, err := LoadFile(path)
		require.Error(t, err)
	})
}
