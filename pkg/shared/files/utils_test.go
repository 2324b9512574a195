package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetermineFileFullPath(t *testing.T) {
	type testCase struct {
		name         string
		inputPath    string
		nameTemplate string
		expectFile   string
		expectFolder string
		setup        func(t *testing.T) (inputPath, expectFile, expectFolder string)
	}

	tmpDir := t.TempDir()

	tests := []testCase{
		{
			name:         "Directory path with name template",
			inputPath:    tmpDir,
			nameTemplate: "scan.sarif",
			expectFile:   filepath.Join(tmpDir, "scan.sarif"),
			expectFolder: tmpDir,
		},
		{
			name:         "Existing file path",
			nameTemplate: "ignored.sarif",
			setup: func(t *testing.T) (string, string, string) {
				f := filepath.Join(tmpDir, "report.sarif")
				require.NoError(t, os.WriteFile(f, []byte("{}"), 0644))
				return f, f, tmpDir
			},
		},
		{
			name:         "Path with no extension, treat as folder",
			inputPath:    filepath.Join(tmpDir, "reports"),
			nameTemplate: "scan.sarif",
			expectFile:   filepath.Join(tmpDir, "reports", "scan.sarif"),
			expectFolder: filepath.Join(tmpDir, "reports"),
		},
		{
			name:         "Non-existent file with extension",
			inputPath:    filepath.Join(tmpDir, "nested", "out.sarif"),
			nameTemplate: "ignored.sarif",
			expectFile:   filepath.Join(tmpDir, "nested", "out.sarif"),
			expectFolder: filepath.Join(tmpDir, "nested"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actualPath := tt.inputPath
			expectFile := tt.expectFile
			expectFolder := tt.expectFolder

			if tt.setup != nil {
				actualPath, expectFile, expectFolder = tt.setup(t)
			}

			filePath, folderPath, err := DetermineFileFullPath(actualPath, tt.nameTemplate)
			require.NoError(t, err)
			assert.Equal(t, expectFile, filePath)
			assert.Equal(t, expectFolder, folderPath)
		})
	}
}

func TestWriteJsonFileCreatesFolders(t *testing.T) {
	target := filepath.Join(t.TempDir(), "a", "b", "out.sarif")

	require.NoError(t, WriteJsonFile(target, []byte(`{"version":"2.0.0"}`)))
	require.NoError(t, WriteJsonFile(target, []byte(`{}`)))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data), "existing content must be truncated")
}

func TestReadValidatedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "axe.json")
	require.NoError(t, os.WriteFile(path, []byte(`[]`), 0644))

	data, err := ReadValidatedFile(path)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))

	_, err = ReadValidatedFile(dir)
	assert.ErrorContains(t, err, "is a directory")

	_, err = ReadValidatedFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestReplaceExt(t *testing.T) {
	assert.Equal(t, "scan.sarif", ReplaceExt("/tmp/results/scan.json", ".sarif"))
	assert.Equal(t, "scan.sarif", ReplaceExt("scan", ".sarif"))
	assert.Equal(t, "scan.v2.sarif", ReplaceExt("scan.v2.json", ".sarif"))
}
