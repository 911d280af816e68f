package filestorage

import (
	"bytes"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fileHeader builds a real multipart.FileHeader carrying content, the
// way gin hands one to the controllers.
func fileHeader(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	reader := multipart.NewReader(&body, writer.Boundary())
	form, err := reader.ReadForm(int64(body.Len()) + 1024)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	files := form.File["file"]
	require.Len(t, files, 1)
	return files[0]
}

func TestLocalStorageSaveAndDelete(t *testing.T) {
	base := t.TempDir()
	storage, err := NewLocalStorage(base, "http://localhost:5000/uploads/")
	require.NoError(t, err)

	stored, err := storage.Save(fileHeader(t, "proposal.pdf", "pdf bytes"), CategoryProjectDocuments)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(stored.Key, CategoryProjectDocuments+"/"))
	assert.Equal(t, "http://localhost:5000/uploads/"+stored.Key, stored.URL)
	assert.True(t, strings.HasSuffix(stored.Key, "_proposal.pdf"))

	onDisk := filepath.Join(base, filepath.FromSlash(stored.Key))
	content, err := os.ReadFile(onDisk)
	require.NoError(t, err)
	assert.Equal(t, "pdf bytes", string(content))

	require.NoError(t, storage.Delete(stored.URL, CategoryProjectDocuments))
	_, err = os.Stat(onDisk)
	assert.True(t, os.IsNotExist(err))
}

func TestLocalStorageSaveNilHeader(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir(), "http://localhost:5000/uploads")
	require.NoError(t, err)

	_, err = storage.Save(nil, CategoryProjectDocuments)
	assert.Error(t, err)
}

func TestLocalStorageDeleteIdempotent(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir(), "http://localhost:5000/uploads")
	require.NoError(t, err)

	assert.NoError(t, storage.Delete("", CategoryProjectDocuments))
	assert.NoError(t, storage.Delete("http://localhost:5000/uploads/project-documents/gone.pdf", CategoryProjectDocuments))
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain ascii", "report", "report"},
		{"spaces become underscores", "final report v2", "final_report_v2"},
		{"runs collapse and trim", "??draft--1??", "draft--1"},
		{"thai letters survive", "โครงงาน", "โครงงาน"},
		{"combining marks dropped", "กิกี", "กก"},
		{"nothing left falls back", "???", "file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFilename(tt.in))
		})
	}
}

func TestUniqueFilename(t *testing.T) {
	name := UniqueFilename("final report.pdf")

	parts := strings.SplitN(name, "_", 2)
	require.Len(t, parts, 2)
	assert.Regexp(t, `^\d{13,}$`, parts[0])
	assert.Equal(t, "final_report.pdf", parts[1])
}
