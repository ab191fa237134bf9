package packs

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testManifest = `{
  "format": "v1.0",
  "subjects": [{"slug": "demo", "name": "Demo", "file": "demo.json"}]
}`

const testSubject = `{
  "quiz": [{
    "level": "Beginner",
    "question": "What is 2 + 2?",
    "choices": ["3", "4"],
    "answerIndex": 1
  }]
}`

func TestVerifyChecksum(t *testing.T) {
	data := []byte("hello world")
	h := sha256.Sum256(data)
	correctHex := hex.EncodeToString(h[:])

	t.Run("match", func(t *testing.T) {
		assert.NoError(t, verifyChecksum(data, correctHex))
	})

	t.Run("mismatch", func(t *testing.T) {
		err := verifyChecksum(data, "0000000000000000000000000000000000000000000000000000000000000000")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrChecksum)
	})
}

func TestExtractPack(t *testing.T) {
	t.Run("tar.gz", func(t *testing.T) {
		archive := buildTarGz(t, map[string][]byte{
			"subjects.json": []byte(testManifest),
			"demo.json":     []byte(testSubject),
			"README.md":     []byte("skip me"),
		})
		files, err := extractPack(archive, "pack.tar.gz")
		require.NoError(t, err)
		assert.Len(t, files, 2)
		assert.Equal(t, []byte(testManifest), files["subjects.json"])
	})

	t.Run("zip", func(t *testing.T) {
		archive := buildZip(t, map[string][]byte{
			"pack/subjects.json": []byte(testManifest),
			"pack/demo.json":     []byte(testSubject),
		})
		files, err := extractPack(archive, "pack.zip")
		require.NoError(t, err)
		assert.Len(t, files, 2)
		assert.Equal(t, []byte(testSubject), files["demo.json"])
	})

	t.Run("not gzip", func(t *testing.T) {
		_, err := extractPack([]byte("plain text"), "pack.tar.gz")
		require.Error(t, err)
	})
}

func TestInstall(t *testing.T) {
	archive := buildTarGz(t, map[string][]byte{
		"subjects.json": []byte(testManifest),
		"demo.json":     []byte(testSubject),
	})
	archiveHash := sha256.Sum256(archive)
	archiveHex := hex.EncodeToString(archiveHash[:])

	serve := func(body []byte) *httptest.Server {
		return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/pack.tar.gz" {
				_, _ = w.Write(body)
				return
			}
			w.WriteHeader(http.StatusNotFound)
		}))
	}

	t.Run("happy path", func(t *testing.T) {
		server := serve(archive)
		defer server.Close()

		dest := filepath.Join(t.TempDir(), "quizzes")
		installer := NewInstaller(dest)

		var stages []string
		err := installer.Install(context.Background(), &InstallInput{
			URL:    server.URL + "/pack.tar.gz",
			SHA256: archiveHex,
		}, func(p InstallProgress) {
			stages = append(stages, p.Stage)
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"download", "verify", "extract", "validate", "install", "done"}, stages)

		got, err := os.ReadFile(filepath.Join(dest, "demo.json"))
		require.NoError(t, err)
		assert.Equal(t, []byte(testSubject), got)
	})

	t.Run("checksum mismatch", func(t *testing.T) {
		server := serve(archive)
		defer server.Close()

		installer := NewInstaller(filepath.Join(t.TempDir(), "quizzes"))
		err := installer.Install(context.Background(), &InstallInput{
			URL:    server.URL + "/pack.tar.gz",
			SHA256: "0000000000000000000000000000000000000000000000000000000000000000",
		}, func(InstallProgress) {})
		assert.ErrorIs(t, err, ErrChecksum)
	})

	t.Run("missing manifest", func(t *testing.T) {
		noManifest := buildTarGz(t, map[string][]byte{
			"demo.json": []byte(testSubject),
		})
		server := serve(noManifest)
		defer server.Close()

		dest := filepath.Join(t.TempDir(), "quizzes")
		installer := NewInstaller(dest)
		err := installer.Install(context.Background(), &InstallInput{
			URL: server.URL + "/pack.tar.gz",
		}, func(InstallProgress) {})
		assert.ErrorIs(t, err, ErrNotPack)

		// Nothing installed on failure.
		_, statErr := os.Stat(dest)
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("invalid subject file rejected", func(t *testing.T) {
		bad := buildTarGz(t, map[string][]byte{
			"subjects.json": []byte(testManifest),
			"demo.json":     []byte(`{"quiz": [{"question": "no choices"}]}`),
		})
		server := serve(bad)
		defer server.Close()

		installer := NewInstaller(filepath.Join(t.TempDir(), "quizzes"))
		err := installer.Install(context.Background(), &InstallInput{
			URL: server.URL + "/pack.tar.gz",
		}, func(InstallProgress) {})
		assert.ErrorIs(t, err, ErrNotPack)
	})

	t.Run("download failure", func(t *testing.T) {
		server := serve(archive)
		defer server.Close()

		installer := NewInstaller(filepath.Join(t.TempDir(), "quizzes"))
		err := installer.Install(context.Background(), &InstallInput{
			URL: server.URL + "/missing.tar.gz",
		}, func(InstallProgress) {})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "download pack")
	})
}

// buildTarGz creates a tar.gz archive from the given files.
func buildTarGz(t *testing.T, files map[string][]byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gw)

	for name, content := range files {
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Name: name,
			Size: int64(len(content)),
			Mode: 0644,
		}))
		_, err := tw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	require.NoError(t, gw.Close())
	return buf.Bytes()
}

// buildZip creates a zip archive from the given files.
func buildZip(t *testing.T, files map[string][]byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}
