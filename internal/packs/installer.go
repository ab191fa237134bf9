package packs

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/asheem/quizdeck/internal/content"
)

var (
	ErrChecksum = errors.New("checksum verification failed")
	ErrNotPack  = errors.New("archive is not a content pack")
)

// InstallInput describes one pack to fetch.
type InstallInput struct {
	// URL of a .tar.gz or .zip archive holding subjects.json plus its
	// subject files.
	URL string

	// SHA256 is the expected hex digest of the archive. Empty skips
	// verification.
	SHA256 string
}

// InstallProgress reports the current stage to the caller.
type InstallProgress struct {
	Stage   string
	Message string
}

// Installer fetches content packs and installs them into a content
// directory after validating them as a loadable library.
type Installer struct {
	client  *http.Client
	destDir string
}

// NewInstaller creates an Installer that installs into destDir.
func NewInstaller(destDir string) *Installer {
	return &Installer{
		client:  &http.Client{Timeout: 60 * time.Second},
		destDir: destDir,
	}
}

// Install downloads, verifies, validates and installs a pack. The
// archive is unpacked into a staging directory first and only moved
// into place once it opens as a valid library, so a bad pack never
// clobbers working content.
func (i *Installer) Install(ctx context.Context, input *InstallInput, progress func(InstallProgress)) error {
	progress(InstallProgress{Stage: "download", Message: fmt.Sprintf("Downloading %s...", input.URL)})
	archiveData, err := i.downloadFile(ctx, input.URL)
	if err != nil {
		return fmt.Errorf("download pack: %w", err)
	}

	if input.SHA256 != "" {
		progress(InstallProgress{Stage: "verify", Message: "Verifying checksum..."})
		if err := verifyChecksum(archiveData, input.SHA256); err != nil {
			return err
		}
	}

	progress(InstallProgress{Stage: "extract", Message: "Extracting pack..."})
	files, err := extractPack(archiveData, input.URL)
	if err != nil {
		return fmt.Errorf("extract pack: %w", err)
	}

	progress(InstallProgress{Stage: "validate", Message: "Validating content..."})
	staged, err := i.stage(files)
	if staged != "" {
		defer func() { _ = os.RemoveAll(staged) }()
	}
	if err != nil {
		return err
	}

	lib, err := content.Open(staged)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotPack, err)
	}
	for _, entry := range lib.Subjects() {
		if _, err := lib.LoadSubject(entry.Slug); err != nil {
			return fmt.Errorf("%w: %v", ErrNotPack, err)
		}
	}

	progress(InstallProgress{Stage: "install", Message: fmt.Sprintf("Installing into %s...", i.destDir)})
	if err := i.apply(staged, files); err != nil {
		return fmt.Errorf("install pack: %w", err)
	}

	progress(InstallProgress{Stage: "done", Message: fmt.Sprintf("Installed %d subjects", len(lib.Subjects()))})
	return nil
}

func (i *Installer) downloadFile(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := i.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	return io.ReadAll(resp.Body)
}

func verifyChecksum(data []byte, expectedHex string) error {
	h := sha256.Sum256(data)
	actual := hex.EncodeToString(h[:])
	if actual != strings.ToLower(strings.TrimSpace(expectedHex)) {
		return fmt.Errorf("%w: expected %s, got %s", ErrChecksum, expectedHex, actual)
	}
	return nil
}

// extractPack returns the JSON files in the archive keyed by base name.
// Directory structure inside the archive is flattened, which also
// neutralizes path traversal in crafted entries.
func extractPack(data []byte, url string) (map[string][]byte, error) {
	if strings.HasSuffix(url, ".zip") {
		return extractFromZip(data)
	}
	return extractFromTarGz(data)
}

func extractFromTarGz(data []byte) (map[string][]byte, error) {
	gz, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open gzip: %w", err)
	}
	defer func() { _ = gz.Close() }()

	files := make(map[string][]byte)
	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read tar: %w", err)
		}
		name := filepath.Base(hdr.Name)
		if hdr.Typeflag != tar.TypeReg || !strings.HasSuffix(name, ".json") {
			continue
		}
		body, err := io.ReadAll(tr)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		files[name] = body
	}
	return files, nil
}

func extractFromZip(data []byte) (map[string][]byte, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open zip: %w", err)
	}

	files := make(map[string][]byte)
	for _, f := range r.File {
		name := filepath.Base(f.Name)
		if f.FileInfo().IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		body, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		files[name] = body
	}
	return files, nil
}

// stage writes the extracted files into a temp dir next to destDir so
// apply can rename within the same filesystem.
func (i *Installer) stage(files map[string][]byte) (string, error) {
	if len(files) == 0 {
		return "", fmt.Errorf("%w: no JSON files in archive", ErrNotPack)
	}

	parent := filepath.Dir(i.destDir)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return "", fmt.Errorf("create data dir: %w", err)
	}
	tmpDir, err := os.MkdirTemp(parent, ".quizdeck-pack-*")
	if err != nil {
		return "", fmt.Errorf("create staging dir: %w", err)
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(tmpDir, name), body, 0o644); err != nil {
			return tmpDir, fmt.Errorf("stage %s: %w", name, err)
		}
	}
	return tmpDir, nil
}

func (i *Installer) apply(staged string, files map[string][]byte) error {
	if err := os.MkdirAll(i.destDir, 0o755); err != nil {
		return fmt.Errorf("create content dir: %w", err)
	}
	for name := range files {
		src := filepath.Join(staged, name)
		dst := filepath.Join(i.destDir, name)
		if err := os.Rename(src, dst); err != nil {
			return fmt.Errorf("move %s: %w", name, err)
		}
	}
	return nil
}
