package downloads

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

const (
	reportInterval = 250 * time.Millisecond
	maxNameTries   = 1000
)

// HTTPFetcher downloads jobs over HTTP into a temp file, then renames it into
// place so partial files never look complete.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
}

func NewHTTPFetcher(client *http.Client) *HTTPFetcher {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Minute}
	}
	return &HTTPFetcher{client: client, userAgent: "wavecast/1.0"}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, job Job, report func(read, total int64)) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, job.URL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if err := os.MkdirAll(job.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create download dir: %w", err)
	}
	name := fileName(job, resp.Header.Get("Content-Type"))

	tmp, err := os.CreateTemp(job.Dir, ".download-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op after rename

	body := &progressReader{r: resp.Body, total: resp.ContentLength, report: report}
	if body.total < 0 {
		body.total = 0
	}
	_, copyErr := io.Copy(tmp, body)
	closeErr := tmp.Close()
	if copyErr != nil {
		return "", fmt.Errorf("write file: %w", copyErr)
	}
	if closeErr != nil {
		return "", fmt.Errorf("write file: %w", closeErr)
	}
	body.flush()

	target, err := reserve(job.Dir, name)
	if err != nil {
		return "", err
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		_ = os.Remove(target)
		return "", fmt.Errorf("move file to final location: %w", err)
	}
	return target, nil
}

// reserve claims a free file name in dir, adding "-2", "-3"... before the
// extension while name is taken. The claim is an empty file created with
// O_EXCL so concurrent workers never pick the same target.
func reserve(dir, name string) (string, error) {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for i := 1; i <= maxNameTries; i++ {
		candidate := name
		if i > 1 {
			candidate = fmt.Sprintf("%s-%d%s", stem, i, ext)
		}
		p := filepath.Join(dir, candidate)
		f, err := os.OpenFile(p, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			return p, f.Close()
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", fmt.Errorf("reserve file name: %w", err)
		}
	}
	return "", fmt.Errorf("reserve file name: no free name for %s", name)
}

// fileName derives a file name from the URL path, falling back to the job id.
func fileName(job Job, contentType string) string {
	name := ""
	if u, err := url.Parse(job.URL); err == nil {
		name = path.Base(u.Path)
	}
	if name == "" || name == "." || name == "/" {
		name = job.ID
	}
	if filepath.Ext(name) == "" {
		name += extensionFor(contentType)
	}
	return strings.ReplaceAll(name, string(filepath.Separator), "_")
}

func extensionFor(contentType string) string {
	mediaType, _, _ := mime.ParseMediaType(contentType)
	switch mediaType {
	case "audio/mpeg", "audio/mp3":
		return ".mp3"
	case "audio/flac", "audio/x-flac":
		return ".flac"
	case "audio/wav", "audio/x-wav":
		return ".wav"
	case "audio/mp4", "audio/x-m4a":
		return ".m4a"
	case "audio/ogg":
		return ".ogg"
	}
	if exts, _ := mime.ExtensionsByType(mediaType); len(exts) > 0 {
		return exts[0]
	}
	return ""
}

// progressReader reports at most every reportInterval.
type progressReader struct {
	r      io.Reader
	read   int64
	total  int64
	last   time.Time
	report func(read, total int64)
}

func (pr *progressReader) Read(p []byte) (int, error) {
	n, err := pr.r.Read(p)
	pr.read += int64(n)
	if now := time.Now(); now.Sub(pr.last) >= reportInterval {
		pr.last = now
		pr.flush()
	}
	return n, err
}

func (pr *progressReader) flush() {
	if pr.report != nil {
		pr.report(pr.read, pr.total)
	}
}
