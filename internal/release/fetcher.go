package release

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/extkit/extbuild/internal/archive"
	"github.com/extkit/extbuild/internal/branding"
	"github.com/extkit/extbuild/internal/fsutil"
	"github.com/extkit/extbuild/internal/logging"
	"github.com/extkit/extbuild/internal/migrate"
)

// GitHubURL is the only supported repository host.
const GitHubURL = "https://github.com"

const archiveFile = "archive.zip"

// Fetcher downloads and installs host releases.
type Fetcher struct {
	httpClient *http.Client
	mirror     string
	migrator   *migrate.Migrator
	progress   io.Writer
	logger     *log.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.httpClient = c
	}
}

// WithMirror downloads from mirror instead of https://github.com. Paths are
// kept unchanged.
func WithMirror(mirror string) Option {
	return func(f *Fetcher) {
		f.mirror = strings.TrimRight(mirror, "/")
	}
}

// WithMigrator sets the migrator used to move the extracted tree.
func WithMigrator(m *migrate.Migrator) Option {
	return func(f *Fetcher) {
		f.migrator = m
	}
}

// WithProgress reports download progress to w.
func WithProgress(w io.Writer) Option {
	return func(f *Fetcher) {
		f.progress = w
	}
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(f *Fetcher) {
		f.logger = l
	}
}

// New creates a Fetcher.
func New(opts ...Option) *Fetcher {
	f := &Fetcher{httpClient: http.DefaultClient}
	for _, opt := range opts {
		opt(f)
	}
	f.logger = logging.OrDiscard(f.logger)
	if f.migrator == nil {
		f.migrator = migrate.New(migrate.WithLogger(f.logger))
	}
	return f
}

// Normalize strips a trailing slash and ".git" suffix and rejects
// repositories not hosted on GitHub.
func Normalize(repository string) (string, error) {
	repo := strings.TrimSuffix(strings.TrimRight(repository, "/"), ".git")
	if !strings.HasPrefix(repo, GitHubURL+"/") {
		return "", fmt.Errorf("unsupported repository %q: only %s repositories can be fetched", repository, GitHubURL)
	}
	return repo, nil
}

// ArchiveURL returns the branch archive URL of a repository.
func ArchiveURL(repository, branch string) (string, error) {
	repo, err := Normalize(repository)
	if err != nil {
		return "", err
	}
	return repo + "/archive/" + branch + ".zip", nil
}

// RootDir returns the top-level directory of a branch archive:
// "<repo>-<branch>" with slashes in the branch replaced by dashes.
func RootDir(repository, branch string) (string, error) {
	repo, err := Normalize(repository)
	if err != nil {
		return "", err
	}
	return filepath.Base(repo) + "-" + strings.ReplaceAll(branch, "/", "-"), nil
}

// Fetch replaces siteDir with the given branch of repository.
func (f *Fetcher) Fetch(ctx context.Context, repository, branch, siteDir string) error {
	if branch == "" {
		return fmt.Errorf("no branch given for %s", repository)
	}
	url, err := ArchiveURL(repository, branch)
	if err != nil {
		return err
	}
	root, err := RootDir(repository, branch)
	if err != nil {
		return err
	}
	if f.mirror != "" {
		url = f.mirror + strings.TrimPrefix(url, GitHubURL)
	}

	if err := fsutil.Recreate(siteDir); err != nil {
		return err
	}

	zipPath := filepath.Join(siteDir, archiveFile)
	f.logger.Info("downloading release", "url", url)
	if err := f.download(ctx, url, zipPath); err != nil {
		return err
	}

	f.logger.Info("unzipping release")
	if err := archive.Extract(zipPath, siteDir); err != nil {
		return err
	}
	if err := fsutil.Remove(zipPath); err != nil {
		return err
	}

	src, err := extractedRoot(siteDir, root)
	if err != nil {
		return err
	}
	f.logger.Info("moving files into place", "from", filepath.Base(src))
	return f.migrator.MoveContents(ctx, src, siteDir)
}

// extractedRoot locates the archive's top-level directory. Tag archives
// may not match the expected name, so a single extracted directory is
// accepted as well.
func extractedRoot(siteDir, expected string) (string, error) {
	path := filepath.Join(siteDir, expected)
	if fsutil.IsDir(path) {
		return path, nil
	}

	entries, err := os.ReadDir(siteDir)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", siteDir, err)
	}
	if len(entries) == 1 && entries[0].IsDir() {
		return filepath.Join(siteDir, entries[0].Name()), nil
	}
	return "", fmt.Errorf("release archive has no %s directory", expected)
}

func (f *Fetcher) download(ctx context.Context, url, destPath string) (err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating download request: %w", err)
	}
	req.Header.Set("User-Agent", branding.UserAgent())

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("downloading %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("downloading %s: status %d", url, resp.StatusCode)
	}

	out, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("creating download file: %w", err)
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing download file: %w", closeErr)
		}
	}()

	var w io.Writer = out
	if f.progress != nil {
		p := &progressWriter{w: f.progress, total: resp.ContentLength, last: -1}
		w = io.MultiWriter(out, p)
		defer p.done()
	}
	if _, err := io.Copy(w, resp.Body); err != nil {
		return fmt.Errorf("reading download stream: %w", err)
	}
	return nil
}

// progressWriter prints the downloaded percentage on a single line.
type progressWriter struct {
	w          io.Writer
	total      int64
	downloaded int64
	last       int
}

func (p *progressWriter) Write(b []byte) (int, error) {
	p.downloaded += int64(len(b))
	if p.total > 0 {
		percent := int(p.downloaded * 100 / p.total)
		if percent != p.last {
			fmt.Fprintf(p.w, "\rDownloading... %d%%", percent)
			p.last = percent
		}
	}
	return len(b), nil
}

func (p *progressWriter) done() {
	if p.total > 0 {
		fmt.Fprintln(p.w)
	}
}
