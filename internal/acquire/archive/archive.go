package archive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"

	"github.com/quantmind-br/gitpilot/internal/acquire/base"
	"github.com/quantmind-br/gitpilot/internal/config"
	"github.com/quantmind-br/gitpilot/internal/core"
	"github.com/quantmind-br/gitpilot/internal/fsops"
	"github.com/quantmind-br/gitpilot/internal/helpers"
	"github.com/quantmind-br/gitpilot/internal/transaction"
	"github.com/quantmind-br/gitpilot/internal/ui"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// maxArchiveSize bounds a downloaded archive held in memory
const maxArchiveSize = 512 << 20

// Backend downloads GitHub branch archives and extracts them
type Backend struct {
	*base.Backend
}

// New creates a new archive backend
func New(cfg *config.Config, log *zerolog.Logger) *Backend {
	return &Backend{Backend: base.New(cfg, log)}
}

// NewWithDeps creates a new archive backend with injected dependencies
func NewWithDeps(cfg *config.Config, log *zerolog.Logger, fs afero.Fs, client *http.Client) *Backend {
	return &Backend{Backend: base.NewWithDeps(cfg, log, fs, helpers.NewOSCommandRunner(), client)}
}

// Name returns the backend name
func (b *Backend) Name() string {
	return "archive"
}

// Acquire tries each configured branch archive in order. The first archive
// that downloads and extracts wins; the session moves into the newest
// top-level directory.
func (b *Backend) Acquire(ctx context.Context, session *core.Session, repoURL string) (*core.AcquiredRepository, error) {
	branches := b.Cfg.GitHub.ArchiveBranches
	if len(branches) == 0 {
		return nil, errors.New("no archive branches configured")
	}

	var errs []error
	for _, branch := range branches {
		archiveURL := helpers.ArchiveURL(repoURL, branch)

		if err := b.fetchAndExtract(ctx, session, archiveURL, branch); err != nil {
			b.Log.Debug().
				Err(err).
				Str("branch", branch).
				Str("url", archiveURL).
				Msg("archive branch failed")
			errs = append(errs, fmt.Errorf("branch %s: %w", branch, err))

			if ctx.Err() != nil {
				break
			}
			continue
		}

		dir, err := fsops.NewestDir(b.Fs, session.WorkDir)
		if err != nil {
			// Archive had no top-level directory; stay where it was extracted
			b.Log.Debug().Err(err).Msg("no extracted directory found")
			dir = session.WorkDir
		}
		session.Chdir(dir)

		return &core.AcquiredRepository{
			Method: core.AcquireArchive,
			Dir:    dir,
			Branch: branch,
		}, nil
	}

	return nil, errors.Join(errs...)
}

// fetchAndExtract downloads one archive and extracts it into the session
// directory. A failed extraction removes whatever it created.
func (b *Backend) fetchAndExtract(ctx context.Context, session *core.Session, archiveURL, branch string) error {
	data, err := b.download(ctx, session.Console.Err, archiveURL, branch)
	if err != nil {
		return err
	}

	before, err := fsops.TopLevelEntries(b.Fs, session.WorkDir)
	if err != nil {
		return err
	}

	tx := transaction.NewManager(b.Log)
	tx.Add("remove extracted entries", func() error {
		return b.removeNewEntries(session.WorkDir, before)
	})

	if err := helpers.ExtractZipBytes(b.Fs, data, session.WorkDir); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Join(err, rbErr)
		}
		return err
	}

	tx.Commit()
	return nil
}

func (b *Backend) download(ctx context.Context, progress io.Writer, archiveURL, branch string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, archiveURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := b.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download archive: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download archive: HTTP %d", resp.StatusCode)
	}

	bar := ui.NewDownloadBar(progress, resp.ContentLength, fmt.Sprintf("Downloading %s.zip", branch))

	var buf bytes.Buffer
	if _, err := io.Copy(io.MultiWriter(&buf, bar), io.LimitReader(resp.Body, maxArchiveSize)); err != nil {
		_ = bar.Clear()
		return nil, fmt.Errorf("read archive: %w", err)
	}
	_ = bar.Finish()

	return buf.Bytes(), nil
}

func (b *Backend) removeNewEntries(dir string, before map[string]bool) error {
	after, err := fsops.TopLevelEntries(b.Fs, dir)
	if err != nil {
		return err
	}

	var errs []error
	for name := range after {
		if before[name] {
			continue
		}
		if err := b.Fs.RemoveAll(filepath.Join(dir, name)); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
