package syspkg

import (
	"context"
	"io"
)

// Provider defines the interface for a language package manager
type Provider interface {
	// Name returns the provider name (e.g., "pip")
	Name() string

	// Install installs every dependency listed in manifest, running in dir
	// and streaming the tool's output
	Install(ctx context.Context, dir, manifest string, stdout, stderr io.Writer) error

	// Version reports the provider's version, failing when it is unusable
	Version(ctx context.Context) (string, error)
}
