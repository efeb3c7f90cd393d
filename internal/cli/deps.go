package cli

import (
	"context"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/xolan/lifelog/internal/service"
)

// Deps contains all dependencies for CLI operations
type Deps struct {
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader
	Exit   func(code int)

	// Services is opened on first use through OpenServices
	Services     *service.Services
	OpenServices func(ctx context.Context) (*service.Services, error)

	// IsTerminal reports whether Stdin is interactive
	IsTerminal func() bool
}

// DefaultDeps creates a new Deps with default values.
// Services are not opened until a command needs them.
func DefaultDeps() *Deps {
	return &Deps{
		Stdout:       os.Stdout,
		Stderr:       os.Stderr,
		Stdin:        os.Stdin,
		Exit:         os.Exit,
		OpenServices: service.NewServices,
		IsTerminal: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd()))
		},
	}
}

// Svc returns the services, opening them on first call
func (d *Deps) Svc(ctx context.Context) (*service.Services, error) {
	if d.Services != nil {
		return d.Services, nil
	}
	svc, err := d.OpenServices(ctx)
	if err != nil {
		return nil, err
	}
	d.Services = svc
	return svc, nil
}

// Close releases the services if they were opened
func (d *Deps) Close() error {
	if d.Services == nil {
		return nil
	}
	err := d.Services.Close()
	d.Services = nil
	return err
}

// Global deps instance for CLI
var deps = DefaultDeps()

// SetDeps sets the global deps (for testing)
func SetDeps(d *Deps) {
	deps = d
}

// ResetDeps resets to default deps
func ResetDeps() {
	deps = DefaultDeps()
}

// GetDeps returns the current deps
func GetDeps() *Deps {
	return deps
}
