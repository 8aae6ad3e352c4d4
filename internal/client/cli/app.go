package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/sxclient/internal/client/config"
	"github.com/dmitrijs2005/sxclient/internal/client/models"
	"github.com/dmitrijs2005/sxclient/internal/client/services"
)

// ErrUsage is returned for unknown commands and missing arguments.
var ErrUsage = errors.New("usage error")

// Dashboard is the part of services.DashboardService the CLI drives.
type Dashboard interface {
	Variant() models.Variant
	Token(ctx context.Context) string
	TokenSavedAt(ctx context.Context) (time.Time, bool)
	SaveToken(ctx context.Context, token string) (*services.State, error)
	Logout(ctx context.Context) error
	IsAuthed(ctx context.Context) bool
	Export(ctx context.Context, dir string) (string, error)
	ListFiles(ctx context.Context) ([]models.File, error)
	Rename(ctx context.Context, st *services.State, file models.File, p services.Prompter, a services.Alerter) (services.RenameOutcome, error)
}

type App struct {
	config *config.Config
	dash   Dashboard

	// serve runs the browser dashboard until ctx is done.
	serve func(ctx context.Context) error

	reader *bufio.Reader
	out    io.Writer

	// files is the listing last shown to the user.
	files []models.File
}

func NewApp(c *config.Config, dash Dashboard, serve func(ctx context.Context) error, in io.Reader, out io.Writer) *App {
	return &App{config: c, dash: dash, serve: serve, reader: bufio.NewReader(in), out: out}
}

// Run executes args as a single command, or starts the REPL when args is
// empty.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Welcome to the sx client (type 'help' for commands)")
		runREPL(ctx, a, a.reader, a.out)
		return nil
	}

	quit, err := dispatch(ctx, a, args[0], args[1:], a.out)
	if quit {
		return nil
	}
	return err
}

// Alert prints a message the user must notice.
func (a *App) Alert(_ context.Context, message string) {
	fmt.Fprintln(a.out, "!", message)
}

// Prompt asks for a line of text showing initial as the current value. The
// answer is returned as typed, an empty line included; end of input counts
// as cancel.
func (a *App) Prompt(_ context.Context, message, initial string) (string, bool, error) {
	if initial != "" {
		message = fmt.Sprintf("%s (currently %q)", message, initial)
	}
	answer, err := GetLine(a.reader, message, a.out)
	if errors.Is(err, io.EOF) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return answer, true, nil
}
