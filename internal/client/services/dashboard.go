package services

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/dmitrijs2005/sxclient/internal/client/client"
	"github.com/dmitrijs2005/sxclient/internal/client/models"
	"github.com/dmitrijs2005/sxclient/internal/client/view"
	"github.com/dmitrijs2005/sxclient/internal/filex"
	"github.com/dmitrijs2005/sxclient/internal/logging"
)

const (
	ExportFileName = "export.zip"

	RenamePrompt      = "What should this file be called?"
	RenameFailedAlert = "Failed to rename. Check console."
	ExportFailedAlert = "Failed to export!"
)

var ErrRenameNotAllowed = errors.New("rename is only available in the owner view")

// Prompter asks the user for a line of text. ok is false when the user
// cancelled.
type Prompter interface {
	Prompt(ctx context.Context, message, initial string) (answer string, ok bool, err error)
}

// Alerter shows a message the user has to notice.
type Alerter interface {
	Alert(ctx context.Context, message string)
}

// State is what the dashboard shows.
type State struct {
	Token     string
	Authed    bool
	Indicator view.AuthIndicator
	Files     []models.File
	Grid      template.HTML
}

type RenameOutcome int

const (
	// RenameSkipped means nothing was sent: no token, or a blank or
	// cancelled answer.
	RenameSkipped RenameOutcome = iota
	RenameFailed
	Renamed
)

func (o RenameOutcome) String() string {
	switch o {
	case RenameFailed:
		return "failed"
	case Renamed:
		return "renamed"
	default:
		return "skipped"
	}
}

// DashboardService drives the dashboard: it reads the token, probes
// authentication, fetches the listing and carries out export and rename.
type DashboardService struct {
	client client.Client
	tokens TokenStore
	grid   view.GridOptions
	log    logging.Logger
}

func NewDashboardService(c client.Client, tokens TokenStore, grid view.GridOptions, log logging.Logger) *DashboardService {
	return &DashboardService{client: c, tokens: tokens, grid: grid, log: log}
}

func (d *DashboardService) Variant() models.Variant {
	return d.grid.Variant
}

// Token returns the stored token. A store failure is logged and reads as
// no token.
func (d *DashboardService) Token(ctx context.Context) string {
	token, err := d.tokens.Token(ctx)
	if err != nil {
		d.log.Error(ctx, "reading token failed", "err", err)
		return ""
	}
	return token
}

// TokenSavedAt reports when the stored token was written. A store failure
// is logged and reads as unknown.
func (d *DashboardService) TokenSavedAt(ctx context.Context) (time.Time, bool) {
	t, ok, err := d.tokens.SavedAt(ctx)
	if err != nil {
		d.log.Error(ctx, "reading token timestamp failed", "err", err)
		return time.Time{}, false
	}
	return t, ok
}

// SaveToken stores token and returns the state derived from it.
func (d *DashboardService) SaveToken(ctx context.Context, token string) (*State, error) {
	if err := d.tokens.SetToken(ctx, token); err != nil {
		return nil, fmt.Errorf("save token: %w", err)
	}
	d.log.Info(ctx, "token saved")
	return d.Bootstrap(ctx), nil
}

// Logout forgets the stored token.
func (d *DashboardService) Logout(ctx context.Context) error {
	if err := d.tokens.ClearToken(ctx); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

// IsAuthed reports whether the server accepts the stored token. Without a
// token no request is made.
func (d *DashboardService) IsAuthed(ctx context.Context) bool {
	err := d.client.TestAuth(ctx)
	if err == nil {
		return true
	}
	if !errors.Is(err, client.ErrNoToken) {
		d.log.Debug(ctx, "auth probe failed", "err", err)
	}
	return false
}

// OpenExport starts the export download. The caller closes the body.
func (d *DashboardService) OpenExport(ctx context.Context) (io.ReadCloser, error) {
	body, err := d.client.Export(ctx)
	if err != nil {
		d.log.Warn(ctx, "export failed", "err", err)
		return nil, err
	}
	return body, nil
}

// Export saves the export archive as export.zip in dir and returns its path.
// Nothing is written unless the server answered 200 and the whole body was
// received.
func (d *DashboardService) Export(ctx context.Context, dir string) (string, error) {
	body, err := d.OpenExport(ctx)
	if err != nil {
		return "", err
	}
	defer body.Close()

	path, err := filex.WriteFileAtomic(dir, ExportFileName, body)
	if err != nil {
		d.log.Error(ctx, "saving export failed", "dir", dir, "err", err)
		return "", err
	}
	d.log.Info(ctx, "export saved", "path", path)
	return path, nil
}

func (d *DashboardService) ListFiles(ctx context.Context) ([]models.File, error) {
	files, err := d.client.ListFiles(ctx)
	if err != nil {
		if !errors.Is(err, client.ErrNoToken) {
			d.log.Warn(ctx, "listing files failed", "err", err)
		}
		return nil, err
	}
	return files, nil
}

// RenderGrid renders files with the service's grid options.
func (d *DashboardService) RenderGrid(ctx context.Context, files []models.File) template.HTML {
	html, err := view.RenderGrid(files, d.grid)
	if err != nil {
		d.log.Error(ctx, "rendering grid failed", "err", err)
		return ""
	}
	return html
}

// Refresh re-fetches the listing into st and re-renders its grid. A failed
// listing leaves an empty grid.
func (d *DashboardService) Refresh(ctx context.Context, st *State) {
	files, _ := d.ListFiles(ctx)
	st.Files = files
	st.Grid = d.RenderGrid(ctx, files)
}

// Bootstrap assembles the full dashboard state from the stored token.
func (d *DashboardService) Bootstrap(ctx context.Context) *State {
	st := &State{Token: d.Token(ctx)}
	st.Authed = d.IsAuthed(ctx)
	st.Indicator = view.Indicator(st.Authed)
	d.Refresh(ctx, st)
	return st
}

// Rename asks for a new name for file and submits it. A cancelled or blank
// answer is a silent no-op. A rejected rename is alerted and leaves st
// untouched; a successful one refreshes st's listing and grid.
func (d *DashboardService) Rename(ctx context.Context, st *State, file models.File, p Prompter, a Alerter) (RenameOutcome, error) {
	if !d.grid.Variant.CanRename() {
		return RenameSkipped, ErrRenameNotAllowed
	}
	if d.Token(ctx) == "" {
		return RenameSkipped, client.ErrNoToken
	}

	initial := file.OriginalFilename
	if initial == "" {
		initial = file.Name()
	}
	name, ok, err := p.Prompt(ctx, RenamePrompt, initial)
	if err != nil {
		return RenameSkipped, fmt.Errorf("prompt: %w", err)
	}
	if !ok || strings.TrimSpace(name) == "" {
		return RenameSkipped, nil
	}

	if err := d.client.Rename(ctx, file.Path(), name); err != nil {
		a.Alert(ctx, RenameFailedAlert)
		d.log.Error(ctx, "rename failed", "file", file.Name(), "err", err)
		return RenameFailed, err
	}

	d.log.Info(ctx, "file renamed", "file", file.Name(), "name", name)
	if st != nil {
		d.Refresh(ctx, st)
	}
	return Renamed, nil
}

// Answer is a Prompter with a fixed reply, for callers that collected the
// name up front.
type Answer string

func (a Answer) Prompt(context.Context, string, string) (string, bool, error) {
	return string(a), true, nil
}
