package cli

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/mdp/qrterminal/v3"

	"github.com/dmitrijs2005/sxclient/internal/client/client"
	"github.com/dmitrijs2005/sxclient/internal/client/models"
	"github.com/dmitrijs2005/sxclient/internal/client/services"
	"github.com/dmitrijs2005/sxclient/internal/client/view"
)

const helpText = `Available commands:
  token          save the API token
  logout         forget the API token
  status         show the authentication status
  list | ls      list files
  export         save the export archive as export.zip
  rename <id>    rename a file
  links <id>     show a file's links and a QR code
  serve          serve the dashboard in the browser until Ctrl+C, which also exits
  exit | quit    leave the program`

func (a *App) Help(context.Context) error {
	fmt.Fprintln(a.out, helpText)
	return nil
}

func (a *App) Token(ctx context.Context) error {
	token, err := GetToken(a.reader, a.out)
	if err != nil {
		return err
	}

	st, err := a.dash.SaveToken(ctx, token)
	if err != nil {
		fmt.Fprintln(a.out, "Could not save the token:", err)
		return err
	}
	a.files = st.Files
	fmt.Fprintln(a.out, st.Indicator.Text)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.dash.Logout(ctx); err != nil {
		fmt.Fprintln(a.out, "Could not forget the token:", err)
		return err
	}
	a.files = nil
	fmt.Fprintln(a.out, "Token removed.")
	return nil
}

func (a *App) Status(ctx context.Context) error {
	token := "not set"
	if a.dash.Token(ctx) != "" {
		token = "set"
		if at, ok := a.dash.TokenSavedAt(ctx); ok {
			token += ", saved at " + at.Local().Format(time.DateTime)
		}
	}
	fmt.Fprintf(a.out, "Server: %s\nView:   %s\nToken:  %s\n", a.config.ServerURL, a.dash.Variant(), token)
	fmt.Fprintln(a.out, view.Indicator(a.dash.IsAuthed(ctx)).Text)
	return nil
}

func (a *App) List(ctx context.Context) error {
	files, err := a.dash.ListFiles(ctx)
	if err != nil {
		a.files = nil
		if errors.Is(err, client.ErrNoToken) {
			fmt.Fprintln(a.out, "No token set; use 'token' first.")
		} else {
			fmt.Fprintln(a.out, "Could not list files:", err)
		}
		return err
	}
	a.files = files
	a.printFiles(files)
	return nil
}

func (a *App) printFiles(files []models.File) {
	if len(files) == 0 {
		fmt.Fprintln(a.out, "No files.")
		return
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tURL")
	for _, f := range files {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", f.ID, f.Label(a.dash.Variant()), models.JoinURL(a.config.ServerURL, f.Path()))
	}
	_ = tw.Flush()
}

func (a *App) Export(ctx context.Context) error {
	path, err := a.dash.Export(ctx, a.config.ExportDir)
	if err != nil {
		a.Alert(ctx, services.ExportFailedAlert)
		return err
	}
	fmt.Fprintln(a.out, "Saved", path)
	return nil
}

// findFile looks key up in the last listing, fetching one if there is none
// or the key is not in it.
func (a *App) findFile(ctx context.Context, key string) (models.File, error) {
	if f, ok := models.FindFile(a.files, key); ok {
		return f, nil
	}
	files, err := a.dash.ListFiles(ctx)
	if err != nil {
		return models.File{}, err
	}
	a.files = files
	if f, ok := models.FindFile(files, key); ok {
		return f, nil
	}
	return models.File{}, fmt.Errorf("%w: %s", client.ErrNotFound, key)
}

func (a *App) Rename(ctx context.Context, key string) error {
	file, err := a.findFile(ctx, key)
	if err != nil {
		fmt.Fprintln(a.out, "Could not find file:", err)
		return err
	}

	st := &services.State{Files: a.files}
	out, err := a.dash.Rename(ctx, st, file, a, a)
	switch out {
	case services.Renamed:
		a.files = st.Files
		a.printFiles(st.Files)
		return nil
	case services.RenameFailed:
		// already alerted
		return err
	}
	if err != nil {
		fmt.Fprintln(a.out, "Rename not possible:", err)
	}
	return err
}

func (a *App) Links(ctx context.Context, key string) error {
	file, err := a.findFile(ctx, key)
	if err != nil {
		fmt.Fprintln(a.out, "Could not find file:", err)
		return err
	}

	fileURL := models.JoinURL(a.config.ServerURL, file.Path())
	fmt.Fprintf(a.out, "File:     %s\n", fileURL)
	if file.IsMarkdown() {
		fmt.Fprintf(a.out, "Rendered: %s\n", models.JoinURL(a.config.ServerURL, file.RenderedPath()))
	}
	fmt.Fprintf(a.out, "Delete:   %s\n", models.JoinURL(a.config.ServerURL, file.DeletePath()))

	qrterminal.GenerateWithConfig(fileURL, qrterminal.Config{
		Level:          qrterminal.M,
		Writer:         a.out,
		HalfBlocks:     true,
		BlackChar:      qrterminal.BLACK_BLACK,
		WhiteBlackChar: qrterminal.WHITE_BLACK,
		WhiteChar:      qrterminal.WHITE_WHITE,
		BlackWhiteChar: qrterminal.BLACK_WHITE,
		QuietZone:      1,
	})
	return nil
}

// Serve blocks serving the browser dashboard until ctx is done. ctx is the
// process signal context, so an interrupt ends the whole client.
func (a *App) Serve(ctx context.Context) error {
	if a.serve == nil {
		return errors.New("dashboard server not configured")
	}
	fmt.Fprintf(a.out, "Dashboard on http://%s (Ctrl+C stops it and exits the client)\n", a.config.ListenAddr)
	if err := a.serve(ctx); err != nil {
		fmt.Fprintln(a.out, "Dashboard stopped:", err)
		return err
	}
	return nil
}
