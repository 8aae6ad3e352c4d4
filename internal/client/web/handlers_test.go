package web

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/sxclient/internal/client/client"
	"github.com/dmitrijs2005/sxclient/internal/client/models"
	"github.com/dmitrijs2005/sxclient/internal/client/services"
	"github.com/dmitrijs2005/sxclient/internal/client/view"
	"github.com/dmitrijs2005/sxclient/internal/logging"
)

type fakeDashboard struct {
	variant models.Variant
	state   services.State

	savedToken string
	saveErr    error

	exportBody string
	exportErr  error

	renameCalls int
	renamedFile models.File
	renamedTo   string
	renameErr   error
}

func (f *fakeDashboard) Variant() models.Variant { return f.variant }

func (f *fakeDashboard) Bootstrap(context.Context) *services.State {
	st := f.state
	return &st
}

func (f *fakeDashboard) SaveToken(ctx context.Context, token string) (*services.State, error) {
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	f.savedToken = token
	f.state.Token = token
	return f.Bootstrap(ctx), nil
}

func (f *fakeDashboard) OpenExport(context.Context) (io.ReadCloser, error) {
	if f.exportErr != nil {
		return nil, f.exportErr
	}
	return io.NopCloser(strings.NewReader(f.exportBody)), nil
}

func (f *fakeDashboard) Rename(ctx context.Context, _ *services.State, file models.File, p services.Prompter, a services.Alerter) (services.RenameOutcome, error) {
	f.renameCalls++
	f.renamedFile = file
	name, _, _ := p.Prompt(ctx, services.RenamePrompt, "")
	f.renamedTo = name
	if f.renameErr != nil {
		a.Alert(ctx, services.RenameFailedAlert)
		return services.RenameFailed, f.renameErr
	}
	return services.Renamed, nil
}

func newTestRouter(t *testing.T, d Dashboard) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	return NewRouter(NewHandler(d, logging.Discard()), testListenAddr, logging.Discard())
}

const testListenAddr = "127.0.0.1:8090"

func doRequest(router *gin.Engine, method, path string, form url.Values) *httptest.ResponseRecorder {
	return doRequestWithHeaders(router, method, path, form, nil)
}

// doRequestWithHeaders sends the request to the dashboard's own host unless
// headers set "Host".
func doRequestWithHeaders(router *gin.Engine, method, path string, form url.Values, headers map[string]string) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	req.Host = testListenAddr
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for k, v := range headers {
		if k == "Host" {
			req.Host = v
			continue
		}
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func ownerState() services.State {
	files := []models.File{{ID: "a1", Ext: ".png", OriginalFilename: "cat.png", DeleteToken: "tk1"}}
	grid, _ := view.RenderGrid(files, view.GridOptions{Variant: models.VariantOwner})
	return services.State{
		Token:     "abc",
		Authed:    true,
		Indicator: view.Indicator(true),
		Files:     files,
		Grid:      grid,
	}
}

func TestIndex_RendersDashboard(t *testing.T) {
	router := newTestRouter(t, &fakeDashboard{variant: models.VariantOwner, state: ownerState()})

	rec := doRequest(router, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")

	body := rec.Body.String()
	assert.Contains(t, body, `class="green">You are authenticated.`)
	assert.Contains(t, body, `<img src="/f/a1.png"`)
	assert.Contains(t, body, `value="abc"`)
}

func TestIndex_ShowsKnownFlashOnly(t *testing.T) {
	router := newTestRouter(t, &fakeDashboard{variant: models.VariantOwner})

	rec := doRequest(router, http.MethodGet, "/?flash=rename-failed", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Failed to rename. Check console.")

	rec = doRequest(router, http.MethodGet, "/?flash=unknown", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), `class="flash"`)
}

func TestSaveToken_RendersDerivedState(t *testing.T) {
	d := &fakeDashboard{variant: models.VariantOwner}
	router := newTestRouter(t, d)

	rec := doRequest(router, http.MethodPost, "/token", url.Values{"token": {"xyz"}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "xyz", d.savedToken)
	assert.Contains(t, rec.Body.String(), `value="xyz"`)
}

func TestSaveToken_StoreError(t *testing.T) {
	router := newTestRouter(t, &fakeDashboard{saveErr: errors.New("disk")})

	rec := doRequest(router, http.MethodPost, "/token", url.Values{"token": {"xyz"}})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestExport_StreamsAttachment(t *testing.T) {
	router := newTestRouter(t, &fakeDashboard{exportBody: "PK\x03\x04"})

	rec := doRequest(router, http.MethodGet, "/export", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/zip", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="export.zip"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "PK\x03\x04", rec.Body.String())
}

func TestExport_Failure(t *testing.T) {
	router := newTestRouter(t, &fakeDashboard{exportErr: client.ErrNoToken})

	rec := doRequest(router, http.MethodGet, "/export", nil)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "Failed to export!", rec.Body.String())
	assert.Empty(t, rec.Header().Get("Content-Disposition"))
}

func TestRename_Success(t *testing.T) {
	d := &fakeDashboard{variant: models.VariantOwner}
	router := newTestRouter(t, d)

	rec := doRequest(router, http.MethodPost, "/rename", url.Values{"id": {"a1"}, "ext": {".png"}, "name": {"kitten.png"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	assert.Equal(t, 1, d.renameCalls)
	assert.Equal(t, "/f/a1.png", d.renamedFile.Path())
	assert.Equal(t, "kitten.png", d.renamedTo)
}

func TestRename_BlankNameSendsNothing(t *testing.T) {
	d := &fakeDashboard{variant: models.VariantOwner}
	router := newTestRouter(t, d)

	for _, name := range []string{"", "   "} {
		rec := doRequest(router, http.MethodPost, "/rename", url.Values{"id": {"a1"}, "ext": {".png"}, "name": {name}})
		require.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/", rec.Header().Get("Location"))
	}
	assert.Equal(t, 0, d.renameCalls)
}

func TestRename_FailureCarriesFlash(t *testing.T) {
	d := &fakeDashboard{variant: models.VariantOwner, renameErr: &client.StatusError{Code: http.StatusNotFound}}
	router := newTestRouter(t, d)

	rec := doRequest(router, http.MethodPost, "/rename", url.Values{"id": {"a1"}, "ext": {".png"}, "name": {"x"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/?flash=rename-failed", rec.Header().Get("Location"))
}

func TestRename_ForbiddenInPublicVariant(t *testing.T) {
	d := &fakeDashboard{variant: models.VariantPublic}
	router := newTestRouter(t, d)

	rec := doRequest(router, http.MethodPost, "/rename", url.Values{"id": {"a1"}, "ext": {".png"}, "name": {"x"}})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, 0, d.renameCalls)
}

func TestServe_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, "127.0.0.1:0", http.NotFoundHandler(), logging.Discard())
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
