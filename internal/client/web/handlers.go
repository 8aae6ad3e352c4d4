// Package web serves the dashboard to a local browser. Handlers only adapt
// HTTP to the dashboard service; rendering lives in package view.
package web

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/sxclient/internal/client/models"
	"github.com/dmitrijs2005/sxclient/internal/client/services"
	"github.com/dmitrijs2005/sxclient/internal/client/view"
	"github.com/dmitrijs2005/sxclient/internal/logging"
)

// Dashboard is the part of services.DashboardService the handlers use.
type Dashboard interface {
	Variant() models.Variant
	Bootstrap(ctx context.Context) *services.State
	SaveToken(ctx context.Context, token string) (*services.State, error)
	OpenExport(ctx context.Context) (io.ReadCloser, error)
	Rename(ctx context.Context, st *services.State, file models.File, p services.Prompter, a services.Alerter) (services.RenameOutcome, error)
}

// flashes are the alerts a redirect can carry, keyed by query value.
var flashes = map[string]string{
	"rename-failed": services.RenameFailedAlert,
	"export-failed": services.ExportFailedAlert,
}

func flashCode(msg string) string {
	for code, m := range flashes {
		if m == msg {
			return code
		}
	}
	return ""
}

// flashAlerter keeps the last alert so it can be shown after a redirect.
type flashAlerter struct{ msg string }

func (f *flashAlerter) Alert(_ context.Context, msg string) { f.msg = msg }

type Handler struct {
	dash Dashboard
	log  logging.Logger
}

func NewHandler(dash Dashboard, log logging.Logger) *Handler {
	return &Handler{dash: dash, log: log}
}

// RegisterRoutes attaches the dashboard routes to the router.
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.GET("/", h.index)
	router.POST("/token", h.saveToken)
	router.GET("/export", h.export)
	router.POST("/rename", h.rename)
}

func (h *Handler) index(c *gin.Context) {
	st := h.dash.Bootstrap(c.Request.Context())
	h.renderPage(c, st, flashes[c.Query("flash")])
}

func (h *Handler) renderPage(c *gin.Context, st *services.State, flash string) {
	var buf bytes.Buffer
	err := view.RenderPage(&buf, view.Page{
		Token:     st.Token,
		Indicator: st.Indicator,
		Grid:      st.Grid,
		Flash:     flash,
	})
	if err != nil {
		h.log.Error(c.Request.Context(), "rendering page failed", "err", err)
		c.String(http.StatusInternalServerError, "internal error")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// saveToken stores the submitted token and answers with the page derived
// from it.
func (h *Handler) saveToken(c *gin.Context) {
	st, err := h.dash.SaveToken(c.Request.Context(), c.PostForm("token"))
	if err != nil {
		h.log.Error(c.Request.Context(), "saving token failed", "err", err)
		c.String(http.StatusInternalServerError, "could not save token")
		return
	}
	h.renderPage(c, st, "")
}

func (h *Handler) export(c *gin.Context) {
	body, err := h.dash.OpenExport(c.Request.Context())
	if err != nil {
		c.String(http.StatusBadGateway, services.ExportFailedAlert)
		return
	}
	defer body.Close()

	c.DataFromReader(http.StatusOK, -1, "application/zip", body, map[string]string{
		"Content-Disposition": `attachment; filename="` + services.ExportFileName + `"`,
	})
}

func (h *Handler) rename(c *gin.Context) {
	if !h.dash.Variant().CanRename() {
		c.String(http.StatusForbidden, services.ErrRenameNotAllowed.Error())
		return
	}

	name := c.PostForm("name")
	file := models.File{ID: c.PostForm("id"), Ext: c.PostForm("ext")}
	if strings.TrimSpace(name) == "" || file.ID == "" {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	alerts := &flashAlerter{}
	out, err := h.dash.Rename(c.Request.Context(), nil, file, services.Answer(name), alerts)
	if err != nil && out != services.RenameFailed {
		h.log.Warn(c.Request.Context(), "rename not sent", "file", file.Name(), "err", err)
	}

	target := "/"
	if code := flashCode(alerts.msg); code != "" {
		target += "?flash=" + code
	}
	c.Redirect(http.StatusSeeOther, target)
}
