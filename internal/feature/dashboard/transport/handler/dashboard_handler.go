// Package handler serves the dashboard page and its htmx event endpoint.
package handler

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"

	companyentity "stock_dashboard/internal/feature/company/domain/entity"
	"stock_dashboard/internal/feature/dashboard/domain/entity"
	"stock_dashboard/internal/feature/dashboard/usecase"
	"stock_dashboard/internal/platform/http/response"
	"stock_dashboard/internal/shared/chart"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// RetargetHeader はhtmxに書き込み先の領域を伝えるヘッダーです。
const RetargetHeader = "HX-Retarget"

type Dispatcher interface {
	Dispatch(ctx context.Context, event string, in entity.Inputs) (entity.Outcome, error)
}

// FigureRenderer はFigureを単体のHTMLドキュメントへ変換します。
type FigureRenderer interface {
	RenderString(f chart.Figure) (string, error)
}

// SymbolLister はウォッチリストの銘柄コードを返します。
type SymbolLister interface {
	ListActiveCodes(ctx context.Context) ([]string, error)
}

type DashboardHandler struct {
	dispatcher Dispatcher
	renderer   FigureRenderer
	symbols    SymbolLister
	now        func() time.Time
}

// NewDashboardHandler は新しい DashboardHandler を作成します。symbolsはnilでも構いません。
func NewDashboardHandler(d Dispatcher, r FigureRenderer, symbols SymbolLister) *DashboardHandler {
	return &DashboardHandler{dispatcher: d, renderer: r, symbols: symbols, now: time.Now}
}

type indexData struct {
	entity.Layout
	Company *companyentity.Profile
}

type chartData struct {
	Title string
	HTML  string
}

// Index はダッシュボード画面を返します。
func (h *DashboardHandler) Index(c *gin.Context) {
	var codes []string
	if h.symbols != nil {
		var err error
		codes, err = h.symbols.ListActiveCodes(c.Request.Context())
		if err != nil {
			slog.Warn("failed to load watchlist", "error", err)
		}
	}
	layout := usecase.BuildLayout(h.now(), codes)
	h.html(c, http.StatusOK, "index", indexData{Layout: layout})
}

// Event は POST /events/:event を処理します。
// スキップ時は204を返し、htmxは領域を変更しません。
// htmxは4xx/5xxを差し替えないため、上流や描画の失敗も200でエラー断片を返します。
func (h *DashboardHandler) Event(c *gin.Context) {
	event := c.Param("event")
	if err := c.Request.ParseForm(); err != nil {
		c.String(http.StatusBadRequest, "invalid form")
		return
	}
	in := make(entity.Inputs, len(c.Request.PostForm))
	for key := range c.Request.PostForm {
		in[key] = c.Request.PostForm.Get(key)
	}

	out, err := h.dispatcher.Dispatch(c.Request.Context(), event, in)
	if errors.Is(err, usecase.ErrUnknownEvent) {
		c.String(http.StatusNotFound, err.Error())
		return
	}
	if out.Target != "" {
		c.Header(RetargetHeader, "#"+string(out.Target))
	}
	if err != nil {
		slog.Error("dashboard event failed", "event", event, "error", err)
		h.html(c, http.StatusOK, "error", response.Message(err))
		return
	}

	switch {
	case out.Skipped:
		c.Status(http.StatusNoContent)
	case out.Message != "":
		h.html(c, http.StatusOK, "message", out.Message)
	case out.Company != nil:
		h.html(c, http.StatusOK, "company", out.Company)
	case out.Figure != nil:
		doc, err := h.renderer.RenderString(*out.Figure)
		if err != nil {
			slog.Error("chart render failed", "event", event, "error", err)
			h.html(c, http.StatusOK, "error", "failed to render chart")
			return
		}
		h.html(c, http.StatusOK, "chart", chartData{Title: out.Figure.Title, HTML: doc})
	default:
		c.Status(http.StatusNoContent)
	}
}

func (h *DashboardHandler) html(c *gin.Context, status int, name string, data any) {
	c.Render(status, render.HTML{Template: templates, Name: name, Data: data})
}
