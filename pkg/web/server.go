// Package web serves the triage form as a local web page. Every request gets
// its own controller, so browser tabs never share state.
package web

import (
	"errors"
	"html/template"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/helmcode/logtriage/pkg/controller"
	"github.com/helmcode/logtriage/pkg/formatter"
	"github.com/helmcode/logtriage/pkg/model"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	analyzer controller.Analyzer
}

func NewHandler(analyzer controller.Analyzer) *Handler {
	return &Handler{analyzer: analyzer}
}

// NewRouter wires the page routes.
func NewRouter(analyzer controller.Analyzer) *gin.Engine {
	h := NewHandler(analyzer)

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())
	router.SetHTMLTemplate(template.Must(template.New(pageTemplateName).Parse(pageTemplate)))

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	router.GET("/", h.Index)
	router.POST("/analyze/text", h.AnalyzeText)
	router.POST("/analyze/file", h.AnalyzeFile)

	return router
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.WithFields(log.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
		}).Info("request")
	}
}

func (h *Handler) Index(c *gin.Context) {
	h.render(c, controller.New(h.analyzer, nil))
}

func (h *Handler) AnalyzeText(c *gin.Context) {
	ctrl := controller.New(h.analyzer, nil)
	ctrl.SetLogText(c.PostForm("logContent"))

	if err := ctrl.AnalyzeByText(c.Request.Context()); err != nil && !errors.Is(err, controller.ErrDisabled) {
		log.WithError(err).Error("text analysis failed")
	}
	h.render(c, ctrl)
}

func (h *Handler) AnalyzeFile(c *gin.Context) {
	ctrl := controller.New(h.analyzer, nil)
	ctrl.SetLogText(c.PostForm("logContent"))

	if fh, err := c.FormFile("file"); err == nil {
		ctrl.SelectFile(&model.FileHandle{
			Name: fh.Filename,
			Size: fh.Size,
			Open: func() (io.ReadCloser, error) {
				f, err := fh.Open()
				if err != nil {
					return nil, err
				}
				return f, nil
			},
		})
	}

	if err := ctrl.AnalyzeByFile(c.Request.Context()); err != nil && !errors.Is(err, controller.ErrDisabled) {
		log.WithError(err).Error("file analysis failed")
	}
	h.render(c, ctrl)
}

func (h *Handler) render(c *gin.Context, ctrl *controller.Controller) {
	c.HTML(http.StatusOK, pageTemplateName, newPageData(ctrl))
}

type pageData struct {
	MaxChars   int
	Accept     string
	LogContent string
	FileName   string
	CanClear   bool
	Error      string

	Result     *model.AnalyzeResponse
	Badge      string
	Panels     formatter.Visibility
	Telemetry  formatter.Telemetry
	GrepText   string
	TicketText string
}

func newPageData(ctrl *controller.Controller) pageData {
	d := pageData{
		MaxChars:   model.MaxLogChars,
		Accept:     strings.Join(model.AcceptedExtensions, ","),
		LogContent: ctrl.LogContent(),
		CanClear:   ctrl.CanClearText(),
		Error:      ctrl.Error(),
	}
	if f := ctrl.File(); f != nil {
		d.FileName = f.Name
	}

	r := ctrl.Result()
	if r == nil {
		return d
	}
	d.Result = r
	d.Badge = formatter.BadgeClass(r.Severity)
	d.Panels = formatter.Panels(r)
	d.Telemetry = formatter.TelemetryValues(r)
	d.GrepText = formatter.GrepCopyText(r)
	d.TicketText = formatter.TicketCopyText(r)
	return d
}
