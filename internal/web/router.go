package web

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the embedded HTML pages.
func Templates() (*template.Template, error) {
	return template.New("").ParseFS(templateFS, "templates/*.html")
}

// NewRouter wires every endpoint onto a gin engine.
func NewRouter(h *Handler, gatherer prometheus.Gatherer) (*gin.Engine, error) {
	tmpl, err := Templates()
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(gin.Recovery(), RequestLoggingMiddleware())
	router.SetHTMLTemplate(tmpl)

	router.GET("/", h.ShowForm)
	router.POST("/assessments", h.SubmitForm)

	api := router.Group("/api")
	{
		api.GET("/questionnaire", h.ServeQuestionnaire)
		api.POST("/assessments", h.SubmitJSON)
	}

	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	return router, nil
}
