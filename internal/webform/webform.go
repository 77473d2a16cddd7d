// Package webform serves the browser form that queries the consulta API.
//
// The form is a static page embedded in the binary: a CUIT input, a result
// panel, and a client-side PDF export of that panel (screenshot → image →
// PDF, performed entirely in the browser). The only dynamic piece is
// /config.js, which tells the page where the API lives so the form can run
// on a different origin than the backend.
package webform

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed static
var staticFS embed.FS

// RegisterRoutes mounts the form assets and the /config.js endpoint on the
// given engine. apiBase is the absolute base URL of the consulta API, e.g.
// "http://localhost:5000".
func RegisterRoutes(r *gin.Engine, apiBase string) error {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		return err
	}

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// The page loads this before app.js; JSON-encoding the value keeps any
	// configured URL from breaking out of the string literal.
	configJS := buildConfigJS(apiBase)
	r.GET("/config.js", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/javascript; charset=utf-8", configJS)
	})

	fileServer := http.FileServer(http.FS(sub))
	r.NoRoute(func(c *gin.Context) {
		// Unknown paths fall back to the form itself.
		if _, err := fs.Stat(sub, trimLeadingSlash(c.Request.URL.Path)); err != nil {
			c.Request.URL.Path = "/"
		}
		fileServer.ServeHTTP(c.Writer, c.Request)
	})

	return nil
}

func buildConfigJS(apiBase string) []byte {
	quoted, _ := json.Marshal(apiBase)
	return []byte(fmt.Sprintf("window.PADRON_API = %s;\n", quoted))
}

func trimLeadingSlash(p string) string {
	if len(p) > 0 && p[0] == '/' {
		return p[1:]
	}
	return p
}
