package ui

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"strings"

	"cogdash/domain/survey"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templateFiles embed.FS

func parseTemplates() (*template.Template, error) {
	funcMap := template.FuncMap{
		"add":           func(a, b int) int { return a + b },
		"categoryColor": func(d survey.Difficulty) string { return CategoryColors[d] },
	}
	return template.New("").Funcs(funcMap).ParseFS(templateFiles, "templates/*.html")
}

// renderTemplate executes a template into a buffer first so a failed render
// never leaves a half-written page behind
func (s *Server) renderTemplate(c *gin.Context, status int, templateName string, data interface{}) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, templateName, data); err != nil {
		s.log.Error("Template error for %s: %v (data %T)", templateName, err, data)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Template rendering failed", "details": err.Error()})
		return
	}

	if !strings.Contains(buf.String(), "</html>") {
		s.log.Warn("Rendered template %s appears truncated: missing </html> tag", templateName)
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(status)
	if _, err := buf.WriteTo(c.Writer); err != nil {
		s.log.Error("Error writing template response: %v", err)
	}
}
