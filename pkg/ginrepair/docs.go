package ginrepair

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SwaggerUIConfig holds configuration for Swagger UI
type SwaggerUIConfig struct {
	// OpenAPIURL is the URL to the OpenAPI spec JSON
	OpenAPIURL string
	// Title is the HTML page title
	Title string
	// SwaggerJSURL is the URL to Swagger UI JavaScript bundle
	SwaggerJSURL string
	// SwaggerCSSURL is the URL to Swagger UI CSS
	SwaggerCSSURL string
}

// DefaultSwaggerUIConfig returns default Swagger UI configuration
func DefaultSwaggerUIConfig(openAPIURL string) SwaggerUIConfig {
	return SwaggerUIConfig{
		OpenAPIURL:    openAPIURL,
		Title:         "jsonrepair API",
		SwaggerJSURL:  "https://cdn.jsdelivr.net/npm/swagger-ui-dist@5/swagger-ui-bundle.js",
		SwaggerCSSURL: "https://cdn.jsdelivr.net/npm/swagger-ui-dist@5/swagger-ui.css",
	}
}

var swaggerPage = template.Must(template.New("swagger").Parse(`<!DOCTYPE html>
<html>
<head>
    <link type="text/css" rel="stylesheet" href="{{.SwaggerCSSURL}}">
    <title>{{.Title}}</title>
</head>
<body>
<div id="swagger-ui"></div>
<script src="{{.SwaggerJSURL}}"></script>
<script>
SwaggerUIBundle({
    url: {{.OpenAPIURL}},
    dom_id: '#swagger-ui',
    deepLinking: true,
})
</script>
</body>
</html>`))

// SwaggerUI returns a Gin handler that serves Swagger UI
//
// Example:
//
//	router.GET("/docs", ginrepair.SwaggerUI("/openapi.json"))
func SwaggerUI(openAPIURL string) gin.HandlerFunc {
	return SwaggerUIWithConfig(DefaultSwaggerUIConfig(openAPIURL))
}

// SwaggerUIWithConfig returns a Gin handler that serves Swagger UI with custom configuration
func SwaggerUIWithConfig(config SwaggerUIConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.Status(http.StatusOK)
		if err := swaggerPage.Execute(c.Writer, config); err != nil {
			_ = c.Error(err)
		}
	}
}
