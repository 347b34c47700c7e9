package handlers

import (
	_ "embed"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// OpenAPIPath is where the embedded document is served; the docs page loads it from there.
const OpenAPIPath = "/docs/openapi.yaml"

//go:embed openapi.yaml
var openAPISpec []byte

// persistAuthorization keeps the bearer token across page reloads.
var swaggerUIPage = []byte(strings.ReplaceAll(`<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width,initial-scale=1" />
  <title>TaskHub API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({
      url: "{{spec}}",
      dom_id: "#swagger-ui",
      persistAuthorization: true,
      displayRequestDuration: true,
      defaultModelsExpandDepth: 0
    });
  </script>
</body>
</html>`, "{{spec}}", OpenAPIPath))

func SwaggerUI(ctx *gin.Context) {
	ctx.Data(http.StatusOK, "text/html; charset=utf-8", swaggerUIPage)
}

func OpenAPISpec(ctx *gin.Context) {
	ctx.Header("Cache-Control", "no-cache")
	ctx.Data(http.StatusOK, "application/yaml; charset=utf-8", openAPISpec)
}
