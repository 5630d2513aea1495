package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Header("Content-Type", "application/json")
		c.String(http.StatusOK, swaggerJSON)
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>dutymanager — Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

// Minimal OpenAPI document describing the persistence endpoints.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "dutymanager-backend", "version": "v0.1.0" },
  "paths": {
    "/api/health": {
      "get": { "summary": "Service liveness plus whether a document exists", "responses": { "200": { "description": "status, timestamp, data_file_exists" } } }
    },
    "/api/save": {
      "post": {
        "summary": "Replace the stored application-state document",
        "requestBody": { "content": { "application/json": { "schema": {"type":"object"} } } },
        "responses": { "200": { "description": "saved; success, message, timestamp" }, "400": { "description": "missing or empty body" }, "500": { "description": "storage write failure" } }
      }
    },
    "/api/load": {
      "get": { "summary": "Fetch the stored document (empty object before first save)", "responses": { "200": { "description": "the document" }, "500": { "description": "read or parse failure" } } }
    },
    "/api/export": {
      "get": { "summary": "Same contract as /api/load, for download flows", "responses": { "200": { "description": "the document" }, "500": { "description": "read or parse failure" } } }
    },
    "/api/backups": {
      "get": { "summary": "List backup snapshots, newest first", "responses": { "200": { "description": "name, size, createdAt per snapshot" } } }
    },
    "/api/history": {
      "get": { "summary": "Recent save-audit records (empty when audit trail disabled)", "responses": { "200": { "description": "audit records" } } }
    }
  }
}`
