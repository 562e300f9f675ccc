// Package api holds the JSON request and response shapes of the HTTP API.
package api

// Renderer turns a stored Markdown message into safe HTML.
type Renderer interface {
	Render(message string) string
}
