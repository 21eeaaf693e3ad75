// Package handler implements the HTTP surface of the nodework editor.
//
// The browser forwards every raw UI event as a JSON action to
// POST /api/actions and redraws from the render tree in the reply, or from
// the model_updated events streamed on /events.
//
// # Endpoints
//
//	POST /api/actions      apply one editor action
//	GET  /api/model        current render tree and output
//	GET  /api/library      spawnable node definitions
//	POST /api/save         persist the editor state
//	POST /api/load         restore the last saved state
//	GET  /api/export/yaml  graph as YAML
//	GET  /api/export/json  persisted document as JSON
//	POST /api/import/yaml  replace the graph from YAML
//	GET  /events           Server-Sent Events stream
//	GET  /metrics          Prometheus metrics
//
// # Response Format
//
// Success responses return JSON data. Error responses return JSON with an
// {error, details} structure and a 4xx or 5xx status.
package handler
