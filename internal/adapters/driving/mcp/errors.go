// Package mcp provides an MCP (Model Context Protocol) server adapter
// for Permscope. It lets AI assistants search the permission catalog
// programmatically.
package mcp

import "errors"

// ErrMissingSession is returned when no search session is provided.
var ErrMissingSession = errors.New("mcp: search session is required")
