// Package server runs the sync HTTP server and stops it gracefully when the
// run context is canceled.
package server
