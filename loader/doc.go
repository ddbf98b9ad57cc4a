// Package loader initializes the editing engine asynchronously.
//
// Init returns a Pending token immediately; the engine is built on a
// background goroutine and delivered through Wait. Builds are memoized: the
// first successful engine is returned to every later caller, and concurrent
// first calls share one build. Canceling a token detaches only that caller.
//
// A build defines themes and registers snippets from YAML or TOML files and
// runs Lua extension scripts that may do the same.
package loader
