// Package main hosts the subtrans CLI entrypoint and command graph.
//
// The Cobra-based command tree exposes the two pipelines (transcribe audio to
// SRT, translate SRT from English to Korean) together with helpers for
// listing models, checking endpoints and local dependencies, and scaffolding
// configuration. Only result documents and tables go to stdout; logs and
// diagnostics go to stderr.
package main
