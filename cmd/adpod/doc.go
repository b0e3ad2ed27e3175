// Package main hosts the adpod CLI entrypoint and command graph.
//
// The Cobra-based command tree turns terminal invocations into CPL
// inspection, compatibility validation, pod creation, and package
// maintenance operations. It centralizes configuration resolution and
// database access so subcommands can focus on user experience instead of
// wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
