// Package testdoubles provides spies and scripted collaborators for testing
// code built on the provider engine: logger and metrics spies, a recording
// write-back handler, and readers that fail or block on demand.
package testdoubles
