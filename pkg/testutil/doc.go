// Package testutil provides helpers for testing modtext components.
//
// Key components:
//   - Project: an in-memory project tree of rule files and sources
//   - Recorder: an Observer that keeps every event for assertions
//   - AssertFileLines / AssertNoFile: filesystem assertions
//
// Tests should build their inputs inline with a Project instead of reading
// fixture files, so each test stays isolated.
package testutil
