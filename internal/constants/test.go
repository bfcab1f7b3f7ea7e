package constants

import "time"

// Test Constants
//
// IMPORTANT: These constants are for testing only. DO NOT use in production code.

const (
	// TestPipeTimeout bounds reads from in-memory test connections.
	TestPipeTimeout = 2 * time.Second

	// TestBuild is the wire build used by protocol fixtures (3.3.5a).
	TestBuild = 12340

	// TestLegacyBuild is a build that still uses the rolling header cipher (2.4.3).
	TestLegacyBuild = 8606
)
