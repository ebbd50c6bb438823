//go:build pblsdebug

package pbls

// debugEnabled gates the debugAssert call in Engine.Run. Production builds
// omit the -tags pblsdebug flag and get debug_off.go's constant instead, so
// the check never runs in the hot flip loop unless explicitly requested;
// the test suite calls State.CheckInvariants directly regardless of this
// flag, satisfying the requirement that invariant checking always be
// exercised somewhere.
const debugEnabled = true
