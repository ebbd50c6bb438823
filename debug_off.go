//go:build !pblsdebug

package pbls

// debugEnabled is false in the default (production) build. See debug_on.go.
const debugEnabled = false
