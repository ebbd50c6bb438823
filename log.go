package pbls

import "go.uber.org/zap"

// nopLogger is used whenever a Config is built without an explicit logger,
// so that the core package never forces output on a caller, in the manner
// of gating solver-internal printing behind an opt-in verbose flag (as
// gophersat's solver.Solve ticker goroutine does).
func nopLogger() *zap.Logger { return zap.NewNop() }
