package commands

// BranchVersion exports branchVersion for testing.
var BranchVersion = branchVersion //nolint:gochecknoglobals // test export
