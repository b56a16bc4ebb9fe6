package loom

import "errors"

// ErrNoNominalSupport is returned by an MFn's Nart when the Engine that
// owns it was constructed with WithNominalSupport(false). A Client
// Program that never intends to use names can opt out so that any stray
// Nart call fails with this error; each memo table still allocates its
// name-keyed map, which then stays empty.
var ErrNoNominalSupport = errors.New("loom: nominal memoization disabled for this engine")
