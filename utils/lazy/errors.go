package lazy

import "errors"

// ErrNoThunk is returned by Force on a Value that was built without a thunk.
var ErrNoThunk = errors.New("lazy: value has no thunk")
