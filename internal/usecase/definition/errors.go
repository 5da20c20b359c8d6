package definition

import "errors"

// ErrRunInProgress is returned when an update run is requested while
// another run is still executing in the same process.
var ErrRunInProgress = errors.New("definition update already in progress")
