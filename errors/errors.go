package errors

import "fmt"

var (
	ErrWorkerPanic         = fmt.Errorf("worker panic")
	ErrInvalidPayload      = fmt.Errorf("invalid payload")
	ErrUnknownEvent        = fmt.Errorf("unknown event type")
	ErrUnknownCommand      = fmt.Errorf("unknown command")
	ErrMissingOption       = fmt.Errorf("missing command option")
	ErrLoopStopped         = fmt.Errorf("event loop stopped")
	ErrInvalidStoreBackend = fmt.Errorf("invalid store backend")
)
