package ownership

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
)

var (
	// ErrUseAfterTransfer reports access to a value whose ownership was already relinquished.
	ErrUseAfterTransfer = errors.New("use of transferred value")
	// ErrEmpty reports access to a handle that never held a value.
	ErrEmpty = errors.New("ownership: handle holds no value")
	// ErrReleased reports access to a shared value after its last reference was released.
	ErrReleased = errors.New("ownership: shared value released")
)

// Site identifies a source location that touched a handle.
type Site struct {
	Function string
	File     string
	Line     int
}

func (s Site) String() string {
	if s.File == "" {
		return "unknown"
	}
	loc := fmt.Sprintf("%s:%d", filepath.Base(s.File), s.Line)
	if s.Function == "" {
		return loc
	}
	return loc + " (" + s.Function + ")"
}

// callerSite returns the site skip frames above the function calling it.
func callerSite(skip int) Site {
	pc, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return Site{}
	}
	site := Site{File: file, Line: line}
	if fn := runtime.FuncForPC(pc); fn != nil {
		site.Function = fn.Name()
	}
	return site
}

// TransferError describes a rejected use of a value after its ownership moved.
// It lists the first transfer and every rejected reuse observed so far.
type TransferError struct {
	Transferred Site
	Reuses      []Site
}

func (e *TransferError) Error() string {
	reuses := make([]string, len(e.Reuses))
	for i, site := range e.Reuses {
		reuses[i] = site.String()
	}
	return fmt.Sprintf("%s: ownership transferred at %s; used again at %s",
		ErrUseAfterTransfer, e.Transferred, strings.Join(reuses, ", "))
}

func (e *TransferError) Unwrap() error { return ErrUseAfterTransfer }
