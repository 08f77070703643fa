package recipebuilder

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/davecgh/go-spew/spew"
)

// Dump pretty-prints v to stdout prefixed with the caller's location.
func Dump(v ...any) {
	_, file, line, _ := runtime.Caller(1)
	Fdump(os.Stdout, append([]any{fmt.Sprintf("%s:%d:", file, line)}, v...)...)
}

// Fdump pretty-prints v to w.
func Fdump(w io.Writer, v ...any) {
	cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, SortKeys: true}
	cfg.Fdump(w, v...)
}
