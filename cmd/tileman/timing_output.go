package main

import (
	"fmt"
	"io"

	"tileman/internal/driver"
	"tileman/internal/observ"
)

func printTimings(out io.Writer, timer *observ.Timer, res *driver.Result) {
	if out == nil || timer == nil {
		return
	}
	fmt.Fprint(out, timer.Summary())
	if res != nil && res.Cached {
		fmt.Fprintf(out, "cache hit %s\n", res.Key.String()[:12])
	}
}
