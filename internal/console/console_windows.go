package console

import (
	. "golang.org/x/sys/windows"
	"os"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

func enable() bool {
	for _, f := range [2]*os.File{os.Stdout, os.Stderr} {
		var mode uint32
		h := Handle(f.Fd())
		if GetConsoleMode(h, &mode) != nil {
			return false
		}
		if mode&ENABLE_VIRTUAL_TERMINAL_PROCESSING == 0 &&
			SetConsoleMode(h, mode|ENABLE_VIRTUAL_TERMINAL_PROCESSING) != nil {
			return false
		}
	}
	return true
}
