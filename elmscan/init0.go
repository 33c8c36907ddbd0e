package main

import "github.com/p7r0x7/hortex/internal/console"

func init() { pNoCodesDefault = !console.ANSI() }
