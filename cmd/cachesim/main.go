package main

import (
	"github.com/tebeka/atexit"
)

func main() {
	Execute()
	atexit.Exit(0)
}
