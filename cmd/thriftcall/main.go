package main

import (
	"os"

	"github.com/thriftcall/thriftcall/cmd"
)

func main() {
	cmd.Run(os.Args[1:])
}
