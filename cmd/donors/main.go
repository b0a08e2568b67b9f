package main

import (
	"fmt"
	"os"
)

func main() {
	cmd := CreateCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		os.Exit(1)
	}
}
