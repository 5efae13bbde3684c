package main

import (
	"github.com/byxorna/wrench/cmd"
)

func main() {
	cmd.Execute()
}
