package main

import (
	"github.com/miniquantum/go-mqa/pkg/cmd"
)

func main() {
	cmd.Execute()
}
