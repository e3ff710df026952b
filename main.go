package main

import (
	"github.com/julien-sobczak/mdwt/cmd"
)

func main() {
	cmd.Execute()
}
