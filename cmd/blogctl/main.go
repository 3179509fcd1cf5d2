package main

import (
	"github.com/TatsianaKryshtofik/Test-project/cmd/blogctl/commands"
	"github.com/TatsianaKryshtofik/Test-project/internal/media/vips"
)

func main() {
	commands.Execute(vips.Measurer{})
}
