package main

import (
	"github.com/datalake-tools/aws-role/cmd"
)

func main() {
	cmd.Execute()
}
