package main

import "github.com/kailas-cloud/semdex/internal/cli"

func main() {
	cli.Execute()
}
