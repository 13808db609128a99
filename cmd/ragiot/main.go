package main

import "github.com/rodrigotabsan/RAGIoT/internal/cli"

func main() {
	cli.Execute()
}
