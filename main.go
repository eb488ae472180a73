package main

import "jobguardian/internal/cli"

func main() {
	cli.Execute()
}
