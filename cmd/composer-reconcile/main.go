package main

import "composer-reconcile/internal/cli"

func main() {
	cli.Execute()
}
