package main

import "github.com/ellavondegurechaff/allowlist/cmd"

func main() {
	cmd.Execute()
}
