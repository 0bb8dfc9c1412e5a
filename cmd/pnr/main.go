package main

import "github.com/OpenTraceLab/OpenTracePNR/cmd/pnr/cmd"

func main() {
	cmd.Execute()
}
