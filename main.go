package main

import "github.com/ValentinKolb/mapbench/cmd"

func main() {
	cmd.Execute()
}
