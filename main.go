package main

import "github.com/chrisdamba/parcelperf/cmd"

func main() {
	cmd.Execute()
}
