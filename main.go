package main

import "github.com/jsphweid/timegrid/cmd"

func main() {
	cmd.Execute()
}
