package main

import "jobmirror/cmd/jobmirror/cmd"

func main() {
	cmd.Execute()
}
