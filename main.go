package main

import "github.com/civiclens/civiclens/cmd"

func main() {
	cmd.Execute()
}
