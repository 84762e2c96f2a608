package main

import "github.com/frahmantamala/jobcard-management/cmd"

func main() {
	cmd.Execute()
}
