package main

import "leetcoach/cmd/leetcoach/cmd"

func main() {
	cmd.Execute()
}
