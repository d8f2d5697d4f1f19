package main

import "jirafill/cmd"

func main() {
	cmd.Execute()
}
