package main

import "github.com/okian/oshichecker/cmd/oshictl/cmd"

func main() {
	cmd.Execute()
}
