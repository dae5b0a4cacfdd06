package main

import "github.com/Alijeyrad/taadol_backend/cmd"

func main() {
	cmd.Execute()
}
