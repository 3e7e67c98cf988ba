package main

import "github.com/LegacyCodeHQ/lessbundle/cmd"

func main() {
	cmd.Execute()
}
