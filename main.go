package main

import "github.com/LegacyCodeHQ/amalgamate/cmd"

func main() {
	cmd.Execute()
}
