/*
Copyright © 2023 canopus
*/
package main

import "github.com/canopus/chalcreator/cmd"

func main() {
	cmd.Execute()
}
