/*
Copyright © 2025 The wireframe authors
*/
package main

import "github.com/Dheerajdoppalapudi/design-generator-sub000/cmd"

func main() {
	cmd.Execute()
}
