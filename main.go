// Command gorule lints Go source files.
package main

import "github.com/mouse-blink/gorule/cmd"

func main() {
	cmd.Execute()
}
