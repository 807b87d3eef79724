// Command clockview views, renders and inspects analog clock faces.
package main

import "github.com/OpenTraceLab/OpenClockView/cmd/clockview/cmd"

func main() {
	cmd.Execute()
}
