package ui

import "fmt"

// Logo is the title art shown above the repository menu
const Logo = `   _____ _ _   _____ _ _       _
  / ____(_) | |  __ (_) |     | |
 | |  __ _| |_| |__) || | ___ | |_
 | | |_ | | __|  ___/ | |/ _ \| __|
 | |__| | | |_| |   | | | (_) | |_
  \_____|_|\__|_|   |_|_|\___/ \__|
`

// clearSequence moves the cursor home and erases the screen
const clearSequence = "\x1b[H\x1b[2J"

// Clear erases the terminal
func (c *Console) Clear() {
	fmt.Fprint(c.Out, clearSequence)
}

// Banner clears the terminal and prints the logo and a description line
func (c *Console) Banner(art, description string) {
	c.Clear()
	Title.Fprintln(c.Out, art)
	Warning.Fprintf(c.Out, "%s\n\n", description)
}
