//go:build !avr

// Command treesim runs the tree firmware against simulated hardware.
package main

func main() {
	Execute()
}
