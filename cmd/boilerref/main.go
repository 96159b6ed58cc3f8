// Package main is the entry point for the boiler reference dashboard.
package main

func main() {
	Execute()
}
