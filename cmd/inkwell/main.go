// Command inkwell runs an editor over a props file.
package main

func main() {
	Execute()
}
