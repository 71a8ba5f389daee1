/*
Copyright © 2023 NAME HERE <EMAIL ADDRESS>
*/
package main

import "scireview/cmd"

func main() {
	cmd.Execute()
}
