/*
Copyright © 2023 NAME HERE <EMAIL ADDRESS>
*/
package main

import "voteapp/cmd"

func main() {
	cmd.Execute()
}
