/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import (
	"github.com/caretext/rope/cmd/caretext/cmd"
)

func main() {
	cmd.Execute()
}
