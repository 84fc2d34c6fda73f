package main

import "github.com/relink/relink/cmd/relink"

func main() { relink.Execute() }
