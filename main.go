package main

import "github.com/varalys/digitfactor/cmd/digitfactor"

func main() { digitfactor.Execute() }
