// Package main is the entry point for the cpt CLI client.
package main

import (
	"github.com/donaldgifford/cart-price-tracker/cmd/cpt/cmd"
)

func main() {
	cmd.Execute()
}
