// Package main is the entry point for the cart-price-tracker server.
package main

import (
	"os"

	"github.com/donaldgifford/cart-price-tracker/cmd/cart-price-tracker/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
