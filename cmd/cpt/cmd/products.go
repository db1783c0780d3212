package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func productsCmd() *cobra.Command {
	productsRoot := &cobra.Command{
		Use:   "products",
		Short: "Inspect tracked products",
	}

	productsRoot.AddCommand(
		productsListCmd(),
		productsGetCmd(),
		productsDeleteCmd(),
	)

	return productsRoot
}

func productsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tracked products",
		Example: `  cpt products list
  cpt products list --output json`,
		RunE: func(_ *cobra.Command, _ []string) error {
			c := newClient()
			products, err := c.ListProducts(context.Background())
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(products)
			}
			if len(products) == 0 {
				fmt.Println("No products tracked.")
				return nil
			}
			return printProductTable(products)
		},
	}
}

func productsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <product-id>",
		Short: "Show a product's price history",
		Example: `  cpt products get B0TEST01
  cpt products get B0TEST01 --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			c := newClient()
			rec, err := c.GetProduct(context.Background(), args[0])
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(rec)
			}
			return printProductDetail(rec)
		},
	}
}

func productsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <product-id>",
		Short:   "Stop tracking a product",
		Example: `  cpt products delete B0TEST01`,
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			c := newClient()
			if err := c.DeleteProduct(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted %s.\n", args[0])
			return nil
		},
	}
}
