package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fadedpez/eldorado/pkg/catalog"
	"github.com/fadedpez/eldorado/pkg/entities"
)

// catalog-lint loads a catalog file and reports validation problems before
// the file is shipped to the bot.
func main() {
	path := flag.String("catalog", "catalog.json", "path to the catalog file")
	flag.Parse()

	cat, err := catalog.LoadFromFile(*path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "catalog-lint: %v\n", err)
		os.Exit(1)
	}

	counts := make(map[entities.ItemType]int)
	for _, item := range cat.Items() {
		counts[item.Type]++
	}

	fmt.Printf("%s: %d items OK\n", *path, cat.Len())
	for _, t := range entities.ItemTypes {
		fmt.Printf("  %-8s %d\n", t, counts[t])
	}
}
