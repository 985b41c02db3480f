package main

import (
	"log"

	"github.com/jengzang/crime-analytics-go/internal/cli"
)

var version = "dev"

func main() {
	if err := cli.Run(version); err != nil {
		log.Fatal(err)
	}
}
