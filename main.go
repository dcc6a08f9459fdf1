package main

import (
	"log"

	"github.com/flightobs/flightwatch/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
