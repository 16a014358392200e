package main

import (
	"log"

	"github.com/jobfit/jobfit/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
