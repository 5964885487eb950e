package main

import (
	"os"

	"github.com/fotiotech/novaorizon-seller-sub000/cmd/novaorizon/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
