package main

import (
	"os"

	"github.com/variphi/kbseed/internal/kb/datasets"
	"github.com/variphi/kbseed/internal/seedcli"
)

func main() {
	os.Exit(seedcli.Run(datasets.Company()))
}
