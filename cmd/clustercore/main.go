// Command clustercore drives the cluster/transport core from a TOML
// configuration file, in the teacher's cmd/inmap/main.go idiom: a thin
// main that hands off to a cobra Root command and reports failures
// with a plain exit code.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := Root.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
