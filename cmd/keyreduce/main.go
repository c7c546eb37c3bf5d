// Command keyreduce converts sampled animation curves to keyframes in a
// target interpolation and removes redundant keys.
//
// Usage:
//
//	keyreduce reduce --mode linear --tolerance 0.001 walk.yaml
//	keyreduce reduce -c keyreduce.toml --out walk_reduced.yaml walk.yaml
//	keyreduce reduce --key-size 20 --raw-dir out/ walk.yaml   # raw editor records
//	keyreduce wav --stride 64 --mode smooth -t 0.01 envelope.wav
//	keyreduce layouts
//
// Configuration is read from a TOML file with [reduce] and [logging]
// sections; flags override file values.
package main

import (
	"fmt"
	"os"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
