// Command asvm trains and evaluates Augmented SVM classifiers.
//
//	asvm synth --output data.txt
//	asvm train --data data.txt --output model.txt --sigma 0.7 --tclass 0
//	asvm eval  --model model.txt --points probes.txt
//
// Exit codes of train: 0 converged, 1 input or runtime error, 2 iteration
// budget or time limit exhausted (the model is still written), 3 no support
// vectors survived.
package main

import (
	"os"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
