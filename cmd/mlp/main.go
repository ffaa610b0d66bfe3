// Package main provides the mlp command line tool.
//
// Usage:
//
//	mlp train -config xor.yaml [-log-every 1000]
//	mlp predict -config xor.yaml -weights xor.mlpw [-cases other.txt]
//	mlp export -config xor.yaml -weights xor.mlpw [-o weights.txt]
//	mlp version
package main

import (
	"fmt"
	"log"
	"os"
)

const version = "v0.1.0"

func main() {
	log.SetFlags(0)
	log.SetPrefix("mlp: ")

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "train":
		err = runTrain(os.Args[2:])
	case "predict":
		err = runPredict(os.Args[2:])
	case "export":
		err = runExport(os.Args[2:])
	case "version":
		fmt.Printf("mlp %s\n", version)
	case "help", "-h", "--help":
		usage()
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func usage() {
	fmt.Println("mlp - four-layer perceptron trainer")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  train      Train a network from a config file")
	fmt.Println("  predict    Run saved weights over a case file")
	fmt.Println("  export     Write saved weights as plain text")
	fmt.Println("  version    Show version")
}
