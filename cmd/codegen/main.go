package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/delaneyj/cellgraph/cmd/codegen/templates"
	"github.com/urfave/cli/v3"
)

const (
	genericParamCountKey = "count"
	outputKey            = "out"
)

func main() {
	cmd := &cli.Command{
		Name:  "generate",
		Usage: "Generate the fixed arity Derive and Watch helpers",
		Flags: []cli.Flag{
			&cli.UintFlag{
				Name:  genericParamCountKey,
				Usage: "Number of generic parameters to generate",
				Value: 4,
			},
			&cli.StringFlag{
				Name:  outputKey,
				Usage: "File to write",
				Value: "pushpull/derive_gen.go",
			},
		},
		Action: generate,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func generate(ctx context.Context, cmd *cli.Command) error {
	start := time.Now()
	log.Printf("Codegen for pushpull started !")
	defer func() {
		log.Printf("Codegen for pushpull finished in %v", time.Since(start))
	}()

	genericParamCount := cmd.Uint(genericParamCountKey)
	if genericParamCount == 0 {
		return fmt.Errorf("%s must be at least 1", genericParamCountKey)
	}

	contents := templates.DeriveGen(int(genericParamCount))
	return os.WriteFile(cmd.String(outputKey), []byte(contents), 0644)
}
