package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/delaneyj/cellgraph/pushpull"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v3"
)

const (
	profileKey = "profile"
	itersKey   = "iters"
	widthsKey  = "widths"
	heightsKey = "heights"
)

func main() {
	cmd := &cli.Command{
		Name:  "benchmark",
		Usage: "Measure write propagation through chains of computed signals",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  profileKey,
				Usage: "Write a CPU profile to this file, empty to disable",
				Value: "default.pgo",
			},
			&cli.IntFlag{
				Name:  itersKey,
				Usage: "Writes measured per graph shape",
				Value: 100,
			},
			&cli.IntSliceFlag{
				Name:  widthsKey,
				Usage: "Number of independent chains hanging off the source",
				Value: []int64{1, 10, 100, 1_000},
			},
			&cli.IntSliceFlag{
				Name:  heightsKey,
				Usage: "Number of computed signals in each chain",
				Value: []int64{1, 10, 100, 1_000},
			},
		},
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	if path := cmd.String(profileKey); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return err
		}
		defer pprof.StopCPUProfile()
	}

	log.Printf("warming up")
	cfg := propagateConfig{
		widths:  cmd.IntSlice(widthsKey),
		heights: cmd.IntSlice(heightsKey),
		iters:   int(cmd.Int(itersKey)),
	}
	if cfg.iters <= 0 {
		return fmt.Errorf("%s must be positive", itersKey)
	}
	if err := benchmarkPropagate(cfg, false); err != nil {
		return err
	}
	return benchmarkPropagate(cfg, true)
}

type propagateConfig struct {
	widths, heights []int64
	iters           int
}

func addOne(v int) int {
	return v + 1
}

func benchmarkPropagate(cfg propagateConfig, shouldRender bool) error {
	tbl := table.NewWriter()
	tbl.SetTitle("Push-pull signals")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max", "evaluations", "runs"})

	for _, w := range cfg.widths {
		for _, h := range cfg.heights {
			tach := tachymeter.New(&tachymeter.Config{Size: cfg.iters})

			var failure error
			e := pushpull.New(pushpull.WithErrorHandler(func(from pushpull.Node, err error) {
				failure = fmt.Errorf("%s: %w", from.Label(), err)
			}))
			src := pushpull.Signal(e, 1)
			for i := int64(0); i < w; i++ {
				var last pushpull.Readable[int] = src
				for j := int64(0); j < h; j++ {
					last = pushpull.Derive1(e, last, addOne)
				}
				pushpull.Watch1(e, last, func(int) error {
					return nil
				})
			}

			before := e.Stats()
			for i := 0; i < cfg.iters; i++ {
				start := time.Now()
				src.Update(addOne)
				tach.AddTime(time.Since(start))
			}
			if failure != nil {
				return failure
			}
			after := e.Stats()

			calc := tach.Calc()
			tbl.AppendRow(table.Row{
				fmt.Sprintf("propagate: %d * %d", w, h),
				calc.Time.Avg,
				calc.Time.Min,
				calc.Time.P75,
				calc.Time.P99,
				calc.Time.Max,
				after.Evaluations - before.Evaluations,
				after.ReactionRuns - before.ReactionRuns,
			})
		}
	}

	if shouldRender {
		tbl.Render()
	}
	return nil
}
