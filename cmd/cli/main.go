package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/montanaflynn/stats"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"devrand/adapters/backend/soft"
	"devrand/app"
	"devrand/domain/rng"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "devrand",
		Short: "Generate random batches against the software backend",
	}

	rootCmd.AddCommand(
		newUniformCmd(),
		newNormalCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type batchFlags struct {
	engine  string
	seed    uint64
	offset  uint64
	count   int
	parts   int
	asJSON  bool
	summary bool
}

func (f *batchFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.engine, "engine", string(rng.KindPhilox4x32_10), "engine variant: philox4x32-10, xorwow or mrg32k3a")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "seed (0 keeps the engine's default)")
	cmd.Flags().Uint64Var(&f.offset, "offset", 0, "stream offset in elements")
	cmd.Flags().IntVar(&f.count, "count", 10, "number of values to generate")
	cmd.Flags().BoolVar(&f.asJSON, "json", false, "emit a JSON array instead of one value per line")
	cmd.Flags().BoolVar(&f.summary, "summary", false, "append mean/stddev of the batch to stderr")
}

func (f *batchFlags) options() []rng.Option {
	opts := []rng.Option{rng.WithOffset(f.offset)}
	if f.seed != 0 {
		opts = append(opts, rng.WithSeed(f.seed))
	}
	return opts
}

func newUniformCmd() *cobra.Command {
	var flags batchFlags
	cmd := &cobra.Command{
		Use:   "uniform",
		Short: "Generate uniform (0, 1] values",
		RunE: func(cmd *cobra.Command, args []string) error {
			backend := soft.New(zerolog.Nop())
			if flags.parts > 1 {
				seed := flags.seed
				if seed == 0 {
					seed = rng.DefaultSeed(rng.Kind(flags.engine))
				}
				service := app.NewPartitionService(backend, zerolog.Nop())
				out, err := service.UniformFloat64(context.Background(), rng.Kind(flags.engine), seed, flags.count, flags.parts)
				if err != nil {
					return err
				}
				return emit(out, flags)
			}

			g, err := rng.NewGenerator(rng.Kind(flags.engine), backend, flags.options()...)
			if err != nil {
				return err
			}
			defer g.Close()
			out := make([]float64, flags.count)
			if err := rng.NewUniformReal[float64]().Apply(g, out); err != nil {
				return err
			}
			return emit(out, flags)
		},
	}
	flags.register(cmd)
	cmd.Flags().IntVar(&flags.parts, "parts", 1, "generate concurrently across this many disjoint sub-streams")
	return cmd
}

func newNormalCmd() *cobra.Command {
	var flags batchFlags
	var mean, stddev float64
	cmd := &cobra.Command{
		Use:   "normal",
		Short: "Generate normally distributed values",
		RunE: func(cmd *cobra.Command, args []string) error {
			backend := soft.New(zerolog.Nop())
			g, err := rng.NewGenerator(rng.Kind(flags.engine), backend, flags.options()...)
			if err != nil {
				return err
			}
			defer g.Close()

			dist := rng.NewNormalWithParams(rng.NormalParams[float64]{Mean: mean, StdDev: stddev})
			out := make([]float64, flags.count)
			if err := dist.Apply(g, out); err != nil {
				return err
			}
			return emit(out, flags)
		},
	}
	flags.register(cmd)
	cmd.Flags().Float64Var(&mean, "mean", 0, "distribution mean")
	cmd.Flags().Float64Var(&stddev, "stddev", 1, "distribution standard deviation")
	return cmd
}

func emit(out []float64, flags batchFlags) error {
	if flags.asJSON {
		encoded, err := json.Marshal(out)
		if err != nil {
			return err
		}
		fmt.Println(string(encoded))
	} else {
		for _, v := range out {
			fmt.Println(v)
		}
	}
	if flags.summary {
		mean, err := stats.Mean(out)
		if err != nil {
			return err
		}
		sd, err := stats.StandardDeviation(out)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "n=%d mean=%.6f stddev=%.6f\n", len(out), mean, sd)
	}
	return nil
}
