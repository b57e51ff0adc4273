// arenactl runs the allocator's end-to-end scenarios over a heap or mmap
// backed arena and reports the results.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"
	"golang.org/x/exp/slog"

	arena "github.com/pavanmanishd/go-arena"
	"github.com/pavanmanishd/go-arena/internal/scenario"
	"github.com/pavanmanishd/go-arena/mem"
)

const version = "0.1.0"

var (
	sizeFlag = &cli.IntFlag{
		Name:    "size",
		Usage:   "backing buffer length in bytes",
		Value:   1024,
		EnvVars: []string{"ARENACTL_SIZE"},
	}
	alignFlag = &cli.IntFlag{
		Name:    "align",
		Usage:   "default alignment, a power of two",
		Value:   arena.DefaultAlignment,
		EnvVars: []string{"ARENACTL_ALIGN"},
	}
	mmapFlag = &cli.BoolFlag{
		Name:    "mmap",
		Usage:   "back the arena with an anonymous mapping instead of the Go heap",
		EnvVars: []string{"ARENACTL_MMAP"},
	}
	verboseFlag = &cli.BoolFlag{
		Name:    "verbose",
		Aliases: []string{"v"},
		Usage:   "log arena debug records to stderr",
		EnvVars: []string{"ARENACTL_VERBOSE"},
	}
)

func newApp() *cli.App {
	return &cli.App{
		Name:    "arenactl",
		Usage:   "exercise a fixed-buffer linear allocator",
		Version: version,
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "run all scenarios and print results and metrics",
				Flags:  []cli.Flag{sizeFlag, alignFlag, mmapFlag, verboseFlag},
				Action: runScenarios,
			},
			{
				Name:  "version",
				Usage: "print the version",
				Action: func(ctx *cli.Context) error {
					_, err := fmt.Fprintf(ctx.App.Writer, "arenactl %s\n", version)
					return err
				},
			},
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runScenarios(ctx *cli.Context) (err error) {
	size, align := ctx.Int(sizeFlag.Name), ctx.Int(alignFlag.Name)
	if align <= 0 || !arena.IsPowerOfTwo(uintptr(align)) {
		return errors.Newf("--align %d is not a power of two", align)
	}
	if need := scenario.MinCapacity(align); size < need {
		return errors.Newf("--size %d is too small for alignment %d, need at least %d", size, align, need)
	}

	region, err := openRegion(ctx.Bool(mmapFlag.Name), size, align)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.CombineErrors(err, region.Close())
	}()

	level := slog.LevelInfo
	if ctx.Bool(verboseFlag.Name) {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(ctx.App.ErrWriter, &slog.HandlerOptions{Level: level}))

	a := arena.New(region.Bytes(), arena.WithDefaultAlignment(align), arena.WithLogger(logger))
	results := scenario.Run(a)
	logger.Info("scenarios finished", "count", len(results), "capacity", a.Capacity(), "align", align)

	printResults(ctx.App.Writer, results)
	printMetrics(ctx.App.Writer, a.Metrics())

	if scenario.Failed(results) {
		return errors.New("one or more scenarios failed")
	}
	return nil
}

// openRegion acquires the backing buffer. Scenarios expect offset 0 to
// satisfy the default alignment, so align may not exceed what the region
// guarantees.
var openRegion = func(mmap bool, size, align int) (mem.Region, error) {
	if mmap {
		if page := mem.PageSize(); align > page {
			return nil, errors.Newf("--align %d exceeds mapped region alignment %d", align, page)
		}
		return mem.Map(size)
	}
	if align > mem.Alignment {
		return nil, errors.Newf("--align %d exceeds heap region alignment %d, use --mmap", align, mem.Alignment)
	}
	return mem.Heap(size), nil
}

func printResults(w io.Writer, results []scenario.Result) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Scenario", "Status", "Offset", "Detail"})
	for _, r := range results {
		status, detail := "ok", ""
		if r.Err != nil {
			status, detail = "FAIL", r.Err.Error()
		}
		table.Append([]string{r.Name, status, strconv.Itoa(r.Offset), detail})
	}
	table.Render()
}

func printMetrics(w io.Writer, m arena.ArenaMetrics) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Metric", "Value"})
	table.AppendBulk([][]string{
		{"size in use", strconv.Itoa(m.SizeInUse)},
		{"prev offset", strconv.Itoa(m.PrevOffset)},
		{"capacity", strconv.Itoa(m.Capacity)},
		{"remaining", strconv.Itoa(m.Remaining)},
		{"utilization", fmt.Sprintf("%.1f%%", m.Utilization*100)},
		{"allocs", strconv.FormatUint(m.Allocs, 10)},
		{"in place resizes", strconv.FormatUint(m.InPlaceResizes, 10)},
		{"copy resizes", strconv.FormatUint(m.CopyResizes, 10)},
		{"failures", strconv.FormatUint(m.Failures, 10)},
		{"resets", strconv.FormatUint(m.Resets, 10)},
	})
	table.Render()
}
