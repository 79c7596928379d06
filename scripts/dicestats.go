// dicestats rolls a dice expression many times and prints the distribution
// of totals as a text histogram.
// Usage: go run scripts/dicestats.go <expr> [samples]
package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"trpgdice/internal/dice"
	"trpgdice/internal/random"
)

const barWidth = 50

func main() {
	code := run()
	if code != 0 {
		os.Exit(code)
	}
}

func run() int {
	if len(os.Args) < 2 || len(os.Args) > 3 {
		fmt.Fprintf(os.Stderr, "usage: go run scripts/dicestats.go <expr> [samples]\n")
		return 1
	}
	expr := os.Args[1]
	samples := 10000
	if len(os.Args) == 3 {
		n, err := strconv.Atoi(os.Args[2])
		if err != nil || n <= 0 {
			fmt.Fprintf(os.Stderr, "samples must be a positive integer, got %q\n", os.Args[2])
			return 1
		}
		samples = n
	}

	seed, err := random.NewSeed()
	if err != nil {
		fmt.Fprintf(os.Stderr, "seed: %v\n", err)
		return 1
	}
	engine := dice.New(dice.DefaultConfig(), dice.WithSource(dice.NewSeededSource(seed)))
	parsed, err := engine.Parse(expr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse %s: %v\n", expr, err)
		return 1
	}

	counts := map[int]int{}
	sum := 0
	for i := 0; i < samples; i++ {
		out, err := engine.RollExpression(parsed)
		if err != nil {
			fmt.Fprintf(os.Stderr, "roll: %v\n", err)
			return 1
		}
		counts[out.Total]++
		sum += out.Total
	}

	totals := make([]int, 0, len(counts))
	peak := 0
	for total, c := range counts {
		totals = append(totals, total)
		if c > peak {
			peak = c
		}
	}
	sort.Ints(totals)

	fmt.Printf("%s: %d samples, mean %.2f, range %d..%d\n",
		expr, samples, float64(sum)/float64(samples), totals[0], totals[len(totals)-1])
	for _, total := range totals {
		c := counts[total]
		bar := strings.Repeat("#", c*barWidth/peak)
		fmt.Printf("%6d %6.2f%% %s\n", total, 100*float64(c)/float64(samples), bar)
	}
	return 0
}
