package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/quokkadb/quokka"
	"github.com/quokkadb/quokka/internal/version"
)

func customUsage() {
	fmt.Fprintf(os.Stderr, "Quokka Function Engine CLI (version %s)\n\n", version.Version)
	fmt.Fprintf(os.Stderr, "Usage: quokka-cli [options]\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	fmt.Fprintf(os.Stderr, "  --demo\n\t\tRun basic demo\n")
	fmt.Fprintf(os.Stderr, "  --benchmark\n\t\tRun benchmark tests\n")
	fmt.Fprintf(os.Stderr, "  --rows N\n\t\tNumber of rows to use (default: 1000 for demo, 1000000 for benchmark)\n")
	fmt.Fprintf(os.Stderr, "  --functions\n\t\tList registered functions and exit\n")
	fmt.Fprintf(os.Stderr, "  -v, --version\n\t\tPrint version information and exit\n")
	fmt.Fprintf(os.Stderr, "  -h, --help\n\t\tShow this help message and exit\n")
}

func main() {
	versionFlag := flag.Bool("v", false, "Print version and exit")
	flag.BoolVar(versionFlag, "version", false, "Print version and exit") // alias
	demoFlag := flag.Bool("demo", false, "Run basic demo")
	benchmarkFlag := flag.Bool("benchmark", false, "Run benchmark tests")
	functionsFlag := flag.Bool("functions", false, "List registered functions and exit")
	rowsFlag := flag.Int("rows", 0, "Number of rows to use (default: 1000 for demo, 1000000 for benchmark)")

	//nolint:reassign // Standard Go pattern for customizing flag usage message
	flag.Usage = customUsage

	flag.Parse()

	switch {
	case *versionFlag:
		fmt.Print(version.Info().String())
	case *functionsFlag:
		listFunctions()
	case *demoFlag:
		runDemo(*rowsFlag)
	case *benchmarkFlag:
		runBenchmark(*rowsFlag)
	default:
		flag.Usage()
		os.Exit(1)
	}
}

func listFunctions() {
	for _, name := range quokka.FunctionNames() {
		f, err := quokka.Resolve(name)
		if err != nil {
			log.Printf("Error resolving %s: %v", name, err)
			continue
		}
		fmt.Printf("%s/%d\n", f.Name(), f.Arity())
	}
}

func runDemo(rows int) {
	fmt.Println("Quokka Function Engine Demo")
	fmt.Println("===========================")

	mem := memory.NewGoAllocator()

	if rows == 0 {
		rows = 1000
	}

	fmt.Printf("Creating sample dataset with %d rows...\n", rows)

	values := make([]float64, rows)
	for i := range rows {
		// Mix of negatives so sqrt exercises its null path.
		values[i] = float64(i - rows/4)
	}

	input := quokka.FromFloat64s(mem, values, nil)
	defer input.Release()

	ex := quokka.NewExecutor(mem)

	fmt.Println("Evaluating sqrt over the batch...")
	roots, err := ex.Eval("sqrt", []*quokka.Column{input}, rows)
	if err != nil {
		log.Printf("Error evaluating sqrt: %v", err)
		return
	}
	defer roots.Release()

	nulls := 0
	for i := range roots.Len() {
		if roots.IsNull(i) {
			nulls++
		}
	}
	fmt.Printf("sqrt produced %d rows, %d null (negative inputs)\n", roots.Len(), nulls)

	fmt.Println("Evaluating normal_cdf(0, 1, x) over the batch...")
	mean := quokka.ConstFloat64(mem, 0, rows)
	sd := quokka.ConstFloat64(mem, 1, rows)
	defer mean.Release()
	defer sd.Release()

	cdf, err := ex.Eval("normal_cdf", []*quokka.Column{mean, sd, input}, rows)
	if err != nil {
		log.Printf("Error evaluating normal_cdf: %v", err)
		return
	}
	defer cdf.Release()

	fmt.Printf("normal_cdf produced %d rows\n", cdf.Len())
	fmt.Println("Demo completed successfully!")
}

func runBenchmark(rows int) {
	fmt.Println("Quokka Function Engine Benchmark")
	fmt.Println("================================")

	if rows == 0 {
		rows = 1_000_000
	}

	mem := memory.NewGoAllocator()

	fmt.Printf("\nBenchmarking column creation for %d rows...\n", rows)
	start := time.Now()
	values := make([]float64, rows)
	for i := range rows {
		values[i] = float64(i%1000) + 0.5
	}
	input := quokka.FromFloat64s(mem, values, nil)
	defer input.Release()
	fmt.Printf("Column Creation Time: %s\n", time.Since(start))

	ex := quokka.NewExecutor(mem)

	for _, name := range []string{"sqrt", "ln", "sin", "atan"} {
		fmt.Printf("\nBenchmarking %s over %d rows...\n", name, rows)
		start = time.Now()
		out, err := ex.Eval(name, []*quokka.Column{input}, rows)
		if err != nil {
			log.Printf("Error during %s benchmark: %v", name, err)
			os.Exit(1)
		}
		out.Release()
		fmt.Printf("%s Evaluation Time: %s\n", name, time.Since(start))
	}

	fmt.Printf("\nBenchmarking log(2, x) with a constant base over %d rows...\n", rows)
	base := quokka.ConstFloat64(mem, 2, rows)
	defer base.Release()
	start = time.Now()
	out, err := ex.Eval("log", []*quokka.Column{base, input}, rows)
	if err != nil {
		log.Printf("Error during log benchmark: %v", err)
		os.Exit(1)
	}
	out.Release()
	fmt.Printf("log Evaluation Time: %s\n", time.Since(start))

	fmt.Println("\nBenchmark suite completed successfully!")
}
