package main

import (
	"flag"
	"fmt"
	"log"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat"

	"github.com/limaJavier/coursegrid/pkg/model"
)

type TestMetadata struct {
	Name      string
	Sections  int
	Courses   int
	Cohort    int
	Electives int
}

type BenchmarkResult struct {
	Engine      string  `csv:"Engine"`
	Strategy    string  `csv:"Strategy"`
	Test        string  `csv:"Test"`
	Sections    int     `csv:"Sections"`
	Courses     int     `csv:"Courses"`
	Seed        uint64  `csv:"Seed"`
	Duration    int64   `csv:"Duration(us)"`
	Placed      uint64  `csv:"Placed"`
	Failed      uint64  `csv:"Failed"`
	Overbooked  uint64  `csv:"Overbooked"`
	SuccessRate float64 `csv:"SuccessRate(%)"`
	Verified    bool    `csv:"Verified"`
}

func main() {
	testDirectory := flag.String("tests", "./testdata", "Directory of JSON inputs to benchmark")
	seeds := flag.Int("seeds", 20, "Number of seeds per input and strategy")
	out := flag.String("out", "benchmark_results.csv", "Path to the CSV file where the results will be written")
	flag.Parse()

	tests, inputs := getTests(*testDirectory)
	results := make([]*BenchmarkResult, 0, len(tests)*len(model.Strategies)*(*seeds)*2)

	for i, test := range tests {
		for _, engine := range []model.Engine{model.CoreEngine, model.ElectiveEngine} {
			for _, strategy := range model.Strategies {
				fmt.Printf("Benchmarking test \"%v\" with engine \"%v\" and strategy \"%v\"\n", test.Name, engine, strategy)
				for seed := range uint64(*seeds) {
					result, err := measure(engine, strategy, seed+1, test, inputs[i])
					if err != nil {
						log.Fatalf("an error occurred at test \"%v\" using engine \"%v\", strategy \"%v\", seed %v: %v", test.Name, engine, strategy, seed+1, err)
					}
					results = append(results, result)
				}
			}
		}
	}

	for _, line := range aggregate(results) {
		fmt.Println(line)
	}
	toCsv(results, *out)
}

func getTests(directory string) ([]TestMetadata, []model.ModelInput) {
	files, err := filepath.Glob(filepath.Join(directory, "*.json"))
	if err != nil {
		log.Fatalf("cannot read directory: %v", err)
	} else if len(files) == 0 {
		log.Fatalf("no JSON inputs in %v", directory)
	}

	tests := make([]TestMetadata, 0, len(files))
	inputs := make([]model.ModelInput, 0, len(files))
	for _, filename := range files {
		input, err := model.InputFromJson(filename, model.DefaultParameters().StudentsPerSection)
		if err != nil {
			log.Fatalf("cannot parse input file: %v", err)
		}

		tests = append(tests, TestMetadata{
			Name:      filename,
			Sections:  lo.SumBy(input.Batches, func(batch model.Batch) int { return len(batch.Sections) }),
			Courses:   len(input.Courses),
			Cohort:    len(input.Cohort),
			Electives: len(input.Electives),
		})
		inputs = append(inputs, input)
	}
	return tests, inputs
}

func measure(engine model.Engine, strategy model.Strategy, seed uint64, test TestMetadata, input model.ModelInput) (*BenchmarkResult, error) {
	params := model.DefaultParameters()
	params.Strategy = strategy
	params.Seed = seed

	timetabler := model.NewCoreTimetabler(params, nil)
	if engine == model.ElectiveEngine {
		timetabler = model.NewElectiveTimetabler(params, nil)
	}

	start := time.Now()
	timetable, err := timetabler.Build(input)
	duration := time.Since(start)
	if err != nil {
		return nil, err
	}

	return &BenchmarkResult{
		Engine:      string(engine),
		Strategy:    string(strategy),
		Test:        test.Name,
		Sections:    test.Sections,
		Courses:     test.Courses,
		Seed:        seed,
		Duration:    duration.Microseconds(),
		Placed:      timetable.Stats.Placed,
		Failed:      timetable.Stats.Failed,
		Overbooked:  timetable.Stats.Overbooked,
		SuccessRate: timetable.Stats.SuccessRate(),
		Verified:    timetabler.Verify(timetable, input),
	}, nil
}

// aggregate summarizes the success rate of every engine and strategy as mean and standard deviation over all seeds and inputs
func aggregate(results []*BenchmarkResult) []string {
	groups := lo.GroupBy(results, func(result *BenchmarkResult) string {
		return result.Engine + "/" + result.Strategy
	})

	lines := make([]string, 0, len(groups))
	for _, key := range slices.Sorted(maps.Keys(groups)) {
		rates := lo.Map(groups[key], func(result *BenchmarkResult, _ int) float64 { return result.SuccessRate })
		mean, std := stat.MeanStdDev(rates, nil)
		if len(rates) == 1 {
			std = 0
		}
		unverified := lo.CountBy(groups[key], func(result *BenchmarkResult) bool { return !result.Verified })
		lines = append(lines, fmt.Sprintf("%v: runs %v, success rate %.2f%% (std dev %.2f), unverified %v", key, len(rates), mean, std, unverified))
	}
	return lines
}

func toCsv(results []*BenchmarkResult, path string) {
	file, err := os.Create(path)
	if err != nil {
		log.Panicf("cannot create CSV file: %v", err)
	}
	defer file.Close()

	if err := gocsv.MarshalFile(&results, file); err != nil {
		log.Panicf("cannot write CSV records: %v", err)
	}
}
