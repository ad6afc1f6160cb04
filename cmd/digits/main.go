package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/ChizhovVadim/NeuralDigits/internal/dataset"
	"github.com/ChizhovVadim/NeuralDigits/internal/hardware"
	"github.com/ChizhovVadim/NeuralDigits/internal/parallel"
	"github.com/ChizhovVadim/NeuralDigits/internal/quality"
	"github.com/ChizhovVadim/NeuralDigits/internal/train"
	"github.com/ChizhovVadim/NeuralDigits/pkg/matrix"
	"github.com/ChizhovVadim/NeuralDigits/pkg/network"
)

type Config struct {
	trainingPath string
	testingPath  string
	hidden       int
	learningRate float64
	epochs       int
	seed         int64
	threads      int
	logEvery     int
	limit        int
	shuffle      bool
}

type BenchConfig struct {
	rows       int
	inner      int
	cols       int
	iterations int
	threads    int
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	var err = run()
	if err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

func run() error {
	var cli = NewCli(os.Args)
	cli.AddCommand("run", func() error {
		var params = cli.Params()
		var config = Config{
			trainingPath: mapPath(params.GetString("td", "./data/mnist_train.csv")),
			testingPath:  mapPath(params.GetString("vd", "./data/mnist_test.csv")),
			hidden:       params.GetInt("hidden", 100),
			learningRate: params.GetFloat("lr", 0.3),
			epochs:       params.GetInt("epochs", 1),
			seed:         params.GetInt64("seed", 0),
			threads:      params.GetInt("threads", hardware.DefaultThreads()),
			logEvery:     params.GetInt("log-every", 10_000),
			limit:        params.GetInt("limit", 0),
			shuffle:      params.GetBool("shuffle", false),
		}
		return runDigitRecognition(config)
	})
	cli.AddCommand("bench", func() error {
		var params = cli.Params()
		var config = BenchConfig{
			rows:       params.GetInt("rows", 512),
			inner:      params.GetInt("inner", 784),
			cols:       params.GetInt("cols", 64),
			iterations: params.GetInt("iterations", 20),
			threads:    params.GetInt("threads", hardware.DefaultThreads()),
		}
		return runBenchmark(config)
	})
	return cli.Execute("run")
}

func runDigitRecognition(config Config) error {
	if config.threads < 1 {
		config.threads = 1
	}
	if config.seed == 0 {
		config.seed = time.Now().UnixNano()
	}
	runtime.GOMAXPROCS(config.threads)
	log.Println("cpu", hardware.Describe())
	log.Printf("%+v", config)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Println("Parsing training data...")
	trainingSamples, err := dataset.Load(ctx, config.trainingPath, config.threads, config.limit)
	if err != nil {
		return err
	}
	if len(trainingSamples) == 0 {
		return fmt.Errorf("no samples in %v", config.trainingPath)
	}

	// 28 x 28 pixels for MNIST, 10 digits.
	var inputSize = len(trainingSamples[0].Pixels)
	net, err := network.New(inputSize, config.hidden, dataset.Classes, float32(config.learningRate), config.seed)
	if err != nil {
		return err
	}

	_, err = train.Run(ctx, net, trainingSamples, train.Options{
		Epochs:   config.epochs,
		Classes:  dataset.Classes,
		Shuffle:  config.shuffle,
		Seed:     config.seed,
		LogEvery: config.logEvery,
	})
	if err != nil {
		return err
	}

	log.Println("Parsing testing data...")
	testingSamples, err := dataset.Load(ctx, config.testingPath, config.threads, config.limit)
	if err != nil {
		return err
	}
	_, err = quality.Evaluate(ctx, net, testingSamples)
	return err
}

func runBenchmark(config BenchConfig) error {
	log.Println("cpu", hardware.Describe())
	log.Printf("%+v", config)
	if config.rows <= 0 || config.inner <= 0 || config.cols <= 0 {
		return fmt.Errorf("bad benchmark shape %vx%v * %vx%v", config.rows, config.inner, config.inner, config.cols)
	}
	if config.threads < 1 {
		config.threads = 1
	}

	var rnd = rand.New(rand.NewSource(1))
	a, err := randomMatrix(rnd, config.rows, config.inner)
	if err != nil {
		return err
	}
	b, err := randomMatrix(rnd, config.inner, config.cols)
	if err != nil {
		return err
	}

	var previous = runtime.GOMAXPROCS(0)
	defer runtime.GOMAXPROCS(previous)

	var reference *matrix.Matrix
	for _, threads := range []int{1, config.threads} {
		runtime.GOMAXPROCS(threads)
		var result *matrix.Matrix
		var start = time.Now()
		for i := 0; i < config.iterations; i++ {
			result, err = matrix.Multiply(a, b)
			if err != nil {
				return err
			}
		}
		var elapsed = time.Since(start)
		log.Println("multiply",
			"threads", parallel.Threads(),
			"shape", fmt.Sprintf("%vx%v * %vx%v", a.Rows(), a.Cols(), b.Rows(), b.Cols()),
			"iterations", config.iterations,
			"elapsed", elapsed,
			"perOp", elapsed/time.Duration(max(1, config.iterations)))
		if reference == nil {
			reference = result
		} else if result != nil && !matrix.Equal(reference, result) {
			return fmt.Errorf("parallel product differs from sequential product")
		}
	}
	return nil
}

func randomMatrix(rnd *rand.Rand, rows, cols int) (*matrix.Matrix, error) {
	var values = make([]float32, rows*cols)
	for i := range values {
		values[i] = rnd.Float32() - 0.5
	}
	return matrix.FromSlice(rows, cols, values)
}
