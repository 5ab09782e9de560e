//
// main.go
//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package main

import (
	"encoding/binary"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/markkurossi/tabulate"

	"github.com/markkurossi/okvs/emm"
	"github.com/markkurossi/okvs/env"
	"github.com/markkurossi/okvs/okvs"
)

func main() {
	var (
		build   = flag.Bool("build", false, "build and decode one OKVS instance")
		emmDemo = flag.Bool("emm-demo", false, "build and query one VH-EMM instance")
		bench   = flag.Bool("bench", false, "sweep n and report zero-row/timing statistics")
		n       = flag.Int("n", 10000, "number of keys")
		epsilon = flag.Float64("epsilon", 0.1, "rate (column overhead)")
		lambda  = flag.Int("lambda", 40, "security/failure parameter")
		workers = flag.Int("workers", 4, "bench worker pool size")
		seeds   = flag.Int("seeds", 20, "bench: number of independent runs per n")
	)
	flag.Parse()

	cfg := &env.Config{Epsilon: *epsilon, Lambda: *lambda}

	switch {
	case *build:
		runBuild(cfg, *n)
	case *emmDemo:
		runEMMDemo(cfg, *n)
	case *bench:
		runBench(cfg, *workers, *seeds)
	default:
		flag.Usage()
		os.Exit(1)
	}
}

func runBuild(cfg *env.Config, n int) {
	var pairs []okvs.Pair
	for i := 0; i < n; i++ {
		k := make([]byte, 8)
		binary.LittleEndian.PutUint64(k, uint64(i))
		v := okvs.NewZeroValue(8)
		binary.LittleEndian.PutUint64(v, uint64(i))
		pairs = append(pairs, okvs.Pair{Key: k, Value: v})
	}

	o, err := okvs.New(cfg.OKVSConfig(n), 8)
	if err != nil {
		log.Fatal(err)
	}

	start := time.Now()
	encoding, err := o.Encode(pairs)
	if err != nil {
		log.Fatal(err)
	}
	encodeTime := time.Since(start)

	start = time.Now()
	for i, p := range pairs {
		got := o.Decode(encoding, p.Key)
		if string(got) != string(p.Value) {
			log.Fatalf("decode mismatch at %d", i)
		}
	}
	decodeTime := time.Since(start)

	fmt.Printf("n=%d cols=%d w=%d encode=%s decode(all)=%s\n",
		n, o.Params().Cols, o.Params().W, encodeTime, decodeTime)
}

func runEMMDemo(cfg *env.Config, n int) {
	var pairs []emm.Pair
	for i := 0; i < n; i++ {
		k := make([]byte, 8)
		binary.LittleEndian.PutUint64(k, uint64(i))
		pairs = append(pairs, emm.Pair{Key: k, Values: []emm.Value{emm.Uint64Value(i)}})
	}

	encoding, e, cs, err := emm.Setup(pairs, 8, emm.DecodeUint64, cfg.OKVSConfig(0))
	if err != nil {
		log.Fatal(err)
	}

	for i := 0; i < n; i++ {
		k := make([]byte, 8)
		binary.LittleEndian.PutUint64(k, uint64(i))
		values, err := emm.Query(e, encoding, cs, k, 1)
		if err != nil {
			log.Fatalf("query %d: %v", i, err)
		}
		if values[0].(emm.Uint64Value) != emm.Uint64Value(i) {
			log.Fatalf("query %d: mismatch", i)
		}
	}
	fmt.Printf("emm-demo: %d keys, one value each, all round-tripped\n", n)
}

type benchRow struct {
	n        int
	zeroRows int
	runs     int
	avg      time.Duration
}

// runBench sweeps a handful of n values across seeds independent
// runs each, using a bounded worker pool so runs overlap without
// saturating the machine, modeled on the pack's
// sorting.NewThreadPool worker-pool shape (WaitGroup-bounded
// goroutines draining a shared work queue). okvs.Encode itself stays
// single-threaded per invocation; only independent invocations run
// concurrently here.
func runBench(cfg *env.Config, workerCount, seeds int) {
	sizes := []int{100, 1000, 10000}

	tab := tabulate.New(tabulate.Github)
	tab.Header("n")
	tab.Header("runs").SetAlign(tabulate.MR)
	tab.Header("zero-row failures").SetAlign(tabulate.MR)
	tab.Header("avg encode").SetAlign(tabulate.MR)

	for _, n := range sizes {
		row := benchOne(cfg, n, seeds, workerCount)
		r := tab.Row()
		r.Column(fmt.Sprintf("%d", row.n))
		r.Column(fmt.Sprintf("%d", row.runs))
		r.Column(fmt.Sprintf("%d", row.zeroRows))
		r.Column(row.avg.String())
	}
	tab.Print(os.Stdout)
}

func benchOne(cfg *env.Config, n, seeds, workerCount int) benchRow {
	sem := make(chan struct{}, workerCount)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var zeroRows int
	var total time.Duration

	for s := 0; s < seeds; s++ {
		wg.Add(1)
		sem <- struct{}{}
		go func(seed int) {
			defer wg.Done()
			defer func() { <-sem }()

			var pairs []okvs.Pair
			for i := 0; i < n; i++ {
				k := make([]byte, 8)
				binary.LittleEndian.PutUint64(k, uint64(i)^uint64(seed)<<32)
				pairs = append(pairs, okvs.Pair{Key: k, Value: okvs.NewZeroValue(8)})
			}
			o, err := okvs.New(cfg.OKVSConfig(n), 8)
			if err != nil {
				log.Fatal(err)
			}

			start := time.Now()
			_, err = o.Encode(pairs)
			elapsed := time.Since(start)

			mu.Lock()
			total += elapsed
			if errors.Is(err, okvs.ErrZeroRow) {
				zeroRows++
			}
			mu.Unlock()
		}(s)
	}
	wg.Wait()

	return benchRow{n: n, runs: seeds, zeroRows: zeroRows, avg: total / time.Duration(seeds)}
}
