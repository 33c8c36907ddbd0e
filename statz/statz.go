package main

import (
	. "fmt"
	"github.com/dterei/gotsc"
	"github.com/minio/sha256-simd"
	"github.com/p7r0x7/hortex"
	"github.com/p7r0x7/hortex/internal/table"
	"github.com/zeebo/blake3"
	"os"
	"runtime"
	"strconv"
	"sync"
	"testing"
	"time"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

/* Eight ELM evaluations per 8-byte block; larger sizes take minutes. */
var sizes = [...]int{64, 4 << 10, 256 << 10}
var msg, calltime = []byte(nil), gotsc.TSCOverhead()

type alg struct {
	name  string
	bench func(b *testing.B)
}

var algs = [...]alg{
	{"hortex " + hortex.Reference.String(), func(b *testing.B) {
		d := hortex.New(hortex.Reference)
		sum := make([]byte, 0, hortex.Size)
		b.SetBytes(int64(len(msg)))
		b.ResetTimer()
		for i := b.N; i > 0; i-- {
			d.Write(msg)
			d.Sum(sum)
			d.Reset()
		}
	}},
	{"hortex " + hortex.Baseline.String(), func(b *testing.B) {
		b.SetBytes(int64(len(msg)))
		b.ResetTimer()
		for i := b.N; i > 0; i-- {
			hortex.Sum(msg, hortex.Baseline)
		}
	}},
	{"minio/sha256-simd", func(b *testing.B) {
		b.SetBytes(int64(len(msg)))
		b.ResetTimer()
		for i := b.N; i > 0; i-- {
			sha256.Sum256(msg)
		}
	}},
	{"zeebo/blake3", func(b *testing.B) {
		b.SetBytes(int64(len(msg)))
		b.ResetTimer()
		for i := b.N; i > 0; i-- {
			blake3.Sum256(msg)
		}
	}},
}

// A sample is one algorithm at one message size.
type sample struct {
	mbps, cpb, bop float64
}

// clock estimates the TSC frequency while a benchmark runs by timing 1ms sleeps every 10ms.
type clock struct {
	mut   sync.Mutex
	ticks uint64
	polls uint64
	stop  chan struct{}
}

func startClock() *clock {
	c := &clock{stop: make(chan struct{})}
	if calltime == 0 {
		return c /* No usable TSC */
	}
	go func() {
		for {
			select {
			case <-c.stop:
				return
			default:
			}
			t1 := gotsc.BenchStart()
			time.Sleep(time.Millisecond)
			t2 := gotsc.BenchEnd()

			c.mut.Lock()
			c.ticks += t2 - t1 - calltime
			c.polls++
			c.mut.Unlock()
			time.Sleep(9 * time.Millisecond)
		}
	}()
	return c
}

// hz stops the clock and returns the mean frequency, or zero if it never polled.
func (c *clock) hz() float64 {
	close(c.stop)
	c.mut.Lock()
	defer c.mut.Unlock()
	if c.polls == 0 {
		return 0
	}
	return float64(c.ticks) * 1000 / float64(c.polls)
}

func measure(a alg, size int) sample {
	msg = make([]byte, size)
	c := startClock()
	r := testing.Benchmark(a.bench)
	hz := c.hz()

	bps := float64(r.Bytes*int64(r.N)) / r.T.Seconds()
	s := sample{mbps: bps / 1e6, bop: float64(r.AllocedBytesPerOp())}
	if hz > 0 {
		s.cpb = hz / bps
	}
	return s
}

func fmtG(v float64) string {
	if v == 0 {
		return "-"
	}
	return strconv.FormatFloat(v, 'g', 4, 64)
}

func benchmarks() *table.Table {
	t := table.New("Algorithm", "Size", "MB/s", "cpb", "B/op").AlignRight(1, 2, 3, 4)
	ratios := make([]float64, len(sizes))
	for i, a := range algs {
		for j, size := range sizes {
			s := measure(a, size)
			t.Row(a.name, strconv.Itoa(size), fmtG(s.mbps), fmtG(s.cpb), fmtG(s.bop))
			switch i {
			case 0:
				ratios[j] = s.mbps
			case 1:
				ratios[j] /= s.mbps /* Reference throughput over Baseline's */
			}
		}
	}
	for j, size := range sizes {
		t.Row("reference ÷ baseline", strconv.Itoa(size), fmtG(ratios[j]))
	}
	return t
}

func main() {
	Printf("Running Statz on %d CPUs!\n%s/%s\n\n", runtime.NumCPU(), runtime.GOOS, runtime.GOARCH)
	t := time.Now()

	monobit()
	Println()
	if _, err := benchmarks().WriteTo(os.Stdout); err != nil {
		panic(err)
	}
	Println("\nFinished in " + time.Since(t).Truncate(time.Millisecond).String() + ".")
}
