package main

import (
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/spf13/pflag"

	"github.com/picowire/picowire"
)

// Profiling harness: hammers the reflect codec in a loop and writes a heap
// profile, with a live pprof endpoint for inspection while it runs.
func main() {
	iterations := pflag.IntP("iterations", "n", 10000, "encode/decode round trips to run")
	memprofile := pflag.String("memprofile", "mem.prof", "heap profile output path")
	listen := pflag.String("listen", "localhost:6060", "pprof HTTP listen address")
	pflag.Parse()

	go func() {
		log.Println(http.ListenAndServe(*listen, nil))
	}()
	f, err := os.Create(*memprofile)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()
	runtime.MemProfileRate = 1

	type Sample struct {
		Name     string
		Tags     []string
		Mod      []int8
		Integers []int16
		Float3   []float32
		Float6   []float64
	}
	z := Sample{
		Name:     "sample",
		Tags:     []string{"azerty", "hello", "world", "random"},
		Mod:      []int8{12, 10, 13, 0},
		Integers: []int16{100, 250, 300},
		Float3:   []float32{12.13, 16.23, 75.1},
		Float6:   []float64{100.5, 165.63, 153.5},
	}
	codec := picowire.NewCodec(picowire.Options{ZeroCopyStrings: true})
	for i := 0; i < *iterations; i++ {
		data, err := codec.Encode(z)
		if err != nil {
			log.Fatal(err)
		}
		res := &Sample{}
		if err := codec.Decode(data, res); err != nil {
			log.Fatal(err)
		}
	}
	if err := pprof.WriteHeapProfile(f); err != nil {
		log.Fatal(err)
	}
}
