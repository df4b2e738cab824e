package main

import (
	"bufio"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
)

var (
	csvFile string
)

func main() {
	csvFilePtr := flag.String("csvFile", csvFile, "file containing entries of a convergence study")
	flag.Parse()
	csvFile = *csvFilePtr
	if len(csvFile) == 0 {
		flag.Usage()
		os.Exit(1)
	}
	fmt.Printf("Input file: %v\n", csvFile)
	f, err := os.Open(csvFile)
	if err != nil {
		panic(err)
	}
	defer f.Close()
	studies, keys, err := readCSV(f)
	if err != nil {
		panic(err)
	}
	for _, key := range keys {
		studies[key].Print()
	}
}

type ConvergenceStudy struct {
	title    string
	NGP      int
	NN, NE   []int
	hmax     []float64
	RMS, MAX []float64
}

func NewConvergenceStudy(title string, NGP int) *ConvergenceStudy {
	return &ConvergenceStudy{
		title: title,
		NGP:   NGP,
	}
}

func (cs *ConvergenceStudy) Add(NN, NE int, hmax, RMS, MAX float64) {
	cs.NN = append(cs.NN, NN)
	cs.NE = append(cs.NE, NE)
	cs.hmax = append(cs.hmax, hmax)
	cs.RMS = append(cs.RMS, RMS)
	cs.MAX = append(cs.MAX, MAX)
}

func (cs *ConvergenceStudy) Len() int           { return len(cs.hmax) }
func (cs *ConvergenceStudy) Less(i, j int) bool { return cs.hmax[i] > cs.hmax[j] }
func (cs *ConvergenceStudy) Swap(i, j int) {
	cs.NN[i], cs.NN[j] = cs.NN[j], cs.NN[i]
	cs.NE[i], cs.NE[j] = cs.NE[j], cs.NE[i]
	cs.hmax[i], cs.hmax[j] = cs.hmax[j], cs.hmax[i]
	cs.RMS[i], cs.RMS[j] = cs.RMS[j], cs.RMS[i]
	cs.MAX[i], cs.MAX[j] = cs.MAX[j], cs.MAX[i]
}

// Orders returns the observed order log(e1/e2)/log(h1/h2) between each
// refinement, coarsest mesh first
func (cs *ConvergenceStudy) Orders() (rmsOrder, maxOrder []float64) {
	sort.Stable(cs)
	order := func(e []float64, i int) float64 {
		return math.Log(e[i-1]/e[i]) / math.Log(cs.hmax[i-1]/cs.hmax[i])
	}
	for i := 1; i < cs.Len(); i++ {
		rmsOrder = append(rmsOrder, order(cs.RMS, i))
		maxOrder = append(maxOrder, order(cs.MAX, i))
	}
	return
}

func (cs *ConvergenceStudy) Print() {
	rmsOrder, maxOrder := cs.Orders()
	fmt.Printf("Title = %s, NGP = %d\n", cs.title, cs.NGP)
	fmt.Printf("%8s%8s%12s%12s%12s%8s%8s\n", "NN", "NE", "hmax", "RMS", "MAX", "O(RMS)", "O(MAX)")
	for i := range cs.hmax {
		fmt.Printf("%8d%8d%12.4e%12.4e%12.4e", cs.NN[i], cs.NE[i], cs.hmax[i], cs.RMS[i], cs.MAX[i])
		if i > 0 {
			fmt.Printf("%8.3f%8.3f", rmsOrder[i-1], maxOrder[i-1])
		}
		fmt.Printf("\n")
	}
}

// readCSV groups the rows by title and quadrature, keys are in order of first
// appearance
func readCSV(r io.Reader) (studies map[string]*ConvergenceStudy, keys []string, err error) {
	var (
		records [][]string
		ok      bool
		cs      *ConvergenceStudy
	)
	studies = make(map[string]*ConvergenceStudy)
	if records, err = csv.NewReader(bufio.NewReader(r)).ReadAll(); err != nil {
		return
	}
	for i, rec := range records {
		if i == 0 {
			continue
		}
		if len(rec) < 7 {
			return nil, nil, fmt.Errorf("row %d has %d columns, need 7", i, len(rec))
		}
		var (
			ints   [3]int
			floats [3]float64
		)
		for j := range ints {
			if ints[j], err = strconv.Atoi(rec[1+j]); err != nil {
				return nil, nil, fmt.Errorf("row %d: %w", i, err)
			}
		}
		for j := range floats {
			if floats[j], err = strconv.ParseFloat(rec[4+j], 64); err != nil {
				return nil, nil, fmt.Errorf("row %d: %w", i, err)
			}
		}
		title, NGP := rec[0], ints[2]
		combTitle := title + strconv.Itoa(NGP)
		if cs, ok = studies[combTitle]; !ok {
			cs = NewConvergenceStudy(title, NGP)
			studies[combTitle] = cs
			keys = append(keys, combTitle)
		}
		cs.Add(ints[0], ints[1], floats[0], floats[1], floats[2])
	}
	return
}
