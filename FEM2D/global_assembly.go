package FEM2D

import (
	"fmt"
	"sync"
	"time"

	"github.com/notargets/gofem2d/types"
	"github.com/notargets/gofem2d/utils"
)

// GlobalSystem is K T = F. K is filled in DOK form during the element scatter
// and compressed to CSR before boundary conditions are applied.
type GlobalSystem struct {
	K          utils.DOK
	Kc         utils.CSR
	F          []float64
	compressed bool
}

func NewGlobalSystem(NN int) (sys *GlobalSystem) {
	sys = &GlobalSystem{
		K: utils.NewDOK(NN, NN),
		F: make([]float64, NN),
	}
	return
}

// Compress converts K to CSR, after which the DOK form is read only
func (sys *GlobalSystem) Compress() utils.CSR {
	if !sys.compressed {
		sys.Kc = sys.K.ToCSR()
		sys.K.SetReadOnly("K")
		sys.compressed = true
	}
	return sys.Kc
}

func (sys *GlobalSystem) NN() int { return len(sys.F) }

type assemblyConfig struct {
	parallelDegree int
	verbose        bool
}

type AssemblyOption func(*assemblyConfig)

// WithParallelDegree computes element matrices on n go routines, n <= 0 uses
// one per CPU. The scatter into K and F stays serial and in mesh order, so
// the result does not depend on n.
func WithParallelDegree(n int) AssemblyOption {
	return func(cfg *assemblyConfig) { cfg.parallelDegree = n }
}

func WithVerbose(verbose bool) AssemblyOption {
	return func(cfg *assemblyConfig) { cfg.verbose = verbose }
}

type elementResult struct {
	Ke  utils.Matrix
	Fe  []float64
	err error
}

// Assemble computes every element's Ke and Fe and adds them into the global
// K and F. The first failing element in mesh order aborts the assembly.
// The returned system is compressed.
func Assemble(p *Problem, opts ...AssemblyOption) (sys *GlobalSystem, err error) {
	var (
		cfg   = assemblyConfig{parallelDegree: 1}
		NE    = p.NE()
		start = time.Now()
	)
	for _, opt := range opts {
		opt(&cfg)
	}
	var (
		NP      = utils.LimitParallelDegree(cfg.parallelDegree, NE)
		pm      = utils.NewPartitionMap(NP, NE)
		results = make([]elementResult, NE)
		wg      = sync.WaitGroup{}
	)
	if cfg.verbose {
		fmt.Printf(" * Calculating element matrices for %d elements on %d go routines...\n", NE, NP)
	}
	for np := 0; np < NP; np++ {
		wg.Add(1)
		go func(np int) {
			defer wg.Done()
			kMin, kMax := pm.GetBucketRange(np)
			for k := kMin; k < kMax; k++ {
				r := &results[k]
				r.Ke, r.Fe, r.err = CalcElement(p.Mesh.ElementCoords(k), p.Coef, p.Shape, p.Rule)
				if r.err != nil {
					return
				}
			}
		}(np)
	}
	wg.Wait()
	if cfg.verbose {
		fmt.Printf(" * Calculating K and F matrixes...\n")
	}
	sys = NewGlobalSystem(p.NN())
	for k := 0; k < NE; k++ {
		r := results[k]
		if r.err != nil {
			return nil, fmt.Errorf("element %d: %w", k, r.err)
		}
		scatter(sys, p.Mesh.LtoG[k], r.Ke, r.Fe)
	}
	sys.Compress()
	if cfg.verbose {
		fmt.Printf(" * Assembled K with %d stored entries in %v\n", sys.Kc.NNZ(), time.Since(start))
	}
	return
}

// scatter adds an element's contributions into K and F
func scatter(sys *GlobalSystem, conn []int, Ke utils.Matrix, Fe []float64) {
	for i, gi := range conn {
		sys.F[gi] += Fe[i]
		for j, gj := range conn {
			sys.K.Add(gi, gj, Ke.At(i, j))
		}
	}
}

// AssembleElement is the single element scatter, exported for tests that
// build a system one element at a time
func (sys *GlobalSystem) AssembleElement(conn []int, Ke utils.Matrix, Fe []float64) error {
	if sys.compressed {
		return types.NewInputError("system is compressed, no further element contributions")
	}
	scatter(sys, conn, Ke, Fe)
	return nil
}
