package InputParameters

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ghodss/yaml"

	"github.com/notargets/gofem2d/types"
)

// BCEntry is one boundary condition row. EBC rows use Node and carry the value
// in Data[0], NBC rows use Element/Face with the flux in Data[0], MBC rows
// carry alpha and beta in Data[0] and Data[1].
type BCEntry struct {
	Node    int       `json:"node,omitempty"`
	Element int       `json:"element,omitempty"`
	Face    int       `json:"face,omitempty"`
	Data    []float64 `json:"data"`
}

type BCData struct {
	EBC []BCEntry `json:"EBC"`
	NBC []BCEntry `json:"NBC"`
	MBC []BCEntry `json:"MBC"`
}

// FunctionSources are the coefficient expressions, "?" is zero and a lone
// "x" or "y" selects the fit to the U or V nodal data
type FunctionSources struct {
	A         Literal `json:"a"`
	V1        Literal `json:"V1"`
	V2        Literal `json:"V2"`
	C         Literal `json:"c"`
	F         Literal `json:"f"`
	ExactSoln Literal `json:"exactSoln,omitempty"`
}

// Literal is a string that may also be written as a bare number, so that
// "a: 1" and "eType: 2" read the same as their quoted forms
type Literal string

func (l *Literal) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	switch {
	case s == "null":
		*l = ""
	case strings.HasPrefix(s, `"`):
		return json.Unmarshal(b, (*string)(l))
	default:
		*l = Literal(s)
	}
	return nil
}

// Parameters obtained from the YAML or JSON problem file, all indices are
// zero based
type InputParametersAD2D struct {
	Title     string          `json:"title"`
	EType     Literal         `json:"eType"`
	NE        int             `json:"NE"`
	NN        int             `json:"NN"`
	NEN       int             `json:"NEN"`
	NGP       int             `json:"NGP"`
	Functions FunctionSources `json:"functions"`
	Nodes     [][]float64     `json:"nodes"`
	LtoG      [][]int         `json:"LtoG"`
	BCs       BCData          `json:"BCs"`
	UV        [][]float64     `json:"UV,omitempty"`
	Output    string          `json:"output,omitempty"`
	Fitter    string          `json:"fitter,omitempty"`    // tps (default) or poly
	Smoothing float64         `json:"smoothing,omitempty"` // Thin plate spline smoothing
}

func (ip *InputParametersAD2D) Parse(data []byte) error {
	if err := yaml.Unmarshal(data, ip); err != nil {
		return types.NewInputError("unable to parse problem file: %v", err)
	}
	if ip.Title == "" {
		ip.Title = "Untitled Problem"
	}
	return nil
}

// Marshal writes the parameters back out, as YAML unless asJSON is set
func (ip *InputParametersAD2D) Marshal(asJSON bool) ([]byte, error) {
	data, err := yaml.Marshal(ip)
	if err != nil || !asJSON {
		return data, err
	}
	return yaml.YAMLToJSON(data)
}

// SetOutput names the result file. An empty name falls back to the problem
// file's output key, then to <input>_output.json
func (ip *InputParametersAD2D) SetOutput(inputFile, outputFile string) {
	switch {
	case outputFile != "":
		ip.Output = outputFile
	case ip.Output != "":
	default:
		base := strings.TrimSuffix(inputFile, filepath.Ext(inputFile))
		ip.Output = base + "_output.json"
	}
}

// Validate checks the counts against the data, it does not check index
// ranges, which the mesh and problem constructors do
func (ip *InputParametersAD2D) Validate() error {
	if ip.NN != len(ip.Nodes) {
		return types.NewInputError("NN = %d but %d nodes given", ip.NN, len(ip.Nodes))
	}
	if ip.NE != len(ip.LtoG) {
		return types.NewInputError("NE = %d but %d elements given", ip.NE, len(ip.LtoG))
	}
	for i, nd := range ip.Nodes {
		if len(nd) != 2 {
			return types.NewInputError("node %d has %d coordinates, need 2", i, len(nd))
		}
	}
	for k, conn := range ip.LtoG {
		if len(conn) != ip.NEN {
			return types.NewInputError("element %d has %d nodes, NEN = %d", k, len(conn), ip.NEN)
		}
	}
	check := func(kind string, rows []BCEntry, ndata int) error {
		for i, row := range rows {
			if len(row.Data) < ndata {
				return types.NewInputError("%s row %d has %d data values, need %d", kind, i, len(row.Data), ndata)
			}
		}
		return nil
	}
	if err := check("EBC", ip.BCs.EBC, 1); err != nil {
		return err
	}
	if err := check("NBC", ip.BCs.NBC, 1); err != nil {
		return err
	}
	if err := check("MBC", ip.BCs.MBC, 2); err != nil {
		return err
	}
	if ip.UV != nil {
		if len(ip.UV) != 2 || len(ip.UV[0]) != ip.NN || len(ip.UV[1]) != ip.NN {
			return types.NewInputError("UV must be two rows of NN = %d values", ip.NN)
		}
	}
	return nil
}

func (ip *InputParametersAD2D) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("[%s]\t\t\t= Element Type\n", ip.EType)
	fmt.Printf("[%d]\t\t\t= NE\n", ip.NE)
	fmt.Printf("[%d]\t\t\t= NN\n", ip.NN)
	fmt.Printf("[%d]\t\t\t= NEN\n", ip.NEN)
	fmt.Printf("[%d]\t\t\t= NGP\n", ip.NGP)
	fmt.Printf("a = %s, V1 = %s, V2 = %s, c = %s, f = %s\n",
		ip.Functions.A, ip.Functions.V1, ip.Functions.V2, ip.Functions.C, ip.Functions.F)
	if ip.Functions.ExactSoln != "" && ip.Functions.ExactSoln != "?" {
		fmt.Printf("exactSoln = %s\n", ip.Functions.ExactSoln)
	}
	fmt.Printf("BCs[EBC] = %d nodes\n", len(ip.BCs.EBC))
	fmt.Printf("BCs[NBC] = %d faces\n", len(ip.BCs.NBC))
	fmt.Printf("BCs[MBC] = %d faces\n", len(ip.BCs.MBC))
	if ip.UV != nil {
		fmt.Printf("UV data present for %d nodes\n", len(ip.UV[0]))
	}
}
