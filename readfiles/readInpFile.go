package readfiles

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/notargets/gofem2d/InputParameters"
	"github.com/notargets/gofem2d/types"
)

// Section headers of the .inp format, searched for in this order
var (
	headerSizes     = regexp.MustCompile(`^eType\s+NE\s+NN\s+NEN\s+NGP`)
	headerFunctions = regexp.MustCompile(`^a\s+V1\s+V2\s+c\s+f\s+exactSoln`)
	headerNodes     = regexp.MustCompile(`^(Node#|Node No)\s+x\s+y`)
	headerElements  = regexp.MustCompile(`^(Elem#|Elem No)\s+node1\s+node2\s+node3`)
	headerBCData    = regexp.MustCompile(`^nBCdata`)
	headerBCCounts  = regexp.MustCompile(`^nEBCnodes\s+nNBCfaces\s+nMBCfaces`)
	headerEBC       = regexp.MustCompile(`^EBC Data\s+\(Node\s+BCno\)`)
	headerNBC       = regexp.MustCompile(`^NBC Data\s+\(Elem\s+Face\s+BCno\)`)
	headerMBC       = regexp.MustCompile(`^MBC Data\s+\(Elem\s+Face\s+BCno\)`)
	headerUV        = regexp.MustCompile(`^Node No\s+U\s+V`)
)

var inpShapeCodes = map[int]string{1: "quad", 2: "tri"}

type inpReader struct {
	reader *bufio.Reader
	lineNo int
	eof    bool
}

func (ir *inpReader) readLine() (line string) {
	var err error
	line, err = ir.reader.ReadString('\n')
	if err != nil {
		ir.eof = true
	}
	if len(line) != 0 {
		ir.lineNo++
	}
	return strings.TrimRight(line, "\r\n")
}

// locate skips lines up to and including the first one matching header
func (ir *inpReader) locate(header *regexp.Regexp) error {
	for !ir.eof {
		if header.MatchString(ir.readLine()) {
			return nil
		}
	}
	return types.NewInputError("inp: section %q not found", header.String())
}

func (ir *inpReader) errorf(format string, args ...interface{}) error {
	return types.NewInputError("inp line %d: %s", ir.lineNo, fmt.Sprintf(format, args...))
}

// fields reads the next line and returns at least n whitespace separated
// fields
func (ir *inpReader) fields(n int) (f []string, err error) {
	if ir.eof {
		return nil, types.NewInputError("inp: unexpected end of file after line %d", ir.lineNo)
	}
	f = strings.Fields(ir.readLine())
	if len(f) < n {
		err = ir.errorf("have %d values, need %d", len(f), n)
	}
	return
}

func (ir *inpReader) ints(f []string) (vals []int, err error) {
	vals = make([]int, len(f))
	for i, s := range f {
		if vals[i], err = strconv.Atoi(s); err != nil {
			return nil, ir.errorf("bad integer %q", s)
		}
	}
	return
}

func (ir *inpReader) floats(f []string) (vals []float64, err error) {
	vals = make([]float64, len(f))
	for i, s := range f {
		if vals[i], err = strconv.ParseFloat(s, 64); err != nil {
			return nil, ir.errorf("bad number %q", s)
		}
	}
	return
}

// index converts a one based index read from the file, checking its range
func (ir *inpReader) index(val, count int, what string) (int, error) {
	if val < 1 || val > count {
		return 0, ir.errorf("%s %d out of range [1,%d]", what, val, count)
	}
	return val - 1, nil
}

// ReadInpFile reads a problem in the legacy .inp format
func ReadInpFile(filename string, verbose bool) (ip *InputParameters.InputParametersAD2D, err error) {
	var (
		file *os.File
	)
	if verbose {
		fmt.Printf("Reading inp file named: %s\n", filename)
	}
	if file, err = os.Open(filename); err != nil {
		return nil, types.NewInputError("unable to open file %s: %v", filename, err)
	}
	defer file.Close()
	return ReadInp(file)
}

// ReadInp parses the .inp format. Node, element, face and BC data numbers in
// the file are one based and are returned zero based. The U V section is
// optional.
func ReadInp(r io.Reader) (ip *InputParameters.InputParametersAD2D, err error) {
	ir := &inpReader{reader: bufio.NewReader(r)}
	ip = &InputParameters.InputParametersAD2D{Title: "Untitled Problem"}
	if err = ir.readSizes(ip); err != nil {
		return nil, err
	}
	if err = ir.readFunctions(ip); err != nil {
		return nil, err
	}
	if err = ir.readNodes(ip); err != nil {
		return nil, err
	}
	if err = ir.readElements(ip); err != nil {
		return nil, err
	}
	if err = ir.readBCs(ip); err != nil {
		return nil, err
	}
	if ip.UV, err = ir.readUV(ip.NN); err != nil {
		return nil, err
	}
	return
}

func (ir *inpReader) readSizes(ip *InputParameters.InputParametersAD2D) (err error) {
	var (
		f    []string
		vals []int
	)
	if err = ir.locate(headerSizes); err != nil {
		return
	}
	if f, err = ir.fields(5); err != nil {
		return
	}
	if vals, err = ir.ints(f[:5]); err != nil {
		return
	}
	shape, ok := inpShapeCodes[vals[0]]
	if !ok {
		return ir.errorf("eType %d, must be 1 (quad) or 2 (tri)", vals[0])
	}
	ip.EType = InputParameters.Literal(shape)
	ip.NE, ip.NN, ip.NEN, ip.NGP = vals[1], vals[2], vals[3], vals[4]
	if ip.NE < 1 || ip.NN < 1 || ip.NEN < 1 {
		return ir.errorf("NE, NN and NEN must be positive, have %d, %d, %d", ip.NE, ip.NN, ip.NEN)
	}
	return
}

func (ir *inpReader) readFunctions(ip *InputParameters.InputParametersAD2D) (err error) {
	if err = ir.locate(headerFunctions); err != nil {
		return
	}
	for _, dst := range []*InputParameters.Literal{
		&ip.Functions.A, &ip.Functions.V1, &ip.Functions.V2,
		&ip.Functions.C, &ip.Functions.F, &ip.Functions.ExactSoln,
	} {
		if ir.eof {
			return types.NewInputError("inp: unexpected end of file in coefficient functions")
		}
		*dst = InputParameters.Literal(strings.TrimSpace(ir.readLine()))
	}
	return
}

// readNodes accepts the nodes in any order, each line carries its number
func (ir *inpReader) readNodes(ip *InputParameters.InputParametersAD2D) (err error) {
	if err = ir.locate(headerNodes); err != nil {
		return
	}
	ip.Nodes = make([][]float64, ip.NN)
	for i := 0; i < ip.NN; i++ {
		var (
			f    []string
			n    int
			vals []int
			xy   []float64
		)
		if f, err = ir.fields(3); err != nil {
			return
		}
		if vals, err = ir.ints(f[:1]); err != nil {
			return
		}
		if n, err = ir.index(vals[0], ip.NN, "node"); err != nil {
			return
		}
		if xy, err = ir.floats(f[1:3]); err != nil {
			return
		}
		ip.Nodes[n] = xy
	}
	for i, nd := range ip.Nodes {
		if nd == nil {
			return types.NewInputError("inp: node %d missing", i+1)
		}
	}
	return
}

func (ir *inpReader) readElements(ip *InputParameters.InputParametersAD2D) (err error) {
	if err = ir.locate(headerElements); err != nil {
		return
	}
	ip.LtoG = make([][]int, ip.NE)
	for i := 0; i < ip.NE; i++ {
		var (
			f    []string
			vals []int
			k    int
		)
		if f, err = ir.fields(ip.NEN + 1); err != nil {
			return
		}
		if vals, err = ir.ints(f[:ip.NEN+1]); err != nil {
			return
		}
		if k, err = ir.index(vals[0], ip.NE, "element"); err != nil {
			return
		}
		conn := make([]int, ip.NEN)
		for j := range conn {
			if conn[j], err = ir.index(vals[j+1], ip.NN, "node"); err != nil {
				return
			}
		}
		ip.LtoG[k] = conn
	}
	for k, conn := range ip.LtoG {
		if conn == nil {
			return types.NewInputError("inp: element %d missing", k+1)
		}
	}
	return
}

func (ir *inpReader) readBCs(ip *InputParameters.InputParametersAD2D) (err error) {
	var (
		f      []string
		counts []int
		table  [][]float64
	)
	if err = ir.locate(headerBCData); err != nil {
		return
	}
	if f, err = ir.fields(1); err != nil {
		return
	}
	if counts, err = ir.ints(f[:1]); err != nil {
		return
	}
	table = make([][]float64, counts[0])
	for i := range table {
		if f, err = ir.fields(2); err != nil {
			return
		}
		if table[i], err = ir.floats(f[1:]); err != nil {
			return
		}
	}
	if err = ir.locate(headerBCCounts); err != nil {
		return
	}
	if f, err = ir.fields(3); err != nil {
		return
	}
	if counts, err = ir.ints(f[:3]); err != nil {
		return
	}
	// Each row is [node | element face] BCno
	readRows := func(header *regexp.Regexp, count, nidx int) (rows []InputParameters.BCEntry, err error) {
		if err = ir.locate(header); err != nil {
			return
		}
		for i := 0; i < count; i++ {
			var (
				vals []int
				bc   int
				row  InputParameters.BCEntry
			)
			if f, err = ir.fields(nidx + 1); err != nil {
				return
			}
			if vals, err = ir.ints(f[:nidx+1]); err != nil {
				return
			}
			if bc, err = ir.index(vals[nidx], len(table), "BCno"); err != nil {
				return
			}
			if nidx == 1 {
				if row.Node, err = ir.index(vals[0], ip.NN, "node"); err != nil {
					return
				}
			} else {
				if row.Element, err = ir.index(vals[0], ip.NE, "element"); err != nil {
					return
				}
				if row.Face, err = ir.index(vals[1], ip.NEN, "face"); err != nil {
					return
				}
			}
			row.Data = append([]float64(nil), table[bc]...)
			rows = append(rows, row)
		}
		return
	}
	if ip.BCs.EBC, err = readRows(headerEBC, counts[0], 1); err != nil {
		return
	}
	if ip.BCs.NBC, err = readRows(headerNBC, counts[1], 2); err != nil {
		return
	}
	ip.BCs.MBC, err = readRows(headerMBC, counts[2], 2)
	return
}

// readUV returns nil when the section is absent or empty
func (ir *inpReader) readUV(NN int) (UV [][]float64, err error) {
	if ir.locate(headerUV) != nil {
		return nil, nil
	}
	UV = [][]float64{make([]float64, NN), make([]float64, NN)}
	for i := 0; i < NN; i++ {
		var (
			vals []float64
			nv   []int
			n    int
		)
		if ir.eof {
			return nil, nil
		}
		f := strings.Fields(ir.readLine())
		if len(f) == 0 {
			return nil, nil
		}
		if len(f) < 3 {
			return nil, ir.errorf("have %d values, need node U V", len(f))
		}
		if nv, err = ir.ints(f[:1]); err != nil {
			return
		}
		if n, err = ir.index(nv[0], NN, "node"); err != nil {
			return
		}
		if vals, err = ir.floats(f[1:3]); err != nil {
			return
		}
		UV[0][n], UV[1][n] = vals[0], vals[1]
	}
	return
}
