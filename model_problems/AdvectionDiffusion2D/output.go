package AdvectionDiffusion2D

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ghodss/yaml"

	"github.com/notargets/gofem2d/types"
)

// Result is the content of the solution file
type Result struct {
	Title    string    `json:"title"`
	NN       int       `json:"NN"`
	T        []float64 `json:"T"`
	ErrorRMS *float64  `json:"errorRMS,omitempty"`
	ErrorMAX *float64  `json:"errorMAX,omitempty"`
}

func (c *AD2D) Result() (r *Result) {
	r = &Result{
		Title: c.Problem.Title,
		NN:    c.Problem.NN(),
		T:     c.T,
	}
	if rms, max, ok := c.ErrorNorms(); ok {
		r.ErrorRMS, r.ErrorMAX = &rms, &max
	}
	return
}

// Marshal encodes the result as YAML for .yaml and .yml file names and as
// JSON otherwise
func (r *Result) Marshal(filename string) (data []byte, err error) {
	if data, err = yaml.Marshal(r); err != nil {
		return
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return
	}
	return yaml.YAMLToJSON(data)
}

func (r *Result) Write(filename string) (err error) {
	var (
		data []byte
	)
	if data, err = r.Marshal(filename); err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	if err = os.WriteFile(filename, data, 0644); err != nil {
		return types.NewInputError("unable to write result file %s: %v", filename, err)
	}
	return
}

func ReadResult(filename string) (r *Result, err error) {
	var (
		data []byte
	)
	if data, err = os.ReadFile(filename); err != nil {
		return nil, types.NewInputError("unable to read result file %s: %v", filename, err)
	}
	r = &Result{}
	if err = yaml.Unmarshal(data, r); err != nil {
		return nil, types.NewInputError("unable to parse result file %s: %v", filename, err)
	}
	return
}

var convergenceHeader = []string{"title", "NN", "NE", "NGP", "hmax", "RMS", "MAX"}

// AppendConvergence adds one row per run to a CSV file for convergence
// studies, read by tools/convOrder. The header is written with the first row.
func (c *AD2D) AppendConvergence(filename string) (err error) {
	var (
		file     *os.File
		rms, max float64
		ok       bool
		p        = c.Problem
		newFile  bool
	)
	if rms, max, ok = c.ErrorNorms(); !ok {
		return types.NewConfigurationError("convergence output needs an exact solution")
	}
	if _, statErr := os.Stat(filename); os.IsNotExist(statErr) {
		newFile = true
	}
	if file, err = os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644); err != nil {
		return types.NewInputError("unable to open convergence file %s: %v", filename, err)
	}
	w := csv.NewWriter(file)
	if newFile {
		if err = w.Write(convergenceHeader); err != nil {
			file.Close()
			return
		}
	}
	ff := func(v float64) string { return strconv.FormatFloat(v, 'e', 10, 64) }
	if err = w.Write([]string{
		p.Title, strconv.Itoa(p.NN()), strconv.Itoa(p.NE()), strconv.Itoa(len(p.Rule)),
		ff(p.Mesh.MaxEdgeLength()), ff(rms), ff(max),
	}); err != nil {
		file.Close()
		return
	}
	w.Flush()
	if err = w.Error(); err != nil {
		file.Close()
		return
	}
	if err = file.Close(); err != nil {
		return types.NewInputError("unable to close convergence file %s: %v", filename, err)
	}
	return
}
