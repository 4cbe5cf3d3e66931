// SPDX-License-Identifier: MIT

package model

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/katalvlaran/asvm/kernel"
)

// Write serializes c in the ASCII model format, one item per line:
//
//	kernel name, dim, lambda, bias, nAlpha, nBeta
//	anchor (dim values)
//	alpha coefficients, alpha labels
//	beta coefficients (a single 0.0 when nBeta is 0)
//	gamma (dim values)
//	nAlpha lines of dim coordinates
//	nBeta lines of dim coordinates followed by dim velocity components
//
// Numbers use the shortest form that parses back to the same float64, so
// Read reproduces c exactly.
func Write(w io.Writer, c *Classifier) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s\n%d\n%s\n%s\n%d\n%d\n",
		c.kp.Kind, c.dim, ftoa(c.kp.Lambda), ftoa(c.bias), len(c.alpha), len(c.beta))

	writeVec(bw, c.anchor)
	writeVec(bw, c.alpha)
	writeVec(bw, c.labels)
	if len(c.beta) == 0 {
		bw.WriteString("0.0\n")
	} else {
		writeVec(bw, c.beta)
	}
	writeVec(bw, c.gamma)
	for _, sv := range c.svA {
		writeVec(bw, sv)
	}
	for j, z := range c.svB {
		writeVec(bw, append(append(make([]float64, 0, 2*c.dim), z...), c.velB[j]...))
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("model.Write: %w", err)
	}

	return nil
}

func ftoa(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

func writeVec(bw *bufio.Writer, v []float64) {
	for i, x := range v {
		if i > 0 {
			bw.WriteByte(' ')
		}
		bw.WriteString(ftoa(x))
	}
	bw.WriteByte('\n')
}

// Save writes c to path, truncating any existing file.
func Save(path string, c *Classifier) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("model.Save: %w", err)
	}
	if err = Write(f, c); err != nil {
		f.Close()

		return err
	}

	return f.Close()
}

// Load opens path and parses it with Read.
func Load(path string) (*Classifier, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("model.Load: %w", err)
	}
	defer f.Close()

	c, err := Read(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return c, nil
}

// Read parses the format produced by Write.
//
// Errors: ErrMalformed for syntax or shape problems, kernel errors for an
// unknown kernel or invalid lambda.
func Read(r io.Reader) (*Classifier, error) {
	sc := &scanner{sc: bufio.NewScanner(r)}
	sc.sc.Split(bufio.ScanWords)

	name := sc.token("kernel")
	dim := sc.count("dim")
	lambda := sc.float("lambda")
	bias := sc.float("bias")
	nA := sc.count("alpha count")
	nB := sc.count("beta count")
	if sc.err != nil {
		return nil, sc.err
	}
	kind, err := kernel.ParseKind(name)
	if err != nil {
		return nil, fmt.Errorf("model.Read: %w", err)
	}
	kp := kernel.Params{Kind: kind, Lambda: lambda}
	eng, err := kernel.NewEngine(kp, dim)
	if err != nil {
		return nil, fmt.Errorf("model.Read: %w", err)
	}
	if nA == 0 {
		return nil, fmt.Errorf("model.Read: zero alpha support vectors: %w", ErrMalformed)
	}

	c := &Classifier{kp: kp, eng: eng, dim: dim, bias: bias}
	c.anchor = sc.vec("anchor", dim)
	c.alpha = sc.vec("alpha", nA)
	c.labels = sc.vec("labels", nA)
	if nB == 0 {
		sc.float("beta placeholder")
	} else {
		c.beta = sc.vec("beta", nB)
	}
	c.gamma = sc.vec("gamma", dim)
	for i := 0; i < nA && sc.err == nil; i++ {
		c.svA = append(c.svA, sc.vec("alpha support point", dim))
	}
	for j := 0; j < nB && sc.err == nil; j++ {
		row := sc.vec("beta support point", 2*dim)
		if row != nil {
			c.svB = append(c.svB, row[:dim:dim])
			c.velB = append(c.velB, row[dim:])
		}
	}
	sc.end()
	if sc.err != nil {
		return nil, sc.err
	}
	for i, y := range c.labels {
		if y != 1 && y != -1 {
			return nil, fmt.Errorf("model.Read: label %d is %g: %w", i, y, ErrMalformed)
		}
	}

	return c, nil
}

// scanner reads whitespace separated tokens and keeps the first error.
type scanner struct {
	sc  *bufio.Scanner
	pos int
	err error
}

func (s *scanner) token(what string) string {
	if s.err != nil {
		return ""
	}
	if !s.sc.Scan() {
		if err := s.sc.Err(); err != nil {
			s.err = fmt.Errorf("model.Read: %s: %w", what, err)
		} else {
			s.err = fmt.Errorf("model.Read: token %d (%s): unexpected end of input: %w", s.pos, what, ErrMalformed)
		}

		return ""
	}
	s.pos++

	return s.sc.Text()
}

func (s *scanner) count(what string) int {
	tok := s.token(what)
	if s.err != nil {
		return 0
	}
	n, err := strconv.Atoi(tok)
	if err != nil || n < 0 {
		s.err = fmt.Errorf("model.Read: token %d (%s): %q is not a count: %w", s.pos, what, tok, ErrMalformed)

		return 0
	}

	return n
}

func (s *scanner) float(what string) float64 {
	tok := s.token(what)
	if s.err != nil {
		return 0
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		s.err = fmt.Errorf("model.Read: token %d (%s): %q is not a number: %w", s.pos, what, tok, ErrMalformed)

		return 0
	}

	return v
}

// vec reads n numbers. n comes from the file, so out grows with the
// tokens actually present.
func (s *scanner) vec(what string, n int) []float64 {
	var out []float64
	for i := 0; i < n && s.err == nil; i++ {
		v := s.float(what)
		out = append(out, v)
	}
	if s.err != nil {
		return nil
	}

	return out
}

// end records an error unless the input is exhausted.
func (s *scanner) end() {
	if s.err != nil {
		return
	}
	if s.sc.Scan() {
		s.err = fmt.Errorf("model.Read: token %d: unexpected %q after the model: %w", s.pos+1, s.sc.Text(), ErrMalformed)

		return
	}
	if err := s.sc.Err(); err != nil {
		s.err = fmt.Errorf("model.Read: %w", err)
	}
}
