// SPDX-License-Identifier: MIT

package trajectory

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// tokenReader yields whitespace separated tokens and remembers how many it
// has consumed, for error messages.
type tokenReader struct {
	sc  *bufio.Scanner
	pos int
}

func newTokenReader(r io.Reader) *tokenReader {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)

	return &tokenReader{sc: sc}
}

func (tr *tokenReader) next(what string) (string, error) {
	if !tr.sc.Scan() {
		if err := tr.sc.Err(); err != nil {
			return "", fmt.Errorf("reading %s: %w", what, err)
		}

		return "", fmt.Errorf("token %d (%s): unexpected end of input: %w", tr.pos, what, ErrMalformed)
	}
	tr.pos++

	return tr.sc.Text(), nil
}

// end reports an error unless the input is exhausted.
func (tr *tokenReader) end() error {
	if tr.sc.Scan() {
		return fmt.Errorf("token %d: unexpected %q after the last trajectory: %w", tr.pos+1, tr.sc.Text(), ErrMalformed)
	}
	if err := tr.sc.Err(); err != nil {
		return fmt.Errorf("reading past the last trajectory: %w", err)
	}

	return nil
}

// count reads a non-negative integer.
func (tr *tokenReader) count(what string) (int, error) {
	tok, err := tr.next(what)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(tok)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("token %d (%s): %q is not a count: %w", tr.pos, what, tok, ErrMalformed)
	}

	return n, nil
}

func (tr *tokenReader) float(what string) (float64, error) {
	tok, err := tr.next(what)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, fmt.Errorf("token %d (%s): %q is not a number: %w", tr.pos, what, tok, ErrMalformed)
	}

	return v, nil
}

// ReadDataset parses the ASCII dataset format:
//
//	<class count> <dim>
//	per class:      <trajectory count>
//	per trajectory: <point count> then <point count> lines of <dim> numbers
//
// Tokens may be separated by any whitespace. The result is validated.
//
// Errors: ErrMalformed for syntax problems, Validate errors otherwise.
func ReadDataset(r io.Reader) (*Dataset, error) {
	tr := newTokenReader(r)

	classes, err := tr.count("class count")
	if err != nil {
		return nil, fmt.Errorf("trajectory.ReadDataset: %w", err)
	}
	dim, err := tr.count("dimension")
	if err != nil {
		return nil, fmt.Errorf("trajectory.ReadDataset: %w", err)
	}

	// Counts come from the file, so slices grow with the tokens actually
	// read instead of being sized up front.
	ds := &Dataset{Dim: dim}
	var c, k, t, d int
	for c = 0; c < classes; c++ {
		nTraj, err := tr.count("trajectory count")
		if err != nil {
			return nil, fmt.Errorf("trajectory.ReadDataset: class %d: %w", c, err)
		}
		var cls []Trajectory
		for k = 0; k < nTraj; k++ {
			nPts, err := tr.count("point count")
			if err != nil {
				return nil, locErrorf("ReadDataset", c, k, err)
			}
			var pts [][]float64
			for t = 0; t < nPts; t++ {
				var p []float64
				for d = 0; d < dim; d++ {
					v, err := tr.float("coordinate")
					if err != nil {
						return nil, locErrorf("ReadDataset", c, k, err)
					}
					p = append(p, v)
				}
				pts = append(pts, p)
			}
			cls = append(cls, Trajectory{Points: pts})
		}
		ds.Classes = append(ds.Classes, cls)
	}
	if err = tr.end(); err != nil {
		return nil, fmt.Errorf("trajectory.ReadDataset: %w", err)
	}
	if err = ds.Validate(); err != nil {
		return nil, err
	}

	return ds, nil
}

// LoadDataset opens path and parses it with ReadDataset.
func LoadDataset(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("trajectory.LoadDataset: %w", err)
	}
	defer f.Close()

	ds, err := ReadDataset(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return ds, nil
}

// WriteDataset writes ds in the format read by ReadDataset. Numbers use the
// shortest representation that parses back to the same float64.
func WriteDataset(w io.Writer, ds *Dataset) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d\n%d\n", len(ds.Classes), ds.Dim)

	var sb strings.Builder
	for _, cls := range ds.Classes {
		fmt.Fprintf(bw, "%d\n", len(cls))
		for _, tr := range cls {
			fmt.Fprintf(bw, "%d\n", tr.Len())
			for _, p := range tr.Points {
				sb.Reset()
				for d, v := range p {
					if d > 0 {
						sb.WriteByte(' ')
					}
					sb.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
				}
				sb.WriteByte('\n')
				bw.WriteString(sb.String())
			}
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("trajectory.WriteDataset: %w", err)
	}

	return nil
}

// SaveDataset writes ds to path, truncating any existing file.
func SaveDataset(path string, ds *Dataset) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("trajectory.SaveDataset: %w", err)
	}
	if err = WriteDataset(f, ds); err != nil {
		f.Close()

		return err
	}

	return f.Close()
}
