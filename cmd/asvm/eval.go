package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/asvm/model"
)

func (a *app) evalCmd() *cobra.Command {
	var modelPath, pointsPath string
	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Evaluate a model on probe points",
		Long: `Print "value label grad_1 ... grad_dim" for every probe point.

The points file holds one point per line, dim numbers separated by spaces.
Blank lines and lines starting with # are skipped.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			c, err := model.Load(modelPath)
			if err != nil {
				return err
			}
			f, err := os.Open(pointsPath)
			if err != nil {
				return err
			}
			defer f.Close()

			n, err := evaluate(a.out, c, f)
			a.logger.Info("evaluated", zap.String("model", modelPath), zap.Int("points", n))

			return err
		},
	}
	cmd.Flags().StringVar(&modelPath, "model", "", "model file (required)")
	cmd.Flags().StringVar(&pointsPath, "points", "", "probe points file (required)")
	_ = cmd.MarkFlagRequired("model")
	_ = cmd.MarkFlagRequired("points")

	return cmd
}

// evaluate writes one result line per point read from r and returns the
// number of points.
func evaluate(w io.Writer, c *model.Classifier, r io.Reader) (int, error) {
	sc := bufio.NewScanner(r)
	bw := bufio.NewWriter(w)
	var n, line int
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		x := make([]float64, len(fields))
		for i, tok := range fields {
			v, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return n, fmt.Errorf("line %d: %q is not a number", line, tok)
			}
			x[i] = v
		}
		val, err := c.Value(x)
		if err != nil {
			return n, fmt.Errorf("line %d: %w", line, err)
		}
		grad, _ := c.Gradient(x)
		label, _ := c.Classify(x)

		bw.WriteString(ftoa(val))
		bw.WriteByte(' ')
		bw.WriteString(ftoa(label))
		for _, g := range grad {
			bw.WriteByte(' ')
			bw.WriteString(ftoa(g))
		}
		bw.WriteByte('\n')
		n++
	}
	if err := sc.Err(); err != nil {
		return n, err
	}

	return n, bw.Flush()
}

func ftoa(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
