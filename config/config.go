// SPDX-License-Identifier: MIT

package config

import (
	"bufio"
	"bytes"
	"fmt"
	"math"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/asvm/smo"
)

// Solver holds the solver parameters of a parameter file.
type Solver struct {
	C                 float64       `yaml:"C" validate:"finite,gt=0"`
	ClassificationTol float64       `yaml:"classification_tol" validate:"finite,gt=0"`
	LyapunovTol       float64       `yaml:"lyapunov_tol" validate:"finite,gt=0"`
	MaxEval           int           `yaml:"max_eval" validate:"gte=1"`
	Verbose           bool          `yaml:"verbose"`
	TimeLimit         time.Duration `yaml:"time_limit" validate:"gte=0"`
}

// Default returns the solver defaults.
func Default() Solver {
	return Solver{
		C:                 smo.DefaultC,
		ClassificationTol: smo.DefaultClassificationTol,
		LyapunovTol:       smo.DefaultLyapunovTol,
		MaxEval:           smo.DefaultMaxEval,
	}
}

var (
	validate *validator.Validate

	// yamlKeys holds the top-level keys of a YAML parameter file.
	yamlKeys = map[string]struct{}{}
)

func init() {
	validate = validator.New()
	if err := validate.RegisterValidation("finite", validateFinite); err != nil {
		panic(err)
	}

	t := reflect.TypeOf(Solver{})
	for i := 0; i < t.NumField(); i++ {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("yaml"), ",")
		yamlKeys[name] = struct{}{}
	}
}

func validateFinite(fl validator.FieldLevel) bool {
	f := fl.Field()
	if f.Kind() != reflect.Float64 && f.Kind() != reflect.Float32 {
		return true
	}
	v := f.Float()

	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Validate checks every field against its tags.
func (s Solver) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	return nil
}

// SolverOptions converts s into smo options. s must be valid.
func (s Solver) SolverOptions() []smo.Option {
	return []smo.Option{
		smo.WithC(s.C),
		smo.WithClassificationTol(s.ClassificationTol),
		smo.WithLyapunovTol(s.LyapunovTol),
		smo.WithMaxEval(s.MaxEval),
		smo.WithTimeLimit(s.TimeLimit),
		smo.WithVerbose(s.Verbose),
	}
}

// Parse decodes data on top of Default and validates the result.
// A document whose meaningful lines contain no ':' is read as the legacy
// `key value` format.
//
// Errors: ErrMalformed, ErrUnknownKey, ErrInvalid.
func Parse(data []byte) (Solver, error) {
	s := Default()
	var err error
	if isLegacy(data) {
		err = parseLegacy(data, &s)
	} else {
		err = parseYAML(data, &s)
	}
	if err != nil {
		return Solver{}, err
	}
	if err = s.Validate(); err != nil {
		return Solver{}, err
	}

	return s, nil
}

// Load reads and parses the file at path.
func Load(path string) (Solver, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Solver{}, fmt.Errorf("config.Load: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return Solver{}, fmt.Errorf("%s: %w", path, err)
	}

	return s, nil
}

func isLegacy(data []byte) bool {
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := stripComment(sc.Text())
		if line == "" || line == "---" {
			continue
		}
		if strings.Contains(line, ":") {
			return false
		}
	}

	return true
}

func stripComment(line string) string {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}

	return strings.TrimSpace(line)
}

// parseYAML checks the top-level keys on the node tree before decoding, so
// an unknown key is told apart from a bad value without reading error text.
func parseYAML(data []byte, s *Solver) error {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	root := &doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return nil
		}
		root = root.Content[0]
	}
	if root.Kind == 0 {
		return nil
	}
	if root.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: want a mapping of solver parameters: %w", root.Line, ErrMalformed)
	}
	for i := 0; i < len(root.Content); i += 2 {
		key := root.Content[i]
		if _, ok := yamlKeys[key.Value]; !ok {
			return fmt.Errorf("line %d: %q: %w", key.Line, key.Value, ErrUnknownKey)
		}
	}
	if err := root.Decode(s); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	return nil
}

func parseLegacy(data []byte, s *Solver) error {
	sc := bufio.NewScanner(bytes.NewReader(data))
	for n := 1; sc.Scan(); n++ {
		line := stripComment(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return fmt.Errorf("line %d: want `key value`, got %q: %w", n, line, ErrMalformed)
		}
		if err := setLegacy(s, fields[0], fields[1]); err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	return nil
}

func setLegacy(s *Solver, key, val string) error {
	var err error
	switch key {
	case "C":
		s.C, err = strconv.ParseFloat(val, 64)
	case "classification_tol":
		s.ClassificationTol, err = strconv.ParseFloat(val, 64)
	case "lyapunov_tol":
		s.LyapunovTol, err = strconv.ParseFloat(val, 64)
	case "max_eval":
		s.MaxEval, err = parseCount(val)
	case "verbose":
		s.Verbose, err = strconv.ParseBool(val)
	case "time_limit":
		s.TimeLimit, err = parseDuration(val)
	default:
		return fmt.Errorf("%q: %w", key, ErrUnknownKey)
	}
	if err != nil {
		return fmt.Errorf("%s %q: %w", key, val, ErrMalformed)
	}

	return nil
}

// parseCount accepts an integer written in any float notation, e.g. 1e6.
func parseCount(val string) (int, error) {
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || math.Abs(f) > 1<<53 {
		return 0, fmt.Errorf("%g is not an integer", f)
	}

	return int(f), nil
}

// parseDuration accepts a Go duration or a plain number of seconds.
func parseDuration(val string) (time.Duration, error) {
	if d, err := time.ParseDuration(val); err == nil {
		return d, nil
	}
	sec, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, err
	}

	return time.Duration(sec * float64(time.Second)), nil
}
