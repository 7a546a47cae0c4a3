// Command jsonexpr evaluates JSON expressions.
//
// With -e or positional arguments, each expression is evaluated and the
// result printed as JSON. With no expressions, it starts a line-edited
// REPL. Bindings come from repeated -given name=value definitions and
// from a -bindings file in JSON or YAML.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"
	"gopkg.in/yaml.v3"

	"github.com/prattle-lang/prattle/jsonexpr"
)

func main() {
	log.SetFlags(0)
	var (
		expr     string
		bindfile string
		bindings = map[string]any{}
	)
	given := func(s string) error {
		d := strings.SplitN(s, "=", 2)
		if len(d) != 2 {
			return fmt.Errorf(`binding definitions must be "name=value", not %q`, s)
		}
		var v any
		if err := json.Unmarshal([]byte(d[1]), &v); err != nil {
			// Not JSON; treat the value as a bare string.
			v = strings.TrimSpace(d[1])
		}
		bindings[strings.TrimSpace(d[0])] = v
		return nil
	}
	flag.StringVar(&expr, "e", "", "expression to evaluate")
	flag.StringVar(&bindfile, "bindings", "", "JSON or YAML file of bindings")
	flag.Func("given", "name=value binding definition (any number of times)", given)
	flag.Parse()

	if bindfile != "" {
		loaded, err := loadBindings(bindfile)
		if err != nil {
			log.Fatal(err)
		}
		// -given definitions win over the file.
		for k, v := range loaded {
			if _, ok := bindings[k]; !ok {
				bindings[k] = v
			}
		}
	}

	exprs := flag.Args()
	if expr != "" {
		exprs = append([]string{expr}, exprs...)
	}
	if len(exprs) == 0 {
		repl(bindings)
		return
	}
	for _, src := range exprs {
		v, err := jsonexpr.Parse(src, bindings)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(render(v))
	}
}

func repl(bindings map[string]any) {
	errc := color.New(color.FgRed)
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	for {
		src, err := line.Prompt("> ")
		switch {
		case errors.Is(err, liner.ErrPromptAborted), errors.Is(err, io.EOF):
			fmt.Println()
			return
		case err != nil:
			line.Close()
			log.Fatal(err)
		}
		if strings.TrimSpace(src) == "" {
			continue
		}
		line.AppendHistory(src)
		v, err := jsonexpr.Parse(src, bindings)
		if err != nil {
			errc.Fprintln(os.Stderr, err)
			continue
		}
		fmt.Println(render(v))
	}
}

// loadBindings reads a bindings file, picking the format by extension.
func loadBindings(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bindings file: %w", err)
	}
	m := map[string]any{}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("parse yaml bindings: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("parse json bindings: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported bindings file extension %q", ext)
	}
	for k, v := range m {
		m[k] = normalize(v)
	}
	return m, nil
}

// normalize converts decoded YAML values to the JSON object model the
// expression language works over; in particular YAML decodes integers
// as int rather than float64.
func normalize(v any) any {
	switch v := v.(type) {
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case []any:
		for i, e := range v {
			v[i] = normalize(e)
		}
		return v
	case map[string]any:
		for k, e := range v {
			v[k] = normalize(e)
		}
		return v
	}
	return v
}

// render formats a result as JSON. Function values are not JSON; fall
// back to their Go formatting.
func render(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}
