package govlang_test

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/gosuda/govlang"
)

type scenarioFile struct {
	Scenarios []scenario `yaml:"scenarios"`
}

type scenario struct {
	Name   string `yaml:"name"`
	Stdin  string `yaml:"stdin"`
	Source string `yaml:"source"`
	Stdout string `yaml:"stdout"`
}

func TestScenarios(t *testing.T) {
	data, err := os.ReadFile("testdata/scenarios.yaml")
	if err != nil {
		t.Fatalf("read scenarios: %v", err)
	}

	var file scenarioFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		t.Fatalf("decode scenarios: %v", err)
	}
	if len(file.Scenarios) == 0 {
		t.Fatal("no scenarios found")
	}

	for _, sc := range file.Scenarios {
		t.Run(sc.Name, func(t *testing.T) {
			var out, diag bytes.Buffer
			err := govlang.Interpret(sc.Source, strings.NewReader(sc.Stdin), &out, &diag)
			if err != nil {
				t.Fatalf("interpret failed: %v (diag: %s)", err, diag.String())
			}
			if out.String() != sc.Stdout {
				t.Fatalf("stdout mismatch\nwant: %q\ngot:  %q\ndiag: %s", sc.Stdout, out.String(), diag.String())
			}
		})
	}
}
