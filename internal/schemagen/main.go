// Command schemagen generates the JSON schema for rules files.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/invopop/jsonschema"

	"github.com/tabcast/tabcast/pkg/rules"
)

var outFile = flag.String("o", "schema.json", "Output file for the generated schema")

func main() {
	flag.Parse()

	r := &jsonschema.Reflector{
		DoNotReference: false,
	}

	err := r.AddGoComments("github.com/tabcast/tabcast", "./")
	if err != nil {
		log.Fatalf("add go comments: %v", err)
	}

	jss := r.Reflect(&rules.RuleSet{})

	jsData, err := json.MarshalIndent(jss, "", "    ")
	if err != nil {
		log.Fatalf("marshal JSON schema: %v", err)
	}

	// Write schema.json file.
	err = os.WriteFile(*outFile, append(jsData, '\n'), 0o600)
	if err != nil {
		log.Fatalf("write schema file: %v", err)
	}
}
