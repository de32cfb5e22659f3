package main

import (
	"encoding/json"
	"os"

	"github.com/curlpit-sh/cli/internal/configfile"
	"github.com/invopop/jsonschema"
)

func main() {
	r := &jsonschema.Reflector{}
	r.ExpandedStruct = true
	err := r.AddGoComments("github.com/curlpit-sh/cli", "./internal/configfile/")
	if err != nil {
		panic(err)
	}
	schema := r.Reflect(&configfile.Config{})
	schema.ID = "https://curlpit.sh/curlpit-install.schema.json"

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	err = encoder.Encode(schema)
	if err != nil {
		panic(err)
	}
}
