package helpers

import (
	"encoding/json"
	"reflect"

	"github.com/invopop/jsonschema"
)

var jsonSchemaReflector = jsonschema.Reflector{
	Anonymous:                 true,
	AllowAdditionalProperties: false,
	DoNotReference:            true,
	ExpandedStruct:            true,
}

// ConvertToInputSchema reflects args into a generic JSON schema map,
// suitable for embedding into prompts or tool definitions.
func ConvertToInputSchema(args any) (map[string]any, error) {
	jsonSchema := jsonSchemaReflector.ReflectFromType(reflect.TypeOf(args))

	schemaBytes, err := json.Marshal(jsonSchema)
	if err != nil {
		return nil, err
	}
	var inputSchema map[string]any
	if err := json.Unmarshal(schemaBytes, &inputSchema); err != nil {
		return nil, err
	}

	return inputSchema, nil
}
