package config

import (
	"github.com/cdnjs/sri-tools/util"

	"github.com/xeipuuv/gojsonschema"
)

// Schema is the JSON schema configuration files are validated against.
var Schema = initSchema()

func initSchema() *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(SchemaString))
	util.Check(err)
	return s
}

// SchemaString is the stringified configuration schema.
const SchemaString = `{
    "$schema": "http://json-schema.org/draft-07/schema#",
    "type": "object",
    "properties": {
        "algorithm": {
            "description": "Default hash algorithm for integrity strings.",
            "type": "string",
            "enum": ["sha256", "sha384", "sha512", "SHA-256", "SHA-384", "SHA-512"]
        },
        "queryKeys": {
            "description": "Query parameters naming the resource when the URL path does not, in priority order.",
            "type": "array",
            "minItems": 1,
            "uniqueItems": true,
            "items": {
                "type": "string",
                "minLength": 1
            }
        },
        "origin": {
            "description": "Origin sent by the reachability probe.",
            "type": "string",
            "pattern": "^https?://[^/]+$"
        },
        "probe": {
            "description": "Whether remote resources are probed before being fetched.",
            "type": "boolean"
        },
        "include": {
            "description": "Glob patterns a file must match to be hashed in directory mode.",
            "type": "array",
            "items": {
                "type": "string",
                "minLength": 1
            }
        },
        "exclude": {
            "description": "Glob patterns excluding files in directory mode.",
            "type": "array",
            "items": {
                "type": "string",
                "minLength": 1
            }
        }
    },
    "additionalProperties": false
}`
