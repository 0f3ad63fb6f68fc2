// Package testutil provides test utilities and fixtures for unit tests.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"go.yaml.in/yaml/v4"

	"github.com/shigou0206/stepflow-test/parser"
)

// PetstoreYAML is a small OpenAPI 3.0 document in YAML. It decodes to the
// same value as PetstoreJSON and NewPetstoreDocument.
const PetstoreYAML = `openapi: 3.0.3
info:
  title: Petstore
  version: 1.0.0
  license:
    name: MIT
servers:
  - url: https://petstore.example.com/v1
security:
  - apiKey: []
tags:
  - name: pets
paths:
  /pets:
    parameters:
      - name: limit
        in: query
        schema:
          type: integer
    get:
      operationId: listPets
      summary: List all pets
      tags: [pets]
      parameters:
        - name: limit
          in: query
          required: true
          schema:
            type: integer
            format: int32
      responses:
        "200":
          description: A list of pets
          content:
            application/json:
              schema:
                type: array
                items:
                  $ref: '#/components/schemas/Pet'
        default:
          $ref: '#/components/responses/Error'
    post:
      operationId: createPet
      summary: Create a pet
      tags: [pets]
      security: []
      requestBody:
        $ref: '#/components/requestBodies/NewPet'
      responses:
        "201":
          description: Created
  /pets/{petId}:
    get:
      operationId: showPetById
      parameters:
        - $ref: '#/components/parameters/PetId'
      responses:
        "200":
          description: A pet
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Pet'
components:
  schemas:
    Pet:
      type: object
      required: [id, name]
      properties:
        id:
          type: integer
          format: int64
        name:
          type: string
  parameters:
    PetId:
      name: petId
      in: path
      required: true
      schema:
        type: string
  responses:
    Error:
      description: Unexpected error
  requestBodies:
    NewPet:
      required: true
      content:
        application/json:
          schema:
            $ref: '#/components/schemas/Pet'
  securitySchemes:
    apiKey:
      type: apiKey
      name: X-API-Key
      in: header
`

// PetstoreJSON is PetstoreYAML in JSON.
const PetstoreJSON = `{
  "openapi": "3.0.3",
  "info": {"title": "Petstore", "version": "1.0.0", "license": {"name": "MIT"}},
  "servers": [{"url": "https://petstore.example.com/v1"}],
  "security": [{"apiKey": []}],
  "tags": [{"name": "pets"}],
  "paths": {
    "/pets": {
      "parameters": [
        {"name": "limit", "in": "query", "schema": {"type": "integer"}}
      ],
      "get": {
        "operationId": "listPets",
        "summary": "List all pets",
        "tags": ["pets"],
        "parameters": [
          {"name": "limit", "in": "query", "required": true, "schema": {"type": "integer", "format": "int32"}}
        ],
        "responses": {
          "200": {
            "description": "A list of pets",
            "content": {
              "application/json": {
                "schema": {"type": "array", "items": {"$ref": "#/components/schemas/Pet"}}
              }
            }
          },
          "default": {"$ref": "#/components/responses/Error"}
        }
      },
      "post": {
        "operationId": "createPet",
        "summary": "Create a pet",
        "tags": ["pets"],
        "security": [],
        "requestBody": {"$ref": "#/components/requestBodies/NewPet"},
        "responses": {"201": {"description": "Created"}}
      }
    },
    "/pets/{petId}": {
      "get": {
        "operationId": "showPetById",
        "parameters": [{"$ref": "#/components/parameters/PetId"}],
        "responses": {
          "200": {
            "description": "A pet",
            "content": {
              "application/json": {"schema": {"$ref": "#/components/schemas/Pet"}}
            }
          }
        }
      }
    }
  },
  "components": {
    "schemas": {
      "Pet": {
        "type": "object",
        "required": ["id", "name"],
        "properties": {
          "id": {"type": "integer", "format": "int64"},
          "name": {"type": "string"}
        }
      }
    },
    "parameters": {
      "PetId": {"name": "petId", "in": "path", "required": true, "schema": {"type": "string"}}
    },
    "responses": {
      "Error": {"description": "Unexpected error"}
    },
    "requestBodies": {
      "NewPet": {
        "required": true,
        "content": {"application/json": {"schema": {"$ref": "#/components/schemas/Pet"}}}
      }
    },
    "securitySchemes": {
      "apiKey": {"type": "apiKey", "name": "X-API-Key", "in": "header"}
    }
  }
}`

// MinimalYAML is the smallest document that passes the required-field check.
const MinimalYAML = `openapi: 3.0.0
info:
  title: Minimal
  version: "1"
paths: {}
`

// MinimalJSON is MinimalYAML in JSON.
const MinimalJSON = `{"openapi": "3.0.0", "info": {"title": "Minimal", "version": "1"}, "paths": {}}`

// NewMinimalDocument returns the value MinimalYAML and MinimalJSON decode to.
func NewMinimalDocument() *parser.Document {
	return &parser.Document{
		OpenAPI: "3.0.0",
		Info: &parser.Info{
			Title:   "Minimal",
			Version: "1",
		},
		Paths: parser.Paths{},
	}
}

// NewPetstoreDocument returns the value PetstoreYAML and PetstoreJSON decode to.
func NewPetstoreDocument() *parser.Document {
	petRef := &parser.Schema{Ref: "#/components/schemas/Pet"}
	return &parser.Document{
		OpenAPI: "3.0.3",
		Info: &parser.Info{
			Title:   "Petstore",
			Version: "1.0.0",
			License: &parser.License{Name: "MIT"},
		},
		Servers:  []*parser.Server{{URL: "https://petstore.example.com/v1"}},
		Security: []parser.SecurityRequirement{{"apiKey": {}}},
		Tags:     []*parser.Tag{{Name: "pets"}},
		Paths: parser.Paths{
			"/pets": {
				Parameters: []*parser.Parameter{
					{Name: "limit", In: "query", Schema: &parser.Schema{Type: "integer"}},
				},
				Get: &parser.Operation{
					OperationID: "listPets",
					Summary:     "List all pets",
					Tags:        []string{"pets"},
					Parameters: []*parser.Parameter{
						{Name: "limit", In: "query", Required: true, Schema: &parser.Schema{Type: "integer", Format: "int32"}},
					},
					Responses: parser.Responses{
						"200": {
							Description: "A list of pets",
							Content: map[string]*parser.MediaType{
								"application/json": {
									Schema: &parser.Schema{Type: "array", Items: &parser.Schema{Ref: "#/components/schemas/Pet"}},
								},
							},
						},
						"default": {Ref: "#/components/responses/Error"},
					},
				},
				Post: &parser.Operation{
					OperationID: "createPet",
					Summary:     "Create a pet",
					Tags:        []string{"pets"},
					Security:    []parser.SecurityRequirement{},
					RequestBody: &parser.RequestBody{Ref: "#/components/requestBodies/NewPet"},
					Responses: parser.Responses{
						"201": {Description: "Created"},
					},
				},
			},
			"/pets/{petId}": {
				Get: &parser.Operation{
					OperationID: "showPetById",
					Parameters:  []*parser.Parameter{{Ref: "#/components/parameters/PetId"}},
					Responses: parser.Responses{
						"200": {
							Description: "A pet",
							Content: map[string]*parser.MediaType{
								"application/json": {Schema: petRef},
							},
						},
					},
				},
			},
		},
		Components: &parser.Components{
			Schemas: map[string]*parser.Schema{
				"Pet": {
					Type:     "object",
					Required: []string{"id", "name"},
					Properties: map[string]*parser.Schema{
						"id":   {Type: "integer", Format: "int64"},
						"name": {Type: "string"},
					},
				},
			},
			Parameters: map[string]*parser.Parameter{
				"PetId": {Name: "petId", In: "path", Required: true, Schema: &parser.Schema{Type: "string"}},
			},
			Responses: map[string]*parser.Response{
				"Error": {Description: "Unexpected error"},
			},
			RequestBodies: map[string]*parser.RequestBody{
				"NewPet": {
					Required: true,
					Content: map[string]*parser.MediaType{
						"application/json": {Schema: &parser.Schema{Ref: "#/components/schemas/Pet"}},
					},
				},
			},
			SecuritySchemes: map[string]*parser.SecurityScheme{
				"apiKey": {Type: "apiKey", Name: "X-API-Key", In: "header"},
			},
		},
	}
}

// WriteTempYAML marshals a document to YAML and writes it to a temporary file.
// Returns the path to the temporary file.
// The file is automatically cleaned up when the test completes (via t.TempDir).
func WriteTempYAML(t *testing.T, doc any) string {
	t.Helper()

	data, err := yaml.Marshal(doc)
	if err != nil {
		t.Fatalf("Failed to marshal document to YAML: %v", err)
	}
	return WriteTempFile(t, "test.yaml", string(data))
}

// WriteTempJSON marshals a document to JSON and writes it to a temporary file.
// Returns the path to the temporary file.
// The file is automatically cleaned up when the test completes (via t.TempDir).
func WriteTempJSON(t *testing.T, doc any) string {
	t.Helper()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal document to JSON: %v", err)
	}
	return WriteTempFile(t, "test.json", string(data))
}

// WriteTempFile writes content verbatim to name inside a test temp dir.
func WriteTempFile(t *testing.T, name, content string) string {
	t.Helper()

	tmpFile := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(tmpFile, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write temporary file: %v", err)
	}
	return tmpFile
}
