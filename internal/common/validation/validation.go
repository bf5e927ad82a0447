// Package validation checks request bodies against JSON schemas before the
// mock handlers run.
package validation

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const loginSchema = `{
	"type": "object",
	"required": ["email", "password"],
	"properties": {
		"email":    {"type": "string", "minLength": 1},
		"password": {"type": "string"}
	}
}`

const registerSchema = `{
	"type": "object",
	"required": ["name", "email", "password"],
	"properties": {
		"name":     {"type": "string", "minLength": 1},
		"email":    {"type": "string", "minLength": 1},
		"password": {"type": "string"}
	}
}`

const orderSchema = `{
	"type": "object",
	"required": ["items"],
	"properties": {
		"items": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["menuId", "description", "price"],
				"properties": {
					"menuId":      {"type": "integer"},
					"description": {"type": "string"},
					"price":       {"type": "number"}
				}
			}
		}
	}
}`

var (
	loginValidator    = mustCompile(loginSchema)
	registerValidator = mustCompile(registerSchema)
	orderValidator    = mustCompile(orderSchema)
)

func mustCompile(raw string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(raw))
	if err != nil {
		panic(fmt.Sprintf("invalid schema: %v", err))
	}
	return schema
}

// ValidateLogin checks a login request body.
func ValidateLogin(body []byte) error {
	return validate(loginValidator, body)
}

// ValidateRegister checks a registration request body.
func ValidateRegister(body []byte) error {
	return validate(registerValidator, body)
}

// ValidateOrder checks an order submission body.
func ValidateOrder(body []byte) error {
	return validate(orderValidator, body)
}

func validate(schema *gojsonschema.Schema, body []byte) error {
	result, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		msgs = append(msgs, desc.String())
	}
	return fmt.Errorf("body validation failed: %s", strings.Join(msgs, "; "))
}
