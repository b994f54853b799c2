// Package docs registra la especificación OpenAPI servida en /swagger.
// Mantener en sync con las anotaciones godoc de internal/domain/pets/handler.go.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/cron/decay": {
            "post": {
                "description": "Aplica un tick a todas las mascotas. Pensado para llamarse una vez por minuto.",
                "produces": ["application/json"],
                "tags": ["cron"],
                "summary": "Aplicar un tick de decay",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/pets.decayResponse"}},
                    "500": {"description": "internal error", "schema": {"type": "string"}}
                }
            }
        },
        "/pet": {
            "post": {
                "description": "Crea una mascota con stats por defecto (100/100/100, xp 0, nivel 1).",
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Crear mascota",
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/pets.petResponse"}},
                    "500": {"description": "internal error", "schema": {"type": "string"}}
                }
            }
        },
        "/pet/{petID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Obtener mascota",
                "parameters": [
                    {"type": "integer", "description": "ID de la mascota", "name": "petID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/pets.petResponse"}},
                    "400": {"description": "invalid pet id", "schema": {"type": "string"}},
                    "404": {"description": "pet not found", "schema": {"type": "string"}}
                }
            },
            "put": {
                "description": "Sobrescribe los campos enviados sin clamp. Solo rechaza valores no finitos, |v| \u003e 1e12 o level fuera de int32.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Escribir stats de la mascota",
                "parameters": [
                    {"type": "integer", "description": "ID de la mascota", "name": "petID", "in": "path", "required": true},
                    {"description": "Campos a escribir (todos opcionales)", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/pets.updatePetRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/pets.petResponse"}},
                    "400": {"description": "invalid json / invalid input", "schema": {"type": "string"}},
                    "404": {"description": "pet not found", "schema": {"type": "string"}}
                }
            }
        },
        "/pet/{petID}/action": {
            "post": {
                "description": "feed suma a food, fill_water a water, play a fun. Tope 100. amount por defecto 10.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Acción del jugador",
                "parameters": [
                    {"type": "integer", "description": "ID de la mascota", "name": "petID", "in": "path", "required": true},
                    {"description": "Acción y cantidad opcional", "name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/pets.actionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/pets.petResponse"}},
                    "400": {"description": "invalid json / invalid action / invalid amount", "schema": {"type": "string"}},
                    "404": {"description": "pet not found", "schema": {"type": "string"}}
                }
            }
        },
        "/pets": {
            "get": {
                "produces": ["application/json"],
                "tags": ["pets"],
                "summary": "Listar mascotas",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/pets.petResponse"}}},
                    "500": {"description": "internal error", "schema": {"type": "string"}}
                }
            }
        },
        "/pets/export.csv": {
            "get": {
                "produces": ["text/csv"],
                "tags": ["pets"],
                "summary": "Exportar mascotas en CSV",
                "responses": {
                    "200": {"description": "csv", "schema": {"type": "string"}},
                    "500": {"description": "internal error", "schema": {"type": "string"}}
                }
            }
        }
    },
    "definitions": {
        "pets.Action": {
            "type": "string",
            "enum": ["feed", "fill_water", "play"],
            "x-enum-varnames": ["ActionFeed", "ActionFillWater", "ActionPlay"]
        },
        "pets.actionRequest": {
            "type": "object",
            "properties": {
                "action": {"enum": ["feed", "fill_water", "play"], "allOf": [{"$ref": "#/definitions/pets.Action"}]},
                "amount": {"type": "number"}
            }
        },
        "pets.decayResponse": {
            "type": "object",
            "properties": {
                "count": {"type": "integer"},
                "run_id": {"type": "string"},
                "status": {"type": "string"}
            }
        },
        "pets.petResponse": {
            "type": "object",
            "properties": {
                "food": {"type": "number"},
                "fun": {"type": "number"},
                "id": {"type": "integer"},
                "last_decay": {"type": "string"},
                "level": {"type": "integer"},
                "water": {"type": "number"},
                "xp": {"type": "number"}
            }
        },
        "pets.updatePetRequest": {
            "type": "object",
            "properties": {
                "food": {"type": "number"},
                "fun": {"type": "number"},
                "level": {"type": "integer"},
                "water": {"type": "number"},
                "xp": {"type": "number"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "virtual-pet API",
	Description:      "Mascota virtual: stats que decaen por tick y se reponen con acciones.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
