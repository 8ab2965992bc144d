// Package docs registers the OpenAPI document served under /swagger.
// Keep it in step with the handler annotations in cmd/api; running
// go generate ./cmd/api rewrites it with swag.
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
        "/info": {
            "get": {
                "description": "Returns a fixed payload identifying the receiver",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "health"
                ],
                "summary": "Service info",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/types.InfoPayload"
                        }
                    }
                }
            }
        },
        "/ping": {
            "post": {
                "description": "Fetches the given URL and returns the upstream body and content type when it answers 200",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "relay"
                ],
                "summary": "Relay a GET request",
                "parameters": [
                    {
                        "description": "Upstream to fetch",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/types.PingRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Upstream body, verbatim",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "400": {
                        "description": "Upstream answered 4xx",
                        "schema": {
                            "$ref": "#/definitions/types.ErrorPayload"
                        }
                    },
                    "422": {
                        "description": "Malformed request body",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "string"
                            }
                        }
                    },
                    "500": {
                        "description": "Upstream answered another non-200 status",
                        "schema": {
                            "$ref": "#/definitions/types.ErrorPayload"
                        }
                    },
                    "502": {
                        "description": "Upstream unreachable",
                        "schema": {
                            "$ref": "#/definitions/types.ErrorPayload"
                        }
                    },
                    "504": {
                        "description": "Upstream timed out",
                        "schema": {
                            "$ref": "#/definitions/types.ErrorPayload"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "types.ErrorPayload": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "string",
                    "example": "Timeout"
                },
                "status": {
                    "type": "integer",
                    "example": 502
                }
            }
        },
        "types.InfoPayload": {
            "type": "object",
            "properties": {
                "Receiver": {
                    "type": "string",
                    "example": "Cisco is the best!"
                }
            }
        },
        "types.PingRequest": {
            "type": "object",
            "required": [
                "url"
            ],
            "properties": {
                "url": {
                    "description": "Upstream URL to fetch",
                    "type": "string",
                    "example": "https://example.com"
                }
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
	Title:            "Ping Relay API",
	Description:      "Relays a GET request to a caller supplied URL and returns the upstream payload.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
