// Package docs registers the OpenAPI document served at /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support",
            "email": "support@example.com"
        },
        "license": {
            "name": "Apache 2.0",
            "url": "http://www.apache.org/licenses/LICENSE-2.0.html"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/create-ticket": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["tickets"],
                "summary": "Create a ticket",
                "parameters": [
                    {
                        "description": "Customer contact and ticket fields",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/ticket.CreateTicketRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/api/open-tickets": {
            "get": {
                "produces": ["application/json"],
                "tags": ["tickets"],
                "summary": "List the 20 newest open or working tickets",
                "responses": {
                    "200": {"description": "OK"},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/api/tickets": {
            "get": {
                "produces": ["application/json"],
                "tags": ["tickets"],
                "summary": "List all tickets, newest first",
                "responses": {
                    "200": {"description": "OK"},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/api/tickets/export": {
            "get": {
                "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "tags": ["tickets"],
                "summary": "Export all tickets as a spreadsheet",
                "responses": {
                    "200": {"description": "OK"},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/api/tickets/{id}": {
            "patch": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["tickets"],
                "summary": "Update ticket fields",
                "parameters": [
                    {"type": "string", "description": "Ticket ID", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to change", "name": "request", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/api/tickets/{id}/comments": {
            "get": {
                "produces": ["application/json"],
                "tags": ["comments"],
                "summary": "List ticket comments, newest first",
                "parameters": [
                    {"type": "string", "description": "Ticket ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["comments"],
                "summary": "Add a comment to a ticket",
                "parameters": [
                    {"type": "string", "description": "Ticket ID", "name": "id", "in": "path", "required": true},
                    {"description": "Comment", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ticket.AddCommentRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/api/tickets/{id}/history": {
            "get": {
                "produces": ["application/json"],
                "tags": ["tickets"],
                "summary": "List the change history of a ticket",
                "parameters": [
                    {"type": "string", "description": "Ticket ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/api/customers": {
            "get": {
                "produces": ["application/json"],
                "tags": ["customers"],
                "summary": "List customers",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/agents": {
            "get": {
                "produces": ["application/json"],
                "tags": ["agents"],
                "summary": "List active agents",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/ivr-calls": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["ivr"],
                "summary": "Log an IVR call",
                "parameters": [
                    {"description": "Call record", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ivr.LogCallRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/api/ticket-stats": {
            "get": {
                "produces": ["application/json"],
                "tags": ["stats"],
                "summary": "Live ticket counts by status",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/ticket-stats/snapshots": {
            "get": {
                "produces": ["application/json"],
                "tags": ["stats"],
                "summary": "Recent scheduled ticket count snapshots",
                "parameters": [
                    {"type": "integer", "description": "Number of snapshots", "name": "limit", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/health": {
            "get": {
                "description": "Check if the server is up",
                "produces": ["text/plain"],
                "tags": ["health"],
                "summary": "Health Check",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "string"}}
                }
            }
        },
        "/health/ready": {
            "get": {
                "description": "Ping MongoDB and, when configured, Redis",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Readiness Check",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "503": {"description": "Service Unavailable", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/api/audit-logs": {
            "get": {
                "produces": ["application/json"],
                "tags": ["audit"],
                "summary": "List audit log entries",
                "parameters": [
                    {"type": "string", "description": "Module", "name": "module", "in": "query"},
                    {"type": "string", "description": "Record ID", "name": "record_id", "in": "query"},
                    {"type": "integer", "description": "Page", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Page size", "name": "limit", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        }
    },
    "definitions": {
        "ticket.CreateTicketRequest": {
            "type": "object",
            "required": ["customer_name", "ticket_title"],
            "properties": {
                "customer_name": {"type": "string"},
                "customer_email": {"type": "string"},
                "customer_phone": {"type": "string"},
                "company_name": {"type": "string"},
                "customer_address": {"type": "string"},
                "ticket_title": {"type": "string"},
                "ticket_description": {"type": "string"},
                "ticket_type": {"type": "string"},
                "priority": {"type": "string"},
                "source": {"type": "string"},
                "tracking_number": {"type": "string"}
            }
        },
        "ticket.AddCommentRequest": {
            "type": "object",
            "required": ["comment"],
            "properties": {
                "comment": {"type": "string"},
                "is_internal": {"type": "boolean"},
                "agent_id": {"type": "string"}
            }
        },
        "ivr.LogCallRequest": {
            "type": "object",
            "required": ["phone_number", "call_duration", "call_type"],
            "properties": {
                "phone_number": {"type": "string"},
                "call_duration": {"type": "number"},
                "call_type": {"type": "string"},
                "customer_id": {"type": "string"},
                "ticket_id": {"type": "string"},
                "notes": {"type": "string"}
            }
        },
        "utils.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "details": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "go-support API",
	Description:      "Support ticketing backend: customers, tickets, comments and IVR call logs.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
