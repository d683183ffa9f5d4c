// Package docs registers the OpenAPI description served under /swagger.
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
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Liveness probe",
                "responses": {"200": {"description": "Application is alive"}}
            }
        },
        "/readyz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "Application is ready"},
                    "503": {"description": "Service unavailable", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/resources": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Resources"],
                "summary": "List resources",
                "parameters": [
                    {"type": "string", "description": "Filter by provider (AWS, GCP, Azure)", "name": "provider", "in": "query"},
                    {"type": "string", "description": "Filter by resource type", "name": "type", "in": "query"},
                    {"type": "string", "description": "Filter by region", "name": "region", "in": "query"},
                    {"type": "string", "description": "Filter by status", "name": "status", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "List of resources", "schema": {"type": "array", "items": {"$ref": "#/definitions/resource.Resource"}}},
                    "400": {"description": "Invalid filter", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Resources"],
                "summary": "Create resource",
                "parameters": [
                    {"description": "Resource details", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateResourceRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created resource", "schema": {"$ref": "#/definitions/resource.Resource"}},
                    "400": {"description": "Invalid request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/resources/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Resources"],
                "summary": "Get resource by ID",
                "parameters": [{"type": "integer", "description": "Resource ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Resource details", "schema": {"$ref": "#/definitions/resource.Resource"}},
                    "404": {"description": "Resource not found", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Resources"],
                "summary": "Update resource",
                "parameters": [
                    {"type": "integer", "description": "Resource ID", "name": "id", "in": "path", "required": true},
                    {"description": "Fields to update", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.UpdateResourceRequest"}}
                ],
                "responses": {
                    "200": {"description": "Updated resource", "schema": {"$ref": "#/definitions/resource.Resource"}},
                    "400": {"description": "Invalid request", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}},
                    "404": {"description": "Resource not found", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["Resources"],
                "summary": "Delete resource",
                "parameters": [{"type": "integer", "description": "Resource ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Resource deleted", "schema": {"$ref": "#/definitions/utils.MessageResponse"}},
                    "404": {"description": "Resource not found", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/resources/{id}/metrics": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Metrics"],
                "summary": "Resource metrics",
                "parameters": [{"type": "integer", "description": "Resource ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Utilisation series", "schema": {"type": "array", "items": {"$ref": "#/definitions/metric.Point"}}},
                    "404": {"description": "Resource not found", "schema": {"$ref": "#/definitions/utils.ErrorResponse"}}
                }
            }
        },
        "/resources/{id}/logs": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Logs"],
                "summary": "List resource history",
                "parameters": [{"type": "integer", "description": "Resource ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "Resource history", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.LogEntryDTO"}}}
                }
            }
        },
        "/alerts": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Alerts"],
                "summary": "List alerts",
                "responses": {
                    "200": {"description": "List of alerts", "schema": {"type": "array", "items": {"$ref": "#/definitions/alert.Alert"}}}
                }
            }
        },
        "/logs": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Logs"],
                "summary": "List action logs",
                "parameters": [{"type": "integer", "description": "Maximum number of entries (default: all)", "name": "limit", "in": "query"}],
                "responses": {
                    "200": {"description": "Action log", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.LogEntryDTO"}}}
                }
            }
        },
        "/users": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Users"],
                "summary": "List users",
                "responses": {
                    "200": {"description": "List of users", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.UserDTO"}}}
                }
            }
        }
    },
    "definitions": {
        "alert.Alert": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "severity": {"type": "string"},
                "time": {"type": "string"}
            }
        },
        "dto.CreateResourceRequest": {
            "type": "object",
            "required": ["name", "provider", "region", "type"],
            "properties": {
                "name": {"type": "string", "maxLength": 255},
                "provider": {"type": "string", "enum": ["AWS", "GCP", "Azure"]},
                "type": {"type": "string", "enum": ["VM", "Storage", "Database", "Serverless", "Load Balancer"]},
                "region": {"type": "string", "maxLength": 100},
                "config": {"type": "object", "additionalProperties": true}
            }
        },
        "dto.UpdateResourceRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "region": {"type": "string"},
                "status": {"type": "string"},
                "tags": {"type": "array", "items": {"type": "string"}}
            }
        },
        "dto.LogEntryDTO": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "timestamp": {"type": "string"},
                "user": {"type": "string"},
                "action": {"type": "string"},
                "resource": {"type": "string"},
                "status": {"type": "string"},
                "provider": {"type": "string"},
                "details": {"type": "object", "additionalProperties": true}
            }
        },
        "dto.UserDTO": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "role": {"type": "string"},
                "status": {"type": "string"},
                "avatar": {"type": "string"},
                "lastLogin": {"type": "string"}
            }
        },
        "metric.Point": {
            "type": "object",
            "properties": {
                "time": {"type": "string"},
                "cpu": {"type": "number"},
                "memory": {"type": "number"},
                "networkIn": {"type": "number"},
                "networkOut": {"type": "number"}
            }
        },
        "resource.Resource": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "provider": {"type": "string"},
                "type": {"type": "string"},
                "region": {"type": "string"},
                "externalId": {"type": "string"},
                "status": {"type": "string"},
                "cpu": {"type": "string"},
                "memory": {"type": "string"},
                "storage": {"type": "string"},
                "costPerMonth": {"type": "number"},
                "uptime": {"type": "number"},
                "tags": {"type": "array", "items": {"type": "string"}},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string"}
            }
        },
        "utils.ErrorDetail": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "details": {}
            }
        },
        "utils.ErrorResponse": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "error": {"$ref": "#/definitions/utils.ErrorDetail"}
            }
        },
        "utils.MessageResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"}
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
	Title:            "Cloud Manager API",
	Description:      "Provisions and tracks cloud resources across AWS, GCP and Azure.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
