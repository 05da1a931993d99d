package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "SIGAC API",
        "description": "Sistema de Gestão de Actividades Científicas",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Faculties", "description": "Faculty catalogue"},
        {"name": "Activities", "description": "Scientific activity records"},
        {"name": "Dashboard", "description": "Direction-office monitoring"},
        {"name": "Reports", "description": "Report generation and download"},
        {"name": "Document", "description": "Whole-document backup and reset"}
    ],
    "paths": {
        "/faculties": {
            "get": {
                "tags": ["Faculties"],
                "summary": "List faculties",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/activities": {
            "get": {
                "tags": ["Activities"],
                "summary": "List activities",
                "parameters": [
                    {"name": "year", "in": "query", "type": "integer"},
                    {"name": "facultyId", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Activities"],
                "summary": "Record a new activity",
                "parameters": [
                    {"name": "X-Actor-Profile", "in": "header", "type": "string"},
                    {"name": "X-Faculty-ID", "in": "header", "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateActivityRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error"},
                    "403": {"description": "Forbidden"}
                }
            }
        },
        "/activities/{id}": {
            "get": {
                "tags": ["Activities"],
                "summary": "Get one activity",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            },
            "delete": {
                "tags": ["Activities"],
                "summary": "Delete an activity (validation edition only)",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "X-Actor-Profile", "in": "header", "type": "string"},
                    {"name": "X-Faculty-ID", "in": "header", "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deleted"},
                    "403": {"description": "Forbidden"}
                }
            }
        },
        "/activities/{id}/status": {
            "put": {
                "tags": ["Activities"],
                "summary": "Change lifecycle state",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateStatusRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "State not valid for the configured edition"},
                    "409": {"description": "Transition not allowed"}
                }
            }
        },
        "/activities/{id}/execution-date": {
            "put": {
                "tags": ["Activities"],
                "summary": "Record the execution date (execution edition only)",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateExecutionDateRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/activities/{id}/evidence": {
            "put": {
                "tags": ["Activities"],
                "summary": "Replace evidence links",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SetEvidenceRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/dashboard": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Per-faculty activity counts for a year",
                "parameters": [
                    {"name": "year", "in": "query", "type": "integer", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/reports": {
            "get": {
                "tags": ["Reports"],
                "summary": "Generate and download a report",
                "parameters": [
                    {"name": "year", "in": "query", "type": "integer", "required": true},
                    {"name": "period", "in": "query", "type": "string"},
                    {"name": "facultyId", "in": "query", "type": "string"},
                    {"name": "state", "in": "query", "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["HTML", "CSV", "PDF"]}
                ],
                "responses": {
                    "200": {"description": "Report body"}
                }
            }
        },
        "/reports/jobs": {
            "post": {
                "tags": ["Reports"],
                "summary": "Queue a report for background generation",
                "parameters": [
                    {"name": "year", "in": "query", "type": "integer", "required": true},
                    {"name": "format", "in": "query", "type": "string", "enum": ["HTML", "CSV", "PDF"]}
                ],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/reports/jobs/{id}": {
            "get": {
                "tags": ["Reports"],
                "summary": "Report job status",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/reports/download/{token}": {
            "get": {
                "tags": ["Reports"],
                "summary": "Download a finished report by signed token",
                "parameters": [
                    {"name": "token", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Report body"},
                    "403": {"description": "Invalid or expired token"}
                }
            }
        },
        "/document/export": {
            "get": {
                "tags": ["Document"],
                "summary": "Download the whole document as JSON",
                "responses": {
                    "200": {"description": "JSON document"}
                }
            }
        },
        "/document/import": {
            "post": {
                "tags": ["Document"],
                "summary": "Restore a previously exported document",
                "responses": {
                    "204": {"description": "Imported"},
                    "400": {"description": "Invalid document"}
                }
            }
        },
        "/document/reset": {
            "post": {
                "tags": ["Document"],
                "summary": "Reset the document to seed data",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden"}
                }
            }
        }
    },
    "definitions": {
        "CreateActivityRequest": {
            "type": "object",
            "required": ["year", "facultyId", "category", "period", "title"],
            "properties": {
                "year": {"type": "integer"},
                "facultyId": {"type": "string"},
                "category": {"type": "string"},
                "period": {"type": "string"},
                "title": {"type": "string"},
                "description": {"type": "string"},
                "startDate": {"type": "string"},
                "endDate": {"type": "string"},
                "evidenceLinks": {"type": "array", "items": {"type": "string"}}
            }
        },
        "UpdateStatusRequest": {
            "type": "object",
            "required": ["state"],
            "properties": {
                "state": {"type": "string"},
                "comment": {"type": "string"}
            }
        },
        "UpdateExecutionDateRequest": {
            "type": "object",
            "properties": {
                "executedOn": {"type": "string"}
            }
        },
        "SetEvidenceRequest": {
            "type": "object",
            "required": ["evidenceLinks"],
            "properties": {
                "evidenceLinks": {"type": "array", "items": {"type": "string"}}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
