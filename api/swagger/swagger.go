package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "IBPath API",
        "description": "IB diploma validation and university program matching",
        "version": "0.1.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Profiles", "description": "Student academic profiles"},
        {"name": "Diploma", "description": "IB award rule checks"},
        {"name": "Matches", "description": "Program compatibility scoring"},
        {"name": "Programs", "description": "University program catalog"},
        {"name": "Metrics", "description": "Operational metrics"}
    ],
    "paths": {
        "/students/{id}/profile": {
            "get": {
                "tags": ["Profiles"],
                "summary": "Get academic profile",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Student not found"}
                }
            },
            "put": {
                "tags": ["Profiles"],
                "summary": "Replace academic profile",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ProfileUpdateRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid payload"},
                    "404": {"description": "Student not found"}
                }
            }
        },
        "/diploma/check": {
            "post": {
                "tags": ["Diploma"],
                "summary": "Check diploma award rules",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/DiplomaCheckRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid payload"}
                }
            }
        },
        "/students/{id}/matches": {
            "get": {
                "tags": ["Matches"],
                "summary": "List program matches",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "mode", "in": "query", "type": "string"},
                    {"name": "category", "in": "query", "type": "string", "enum": ["SAFETY", "MATCH", "REACH", "UNLIKELY"]},
                    {"name": "min_score", "in": "query", "type": "number"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Student not found"}
                }
            }
        },
        "/students/{id}/matches/export": {
            "get": {
                "tags": ["Matches"],
                "summary": "Export program matches",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "mode", "in": "query", "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"], "default": "csv"}
                ],
                "responses": {
                    "200": {"description": "Rendered file"},
                    "404": {"description": "Student not found"}
                }
            }
        },
        "/matches/preview": {
            "post": {
                "tags": ["Matches"],
                "summary": "Preview matches for an unsaved profile",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/MatchPreviewRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid payload"}
                }
            }
        },
        "/programs": {
            "get": {
                "tags": ["Programs"],
                "summary": "List programs",
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "field_id", "in": "query", "type": "string"},
                    {"name": "country_id", "in": "query", "type": "string"},
                    {"name": "sort_by", "in": "query", "type": "string", "enum": ["name", "university", "min_ib_points", "created_at"]},
                    {"name": "sort_order", "in": "query", "type": "string", "enum": ["asc", "desc"]},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/metrics/summary": {
            "get": {
                "tags": ["Metrics"],
                "summary": "System metrics snapshot",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "SubjectInput": {
            "type": "object",
            "required": ["course_id", "level", "grade"],
            "properties": {
                "course_id": {"type": "string"},
                "course_name": {"type": "string"},
                "level": {"type": "string", "enum": ["HL", "SL"]},
                "grade": {"type": "integer", "minimum": 1, "maximum": 7}
            }
        },
        "DiplomaCheckRequest": {
            "type": "object",
            "properties": {
                "subjects": {"type": "array", "items": {"$ref": "#/definitions/SubjectInput"}},
                "tok_grade": {"type": "string", "enum": ["A", "B", "C", "D", "E"]},
                "ee_grade": {"type": "string", "enum": ["A", "B", "C", "D", "E"]},
                "total_ib_points": {"type": "integer", "minimum": 0, "maximum": 45}
            }
        },
        "ProfileUpdateRequest": {
            "type": "object",
            "properties": {
                "subjects": {"type": "array", "items": {"$ref": "#/definitions/SubjectInput"}, "maxItems": 6},
                "tok_grade": {"type": "string", "enum": ["A", "B", "C", "D", "E"]},
                "ee_grade": {"type": "string", "enum": ["A", "B", "C", "D", "E"]},
                "total_ib_points": {"type": "integer", "minimum": 0, "maximum": 45},
                "preferred_field_ids": {"type": "array", "items": {"type": "string"}},
                "preferred_country_ids": {"type": "array", "items": {"type": "string"}}
            }
        },
        "MatchPreviewRequest": {
            "allOf": [
                {"$ref": "#/definitions/ProfileUpdateRequest"},
                {
                    "type": "object",
                    "properties": {
                        "mode": {"type": "string"},
                        "program_id": {"type": "string"}
                    }
                }
            ]
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
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
                "pagination": {"$ref": "#/definitions/Pagination"},
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
