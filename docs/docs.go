// Package docs registers the OpenAPI description served at /swagger.
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
        "/invoices": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["documents"],
                "summary": "Generate an invoice",
                "parameters": [
                    {"description": "Invoice details", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/document.InvoiceRequest"}}
                ],
                "responses": {
                    "201": {"description": "Invoice generated", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "400": {"description": "Invalid request", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "422": {"description": "Layout overflow", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "502": {"description": "Upload or mail failed", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        },
        "/invoices/tax-analysis": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "tags": ["documents"],
                "summary": "Export the tax analysis of an invoice",
                "parameters": [
                    {"description": "Invoice details", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/document.InvoiceRequest"}}
                ],
                "responses": {
                    "200": {"description": "XLSX workbook", "schema": {"type": "file"}},
                    "400": {"description": "Invalid request", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        },
        "/quotations": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["documents"],
                "summary": "Generate a quotation",
                "parameters": [
                    {"description": "Quotation details", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/document.QuotationRequest"}}
                ],
                "responses": {
                    "201": {"description": "Quotation generated", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "400": {"description": "Invalid request", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "422": {"description": "Layout overflow", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "502": {"description": "Upload or mail failed", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        },
        "/documents": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["documents"],
                "summary": "List documents",
                "parameters": [
                    {"type": "string", "description": "invoice or quotation", "name": "kind", "in": "query"},
                    {"type": "integer", "default": 0, "description": "Offset for pagination", "name": "offset", "in": "query"},
                    {"type": "integer", "default": 20, "description": "Limit for pagination (max 100)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "List of documents", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "400": {"description": "Invalid kind", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        },
        "/documents/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["documents"],
                "summary": "Get document by ID",
                "parameters": [
                    {"type": "string", "description": "Document ID (UUID)", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Document details", "schema": {"$ref": "#/definitions/handler.Response"}},
                    "404": {"description": "Document not found", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        },
        "/files": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["files"],
                "summary": "List generated files",
                "responses": {
                    "200": {"description": "Files", "schema": {"$ref": "#/definitions/handler.Response"}}
                }
            }
        },
        "/files/{name}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/pdf"],
                "tags": ["files"],
                "summary": "Download a generated file",
                "parameters": [
                    {"type": "string", "description": "File name as listed", "name": "name", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "File content", "schema": {"type": "file"}},
                    "404": {"description": "File not found", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        }
    },
    "definitions": {
        "document.Company": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string", "example": "Industech Automations"},
                "address": {"type": "string"},
                "city": {"type": "string"},
                "state": {"type": "string"},
                "gstin": {"type": "string", "example": "33CHVPD3453N1ZW"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "bankDetails": {
                    "type": "object",
                    "properties": {
                        "bankName": {"type": "string"},
                        "accountNo": {"type": "string"},
                        "ifsc": {"type": "string"}
                    }
                }
            }
        },
        "document.Party": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string"},
                "address": {"type": "string"},
                "gstin": {"type": "string"},
                "email": {"type": "string"}
            }
        },
        "gst.LineItem": {
            "type": "object",
            "required": ["name", "qty", "unitPrice"],
            "properties": {
                "name": {"type": "string", "example": "4MP IP Camera"},
                "hsn": {"type": "string", "example": "8525"},
                "qty": {"type": "number", "example": 4},
                "unitPrice": {"type": "number", "example": 2500},
                "discount": {"type": "number", "example": 10},
                "taxRate": {"type": "number", "example": 18}
            }
        },
        "document.Installation": {
            "type": "object",
            "properties": {
                "amount": {"type": "number", "example": 1500},
                "hsn": {"type": "string", "example": "998739"},
                "taxRate": {"type": "number", "example": 18}
            }
        },
        "document.InvoiceRequest": {
            "type": "object",
            "required": ["company", "customer", "invoice"],
            "properties": {
                "company": {"$ref": "#/definitions/document.Company"},
                "customer": {"$ref": "#/definitions/document.Party"},
                "invoice": {
                    "type": "object",
                    "required": ["number", "date", "items"],
                    "properties": {
                        "number": {"type": "string", "example": "INV-001"},
                        "date": {"type": "string", "example": "2025-03-05"},
                        "declaration": {"type": "string"},
                        "items": {"type": "array", "items": {"$ref": "#/definitions/gst.LineItem"}},
                        "installation": {"$ref": "#/definitions/document.Installation"}
                    }
                },
                "send_email": {"type": "boolean"}
            }
        },
        "document.QuotationRequest": {
            "type": "object",
            "required": ["company", "customer", "quotation"],
            "properties": {
                "company": {"$ref": "#/definitions/document.Company"},
                "customer": {"$ref": "#/definitions/document.Party"},
                "quotation": {
                    "type": "object",
                    "required": ["number", "date", "items"],
                    "properties": {
                        "number": {"type": "string", "example": "Q-7"},
                        "date": {"type": "string", "example": "2025-03-05"},
                        "intro": {"type": "string"},
                        "items": {"type": "array", "items": {"$ref": "#/definitions/gst.LineItem"}},
                        "installation": {"$ref": "#/definitions/document.Installation"},
                        "terms": {"type": "array", "items": {"type": "string"}}
                    }
                },
                "send_email": {"type": "boolean"}
            }
        },
        "handler.APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "handler.PagMeta": {
            "type": "object",
            "properties": {
                "total": {"type": "integer"},
                "offset": {"type": "integer"},
                "limit": {"type": "integer"}
            }
        },
        "handler.Response": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean", "example": true},
                "data": {},
                "meta": {"$ref": "#/definitions/handler.PagMeta"}
            }
        },
        "handler.ErrorResponseBody": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean", "example": false},
                "error": {"$ref": "#/definitions/handler.APIError"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and the JWT.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "bizdocs API",
	Description:      "GST invoice and quotation generation.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
