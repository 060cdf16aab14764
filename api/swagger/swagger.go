package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "NitiPrint API",
        "description": "Print order intake with per-page color analysis",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BasicAuth": {"type": "basic"}
    },
    "tags": [
        {"name": "Analysis", "description": "PDF color/grayscale analysis"},
        {"name": "Orders", "description": "Customer order confirmation"},
        {"name": "Admin", "description": "Back-office order management"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "Degraded"}
                }
            }
        },
        "/analyze-pdf": {
            "post": {
                "tags": ["Analysis"],
                "summary": "Analyze a PDF for color and grayscale pages",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "pdfFile", "in": "formData", "type": "file", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/AnalyzeResponse"}},
                    "400": {"description": "Invalid upload", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "500": {"description": "Conversion failed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/confirm-order": {
            "post": {
                "tags": ["Orders"],
                "summary": "Confirm an order from a staged analysis",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "orderId", "in": "formData", "type": "string", "required": true},
                    {"name": "totalAmount", "in": "formData", "type": "string", "required": true},
                    {"name": "customerName", "in": "formData", "type": "string", "required": true},
                    {"name": "customerPhone", "in": "formData", "type": "string", "required": true},
                    {"name": "colorPages", "in": "formData", "type": "integer"},
                    {"name": "bwPages", "in": "formData", "type": "integer"},
                    {"name": "copies", "in": "formData", "type": "integer", "required": true},
                    {"name": "paymentMethod", "in": "formData", "type": "string", "required": true},
                    {"name": "tempFilename", "in": "formData", "type": "string", "required": true},
                    {"name": "originalName", "in": "formData", "type": "string", "required": true},
                    {"name": "colorPageRange", "in": "formData", "type": "string"},
                    {"name": "grayscalePageRange", "in": "formData", "type": "string"},
                    {"name": "pickupLocation", "in": "formData", "type": "string", "required": true},
                    {"name": "printMode", "in": "formData", "type": "string", "enum": ["color", "grayscale"]},
                    {"name": "paymentProof", "in": "formData", "type": "file", "required": true}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid payload", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "410": {"description": "Staged upload expired", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/orders": {
            "get": {
                "tags": ["Admin"],
                "summary": "List orders",
                "security": [{"BasicAuth": []}],
                "parameters": [
                    {"name": "pickupLocation", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/admin/orders/{orderId}/status": {
            "patch": {
                "tags": ["Admin"],
                "summary": "Update an order's status",
                "security": [{"BasicAuth": []}],
                "parameters": [
                    {"name": "orderId", "in": "path", "type": "string", "required": true},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateStatusRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Order not found"}
                }
            }
        },
        "/admin/orders/bulk-delete": {
            "post": {
                "tags": ["Admin"],
                "summary": "Delete orders and their files",
                "security": [{"BasicAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/BulkDeleteRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/orders/{orderId}/file": {
            "get": {
                "tags": ["Admin"],
                "summary": "Download an order's document",
                "security": [{"BasicAuth": []}],
                "produces": ["application/octet-stream"],
                "parameters": [
                    {"name": "orderId", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "File stream"},
                    "404": {"description": "Order or file not found"}
                }
            }
        },
        "/admin/orders/{orderId}/receipt": {
            "get": {
                "tags": ["Admin"],
                "summary": "Render an order receipt PDF",
                "security": [{"BasicAuth": []}],
                "produces": ["application/pdf"],
                "parameters": [
                    {"name": "orderId", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "PDF receipt"},
                    "404": {"description": "Order not found"}
                }
            }
        },
        "/admin/temp-files": {
            "get": {
                "tags": ["Admin"],
                "summary": "List staged uploads awaiting confirmation",
                "security": [{"BasicAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/admin/temp-files/delete": {
            "post": {
                "tags": ["Admin"],
                "summary": "Delete staged uploads",
                "security": [{"BasicAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/DeleteTempFilesRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "AnalyzeResponse": {
            "type": "object",
            "properties": {
                "colorPages": {"type": "integer"},
                "bwPages": {"type": "integer"},
                "details": {
                    "type": "object",
                    "properties": {
                        "colorPageRange": {"type": "string"},
                        "grayscalePageRange": {"type": "string"}
                    }
                },
                "tempFilename": {"type": "string"},
                "originalName": {"type": "string"}
            }
        },
        "UpdateStatusRequest": {
            "type": "object",
            "properties": {
                "status": {"type": "string"}
            }
        },
        "BulkDeleteRequest": {
            "type": "object",
            "properties": {
                "orderIds": {"type": "array", "items": {"type": "string"}}
            }
        },
        "DeleteTempFilesRequest": {
            "type": "object",
            "properties": {
                "filePaths": {"type": "array", "items": {"type": "string"}}
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
