// Package docs registers the Swagger 2.0 document served under /swagger.
// It follows the layout swag init emits for the handler annotations; run
// go generate from the repository root to rebuild it with the swag CLI.
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
        "/risk/classes": {
            "get": {
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "List risk classes",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.CatalogResponse"}}
                }
            }
        },
        "/risk/confidence-levels": {
            "get": {
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "List confidence levels and horizons",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/risk/report": {
            "post": {
                "description": "Run VaR and all configured stress scenarios, then persist the report",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["risk"],
                "summary": "Compute and store a risk report",
                "parameters": [
                    {"type": "integer", "description": "Owner of the run", "name": "X-User-ID", "in": "header"},
                    {"description": "Portfolio and parameters", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.RiskRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.RiskReport"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/risk/report/csv": {
            "post": {
                "description": "Multipart upload: a \"metadata\" JSON field with net_asset_value, horizon_days and confidence, and an \"allocations\" CSV file with risk_class_id,percent_of_nav columns",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["risk"],
                "summary": "Compute a risk report from an allocation CSV",
                "parameters": [
                    {"type": "integer", "description": "Owner of the run", "name": "X-User-ID", "in": "header"},
                    {"type": "string", "description": "RiskRequest JSON without allocations", "name": "metadata", "in": "formData", "required": true},
                    {"type": "file", "description": "Allocation CSV", "name": "allocations", "in": "formData", "required": true}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.RiskReport"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/risk/runs/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["runs"],
                "summary": "Get a stored risk report",
                "parameters": [
                    {"type": "string", "description": "Run ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.RiskReport"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/risk/scenarios": {
            "get": {
                "produces": ["application/json"],
                "tags": ["catalog"],
                "summary": "List stress scenarios",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.StressScenario"}}}
                }
            }
        },
        "/risk/sensitivity": {
            "post": {
                "description": "Compute the total VaR for every configured horizon and confidence level",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["risk"],
                "summary": "Total VaR grid",
                "parameters": [
                    {"description": "Portfolio", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.SensitivityRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.SensitivityResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/risk/stress": {
            "post": {
                "description": "Apply stress scenarios to the allocations. Uses the configured scenarios when none are given.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["risk"],
                "summary": "Run stress scenarios",
                "parameters": [
                    {"description": "Allocations and optional scenarios", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.StressRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.StressResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/risk/var": {
            "post": {
                "description": "Compute per-allocation VaR and the total for one horizon and confidence level",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["risk"],
                "summary": "Compute Delta-Normal VaR",
                "parameters": [
                    {"description": "Portfolio and parameters", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.RiskRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.VaRResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/users/{user_id}/runs": {
            "get": {
                "description": "Get the stored risk reports of a user, newest first",
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "List user's risk runs",
                "parameters": [
                    {"type": "integer", "description": "User ID", "name": "user_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.RunListItem"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "models.Allocation": {
            "type": "object",
            "required": ["percent_of_nav", "risk_class_id"],
            "properties": {
                "percent_of_nav": {"type": "number", "minimum": 0, "exclusiveMinimum": true},
                "risk_class_id": {"type": "string"}
            }
        },
        "models.CatalogResponse": {
            "type": "object",
            "properties": {
                "classes": {"type": "array", "items": {"$ref": "#/definitions/models.RiskClass"}},
                "trading_days_per_year": {"type": "integer"}
            }
        },
        "models.ConfidenceLevel": {
            "type": "object",
            "properties": {
                "level": {"type": "number"},
                "option": {"type": "string"},
                "z_score": {"type": "number"}
            }
        },
        "models.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "models.PortfolioContext": {
            "type": "object",
            "properties": {
                "confidence_z_score": {"type": "number"},
                "horizon_days": {"type": "integer"},
                "net_asset_value": {"type": "number"}
            }
        },
        "models.RiskClass": {
            "type": "object",
            "properties": {
                "annual_volatility": {"type": "number"},
                "id": {"type": "string"}
            }
        },
        "models.RiskReport": {
            "type": "object",
            "properties": {
                "confidence": {"$ref": "#/definitions/models.ConfidenceLevel"},
                "context": {"$ref": "#/definitions/models.PortfolioContext"},
                "created_at": {"type": "string"},
                "horizon_end": {"type": "string"},
                "id": {"type": "string"},
                "owner_id": {"type": "integer"},
                "stress": {"type": "array", "items": {"$ref": "#/definitions/models.StressResult"}},
                "total_var_amount": {"type": "number"},
                "total_var_percent_of_nav": {"type": "number"},
                "var": {"type": "array", "items": {"$ref": "#/definitions/models.VaRResult"}},
                "warnings": {"type": "array", "items": {"$ref": "#/definitions/models.Warning"}}
            }
        },
        "models.RiskRequest": {
            "type": "object",
            "required": ["confidence", "horizon_days", "net_asset_value"],
            "properties": {
                "allocations": {"type": "array", "items": {"$ref": "#/definitions/models.Allocation"}},
                "confidence": {"type": "string"},
                "horizon_days": {"type": "integer"},
                "net_asset_value": {"type": "number"}
            }
        },
        "models.RunListItem": {
            "type": "object",
            "properties": {
                "confidence": {"type": "number"},
                "created_at": {"type": "string"},
                "horizon_days": {"type": "integer"},
                "id": {"type": "string"},
                "net_asset_value": {"type": "number"},
                "total_var_amount": {"type": "number"}
            }
        },
        "models.SensitivityCell": {
            "type": "object",
            "properties": {
                "confidence": {"type": "number"},
                "horizon_days": {"type": "integer"},
                "total_var_amount": {"type": "number"},
                "total_var_percent_of_nav": {"type": "number"},
                "z_score": {"type": "number"}
            }
        },
        "models.SensitivityRequest": {
            "type": "object",
            "required": ["net_asset_value"],
            "properties": {
                "allocations": {"type": "array", "items": {"$ref": "#/definitions/models.Allocation"}},
                "net_asset_value": {"type": "number"}
            }
        },
        "models.SensitivityResponse": {
            "type": "object",
            "properties": {
                "cells": {"type": "array", "items": {"$ref": "#/definitions/models.SensitivityCell"}}
            }
        },
        "models.StressRequest": {
            "type": "object",
            "required": ["allocations"],
            "properties": {
                "allocations": {"type": "array", "items": {"$ref": "#/definitions/models.Allocation"}},
                "net_asset_value": {"type": "number"},
                "scenarios": {"type": "array", "items": {"$ref": "#/definitions/models.StressScenario"}}
            }
        },
        "models.StressResponse": {
            "type": "object",
            "properties": {
                "results": {"type": "array", "items": {"$ref": "#/definitions/models.StressResult"}},
                "warnings": {"type": "array", "items": {"$ref": "#/definitions/models.Warning"}}
            }
        },
        "models.StressResult": {
            "type": "object",
            "properties": {
                "aggregate_impact_amount": {"type": "number"},
                "aggregate_impact_percent": {"type": "number"},
                "scenario_name": {"type": "string"}
            }
        },
        "models.StressScenario": {
            "type": "object",
            "properties": {
                "classes": {"type": "array", "items": {"type": "string"}},
                "name": {"type": "string"},
                "shock": {"type": "number"}
            }
        },
        "models.VaRResponse": {
            "type": "object",
            "properties": {
                "context": {"$ref": "#/definitions/models.PortfolioContext"},
                "results": {"type": "array", "items": {"$ref": "#/definitions/models.VaRResult"}},
                "total_var_amount": {"type": "number"},
                "warnings": {"type": "array", "items": {"$ref": "#/definitions/models.Warning"}}
            }
        },
        "models.VaRResult": {
            "type": "object",
            "properties": {
                "annual_volatility": {"type": "number"},
                "percent_of_nav": {"type": "number"},
                "risk_class_id": {"type": "string"},
                "var_amount": {"type": "number"},
                "var_percent": {"type": "number"}
            }
        },
        "models.Warning": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"}
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
	Title:            "VaR and Stress API",
	Description:      "Delta-Normal Value-at-Risk and deterministic stress scenarios over a risk class catalog.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
