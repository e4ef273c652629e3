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
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/api/user/signup": {
            "post": {
                "tags": ["auth"],
                "summary": "Sign up",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/signupRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/messageResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/api/user/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Login",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/loginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/loginResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/api/user/forgot-password": {
            "post": {
                "tags": ["auth"],
                "summary": "Request a password reset code",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/forgotPasswordRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/messageResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "500": {"description": "Failed to send OTP", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/api/user/verify-otp": {
            "post": {
                "tags": ["auth"],
                "summary": "Verify a password reset code",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/verifyOTPRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/messageResponse"}},
                    "400": {"description": "Invalid or expired OTP", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/api/user/reset-password": {
            "post": {
                "tags": ["auth"],
                "summary": "Reset password",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/resetPasswordRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/messageResponse"}},
                    "400": {"description": "Invalid or expired OTP", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/api/user/profile": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["profile"],
                "summary": "Get own profile",
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["profile"],
                "summary": "Update own profile",
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/api/user/upload-profile-picture": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["profile"],
                "summary": "Upload profile picture",
                "consumes": ["multipart/form-data"],
                "parameters": [{"in": "formData", "name": "profilePicture", "type": "file", "required": true}],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "503": {"description": "Storage not configured", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/api/user/upload-profile": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["profile"],
                "summary": "Upload profile picture (alias)",
                "consumes": ["multipart/form-data"],
                "parameters": [{"in": "formData", "name": "profilePicture", "type": "file", "required": true}],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "503": {"description": "Storage not configured", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/api/user/upload-profile-picture-crop": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["profile"],
                "summary": "Upload and crop profile picture",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"in": "formData", "name": "profilePicture", "type": "file", "required": true},
                    {"in": "formData", "name": "x", "type": "integer"},
                    {"in": "formData", "name": "y", "type": "integer"},
                    {"in": "formData", "name": "width", "type": "integer", "default": 400},
                    {"in": "formData", "name": "height", "type": "integer", "default": 400}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errorResponse"}},
                    "503": {"description": "Storage not configured", "schema": {"$ref": "#/definitions/errorResponse"}}
                }
            }
        },
        "/api/contacts": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["contacts"], "summary": "List contacts", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["contacts"], "summary": "Create contact", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/api/contacts/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["contacts"], "summary": "Get contact", "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["contacts"], "summary": "Update contact", "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["contacts"], "summary": "Delete contact", "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/api/interactions": {
            "get": {"tags": ["interactions"], "summary": "List all interactions", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["interactions"], "summary": "Create interaction", "responses": {"201": {"description": "Created"}, "404": {"description": "Contact not found"}}}
        },
        "/api/interactions/{contactId}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["interactions"], "summary": "List interactions of a contact", "parameters": [{"in": "path", "name": "contactId", "type": "string", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/api/interactions/{id}": {
            "put": {"security": [{"BearerAuth": []}], "tags": ["interactions"], "summary": "Update interaction", "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["interactions"], "summary": "Delete interaction", "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        }
    },
    "definitions": {
        "errorResponse": {"type": "object", "properties": {"error": {"type": "string"}}},
        "messageResponse": {"type": "object", "properties": {"message": {"type": "string"}}},
        "loginResponse": {"type": "object", "properties": {"message": {"type": "string"}, "token": {"type": "string"}}},
        "signupRequest": {"type": "object", "required": ["name", "email", "password"], "properties": {"name": {"type": "string"}, "email": {"type": "string"}, "password": {"type": "string"}}},
        "loginRequest": {"type": "object", "required": ["email", "password"], "properties": {"email": {"type": "string"}, "password": {"type": "string"}}},
        "forgotPasswordRequest": {"type": "object", "required": ["email"], "properties": {"email": {"type": "string"}}},
        "verifyOTPRequest": {"type": "object", "required": ["email", "otp"], "properties": {"email": {"type": "string"}, "otp": {"type": "string"}}},
        "resetPasswordRequest": {"type": "object", "required": ["email", "otp", "newPassword"], "properties": {"email": {"type": "string"}, "otp": {"type": "string"}, "newPassword": {"type": "string"}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Contact Manager API",
	Description:      "Accounts, contacts and interactions with bearer-token auth and OTP password reset.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
